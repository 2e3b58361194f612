package interfaces

import (
	"context"

	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/dto"
)

type MailboxService interface {
	// GetUnreadEmails crawls all unread messages of the configured inbox,
	// following pagination and skipping self-sent mail.
	GetUnreadEmails(ctx context.Context) ([]dto.CrawledEmail, error)

	MarkAsRead(ctx context.Context, emailID string) error

	// SendEmail dispatches an HTML mail from the configured inbox. Newlines
	// in content are converted to <br> tags.
	SendEmail(ctx context.Context, subject, content string, toRecipients, ccRecipients []string) error
}
