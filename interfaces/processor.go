package interfaces

import (
	"context"

	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/dto"
)

type ProcessorService interface {
	// ProcessUnread crawls the inbox and runs the full pipeline on every
	// unread email. Per-email failures are recorded and do not abort the
	// batch; an error is only returned when the batch itself cannot run.
	ProcessUnread(ctx context.Context) (*dto.ProcessReport, error)

	// GenerateMessage runs the anonymize, classify, generate and restore
	// steps on a single complaint text without touching the mailbox.
	GenerateMessage(ctx context.Context, request dto.GenerateMessageRequest) (*dto.GeneratedMessage, error)
}
