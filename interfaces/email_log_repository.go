package interfaces

import (
	"context"

	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/models"
)

type EmailLogRepository interface {
	// Create stores the processing record for one email. Records with an
	// already stored message id are skipped silently.
	Create(ctx context.Context, emailLog *models.EmailLog) error

	GetByMessageID(ctx context.Context, messageID string) (*models.EmailLog, error)

	// List returns the most recently created records, newest first.
	List(ctx context.Context, limit int) ([]models.EmailLog, error)
}
