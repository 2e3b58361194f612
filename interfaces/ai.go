package interfaces

import (
	"context"

	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/dto"
)

type AIService interface {
	// ClassifyLeftBehind decides whether the complaint text is about a
	// passenger left behind at a stop. A false result is a normal branch;
	// only transport or model failures return an error.
	ClassifyLeftBehind(ctx context.Context, text string) (bool, error)

	// GenerateReply drafts an answer to the anonymized complaint. The reply
	// still contains the placeholder tokens listed in the request.
	GenerateReply(ctx context.Context, request dto.GenerateReplyRequest) (string, error)
}
