package interfaces

import (
	"context"

	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/dto"
)

type AnonymizerService interface {
	// Anonymize masks PII spans in text with placeholder tokens. It never
	// fails: when the masking service is unreachable the original text is
	// returned with an empty mapping, so callers that require masking must
	// check for an empty Replacements themselves.
	Anonymize(ctx context.Context, text string) *dto.AnonymizeResponse
}
