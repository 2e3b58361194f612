package dto

import "github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/anonymization"

// AnonymizeRequest is the payload sent to the external text-masking service.
type AnonymizeRequest struct {
	Text string `json:"text"`
}

// AnonymizeResponse carries the masked text plus the category-grouped
// placeholder mapping needed to restore the original values afterwards.
type AnonymizeResponse struct {
	AnonymizedText string                     `json:"anonymized_text"`
	Replacements   anonymization.Replacements `json:"replacements"`
}
