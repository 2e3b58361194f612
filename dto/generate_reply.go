package dto

import "github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/anonymization"

// GenerateReplyRequest is the input for the reply-generation call. Text must
// already be anonymized; Placeholders lists the tokens the model is allowed
// to reuse. The customer fields are optional and, when present, are passed to
// the prompt instead of asking the model to infer a salutation.
type GenerateReplyRequest struct {
	Text         string   `json:"text"`
	Placeholders []string `json:"placeholders"`
	Anrede       string   `json:"anrede"`
	Vorname      string   `json:"vorname"`
	Nachname     string   `json:"nachname"`
}

// GeneratedMessage is the interactive API response for a single complaint
// text: the masked intermediate artifacts plus the restored final reply.
type GeneratedMessage struct {
	FinalResponse  string                     `json:"finalResponse"`
	AnonymizedText string                     `json:"anonymized_text"`
	Replacements   anonymization.Replacements `json:"replacements"`
	IsLeftBehind   bool                       `json:"isComplaintAboutBeingLeftBehind"`
}
