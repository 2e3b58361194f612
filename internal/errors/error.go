package errors

import "github.com/pkg/errors"

// Pipeline failure taxonomy. Each sentinel marks a terminal state of the
// per-email processing pipeline; the orchestrator matches them with errors.Is
// and leaves the email unread so the next polling pass retries it.
var (
	// extraction errors
	ErrUnknownTemplate = errors.New("could not determine type of email")
	ErrExtraction      = errors.New("could not extract text and fields from email")

	// classification errors
	ErrCategorization = errors.New("email categorization failed")

	// generation errors
	ErrAnswerGeneration = errors.New("ai answer generation failed")
	ErrEmptyAIResponse  = errors.New("empty response from ai service")

	// dispatch errors
	ErrSendEmail = errors.New("failed to send email")
)
