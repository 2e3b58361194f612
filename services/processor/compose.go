package processor

import "fmt"

// composeReply builds the dispatched mail body for an answered complaint.
// Newlines become <br> tags at the mailbox layer.
func composeReply(complaint, reply string) string {
	return fmt.Sprintf(
		"<strong>Kategorie:</strong>\n%s\n\n<strong>Kunden Beschwerde:</strong>\n%s\n\n<strong>KI Antwort:</strong>\n%s",
		CategoryLeftBehind, complaint, reply,
	)
}
