package dto

// GenerateMessageRequest is the interactive API input: one raw complaint
// text plus optional customer fields for the salutation.
type GenerateMessageRequest struct {
	Text     string `json:"text"`
	Anrede   string `json:"anrede"`
	Vorname  string `json:"vorname"`
	Nachname string `json:"nachname"`
}

// ProcessReport summarizes one inbox polling pass.
type ProcessReport struct {
	TotalEmails  int    `json:"totalEmails"`
	Answered     int    `json:"answered"`
	Forwarded    int    `json:"forwarded"`
	Failed       int    `json:"failed"`
	AnalysisFile string `json:"analysisFile,omitempty"`
}
