package dto

// CrawledEmail is one message as returned by the Microsoft Graph messages
// endpoint, reduced to the fields the pipeline selects.
type CrawledEmail struct {
	ID               string      `json:"id"`
	Subject          string      `json:"subject"`
	Body             EmailBody   `json:"body"`
	From             EmailSender `json:"from"`
	ReceivedDateTime string      `json:"receivedDateTime"`
	IsRead           bool        `json:"isRead"`
}

type EmailBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type EmailSender struct {
	EmailAddress EmailAddress `json:"emailAddress"`
}

type EmailAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// MessagesPage is one page of the Graph messages listing; NextLink carries
// the cursor for the following page when more unread mail exists.
type MessagesPage struct {
	Value    []CrawledEmail `json:"value"`
	NextLink string         `json:"@odata.nextLink"`
}

// SendMailRequest is the Graph sendMail payload.
type SendMailRequest struct {
	Message MailMessage `json:"message"`
}

type MailMessage struct {
	Subject      string      `json:"subject"`
	Body         MailBody    `json:"body"`
	ToRecipients []Recipient `json:"toRecipients"`
	CcRecipients []Recipient `json:"ccRecipients"`
}

type MailBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type Recipient struct {
	EmailAddress EmailAddress `json:"emailAddress"`
}
