// Package graph talks to the Microsoft Graph API for the complaint inbox:
// crawling unread messages, marking them read and sending replies. Token
// acquisition uses the OAuth2 client-credentials flow; the oauth2 transport
// refreshes the token transparently.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/config"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/dto"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/interfaces"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/logger"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/tracing"
)

type mailboxService struct {
	cfg        *config.GraphConfig
	log        logger.Logger
	httpClient *http.Client
}

func NewMailboxService(cfg *config.GraphConfig, log logger.Logger) interfaces.MailboxService {
	creds := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", cfg.TenantID),
		Scopes:       []string{"https://graph.microsoft.com/.default"},
	}

	httpClient := creds.Client(context.Background())
	httpClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	return &mailboxService{
		cfg:        cfg,
		log:        log,
		httpClient: httpClient,
	}
}

func (s *mailboxService) GetUnreadEmails(ctx context.Context) ([]dto.CrawledEmail, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "mailboxService.GetUnreadEmails")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagInbox(span, s.cfg.InboxToProcess)

	endpoint := fmt.Sprintf(
		"%s/users/%s/messages?$filter=%s&$orderby=%s&$top=%d&$select=%s",
		s.cfg.URL,
		s.cfg.InboxToProcess,
		url.QueryEscape("isRead eq false"),
		url.QueryEscape("receivedDateTime desc"),
		s.cfg.PageSize,
		"id,subject,body,from,receivedDateTime,isRead",
	)

	var emails []dto.CrawledEmail
	totalEmails := 0

	for endpoint != "" {
		page, err := s.fetchMessagesPage(ctx, endpoint)
		if err != nil {
			tracing.TraceErr(span, err)
			return nil, err
		}

		totalEmails += len(page.Value)
		s.log.Infof("Processing email batch of %d messages", len(page.Value))

		for _, email := range page.Value {
			if strings.EqualFold(email.From.EmailAddress.Address, s.cfg.InboxToProcess) {
				s.log.Info("Skipping self-sent email")
				continue
			}
			emails = append(emails, email)
		}

		endpoint = page.NextLink
	}

	span.LogKV("totalEmails", totalEmails)
	return emails, nil
}

func (s *mailboxService) MarkAsRead(ctx context.Context, emailID string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "mailboxService.MarkAsRead")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEmail(span, emailID)

	endpoint := fmt.Sprintf("%s/users/%s/messages/%s", s.cfg.URL, s.cfg.InboxToProcess, emailID)
	payload := []byte(`{"isRead": true}`)

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewBuffer(payload))
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		err = fmt.Errorf("mark as read failed with status code %d: %s", resp.StatusCode, string(body))
		tracing.TraceErr(span, err)
		return err
	}

	return nil
}

func (s *mailboxService) SendEmail(ctx context.Context, subject, content string, toRecipients, ccRecipients []string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "mailboxService.SendEmail")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagInbox(span, s.cfg.InboxToProcess)

	emailData := dto.SendMailRequest{
		Message: dto.MailMessage{
			Subject: subject,
			Body: dto.MailBody{
				ContentType: "HTML",
				Content:     strings.ReplaceAll(content, "\n", "<br>"),
			},
			ToRecipients: toRecipientList(toRecipients),
			CcRecipients: toRecipientList(ccRecipients),
		},
	}

	payload, err := json.Marshal(emailData)
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "failed to marshal payload")
	}

	endpoint := fmt.Sprintf("%s/users/%s/sendMail", s.cfg.URL, s.cfg.InboxToProcess)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payload))
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		err = fmt.Errorf("send mail failed with status code %d: %s", resp.StatusCode, string(body))
		tracing.TraceErr(span, err)
		return err
	}

	s.log.Infof("Email sent successfully to: %s", strings.Join(toRecipients, ", "))
	return nil
}

func (s *mailboxService) fetchMessagesPage(ctx context.Context, endpoint string) (*dto.MessagesPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read response body")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("graph API returned status code %d: %s", resp.StatusCode, string(body))
	}

	var page dto.MessagesPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal response")
	}

	return &page, nil
}

func toRecipientList(addresses []string) []dto.Recipient {
	recipients := make([]dto.Recipient, 0, len(addresses))
	for _, address := range addresses {
		recipients = append(recipients, dto.Recipient{
			EmailAddress: dto.EmailAddress{Address: address},
		})
	}
	return recipients
}
