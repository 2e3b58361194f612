package graph

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/config"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/dto"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/logger"
)

const testInbox = "beschwerde@example.com"

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

// newTestService bypasses the client-credentials transport so requests go
// straight to the fake Graph server.
func newTestService(serverURL string) *mailboxService {
	return &mailboxService{
		cfg: &config.GraphConfig{
			URL:            serverURL,
			InboxToProcess: testInbox,
			PageSize:       10,
		},
		log:        getLogger(),
		httpClient: http.DefaultClient,
	}
}

func TestGetUnreadEmails_FollowsPaginationAndSkipsSelfSent(t *testing.T) {
	requests := 0
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/users/"+testInbox+"/messages", r.URL.Path)

		page := dto.MessagesPage{}
		switch requests {
		case 1:
			assert.Contains(t, r.URL.RawQuery, "isRead+eq+false")
			page.Value = []dto.CrawledEmail{
				{ID: "mail-1", Subject: "Beschwerde", From: dto.EmailSender{EmailAddress: dto.EmailAddress{Address: "kunde@example.com"}}},
				{ID: "mail-2", Subject: "Re: Beschwerde", From: dto.EmailSender{EmailAddress: dto.EmailAddress{Address: "BESCHWERDE@example.com"}}},
			}
			page.NextLink = server.URL + "/users/" + testInbox + "/messages?page=2"
		case 2:
			page.Value = []dto.CrawledEmail{
				{ID: "mail-3", Subject: "Noch eine Beschwerde", From: dto.EmailSender{EmailAddress: dto.EmailAddress{Address: "anderer@example.com"}}},
			}
		}
		json.NewEncoder(w).Encode(page)
	}))
	defer server.Close()

	service := newTestService(server.URL)

	emails, err := service.GetUnreadEmails(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, requests)
	require.Len(t, emails, 2)
	assert.Equal(t, "mail-1", emails[0].ID)
	assert.Equal(t, "mail-3", emails[1].ID)
}

func TestGetUnreadEmails_UpstreamErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": "access denied"}`))
	}))
	defer server.Close()

	service := newTestService(server.URL)

	_, err := service.GetUnreadEmails(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestMarkAsRead(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/users/"+testInbox+"/messages/mail-1", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"isRead": true}`, string(body))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	service := newTestService(server.URL)

	assert.NoError(t, service.MarkAsRead(context.Background(), "mail-1"))
}

func TestSendEmail_ConvertsNewlinesAndSetsRecipients(t *testing.T) {
	var received dto.SendMailRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/"+testInbox+"/sendMail", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	service := newTestService(server.URL)

	err := service.SendEmail(
		context.Background(),
		"✅ Kategorie: Beschwerde stehen gelassen -> Test",
		"Zeile eins\nZeile zwei",
		[]string{"service@example.com"},
		[]string{"kopie@example.com"},
	)

	require.NoError(t, err)
	assert.Equal(t, "✅ Kategorie: Beschwerde stehen gelassen -> Test", received.Message.Subject)
	assert.Equal(t, "HTML", received.Message.Body.ContentType)
	assert.Equal(t, "Zeile eins<br>Zeile zwei", received.Message.Body.Content)
	require.Len(t, received.Message.ToRecipients, 1)
	assert.Equal(t, "service@example.com", received.Message.ToRecipients[0].EmailAddress.Address)
	require.Len(t, received.Message.CcRecipients, 1)
	assert.Equal(t, "kopie@example.com", received.Message.CcRecipients[0].EmailAddress.Address)
}

func TestSendEmail_FailureStatusSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	service := newTestService(server.URL)

	err := service.SendEmail(context.Background(), "Betreff", "Inhalt", []string{"a@example.com"}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}
