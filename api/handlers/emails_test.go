package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/dto"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/extraction"
)

type fakeProcessor struct {
	report      *dto.ProcessReport
	message     *dto.GeneratedMessage
	err         error
	lastRequest dto.GenerateMessageRequest
}

func (f *fakeProcessor) ProcessUnread(ctx context.Context) (*dto.ProcessReport, error) {
	return f.report, f.err
}

func (f *fakeProcessor) GenerateMessage(ctx context.Context, request dto.GenerateMessageRequest) (*dto.GeneratedMessage, error) {
	f.lastRequest = request
	return f.message, f.err
}

func TestProcessEmails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	processor := &fakeProcessor{report: &dto.ProcessReport{TotalEmails: 3, Answered: 2, Forwarded: 1}}

	r := gin.New()
	r.POST("/v1/emails/process", ProcessEmails(processor))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/emails/process", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var report dto.ProcessReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 3, report.TotalEmails)
	assert.Equal(t, 2, report.Answered)
}

func TestProcessEmails_Failure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	processor := &fakeProcessor{err: errors.New("crawl failed")}

	r := gin.New()
	r.POST("/v1/emails/process", ProcessEmails(processor))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/emails/process", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestClassifyEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/emails/classify", ClassifyEmail())

	payload := map[string]string{"html": `<html><body>
<p>Eure Nachricht an uns</p>
<p>Ich wurde stehen gelassen.</p>
<p>Dokumenten-Upload</p>
</body></html>`}
	body, _ := json.Marshal(payload)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/emails/classify", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var fields extraction.EmailFields
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fields))
	assert.Equal(t, "websiteComplaintForm", fields.Template)
	assert.Equal(t, "Ich wurde stehen gelassen.", fields.Message)
}

func TestClassifyEmail_UnknownTemplateStillReturnsMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/emails/classify", ClassifyEmail())

	body, _ := json.Marshal(map[string]string{"html": "<p>Freier Text</p>"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/emails/classify", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var fields extraction.EmailFields
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fields))
	assert.Empty(t, fields.Template)
	assert.Equal(t, "Freier Text", fields.Message)
}

func TestClassifyEmail_MissingBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/emails/classify", ClassifyEmail())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/emails/classify", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	processor := &fakeProcessor{message: &dto.GeneratedMessage{
		FinalResponse: "Sehr geehrte Frau Musterfrau, das tut uns leid.",
		IsLeftBehind:  true,
	}}

	r := gin.New()
	r.POST("/v1/messages/generate", GenerateMessage(processor))

	body, _ := json.Marshal(dto.GenerateMessageRequest{
		Text:     "Ich wurde stehen gelassen.",
		Anrede:   "Frau",
		Nachname: "Musterfrau",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/messages/generate", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Musterfrau", processor.lastRequest.Nachname)

	var message dto.GeneratedMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &message))
	assert.True(t, message.IsLeftBehind)
	assert.Equal(t, "Sehr geehrte Frau Musterfrau, das tut uns leid.", message.FinalResponse)
}

func TestGenerateMessage_EmptyText(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/messages/generate", GenerateMessage(&fakeProcessor{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/messages/generate", strings.NewReader(`{"text": ""}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
