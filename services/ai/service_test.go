package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/config"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/dto"
	coreerrors "github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/errors"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/logger"
)

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func testConfig(url string) *config.OpenAIConfig {
	return &config.OpenAIConfig{
		URL:            url,
		ApiKey:         "test-key",
		ClassifyModel:  "gpt-4o-mini",
		GenerateModel:  "gpt-4o",
		MaxTokens:      2000,
		Temperature:    1,
		TimeoutSeconds: 5,
	}
}

func fakeCompletionServer(t *testing.T, content string, capture *chatCompletionRequest) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}

		response := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
}

func TestClassifyLeftBehind_Positive(t *testing.T) {
	var captured chatCompletionRequest
	server := fakeCompletionServer(t, "Ja", &captured)
	defer server.Close()

	service := NewAIService(testConfig(server.URL), getLogger())

	isLeftBehind, err := service.ClassifyLeftBehind(context.Background(), "Die Bahn ist ohne mich abgefahren.")

	require.NoError(t, err)
	assert.True(t, isLeftBehind)
	assert.Equal(t, "gpt-4o-mini", captured.Model)
	assert.Equal(t, float64(0), captured.Temperature)
	require.Len(t, captured.Messages, 2)
	assert.Contains(t, captured.Messages[1].Content, "Die Bahn ist ohne mich abgefahren.")
	// The prompt carries reference complaints as few-shot examples
	assert.Contains(t, captured.Messages[1].Content, "Beispiele für Beschwerden, die in diese Kategorie fallen:")
	assert.Contains(t, captured.Messages[1].Content, "Haltestelle Bilker Kirche")
	assert.Contains(t, captured.Messages[1].Content, "Haltestelle Haan Pütt")
	assert.Contains(t, captured.Messages[1].Content, "an der Vautierstr.")
}

func TestClassifyLeftBehind_Negative(t *testing.T) {
	server := fakeCompletionServer(t, "Nein", nil)
	defer server.Close()

	service := NewAIService(testConfig(server.URL), getLogger())

	isLeftBehind, err := service.ClassifyLeftBehind(context.Background(), "Wann fährt die U75?")

	require.NoError(t, err)
	assert.False(t, isLeftBehind)
}

func TestGenerateReply_IncludesPlaceholdersAndCustomerData(t *testing.T) {
	var captured chatCompletionRequest
	server := fakeCompletionServer(t, "Sehr geehrter Herr [NAME_1], das tut uns leid.", &captured)
	defer server.Close()

	service := NewAIService(testConfig(server.URL), getLogger())

	reply, err := service.GenerateReply(context.Background(), dto.GenerateReplyRequest{
		Text:         "Hallo, ich wurde von der [LINIE_1] stehen gelassen.",
		Placeholders: []string{"[NAME_1]", "[LINIE_1]"},
		Anrede:       "Herr",
		Vorname:      "Max",
		Nachname:     "Mustermann",
	})

	require.NoError(t, err)
	assert.Equal(t, "Sehr geehrter Herr [NAME_1], das tut uns leid.", reply)
	assert.Equal(t, "gpt-4o", captured.Model)
	require.Len(t, captured.Messages, 1)

	prompt := captured.Messages[0].Content
	assert.Contains(t, prompt, "[NAME_1]")
	assert.Contains(t, prompt, "[LINIE_1]")
	assert.Contains(t, prompt, "Nachname des Kunden: Mustermann")
	assert.Contains(t, prompt, "stehen gelassen")
}

func TestGenerateReply_EmptyAnswerFails(t *testing.T) {
	server := fakeCompletionServer(t, "  ", nil)
	defer server.Close()

	service := NewAIService(testConfig(server.URL), getLogger())

	_, err := service.GenerateReply(context.Background(), dto.GenerateReplyRequest{Text: "Text"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, coreerrors.ErrEmptyAIResponse))
}

func TestChatCompletion_NoChoicesFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	service := NewAIService(testConfig(server.URL), getLogger())

	_, err := service.ClassifyLeftBehind(context.Background(), "Text")

	require.Error(t, err)
	assert.True(t, errors.Is(err, coreerrors.ErrEmptyAIResponse))
}

func TestChatCompletion_UpstreamErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": "rate limited"}`))
	}))
	defer server.Close()

	service := NewAIService(testConfig(server.URL), getLogger())

	_, err := service.ClassifyLeftBehind(context.Background(), "Text")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
