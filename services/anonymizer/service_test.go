package anonymizer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/config"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/dto"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/logger"
)

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func TestAnonymize_MasksText(t *testing.T) {
	var received dto.AnonymizeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/anonymize", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"anonymized_text": "Hallo [NAME_1] aus [LOCATION_1]",
			"replacements": {
				"names": [{"[NAME_1]": "Max"}],
				"locations": [{"[LOCATION_1]": "Düsseldorf"}]
			}
		}`))
	}))
	defer server.Close()

	service := NewAnonymizerService(&config.AnonymizerConfig{URL: server.URL, TimeoutSeconds: 5}, getLogger())

	response := service.Anonymize(context.Background(), "Hallo Max aus Düsseldorf")

	assert.Equal(t, "Hallo Max aus Düsseldorf", received.Text)
	assert.Equal(t, "Hallo [NAME_1] aus [LOCATION_1]", response.AnonymizedText)
	assert.Equal(t, "Max", response.Replacements["names"][0]["[NAME_1]"])
	assert.Equal(t, "Düsseldorf", response.Replacements["locations"][0]["[LOCATION_1]"])
}

func TestAnonymize_FallsBackToOriginalTextOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	service := NewAnonymizerService(&config.AnonymizerConfig{URL: server.URL, TimeoutSeconds: 5}, getLogger())

	response := service.Anonymize(context.Background(), "Hallo Max")

	assert.Equal(t, "Hallo Max", response.AnonymizedText)
	assert.NotNil(t, response.Replacements)
	assert.Empty(t, response.Replacements)
}

func TestAnonymize_UnreachableServiceFallsBack(t *testing.T) {
	service := NewAnonymizerService(&config.AnonymizerConfig{URL: "http://127.0.0.1:1", TimeoutSeconds: 1}, getLogger())

	response := service.Anonymize(context.Background(), "Hallo Max")

	assert.Equal(t, "Hallo Max", response.AnonymizedText)
	assert.Empty(t, response.Replacements)
}

func TestAnonymize_NormalizesNilReplacements(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"anonymized_text": "Hallo"}`))
	}))
	defer server.Close()

	service := NewAnonymizerService(&config.AnonymizerConfig{URL: server.URL, TimeoutSeconds: 5}, getLogger())

	response := service.Anonymize(context.Background(), "Hallo")

	assert.NotNil(t, response.Replacements)
}
