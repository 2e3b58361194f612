package anonymizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/config"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/dto"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/interfaces"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/anonymization"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/logger"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/tracing"
)

type anonymizerService struct {
	cfg *config.AnonymizerConfig
	log logger.Logger
}

func NewAnonymizerService(cfg *config.AnonymizerConfig, log logger.Logger) interfaces.AnonymizerService {
	return &anonymizerService{
		cfg: cfg,
		log: log,
	}
}

// Anonymize calls the external masking service. Any failure degrades to a
// no-op result carrying the original text and an empty mapping: the reply can
// still be attempted unmasked, and callers that require masking check for the
// empty mapping themselves.
func (s *anonymizerService) Anonymize(ctx context.Context, text string) *dto.AnonymizeResponse {
	span, ctx := opentracing.StartSpanFromContext(ctx, "anonymizerService.Anonymize")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	response, err := s.callAnonymizeEndpoint(ctx, text)
	if err != nil {
		tracing.TraceErr(span, err)
		s.log.Warnf("Error anonymizing text, falling back to original: %v", err)
		return &dto.AnonymizeResponse{
			AnonymizedText: text,
			Replacements:   anonymization.Replacements{},
		}
	}

	if response.Replacements == nil {
		response.Replacements = anonymization.Replacements{}
	}

	return response
}

func (s *anonymizerService) callAnonymizeEndpoint(ctx context.Context, text string) (*dto.AnonymizeResponse, error) {
	payload, err := json.Marshal(dto.AnonymizeRequest{Text: text})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal payload")
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.cfg.URL+"/anonymize", bytes.NewBuffer(payload))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{
		Timeout: time.Duration(s.cfg.TimeoutSeconds) * time.Second,
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("request failed with status code %d: %s", resp.StatusCode, string(body))
	}

	var response dto.AnonymizeResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal response")
	}

	return &response, nil
}
