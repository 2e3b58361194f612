package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/config"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/dto"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/interfaces"
	coreerrors "github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/errors"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/logger"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/tracing"
)

type aiService struct {
	cfg *config.OpenAIConfig
	log logger.Logger
}

func NewAIService(cfg *config.OpenAIConfig, log logger.Logger) interfaces.AIService {
	return &aiService{
		cfg: cfg,
		log: log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *aiService) ClassifyLeftBehind(ctx context.Context, text string) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "aiService.ClassifyLeftBehind")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	answer, err := s.chatCompletion(ctx, chatCompletionRequest{
		Model: s.cfg.ClassifyModel,
		Messages: []chatMessage{
			{Role: "system", Content: classifySystemPrompt},
			{Role: "user", Content: buildClassifyPrompt(text)},
		},
		Temperature: 0,
		MaxTokens:   1500,
	})
	if err != nil {
		tracing.TraceErr(span, err)
		return false, err
	}

	isLeftBehind := strings.Contains(strings.ToLower(answer), "ja")
	span.LogKV("classification", answer)
	s.log.Infof("Classification result: %s", answer)

	return isLeftBehind, nil
}

func (s *aiService) GenerateReply(ctx context.Context, request dto.GenerateReplyRequest) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "aiService.GenerateReply")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.LogObjectAsJson(span, "placeholders", request.Placeholders)

	answer, err := s.chatCompletion(ctx, chatCompletionRequest{
		Model: s.cfg.GenerateModel,
		Messages: []chatMessage{
			{Role: "user", Content: buildReplyPrompt(request)},
		},
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}

	if strings.TrimSpace(answer) == "" {
		tracing.TraceErr(span, coreerrors.ErrEmptyAIResponse)
		return "", coreerrors.ErrEmptyAIResponse
	}

	return answer, nil
}

func (s *aiService) chatCompletion(ctx context.Context, completionRequest chatCompletionRequest) (string, error) {
	payload, err := json.Marshal(completionRequest)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal payload")
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.cfg.URL+"/chat/completions", bytes.NewBuffer(payload))
	if err != nil {
		return "", errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.ApiKey)

	client := &http.Client{
		Timeout: time.Duration(s.cfg.TimeoutSeconds) * time.Second,
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "unable to read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("request failed with status code %d: %s", resp.StatusCode, string(body))
	}

	var response chatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal response")
	}

	if len(response.Choices) == 0 {
		return "", coreerrors.ErrEmptyAIResponse
	}

	return response.Choices[0].Message.Content, nil
}
