// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package recommender

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/playnext/internal/config"
	"github.com/tomtom215/playnext/internal/logging"
	"github.com/tomtom215/playnext/internal/metrics"
	"github.com/tomtom215/playnext/internal/models"
)

const maxLoggedBody = 8 * 1024

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content json.RawMessage `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage map[string]interface{} `json:"usage"`
}

// errMalformed marks a 2xx response whose content could not be used.
var errMalformed = errors.New("malformed model response")

// OpenRouter calls the OpenRouter chat completions endpoint.
type OpenRouter struct {
	http         *http.Client
	endpoint     string
	apiKey       string
	defaultModel string
	promptPath   string
	logger       zerolog.Logger
}

// NewOpenRouter creates the backend. New validates the API key first.
func NewOpenRouter(cfg *config.RecommenderConfig) *OpenRouter {
	return &OpenRouter{
		http:         &http.Client{Timeout: cfg.Timeout},
		endpoint:     cfg.BaseURL,
		apiKey:       cfg.APIKey,
		defaultModel: cfg.DefaultModel,
		promptPath:   cfg.SystemPromptPath,
		logger:       logging.WithComponent("recommender"),
	}
}

// Name implements Recommender.
func (o *OpenRouter) Name() string { return ProviderOpenRouter }

// GetRecommendations implements Recommender.
func (o *OpenRouter) GetRecommendations(ctx context.Context, candidates []models.Candidate, prompt string, opts Options) ([]models.Recommendation, models.Metrics, error) {
	recs, m, err := o.recommend(ctx, "recommend", candidates, prompt, opts, false)
	if err != nil {
		return nil, m, err
	}
	return recs, m, nil
}

// PickOne implements Recommender.
func (o *OpenRouter) PickOne(ctx context.Context, candidates []models.Candidate, prompt string, opts Options) (models.Recommendation, models.Metrics, error) {
	recs, m, err := o.recommend(ctx, "pick_one", candidates, prompt, opts, true)
	if err != nil || len(recs) == 0 {
		return nil, m, err
	}
	return recs[0], m, nil
}

func (o *OpenRouter) recommend(ctx context.Context, op string, candidates []models.Candidate, prompt string, opts Options, pickOne bool) ([]models.Recommendation, models.Metrics, error) {
	userMsg, err := buildUserMessage(candidates, prompt, pickOne)
	if err != nil {
		return nil, models.Metrics{}, err
	}

	req := chatRequest{
		Model: o.model(opts),
		Messages: []chatMessage{
			{Role: "system", Content: o.systemPrompt(opts)},
			{Role: "user", Content: userMsg},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	body, elapsed, err := o.call(ctx, req)
	if err != nil {
		metrics.RecordRecommenderCall(ProviderOpenRouter, op, "error", 0)
		return nil, models.Metrics{}, err
	}

	recs, m, err := parseChatResponse(body, elapsed)
	if err != nil {
		metrics.RecordRecommenderCall(ProviderOpenRouter, op, "malformed", elapsed)
		logging.Ctx(ctx).Warn().Err(err).Str("component", "recommender").Str("operation", op).
			Str("raw_response", truncate(body)).Msg("Could not parse model response")
		return []models.Recommendation{}, m, nil
	}

	metrics.RecordRecommenderCall(ProviderOpenRouter, op, "success", elapsed)
	logging.Ctx(ctx).Info().Str("component", "recommender").Str("operation", op).Str("model", req.Model).
		Int("recommendations", len(recs)).Float64("response_time", m.ResponseTime).Msg("Model responded")
	return recs, m, nil
}

func (o *OpenRouter) model(opts Options) string {
	if opts.Model != "" {
		return opts.Model
	}
	return o.defaultModel
}

func (o *OpenRouter) systemPrompt(opts Options) string {
	if opts.SystemPrompt != "" {
		return opts.SystemPrompt
	}
	return LoadSystemPrompt(o.promptPath)
}

// call POSTs the request and returns the 2xx body and the round-trip time.
func (o *OpenRouter) call(ctx context.Context, req chatRequest) ([]byte, time.Duration, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create chat request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := o.http.Do(httpReq)
	if err != nil {
		o.logger.Error().Err(err).Str("endpoint", o.endpoint).Msg("Model request failed")
		return nil, 0, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	if err != nil {
		o.logger.Error().Err(err).Msg("Failed to read model response")
		return nil, 0, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		o.logger.Error().Int("status", resp.StatusCode).Str("body", truncate(body)).Msg("Model endpoint returned an error")
		return nil, 0, fmt.Errorf("%w: HTTP %d", ErrBackendUnavailable, resp.StatusCode)
	}
	return body, elapsed, nil
}

// parseChatResponse extracts choices[0].message.content.recommendations.
// Metrics are filled in even when parsing fails.
func parseChatResponse(body []byte, elapsed time.Duration) ([]models.Recommendation, models.Metrics, error) {
	m := models.Metrics{ResponseTime: elapsed.Seconds(), Usage: map[string]interface{}{}}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, m, fmt.Errorf("%w: envelope: %w", errMalformed, err)
	}
	if resp.Usage != nil {
		m.Usage = resp.Usage
	}
	if len(resp.Choices) == 0 {
		return nil, m, fmt.Errorf("%w: no choices", errMalformed)
	}

	var content string
	if err := json.Unmarshal(resp.Choices[0].Message.Content, &content); err != nil {
		return nil, m, fmt.Errorf("%w: content is not a string: %w", errMalformed, err)
	}

	var parsed struct {
		Recommendations []models.Recommendation `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, m, fmt.Errorf("%w: content: %w", errMalformed, err)
	}
	if parsed.Recommendations == nil {
		parsed.Recommendations = []models.Recommendation{}
	}
	return parsed.Recommendations, m, nil
}

func truncate(b []byte) string {
	if len(b) > maxLoggedBody {
		return string(b[:maxLoggedBody]) + "... (truncated)"
	}
	return string(b)
}
