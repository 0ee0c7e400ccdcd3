// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package recommender

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/playnext/internal/config"
	"github.com/tomtom215/playnext/internal/models"
)

// Provider names accepted by New (case-insensitive).
const (
	ProviderOpenRouter  = "openrouter"
	ProviderAzureOpenAI = "azureopenai"
	ProviderOpenAI      = "openai"
)

var (
	// ErrUnknownProvider is a configuration error from New.
	ErrUnknownProvider = errors.New("unknown recommender provider")

	// ErrMissingAPIKey is a configuration error from New.
	ErrMissingAPIKey = errors.New("recommender API key is not set")

	// ErrBackendUnavailable wraps transport and HTTP status failures.
	ErrBackendUnavailable = errors.New("recommendation backend unavailable")
)

// Options are per-request overrides. Empty fields fall back to the
// configured defaults.
type Options struct {
	Model        string
	SystemPrompt string
}

// Recommender is implemented by every backend.
type Recommender interface {
	// GetRecommendations returns the backend's ranked recommendations.
	GetRecommendations(ctx context.Context, candidates []models.Candidate, prompt string, opts Options) ([]models.Recommendation, models.Metrics, error)

	// PickOne asks for a single recommendation. A nil Recommendation with a
	// nil error means the backend returned none.
	PickOne(ctx context.Context, candidates []models.Candidate, prompt string, opts Options) (models.Recommendation, models.Metrics, error)

	// Name is the provider name.
	Name() string
}

// New builds the backend named by cfg.Provider.
func New(cfg *config.RecommenderConfig) (Recommender, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderOpenRouter:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: set OPENROUTER_API_KEY or recommender.api_key", ErrMissingAPIKey)
		}
		return NewOpenRouter(cfg), nil
	case ProviderAzureOpenAI:
		return newStub(ProviderAzureOpenAI), nil
	case ProviderOpenAI:
		return newStub(ProviderOpenAI), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}
