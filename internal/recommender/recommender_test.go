// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package recommender

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/playnext/internal/config"
	"github.com/tomtom215/playnext/internal/models"
)

// ============================================================================
// Factory
// ============================================================================

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		apiKey   string
		wantName string
		wantErr  error
	}{
		{"openrouter", "openrouter", "key", ProviderOpenRouter, nil},
		{"openrouter mixed case", "OpenRouter", "key", ProviderOpenRouter, nil},
		{"openrouter padded", "  OPENROUTER ", "key", ProviderOpenRouter, nil},
		{"openrouter without key", "openrouter", "", "", ErrMissingAPIKey},
		{"azure stub", "AzureOpenAI", "", ProviderAzureOpenAI, nil},
		{"openai stub", "openai", "", ProviderOpenAI, nil},
		{"unknown", "llamafile", "key", "", ErrUnknownProvider},
		{"empty", "", "key", "", ErrUnknownProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.RecommenderConfig{
				Provider:     tt.provider,
				APIKey:       tt.apiKey,
				DefaultModel: "m",
				BaseURL:      "http://127.0.0.1:1",
				Timeout:      time.Second,
			}
			rec, err := New(cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			if rec.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", rec.Name(), tt.wantName)
			}
		})
	}
}

// ============================================================================
// Placeholder providers
// ============================================================================

func TestStubReturnsEmpty(t *testing.T) {
	for _, name := range []string{ProviderAzureOpenAI, ProviderOpenAI} {
		t.Run(name, func(t *testing.T) {
			rec, err := New(&config.RecommenderConfig{Provider: name})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			candidates := []models.Candidate{{Name: "Portal", PlaytimeHours: 2}}
			recs, m, err := rec.GetRecommendations(context.Background(), candidates, "anything", Options{})
			if err != nil {
				t.Fatalf("GetRecommendations() error = %v", err)
			}
			if recs == nil || len(recs) != 0 {
				t.Errorf("GetRecommendations() = %v, want empty non-nil slice", recs)
			}
			if !m.IsEmpty() {
				t.Errorf("metrics = %+v, want empty", m)
			}

			one, m, err := rec.PickOne(context.Background(), candidates, "anything", Options{})
			if err != nil {
				t.Fatalf("PickOne() error = %v", err)
			}
			if one != nil {
				t.Errorf("PickOne() = %v, want nil", one)
			}
			if !m.IsEmpty() {
				t.Errorf("metrics = %+v, want empty", m)
			}
		})
	}
}
