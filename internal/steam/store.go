// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package steam

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/tomtom215/playnext/internal/config"
	"github.com/tomtom215/playnext/internal/models"
	"github.com/tomtom215/playnext/internal/upstream"
)

// StoreClient calls the public Steam store API.
type StoreClient struct {
	http    *upstream.Client
	breaker *upstream.Breaker
	limiter *rate.Limiter
	baseURL string
}

// NewStoreClient creates a throttled store client.
func NewStoreClient(cfg *config.SteamConfig) *StoreClient {
	return &StoreClient{
		http:    upstream.NewClient("steam_store", cfg.Timeout),
		breaker: upstream.NewBreaker("steam-store"),
		limiter: rate.NewLimiter(rate.Limit(cfg.StoreRateLimit), cfg.StoreBurst),
		baseURL: strings.TrimRight(cfg.StoreURL, "/"),
	}
}

type descriptionList []struct {
	Description string `json:"description"`
}

func (d descriptionList) strings() []string {
	out := make([]string, 0, len(d))
	for _, item := range d {
		out = append(out, item.Description)
	}
	return out
}

type appDetailsEntry struct {
	Success bool `json:"success"`
	Data    *struct {
		Genres     descriptionList `json:"genres"`
		Categories descriptionList `json:"categories"`
	} `json:"data"`
}

// GetAppDetails returns genres and categories for appID, or nil when the
// store has no public page for it.
func (s *StoreClient) GetAppDetails(ctx context.Context, appID int) (*models.GameDetail, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("store rate limiter: %w", err)
	}

	id := strconv.Itoa(appID)
	endpoint := s.baseURL + "/api/appdetails?appids=" + id

	return upstream.Execute(s.breaker, func() (*models.GameDetail, error) {
		var resp map[string]appDetailsEntry
		if err := s.http.GetJSON(ctx, endpoint, &resp); err != nil {
			return nil, fmt.Errorf("failed to fetch app details for %d: %w", appID, err)
		}
		entry, ok := resp[id]
		if !ok || !entry.Success || entry.Data == nil {
			return nil, nil
		}
		return &models.GameDetail{
			Genres:     entry.Data.Genres.strings(),
			Categories: entry.Data.Categories.strings(),
		}, nil
	})
}
