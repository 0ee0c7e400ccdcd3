// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package steam

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/playnext/internal/config"
	"github.com/tomtom215/playnext/internal/models"
	"github.com/tomtom215/playnext/internal/upstream"
)

// ErrMalformedResponse is returned when a Web API payload lacks the
// expected envelope.
var ErrMalformedResponse = errors.New("steam: malformed response")

// Client calls the Steam Web API.
type Client struct {
	http    *upstream.Client
	breaker *upstream.Breaker
	baseURL string
	apiKey  string
}

// NewClient creates a Web API client.
func NewClient(cfg *config.SteamConfig) *Client {
	return &Client{
		http:    upstream.NewClient("steam_api", cfg.Timeout),
		breaker: upstream.NewBreaker("steam-api"),
		baseURL: strings.TrimRight(cfg.APIURL, "/"),
		apiKey:  cfg.APIKey,
	}
}

type ownedGamesResponse struct {
	Response *struct {
		GameCount int                `json:"game_count"`
		Games     []models.OwnedGame `json:"games"`
	} `json:"response"`
}

// GetOwnedGames returns the user's library, free-to-play titles included.
// Steam omits "games" for empty (or private) libraries; that is reported as
// an empty library when game_count is 0 and as ErrMalformedResponse otherwise.
func (c *Client) GetOwnedGames(ctx context.Context, steamID string) (*models.Library, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("steamid", steamID)
	q.Set("include_appinfo", "true")
	q.Set("include_played_free_games", "true")
	q.Set("include_free_sub", "true")
	q.Set("language", "en")
	q.Set("format", "json")
	endpoint := c.baseURL + "/IPlayerService/GetOwnedGames/v1/?" + q.Encode()

	return upstream.Execute(c.breaker, func() (*models.Library, error) {
		var resp ownedGamesResponse
		if err := c.http.GetJSON(ctx, endpoint, &resp); err != nil {
			return nil, fmt.Errorf("failed to fetch owned games: %w", err)
		}
		if resp.Response == nil {
			return nil, fmt.Errorf("owned games: %w", ErrMalformedResponse)
		}
		if resp.Response.Games == nil {
			if resp.Response.GameCount == 0 {
				return &models.Library{GameCount: 0, Games: []models.OwnedGame{}}, nil
			}
			return nil, fmt.Errorf("owned games without game list: %w", ErrMalformedResponse)
		}
		return &models.Library{
			GameCount: resp.Response.GameCount,
			Games:     resp.Response.Games,
		}, nil
	})
}

type playerSummariesResponse struct {
	Response struct {
		Players []models.PlayerSummary `json:"players"`
	} `json:"response"`
}

// GetPlayerSummary returns the public profile for steamID, or nil when
// Steam does not know the ID.
func (c *Client) GetPlayerSummary(ctx context.Context, steamID string) (*models.PlayerSummary, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("steamids", steamID)
	q.Set("format", "json")
	endpoint := c.baseURL + "/ISteamUser/GetPlayerSummaries/v2/?" + q.Encode()

	return upstream.Execute(c.breaker, func() (*models.PlayerSummary, error) {
		var resp playerSummariesResponse
		if err := c.http.GetJSON(ctx, endpoint, &resp); err != nil {
			return nil, fmt.Errorf("failed to fetch player summary: %w", err)
		}
		if len(resp.Response.Players) == 0 {
			return nil, nil
		}
		p := resp.Response.Players[0]
		return &p, nil
	})
}
