// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package hltb looks up completion-time estimates on HowLongToBeat.
package hltb

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/playnext/internal/config"
	"github.com/tomtom215/playnext/internal/models"
	"github.com/tomtom215/playnext/internal/upstream"
)

// Client searches HowLongToBeat by game name.
type Client struct {
	http    *upstream.Client
	breaker *upstream.Breaker
	baseURL string
}

// NewClient creates a HowLongToBeat client.
func NewClient(cfg *config.HLTBConfig) *Client {
	return &Client{
		http:    upstream.NewClient("hltb", cfg.Timeout),
		breaker: upstream.NewBreaker("hltb"),
		baseURL: strings.TrimRight(cfg.URL, "/"),
	}
}

type searchRequest struct {
	SearchType    string        `json:"searchType"`
	SearchTerms   []string      `json:"searchTerms"`
	SearchPage    int           `json:"searchPage"`
	Size          int           `json:"size"`
	SearchOptions searchOptions `json:"searchOptions"`
}

type searchOptions struct {
	Games struct {
		UserID        int    `json:"userId"`
		Platform      string `json:"platform"`
		SortCategory  string `json:"sortCategory"`
		RangeCategory string `json:"rangeCategory"`
		RangeTime     struct {
			Min int `json:"min"`
			Max int `json:"max"`
		} `json:"rangeTime"`
		Gameplay struct {
			Perspective string `json:"perspective"`
			Flow        string `json:"flow"`
			Genre       string `json:"genre"`
		} `json:"gameplay"`
		Modifier string `json:"modifier"`
	} `json:"games"`
	Users struct {
		SortCategory string `json:"sortCategory"`
	} `json:"users"`
	Filter     string `json:"filter"`
	Sort       int    `json:"sort"`
	Randomizer int    `json:"randomizer"`
}

type searchResult struct {
	GameID   int    `json:"game_id"`
	GameName string `json:"game_name"`
	CompMain int    `json:"comp_main"` // seconds
	CompPlus int    `json:"comp_plus"`
	Comp100  int    `json:"comp_100"`
}

type searchResponse struct {
	Data []searchResult `json:"data"`
}

func newSearchRequest(name string) searchRequest {
	req := searchRequest{
		SearchType:  "games",
		SearchTerms: strings.Fields(name),
		SearchPage:  1,
		Size:        20,
	}
	req.SearchOptions.Games.SortCategory = "popular"
	req.SearchOptions.Games.RangeCategory = "main"
	req.SearchOptions.Users.SortCategory = "postcount"
	return req
}

// Search returns the estimate for the first search hit, or nil when the
// search finds nothing. No similarity threshold is applied.
func (c *Client) Search(ctx context.Context, name string) (*models.CompletionEstimate, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}

	headers := http.Header{}
	headers.Set("Referer", c.baseURL+"/")
	headers.Set("Origin", c.baseURL)

	return upstream.Execute(c.breaker, func() (*models.CompletionEstimate, error) {
		var resp searchResponse
		if err := c.http.PostJSON(ctx, c.baseURL+"/api/search", headers, newSearchRequest(name), &resp); err != nil {
			return nil, fmt.Errorf("hltb search %q: %w", name, err)
		}
		if len(resp.Data) == 0 {
			return nil, nil
		}
		best := resp.Data[0]
		return &models.CompletionEstimate{
			Name:          best.GameName,
			MainStory:     secondsToHours(best.CompMain),
			MainExtra:     secondsToHours(best.CompPlus),
			Completionist: secondsToHours(best.Comp100),
			URL:           c.baseURL + "/game/" + strconv.Itoa(best.GameID),
		}, nil
	})
}

func secondsToHours(s int) float64 {
	return math.Round(float64(s)/3600*100) / 100
}
