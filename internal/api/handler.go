// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package api

import (
	"context"
	"net/url"
	"time"

	"github.com/tomtom215/playnext/internal/auth"
	"github.com/tomtom215/playnext/internal/models"
	"github.com/tomtom215/playnext/internal/recommender"
)

// GameLibrary is the dataset side of the API, implemented by
// *dataset.Assembler.
type GameLibrary interface {
	ListGames(ctx context.Context, steamID string, limit int) ([]models.LibraryGame, error)
	Refresh(ctx context.Context, steamID string) (*models.Library, error)
	LastRefreshed(steamID string) (time.Time, bool)
	BuildCandidates(ctx context.Context, steamID string, applyCompletionFilter bool, playtimeCapHours int) ([]models.Candidate, error)
}

// ExclusionWriter is implemented by *store.ExclusionStore.
type ExclusionWriter interface {
	Add(ctx context.Context, steamID string, appID int) error
	Remove(ctx context.Context, steamID string, appID int) error
}

// SteamLogin is implemented by *steam.OpenID.
type SteamLogin interface {
	LoginURL() string
	Verify(ctx context.Context, params url.Values) (string, error)
}

// ProfileSource is implemented by *steam.Client.
type ProfileSource interface {
	GetPlayerSummary(ctx context.Context, steamID string) (*models.PlayerSummary, error)
}

// Handler holds the dependencies of every route.
type Handler struct {
	games        GameLibrary
	exclusions   ExclusionWriter
	recommender  recommender.Recommender
	login        SteamLogin
	profiles     ProfileSource
	sessions     *auth.SessionManager
	defaultModel string
	promptPath   string
}

// HandlerDeps groups the constructor arguments.
type HandlerDeps struct {
	Games        GameLibrary
	Exclusions   ExclusionWriter
	Recommender  recommender.Recommender
	Login        SteamLogin
	Profiles     ProfileSource
	Sessions     *auth.SessionManager
	DefaultModel string
	PromptPath   string
}

// NewHandler creates the handler set.
func NewHandler(d HandlerDeps) *Handler {
	return &Handler{
		games:        d.Games,
		exclusions:   d.Exclusions,
		recommender:  d.Recommender,
		login:        d.Login,
		profiles:     d.Profiles,
		sessions:     d.Sessions,
		defaultModel: d.DefaultModel,
		promptPath:   d.PromptPath,
	}
}
