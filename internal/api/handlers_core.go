// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package api

import (
	"net/http"

	"github.com/tomtom215/playnext/internal/auth"
	"github.com/tomtom215/playnext/internal/recommender"
)

const lastRefreshedLayout = "2006-01-02 15:04:05"

// HomeView is the document served at /.
type HomeView struct {
	User          *auth.Player `json:"user"`
	DefaultModel  string       `json:"default_model"`
	DefaultPrompt string       `json:"default_prompt"`
	LastRefreshed string       `json:"last_refreshed"`
}

// Home godoc
// @Summary Home view
// @Description Signed-in player, default model and system prompt, and when the library was last fetched.
// @Tags core
// @Produce json
// @Success 200 {object} HomeView
// @Router / [get]
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	view := HomeView{
		DefaultModel:  h.defaultModel,
		DefaultPrompt: recommender.LoadSystemPrompt(h.promptPath),
		LastRefreshed: "Never",
	}

	if player, ok := auth.PlayerFromContext(r.Context()); ok {
		view.User = &player
		if ts, cached := h.games.LastRefreshed(player.SteamID); cached {
			view.LastRefreshed = ts.Local().Format(lastRefreshedLayout)
		}
	}

	respondJSON(w, http.StatusOK, view)
}

// Health godoc
// @Summary Liveness probe
// @Tags core
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
