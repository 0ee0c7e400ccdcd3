// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/playnext/internal/auth"
	"github.com/tomtom215/playnext/internal/dataset"
	"github.com/tomtom215/playnext/internal/models"
	"github.com/tomtom215/playnext/internal/store"
	"github.com/tomtom215/playnext/internal/validation"
)

// GamesResponse is the body of GET /api/games.
type GamesResponse struct {
	Games []models.LibraryGame `json:"games"`
}

// GameActionResponse is the body of exclude and include.
type GameActionResponse struct {
	Status string `json:"status"`
	AppID  int    `json:"appid"`
	Action string `json:"action"`
}

// StatusResponse is a generic success body.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ListGames godoc
// @Summary Owned games
// @Description The player's most played games, each flagged with is_excluded.
// @Tags games
// @Produce json
// @Success 200 {object} GamesResponse
// @Failure 401 {object} APIResponse
// @Failure 503 {object} APIResponse
// @Router /api/games [get]
func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	player, ok := h.requirePlayer(w, r)
	if !ok {
		return
	}

	games, err := h.games.ListGames(r.Context(), player.SteamID, dataset.ListingLimit)
	if err != nil {
		h.respondDatasetError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, GamesResponse{Games: games})
}

// ExcludeGame godoc
// @Summary Exclude a game
// @Description Excluded games are never sent to the recommender. Idempotent.
// @Tags games
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param appid body int true "Steam app id"
// @Success 200 {object} GameActionResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/games/exclude [post]
func (h *Handler) ExcludeGame(w http.ResponseWriter, r *http.Request) {
	h.gameAction(w, r, "excluded", h.exclusions.Add)
}

// IncludeGame godoc
// @Summary Undo an exclusion
// @Tags games
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param appid body int true "Steam app id"
// @Success 200 {object} GameActionResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/games/include [post]
func (h *Handler) IncludeGame(w http.ResponseWriter, r *http.Request) {
	h.gameAction(w, r, "included", h.exclusions.Remove)
}

type exclusionOp func(ctx context.Context, steamID string, appID int) error

func (h *Handler) gameAction(w http.ResponseWriter, r *http.Request, action string, op exclusionOp) {
	player, ok := h.requirePlayer(w, r)
	if !ok {
		return
	}

	req, err := decodeGameActionRequest(w, r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Invalid request body", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidation(w, r, verr)
		return
	}

	if err := op(r.Context(), player.SteamID, req.AppID); err != nil {
		if errors.Is(err, store.ErrInvalidEntry) {
			respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Invalid game", err)
			return
		}
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Could not update exclusions", err)
		return
	}

	respondJSON(w, http.StatusOK, GameActionResponse{Status: "success", AppID: req.AppID, Action: action})
}

// RefreshGames godoc
// @Summary Refresh the library
// @Description Drops the cached library, clears the completion and detail caches, and refetches from Steam.
// @Tags games
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 401 {object} APIResponse
// @Failure 503 {object} APIResponse
// @Router /api/games/refresh [post]
func (h *Handler) RefreshGames(w http.ResponseWriter, r *http.Request) {
	player, ok := h.requirePlayer(w, r)
	if !ok {
		return
	}

	if _, err := h.games.Refresh(r.Context(), player.SteamID); err != nil {
		h.respondDatasetError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, StatusResponse{
		Status:  "success",
		Message: "Game list refreshed and cache updated.",
	})
}

// requirePlayer returns the session player. The authz middleware already
// rejects anonymous requests; this guards handlers mounted without it.
func (h *Handler) requirePlayer(w http.ResponseWriter, r *http.Request) (auth.Player, bool) {
	player, ok := auth.PlayerFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "Not authenticated", nil)
	}
	return player, ok
}

func (h *Handler) respondDatasetError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, dataset.ErrUpstreamUnavailable) {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Could not fetch games from Steam API", err)
		return
	}
	respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Could not load game library", err)
}

func respondValidation(w http.ResponseWriter, r *http.Request, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	respondErrorWithDetails(w, r, http.StatusBadRequest, ErrCodeValidationFailed, apiErr.Message, apiErr.Details, nil)
}
