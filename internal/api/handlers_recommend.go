// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/playnext/internal/models"
	"github.com/tomtom215/playnext/internal/recommender"
	"github.com/tomtom215/playnext/internal/validation"
)

// RecommendationsResponse is the body of POST /api/recommendations.
type RecommendationsResponse struct {
	Recommendations []models.Recommendation `json:"recommendations"`
	Metrics         models.Metrics          `json:"metrics"`
}

// SurpriseResponse is the body of POST /api/recommendations/surprise-me.
// Recommendation is null when the model suggested nothing.
type SurpriseResponse struct {
	Recommendation models.Recommendation `json:"recommendation"`
	Metrics        models.Metrics        `json:"metrics"`
}

// Recommendations godoc
// @Summary Recommend games
// @Description Builds up to ten candidates from the library and asks the model to rank them.
// @Tags recommendations
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param user_prompt formData string true "What the player is in the mood for"
// @Param custom_model formData string false "Model override"
// @Param custom_prompt formData string false "System prompt override"
// @Param playtime_threshold_hours formData int false "Skip games played longer than this"
// @Param exclude_by_hltb formData bool false "Skip games played past their main story time"
// @Success 200 {object} RecommendationsResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 503 {object} APIResponse
// @Router /api/recommendations [post]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	candidates, req, ok := h.prepareCandidates(w, r, "")
	if !ok {
		return
	}

	recs, metrics, err := h.recommender.GetRecommendations(r.Context(), candidates, req.UserPrompt, optionsFor(req))
	if err != nil {
		h.respondRecommenderError(w, r, err)
		return
	}
	if recs == nil {
		recs = []models.Recommendation{}
	}
	respondJSON(w, http.StatusOK, RecommendationsResponse{Recommendations: recs, Metrics: metrics})
}

// SurpriseMe godoc
// @Summary Pick one game
// @Description Like /api/recommendations but asks for a single game. user_prompt defaults to "Surprise me!".
// @Tags recommendations
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param user_prompt formData string false "Prompt" default(Surprise me!)
// @Param custom_model formData string false "Model override"
// @Param custom_prompt formData string false "System prompt override"
// @Param playtime_threshold_hours formData int false "Skip games played longer than this"
// @Param exclude_by_hltb formData bool false "Skip games played past their main story time"
// @Success 200 {object} SurpriseResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 503 {object} APIResponse
// @Router /api/recommendations/surprise-me [post]
func (h *Handler) SurpriseMe(w http.ResponseWriter, r *http.Request) {
	candidates, req, ok := h.prepareCandidates(w, r, defaultSurprisePmt)
	if !ok {
		return
	}

	rec, metrics, err := h.recommender.PickOne(r.Context(), candidates, req.UserPrompt, optionsFor(req))
	if err != nil {
		h.respondRecommenderError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, SurpriseResponse{Recommendation: rec, Metrics: metrics})
}

// prepareCandidates decodes and validates the request and builds the
// candidate list. It writes the error response itself when ok is false.
func (h *Handler) prepareCandidates(w http.ResponseWriter, r *http.Request, defaultPrompt string) ([]models.Candidate, recommendationRequest, bool) {
	player, ok := h.requirePlayer(w, r)
	if !ok {
		return nil, recommendationRequest{}, false
	}

	req, err := decodeRecommendationRequest(w, r, defaultPrompt)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Invalid request body", err)
		return nil, req, false
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidation(w, r, verr)
		return nil, req, false
	}

	candidates, err := h.games.BuildCandidates(r.Context(), player.SteamID, req.ExcludeByHLTB, req.PlaytimeThresholdHours)
	if err != nil {
		h.respondDatasetError(w, r, err)
		return nil, req, false
	}
	return candidates, req, true
}

func optionsFor(req recommendationRequest) recommender.Options {
	return recommender.Options{Model: req.CustomModel, SystemPrompt: req.CustomPrompt}
}

func (h *Handler) respondRecommenderError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, recommender.ErrBackendUnavailable) {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Recommendation service unavailable", err)
		return
	}
	respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Could not get recommendations", err)
}
