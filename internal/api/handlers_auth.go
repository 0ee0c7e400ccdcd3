// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package api

import (
	"net/http"

	"github.com/tomtom215/playnext/internal/auth"
	"github.com/tomtom215/playnext/internal/logging"
)

const unknownPersona = "Unknown User"

// Login godoc
// @Summary Sign in with Steam
// @Description Redirects to the Steam OpenID 2.0 login page.
// @Tags auth
// @Success 302
// @Router /login [get]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.login.LoginURL(), http.StatusFound)
}

// SteamCallback godoc
// @Summary Steam OpenID return point
// @Description Verifies the assertion with Steam, starts a session and redirects home.
// @Tags auth
// @Produce json
// @Success 302
// @Failure 200 {object} map[string]string "authentication failed"
// @Router /auth/steam/callback [get]
func (h *Handler) SteamCallback(w http.ResponseWriter, r *http.Request) {
	logger := logging.Ctx(r.Context())

	steamID, err := h.login.Verify(r.Context(), r.URL.Query())
	if err != nil {
		logger.Warn().Err(err).Msg("Steam authentication failed")
		respondJSON(w, http.StatusOK, map[string]string{
			"status":  "error",
			"message": "Steam authentication failed.",
		})
		return
	}

	persona := unknownPersona
	summary, err := h.profiles.GetPlayerSummary(r.Context(), steamID)
	switch {
	case err != nil:
		logger.Warn().Err(err).Str("steam_id", steamID).Msg("Could not fetch player summary")
	case summary != nil && summary.PersonaName != "":
		persona = summary.PersonaName
	}

	if err := h.sessions.Issue(w, auth.Player{SteamID: steamID, PersonaName: persona}); err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Could not start session", err)
		return
	}

	logger.Info().Str("steam_id", steamID).Msg("Player signed in")
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout godoc
// @Summary Sign out
// @Tags auth
// @Success 302
// @Router /logout [get]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusFound)
}
