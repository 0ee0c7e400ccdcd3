// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package authz

import (
	"net/http"

	"github.com/tomtom215/playnext/internal/auth"
	"github.com/tomtom215/playnext/internal/logging"
)

// DeniedFunc writes the response for a rejected request. status is 401,
// 403 or 500.
type DeniedFunc func(w http.ResponseWriter, r *http.Request, status int)

// Middleware enforces the policy on every request it wraps.
type Middleware struct {
	enforcer *Enforcer
	denied   DeniedFunc
}

// NewMiddleware creates the middleware. A nil denied falls back to
// http.Error with the status text.
func NewMiddleware(enforcer *Enforcer, denied DeniedFunc) *Middleware {
	if denied == nil {
		denied = func(w http.ResponseWriter, _ *http.Request, status int) {
			http.Error(w, http.StatusText(status), status)
		}
	}
	return &Middleware{enforcer: enforcer, denied: denied}
}

// Authorize checks the request path and method against the caller's role.
// Anonymous callers that are not allowed get 401, players get 403.
func (m *Middleware) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := RoleAnonymous
		player, signedIn := auth.PlayerFromContext(r.Context())
		if signedIn {
			role = RolePlayer
		}

		allowed, err := m.enforcer.Enforce(role, r.URL.Path, r.Method)
		if err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("Authorization error")
			m.denied(w, r, http.StatusInternalServerError)
			return
		}
		if allowed {
			next.ServeHTTP(w, r)
			return
		}

		if !signedIn {
			m.denied(w, r, http.StatusUnauthorized)
			return
		}
		logging.Ctx(r.Context()).Warn().Str("steam_id", player.SteamID).Str("path", r.URL.Path).
			Str("method", r.Method).Msg("Request denied by policy")
		m.denied(w, r, http.StatusForbidden)
	})
}
