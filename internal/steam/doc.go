// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package steam talks to Steam: the Web API (owned games, player
// summaries), the public store API (genres and categories per app) and
// Steam's OpenID 2.0 login endpoint.
//
// Web API and store calls go through separate circuit breakers. Store calls
// are additionally throttled client-side because the store API is shared by
// every signed-in user and bans aggressive clients.
package steam
