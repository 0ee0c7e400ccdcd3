// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package api is the HTTP surface of Playnext, built on chi.
//
// Routes:
//
//	GET  /                                 home view (JSON)
//	GET  /health                           liveness
//	GET  /login                            redirect to Steam OpenID
//	GET  /auth/steam/callback              OpenID return point
//	GET  /logout                           clear the session
//	GET  /api/games                        top owned games with exclusion flags
//	POST /api/games/exclude                exclude a game from candidates
//	POST /api/games/include                undo an exclusion
//	POST /api/games/refresh                refetch the library, clear enrichment caches
//	POST /api/recommendations              ranked recommendations
//	POST /api/recommendations/surprise-me  a single recommendation
//	GET  /metrics                          Prometheus exposition
//	GET  /swagger/*                        OpenAPI UI
//
// Every /api route needs a session cookie and passes the Casbin policy.
// Successful responses are the bare JSON documents listed on each handler;
// failures use the APIResponse error envelope.
package api
