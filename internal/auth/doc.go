// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package auth keeps the signed-in Steam player in an HS256 JWT cookie.
//
// The login flow itself lives in package steam (OpenID 2.0). Once Steam
// confirms an identity the API handler calls SessionManager.Issue, and every
// later request runs through SessionManager.Middleware, which puts the
// Player into the request context when the cookie is valid. Requests without
// a valid cookie continue anonymously; package authz decides whether they
// may proceed.
package auth
