// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package main

// General API information for swag.
//
// @title Playnext API
// @version 1.0
// @description Personalized "what should I play next" recommendations for a Steam library.
// @description
// @description Sign in through `/login` (Steam OpenID). The session is carried in the
// @description HTTP-only `playnext_session` cookie and every `/api` route requires it.
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /
//
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name playnext_session
