// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package main is the entry point for the Playnext server.
//
// Playnext signs a player in with Steam, assembles their owned games with
// store metadata and HowLongToBeat estimates, and asks a language model
// which of them to play next.
//
// # Startup
//
//  1. Configuration: defaults, optional config.yaml, environment (Koanf v2)
//  2. Logging: zerolog, level and format from LOG_LEVEL and LOG_FORMAT
//  3. Storage: badger database holding per-player exclusions
//  4. Upstream clients: Steam Web API, Steam Store, Steam OpenID, HLTB
//  5. Recommender: provider selected by RECOMMENDER_PROVIDER
//  6. HTTP: chi router with sessions, casbin authorization, rate limiting
//  7. Supervision: suture tree running the HTTP server and badger GC
//
// # Required environment
//
//	STEAM_API_KEY       Steam Web API key
//	OPENROUTER_API_KEY  key for the default openrouter provider
//	SECRET_KEY          session signing secret (random per process if empty)
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
// in-flight requests for up to ten seconds and the badger database is
// closed after the tree stops.
package main
