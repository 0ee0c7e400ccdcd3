// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package logging provides the process-wide zerolog logger for Playnext.
//
// The logger is configured once from main via Init and then used through the
// package-level helpers:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("steam_id", id).Msg("Library fetched")
//
// Request-scoped logging picks up the request and correlation IDs that the
// HTTP middleware stores in the context:
//
//	logging.Ctx(ctx).Warn().Err(err).Msg("Completion lookup failed")
//
// Components derive child loggers with WithComponent so every line carries a
// "component" field (dataset, recommender, steam, hltb, store).
//
// NewSlogLogger bridges zerolog to log/slog for libraries that only accept a
// *slog.Logger, such as the suture supervisor hooks.
package logging
