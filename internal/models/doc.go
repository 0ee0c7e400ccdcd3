// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package models holds the data types shared between the upstream clients,
// the dataset assembler, the recommendation backends and the HTTP layer.
//
// JSON tags follow the wire formats: OwnedGame mirrors the Steam Web API
// payload, while Candidate is the sanitized shape sent to the model.
package models
