// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package store persists per-user game exclusions in BadgerDB.
//
// Each exclusion is one key, "exclusion:<steam_id>:<appid>", so the
// (user, app) pair is unique by construction: adding twice writes the same
// key and removing an absent key is a no-op. Listing a user's exclusions is
// a prefix scan.
package store
