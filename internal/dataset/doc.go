// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package dataset turns a user's Steam library into the short, enriched
// candidate list that is sent to a recommendation backend.
//
// BuildCandidates runs the pipeline:
//
//  1. resolve the library (fresh cache entry, else the Steam Web API)
//  2. drop games the user excluded
//  3. drop games never played
//  4. drop games above the playtime cap, when one is given
//  5. sort by playtime, most played first (stable)
//  6. keep the first MaxCandidates
//  7. attach completion estimates and store genres/categories
//  8. optionally drop games already played past their main-story estimate
//  9. emit sanitized models.Candidate values
//
// Only step 1 can fail the request. Enrichment lookups that fail leave the
// corresponding fields empty.
package dataset
