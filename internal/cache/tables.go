// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package cache

import (
	"time"

	"github.com/tomtom215/playnext/internal/models"
)

// Cache type labels.
const (
	LibraryCache    = "library"
	CompletionCache = "completion"
	DetailCache     = "detail"
)

// Tables groups the three memo tables.
//
// Completion stores only found estimates and Detail only found details, so a
// lookup that came back empty is retried on the next request.
type Tables struct {
	Library    *Table[string, *models.Library]            // by Steam ID
	Completion *Table[string, *models.CompletionEstimate] // by game name
	Detail     *Table[int, *models.GameDetail]            // by app ID
}

// NewTables creates the three tables with a shared TTL.
func NewTables(ttl time.Duration) *Tables {
	return &Tables{
		Library:    NewTable[string, *models.Library](LibraryCache, ttl),
		Completion: NewTable[string, *models.CompletionEstimate](CompletionCache, ttl),
		Detail:     NewTable[int, *models.GameDetail](DetailCache, ttl),
	}
}

// NewTablesWithClock is NewTables with an injectable time source.
func NewTablesWithClock(ttl time.Duration, now func() time.Time) *Tables {
	t := NewTables(ttl)
	t.Library.now = now
	t.Completion.now = now
	t.Detail.now = now
	return t
}

// ClearEnrichment empties the completion and detail tables for every user.
func (t *Tables) ClearEnrichment() {
	t.Completion.Clear()
	t.Detail.Clear()
}
