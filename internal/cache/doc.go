// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package cache provides the in-process memo tables used by the dataset
// assembler.
//
// A Table maps keys to values stamped with the time they were stored. A value
// is returned only while it is younger than the table TTL; older entries stay
// in memory untouched until they are overwritten, deleted or cleared. There is
// no size bound, no LRU policy and no background sweeper: the working set is
// one library per signed-in user plus the completion and store lookups for at
// most ten games per request.
//
// Tables bundles the three tables Playnext needs. Keeping them separate means
// a game name can never collide with a user ID or an app ID.
//
//	tables := cache.NewTables(time.Hour)
//	if lib, ok := tables.Library.Get(steamID); ok {
//	    return lib, nil
//	}
package cache
