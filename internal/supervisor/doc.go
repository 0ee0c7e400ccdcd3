// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package supervisor runs the long-lived services of Playnext under a suture
// supervision tree:
//
//	playnext (root)
//	├── data-layer   badger value-log GC
//	└── api-layer    HTTP server
//
// A service that fails is restarted with backoff; lifecycle events go to the
// process logger through sutureslog.
package supervisor
