// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package upstream holds the HTTP plumbing shared by the Steam and
// HowLongToBeat clients: a JSON HTTP client that backs off on HTTP 429, and a
// gobreaker circuit breaker with Prometheus state reporting.
//
// The recommendation backend does not use this package. A failed model call
// is reported to the caller as is, without retries or circuit breaking.
package upstream
