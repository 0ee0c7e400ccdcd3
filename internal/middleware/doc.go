// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package middleware holds the net/http middleware shared by every route:
//
//   - RequestID: X-Request-ID propagation plus a fresh correlation id
//   - AccessLog: one zerolog line per request
//   - PrometheusMetrics: request count, latency and in-flight gauge, labelled
//     by the chi route pattern to keep cardinality bounded
//
// All three are plain func(http.Handler) http.Handler and compose with chi.
package middleware
