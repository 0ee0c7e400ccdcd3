// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package metrics defines the Prometheus collectors exported on /metrics.
//
// All collectors are registered on the default registry through promauto at
// package init. Callers use the Record* helpers rather than touching the
// vectors directly so label sets stay consistent.
package metrics
