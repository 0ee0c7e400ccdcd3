// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package models

import "github.com/goccy/go-json"

// Candidate is the sanitized per-game record sent to a recommendation
// backend. Completion is nil when no estimate is known; Genres and
// Categories are empty (never nil) when store details are missing.
type Candidate struct {
	Name          string              `json:"name"`
	PlaytimeHours float64             `json:"playtime_hours"`
	Completion    *CompletionEstimate `json:"completion_estimate"`
	Genres        []string            `json:"genres"`
	Categories    []string            `json:"categories"`
}

// Recommendation is one item produced by a backend. Its fields are whatever
// the model returned; the system prompt asks for at least a title.
type Recommendation map[string]interface{}

// Title returns the best-effort display title of the recommendation.
func (r Recommendation) Title() string {
	for _, key := range []string{"title", "name", "game"} {
		if s, ok := r[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Metrics describes one backend call. The zero value is the empty metrics
// reported by backends that did not call anything.
type Metrics struct {
	ResponseTime float64                `json:"response_time"` // seconds
	Usage        map[string]interface{} `json:"usage"`
}

// IsEmpty reports whether m carries no measurements.
func (m Metrics) IsEmpty() bool {
	return m.ResponseTime == 0 && m.Usage == nil
}

// MarshalJSON renders empty metrics as {} and otherwise always includes
// usage, defaulting to an empty object.
func (m Metrics) MarshalJSON() ([]byte, error) {
	if m.IsEmpty() {
		return []byte("{}"), nil
	}
	type plain Metrics
	p := plain(m)
	if p.Usage == nil {
		p.Usage = map[string]interface{}{}
	}
	return json.Marshal(p)
}
