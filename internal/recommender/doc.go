// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package recommender asks a language model to rank or pick games from a
// candidate list.
//
// The backend is chosen once at startup by New from recommender.provider:
//
//	openrouter   OpenRouter chat completions (the working backend)
//	azureopenai  placeholder, returns nothing
//	openai       placeholder, returns nothing
//
// Outcomes are split by cause. A transport failure or a non-2xx answer from
// the model endpoint is returned as an error wrapping ErrBackendUnavailable.
// A 2xx answer whose content cannot be parsed is logged and reported as an
// empty result with the metrics gathered so far and a nil error.
package recommender
