// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package recommender

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/playnext/internal/logging"
	"github.com/tomtom215/playnext/internal/models"
)

// FallbackSystemPrompt is used when the prompt file cannot be read.
const FallbackSystemPrompt = "You are a helpful game recommender."

const pickOneSuffix = " Please recommend only one game."

// LoadSystemPrompt reads the system prompt from path. The file is read on
// every call so edits apply without a restart.
func LoadSystemPrompt(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		logging.Error().Err(err).Str("path", path).Msg("System prompt file not readable, using fallback")
		return FallbackSystemPrompt
	}
	return string(b)
}

// buildUserMessage embeds the serialized candidates ahead of the prompt.
func buildUserMessage(candidates []models.Candidate, prompt string, pickOne bool) (string, error) {
	if candidates == nil {
		candidates = []models.Candidate{}
	}
	data, err := json.Marshal(candidates)
	if err != nil {
		return "", fmt.Errorf("failed to encode candidates: %w", err)
	}
	msg := fmt.Sprintf("My game library data: %s. %s", data, prompt)
	if pickOne {
		msg += pickOneSuffix
	}
	return msg, nil
}
