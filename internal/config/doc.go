// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package config loads Playnext configuration with koanf.
//
// Sources are layered, later layers overriding earlier ones:
//
//  1. Built-in defaults (defaultConfig)
//  2. An optional YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml,
//     /etc/playnext/config.yaml
//  3. Environment variables, mapped explicitly (STEAM_API_KEY -> steam.api_key)
//
// Only mapped environment variables are read. The full mapping lives in
// envTransformFunc; the commonly used ones are:
//
//	STEAM_API_KEY        Steam Web API key (required)
//	OPENROUTER_API_KEY   API key for the OpenRouter backend
//	OPENROUTER_MODEL     default model (gryphe/mythomax-l2-13b)
//	RECOMMENDER_PROVIDER openrouter | azureopenai | openai
//	SECRET_KEY           session signing secret
//	APP_URL              public base URL used for the Steam OpenID return_to
//	HTTP_PORT            listen port (8000)
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
package config
