// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package models

// OwnedGame is one title in a user's Steam library.
type OwnedGame struct {
	AppID           int    `json:"appid"`
	Name            string `json:"name"`
	PlaytimeForever int    `json:"playtime_forever"` // minutes
	PlaytimeTwoWeek int    `json:"playtime_2weeks,omitempty"`
	ImgIconURL      string `json:"img_icon_url,omitempty"`
	RTimeLastPlayed int64  `json:"rtime_last_played,omitempty"`
}

// PlaytimeHours converts lifetime playtime to hours.
func (g OwnedGame) PlaytimeHours() float64 {
	return float64(g.PlaytimeForever) / 60
}

// Library is a user's owned games as returned by one catalog fetch.
type Library struct {
	GameCount int         `json:"game_count"`
	Games     []OwnedGame `json:"games"`
}

// LibraryGame is an owned game annotated for the library listing.
type LibraryGame struct {
	OwnedGame
	IsExcluded bool `json:"is_excluded"`
}

// GameDetail is store metadata for one app. Both lists are always set
// together.
type GameDetail struct {
	Genres     []string `json:"genres"`
	Categories []string `json:"categories"`
}

// CompletionEstimate is a HowLongToBeat entry. Hours are rounded to two
// decimals; zero means unknown.
type CompletionEstimate struct {
	Name          string  `json:"name"`
	MainStory     float64 `json:"main_story"`
	MainExtra     float64 `json:"main_extra"`
	Completionist float64 `json:"completionist"`
	URL           string  `json:"url"`
}

// PlayerSummary is the subset of ISteamUser/GetPlayerSummaries we use.
type PlayerSummary struct {
	SteamID     string `json:"steamid"`
	PersonaName string `json:"personaname"`
	AvatarURL   string `json:"avatarfull,omitempty"`
}
