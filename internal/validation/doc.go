// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package validation validates decoded API requests with
// go-playground/validator v10.
//
// One validator instance is shared process-wide. Field names in messages are
// taken from the json tag so clients see the names they sent:
//
//	type excludeRequest struct {
//	    AppID int `json:"appid" validate:"required,gt=0"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	}
//
// Custom tags:
//
//	steamid   a 17 digit SteamID64
//	modelid   a provider/model identifier such as "gryphe/mythomax-l2-13b"
package validation
