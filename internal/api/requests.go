// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package api

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

const (
	maxBodyBytes       = 1 << 20
	defaultSurprisePmt = "Surprise me!"
)

// recommendationRequest is accepted as a form or as JSON.
type recommendationRequest struct {
	UserPrompt             string `json:"user_prompt" validate:"required,max=4000"`
	CustomModel            string `json:"custom_model" validate:"omitempty,max=200,modelid"`
	CustomPrompt           string `json:"custom_prompt" validate:"max=20000"`
	PlaytimeThresholdHours int    `json:"playtime_threshold_hours" validate:"gte=0,lte=100000"`
	ExcludeByHLTB          bool   `json:"exclude_by_hltb"`
}

// gameActionRequest is the body of exclude and include.
type gameActionRequest struct {
	AppID int `json:"appid" validate:"gte=1"`
}

var errBadBody = errors.New("malformed request body")

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

func decodeJSON(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %w", errBadBody, err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %w", errBadBody, err)
	}
	return nil
}

func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(maxBodyBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return fmt.Errorf("%w: %w", errBadBody, err)
	}
	return nil
}

// parseFormBool accepts the usual checkbox spellings.
func parseFormBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "false", "off", "no", "f", "n":
		return false, nil
	case "1", "true", "on", "yes", "t", "y":
		return true, nil
	}
	return false, fmt.Errorf("%w: %q is not a boolean", errBadBody, s)
}

func parseFormInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", errBadBody, s)
	}
	return n, nil
}

// decodeRecommendationRequest reads the body; defaultPrompt fills an empty
// user_prompt.
func decodeRecommendationRequest(w http.ResponseWriter, r *http.Request, defaultPrompt string) (recommendationRequest, error) {
	var req recommendationRequest
	if isJSON(r) {
		if err := decodeJSON(r, &req); err != nil {
			return req, err
		}
	} else {
		if err := parseForm(w, r); err != nil {
			return req, err
		}
		req.UserPrompt = r.PostFormValue("user_prompt")
		req.CustomModel = r.PostFormValue("custom_model")
		req.CustomPrompt = r.PostFormValue("custom_prompt")

		var err error
		if req.PlaytimeThresholdHours, err = parseFormInt(r.PostFormValue("playtime_threshold_hours")); err != nil {
			return req, err
		}
		if req.ExcludeByHLTB, err = parseFormBool(r.PostFormValue("exclude_by_hltb")); err != nil {
			return req, err
		}
	}

	req.CustomModel = strings.TrimSpace(req.CustomModel)
	if strings.TrimSpace(req.UserPrompt) == "" {
		req.UserPrompt = defaultPrompt
	}
	return req, nil
}

func decodeGameActionRequest(w http.ResponseWriter, r *http.Request) (gameActionRequest, error) {
	var req gameActionRequest
	if isJSON(r) {
		return req, decodeJSON(r, &req)
	}
	if err := parseForm(w, r); err != nil {
		return req, err
	}
	var err error
	req.AppID, err = parseFormInt(r.PostFormValue("appid"))
	return req, err
}
