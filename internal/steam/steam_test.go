// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package steam

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/playnext/internal/config"
)

func testSteamConfig(url string) *config.SteamConfig {
	return &config.SteamConfig{
		APIKey:         "test-key",
		APIURL:         url,
		StoreURL:       url,
		OpenIDURL:      url + "/openid/login",
		Timeout:        5 * time.Second,
		StoreRateLimit: 1000,
		StoreBurst:     10,
	}
}

// ============================================================================
// Web API
// ============================================================================

func TestGetOwnedGames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/IPlayerService/GetOwnedGames/v1/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("key") != "test-key" || q.Get("steamid") != "76561198000000001" {
			t.Errorf("query = %v", q)
		}
		if q.Get("include_appinfo") != "true" || q.Get("include_played_free_games") != "true" {
			t.Errorf("appinfo flags missing: %v", q)
		}
		_, _ = w.Write([]byte(`{"response":{"game_count":2,"games":[
			{"appid":1145360,"name":"Hades","playtime_forever":1500,"img_icon_url":"abc"},
			{"appid":620,"name":"Portal 2","playtime_forever":0}]}}`))
	}))
	defer srv.Close()

	lib, err := NewClient(testSteamConfig(srv.URL)).GetOwnedGames(context.Background(), "76561198000000001")
	if err != nil {
		t.Fatalf("GetOwnedGames: %v", err)
	}
	if lib.GameCount != 2 || len(lib.Games) != 2 {
		t.Fatalf("library = %+v", lib)
	}
	if lib.Games[0].Name != "Hades" || lib.Games[0].PlaytimeForever != 1500 {
		t.Errorf("first game = %+v", lib.Games[0])
	}
}

func TestGetOwnedGamesEmptyLibrary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":{"game_count":0}}`))
	}))
	defer srv.Close()

	lib, err := NewClient(testSteamConfig(srv.URL)).GetOwnedGames(context.Background(), "1")
	if err != nil {
		t.Fatalf("GetOwnedGames: %v", err)
	}
	if lib == nil || len(lib.Games) != 0 {
		t.Errorf("library = %+v, want empty", lib)
	}
}

func TestGetOwnedGamesPrivateProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":{}}`))
	}))
	defer srv.Close()

	// A private profile reports neither games nor a count; treat as empty.
	lib, err := NewClient(testSteamConfig(srv.URL)).GetOwnedGames(context.Background(), "1")
	if err != nil || lib == nil {
		t.Fatalf("GetOwnedGames = %v, %v", lib, err)
	}
}

func TestGetOwnedGamesMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected":true}`))
	}))
	defer srv.Close()

	_, err := NewClient(testSteamConfig(srv.URL)).GetOwnedGames(context.Background(), "1")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("error = %v, want ErrMalformedResponse", err)
	}
}

func TestGetOwnedGamesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := NewClient(testSteamConfig(srv.URL)).GetOwnedGames(context.Background(), "1"); err == nil {
		t.Error("expected error for HTTP 403")
	}
}

func TestGetPlayerSummary(t *testing.T) {
	players := `{"response":{"players":[{"steamid":"1","personaname":"Gordon"}]}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("steamids") == "404" {
			_, _ = w.Write([]byte(`{"response":{"players":[]}}`))
			return
		}
		_, _ = w.Write([]byte(players))
	}))
	defer srv.Close()

	c := NewClient(testSteamConfig(srv.URL))

	p, err := c.GetPlayerSummary(context.Background(), "1")
	if err != nil || p == nil || p.PersonaName != "Gordon" {
		t.Errorf("GetPlayerSummary = %+v, %v", p, err)
	}

	p, err = c.GetPlayerSummary(context.Background(), "404")
	if err != nil || p != nil {
		t.Errorf("unknown player = %+v, %v; want nil, nil", p, err)
	}
}

// ============================================================================
// Store API
// ============================================================================

func TestGetAppDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("appids") {
		case "1145360":
			_, _ = w.Write([]byte(`{"1145360":{"success":true,"data":{
				"genres":[{"id":"1","description":"Action"},{"id":"25","description":"Adventure"}],
				"categories":[{"id":2,"description":"Single-player"}]}}}`))
		default:
			_, _ = w.Write([]byte(`{"` + r.URL.Query().Get("appids") + `":{"success":false}}`))
		}
	}))
	defer srv.Close()

	s := NewStoreClient(testSteamConfig(srv.URL))

	d, err := s.GetAppDetails(context.Background(), 1145360)
	if err != nil || d == nil {
		t.Fatalf("GetAppDetails = %v, %v", d, err)
	}
	if strings.Join(d.Genres, ",") != "Action,Adventure" {
		t.Errorf("Genres = %v", d.Genres)
	}
	if len(d.Categories) != 1 || d.Categories[0] != "Single-player" {
		t.Errorf("Categories = %v", d.Categories)
	}

	d, err = s.GetAppDetails(context.Background(), 999)
	if err != nil || d != nil {
		t.Errorf("unsuccessful lookup = %v, %v; want nil, nil", d, err)
	}
}

func TestGetAppDetailsRateLimiterHonoursContext(t *testing.T) {
	cfg := testSteamConfig("http://127.0.0.1:1")
	cfg.StoreRateLimit = 0.001
	cfg.StoreBurst = 1
	s := NewStoreClient(cfg)
	s.limiter.Allow() // drain the single token

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := s.GetAppDetails(ctx, 1); err == nil {
		t.Error("expected rate limiter error when context expires")
	}
}

// ============================================================================
// OpenID
// ============================================================================

func TestLoginURL(t *testing.T) {
	o := NewOpenID(testSteamConfig("https://steam.test"), "http://127.0.0.1:8000/")

	u, err := url.Parse(o.LoginURL())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	q := u.Query()
	if q.Get("openid.mode") != "checkid_setup" {
		t.Errorf("mode = %q", q.Get("openid.mode"))
	}
	if q.Get("openid.return_to") != "http://127.0.0.1:8000/auth/steam/callback" {
		t.Errorf("return_to = %q", q.Get("openid.return_to"))
	}
	if q.Get("openid.realm") != "http://127.0.0.1:8000" {
		t.Errorf("realm = %q", q.Get("openid.realm"))
	}
	if q.Get("openid.claimed_id") != openIDIdentifierSel {
		t.Errorf("claimed_id = %q", q.Get("openid.claimed_id"))
	}
}

func TestVerify(t *testing.T) {
	valid := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm: %v", err)
		}
		if r.PostForm.Get("openid.mode") != "check_authentication" {
			t.Errorf("mode = %q", r.PostForm.Get("openid.mode"))
		}
		if valid {
			_, _ = w.Write([]byte("ns:http://specs.openid.net/auth/2.0\nis_valid:true\n"))
		} else {
			_, _ = w.Write([]byte("ns:http://specs.openid.net/auth/2.0\nis_valid:false\n"))
		}
	}))
	defer srv.Close()

	o := NewOpenID(testSteamConfig(srv.URL), "http://127.0.0.1:8000")
	params := url.Values{}
	params.Set("openid.mode", "id_res")
	params.Set("openid.claimed_id", "https://steamcommunity.com/openid/id/76561198000000001")

	id, err := o.Verify(context.Background(), params)
	if err != nil || id != "76561198000000001" {
		t.Errorf("Verify = %q, %v", id, err)
	}
	if params.Get("openid.mode") != "id_res" {
		t.Error("Verify must not mutate the caller's params")
	}

	valid = false
	if _, err := o.Verify(context.Background(), params); !errors.Is(err, ErrOpenIDInvalid) {
		t.Errorf("error = %v, want ErrOpenIDInvalid", err)
	}
}

func TestSteamIDFromClaimedID(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"https://steamcommunity.com/openid/id/76561198000000001", "76561198000000001", false},
		{"https://evil.example/openid/id/76561198000000001", "", true},
		{"https://steamcommunity.com/openid/id/abc", "", true},
		{"https://steamcommunity.com/openid/id/", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := steamIDFromClaimedID(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("steamIDFromClaimedID(%q) = %q, %v", tt.in, got, err)
		}
	}
}
