// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/playnext/internal/config"
)

func newTestManager(t *testing.T, secret string) *SessionManager {
	t.Helper()
	m, err := NewSessionManager(&config.SecurityConfig{SessionSecret: secret, SessionTTL: time.Hour})
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}
	return m
}

func issuedCookie(t *testing.T, m *SessionManager, p Player) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := m.Issue(rec, p); err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName {
		t.Fatalf("cookies = %v, want one %s", cookies, CookieName)
	}
	return cookies[0]
}

// ============================================================================
// Issue / Parse
// ============================================================================

func TestIssueAndParse(t *testing.T) {
	m := newTestManager(t, "test-secret-key-that-is-long-enough")
	want := Player{SteamID: "76561197960287930", PersonaName: "gabe"}

	c := issuedCookie(t, m, want)
	if !c.HttpOnly {
		t.Error("cookie should be HttpOnly")
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v, want Lax", c.SameSite)
	}

	got, err := m.Parse(c.Value)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got != want {
		t.Errorf("Parse() = %+v, want %+v", got, want)
	}
}

func TestParseRejects(t *testing.T) {
	m := newTestManager(t, "secret-one")
	other := newTestManager(t, "secret-two")
	p := Player{SteamID: "76561197960287930"}

	foreign := issuedCookie(t, other, p).Value

	expiredMgr := newTestManager(t, "secret-one")
	expiredMgr.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired := issuedCookie(t, expiredMgr, p).Value

	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{SteamID: "1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"wrong secret", foreign},
		{"expired", expired},
		{"alg none", none},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Parse(tt.token); !errors.Is(err, ErrInvalidSession) {
				t.Errorf("Parse() error = %v, want ErrInvalidSession", err)
			}
		})
	}
}

func TestRandomSecretWhenUnset(t *testing.T) {
	a := newTestManager(t, "")
	b := newTestManager(t, "")
	c := issuedCookie(t, a, Player{SteamID: "76561197960287930"})

	if _, err := a.Parse(c.Value); err != nil {
		t.Errorf("same manager Parse() error = %v", err)
	}
	if _, err := b.Parse(c.Value); err == nil {
		t.Error("separate random secrets should not accept each other's tokens")
	}
}

// ============================================================================
// Middleware
// ============================================================================

func TestMiddleware(t *testing.T) {
	m := newTestManager(t, "secret")
	valid := issuedCookie(t, m, Player{SteamID: "76561197960287930", PersonaName: "gabe"})

	tests := []struct {
		name        string
		cookie      *http.Cookie
		wantPlayer  bool
		wantCleared bool
	}{
		{"no cookie", nil, false, false},
		{"valid cookie", valid, true, false},
		{"tampered cookie", &http.Cookie{Name: CookieName, Value: valid.Value + "x"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Player
			var ok bool
			h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, ok = PlayerFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/games", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if ok != tt.wantPlayer {
				t.Fatalf("player present = %v, want %v", ok, tt.wantPlayer)
			}
			if tt.wantPlayer && got.PersonaName != "gabe" {
				t.Errorf("player = %+v", got)
			}
			cleared := false
			for _, c := range rec.Result().Cookies() {
				if c.Name == CookieName && c.MaxAge < 0 {
					cleared = true
				}
			}
			if cleared != tt.wantCleared {
				t.Errorf("cookie cleared = %v, want %v", cleared, tt.wantCleared)
			}
		})
	}
}
