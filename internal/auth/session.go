// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/playnext/internal/config"
	"github.com/tomtom215/playnext/internal/logging"
)

// CookieName is the session cookie.
const CookieName = "playnext_session"

const issuer = "playnext"

// ErrInvalidSession covers missing, expired, tampered and malformed tokens.
var ErrInvalidSession = errors.New("invalid session")

// Player is the signed-in Steam account.
type Player struct {
	SteamID     string `json:"steam_id"`
	PersonaName string `json:"persona_name,omitempty"`
}

// Claims are the JWT claims stored in the session cookie.
type Claims struct {
	SteamID     string `json:"steam_id"`
	PersonaName string `json:"persona_name,omitempty"`
	jwt.RegisteredClaims
}

type contextKey struct{}

// PlayerFromContext returns the player set by Middleware.
func PlayerFromContext(ctx context.Context) (Player, bool) {
	p, ok := ctx.Value(contextKey{}).(Player)
	return p, ok && p.SteamID != ""
}

// ContextWithPlayer stores p in ctx.
func ContextWithPlayer(ctx context.Context, p Player) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// SessionManager signs and reads session cookies.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewSessionManager builds a manager from the security settings. An empty
// secret is replaced by a random one, so sessions do not survive a restart.
func NewSessionManager(cfg *config.SecurityConfig) (*SessionManager, error) {
	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		logging.Warn().Msg("SECRET_KEY not set; using a random session secret, sessions end on restart")
	}

	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &SessionManager{
		secret: secret,
		ttl:    ttl,
		secure: cfg.CookieSecure,
		now:    time.Now,
	}, nil
}

// Issue signs a token for p and sets it as the session cookie.
func (m *SessionManager) Issue(w http.ResponseWriter, p Player) error {
	now := m.now()
	claims := &Claims{
		SteamID:     p.SteamID,
		PersonaName: p.PersonaName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   p.SteamID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		Expires:  now.Add(m.ttl),
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Parse validates a token string.
func (m *SessionManager) Parse(token string) (Player, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Player{}, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.SteamID == "" {
		return Player{}, ErrInvalidSession
	}
	return Player{SteamID: claims.SteamID, PersonaName: claims.PersonaName}, nil
}

// Clear expires the session cookie.
func (m *SessionManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Middleware attaches the Player to the request context when the session
// cookie is valid. Invalid cookies are cleared.
func (m *SessionManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		player, err := m.Parse(cookie.Value)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Discarding session cookie")
			m.Clear(w)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithPlayer(r.Context(), player)))
	})
}
