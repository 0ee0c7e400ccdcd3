// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package steam

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/playnext/internal/config"
	"github.com/tomtom215/playnext/internal/upstream"
)

// OpenID 2.0 constants used by Steam.
const (
	openIDNamespace      = "http://specs.openid.net/auth/2.0"
	openIDIdentifierSel  = "http://specs.openid.net/auth/2.0/identifier_select"
	claimedIDPrefix      = "https://steamcommunity.com/openid/id/"
	CallbackPath         = "/auth/steam/callback"
	assertionValidMarker = "is_valid:true"
)

// ErrOpenIDInvalid means Steam did not confirm the assertion.
var ErrOpenIDInvalid = errors.New("steam openid: assertion not valid")

// OpenID performs the Steam OpenID 2.0 handshake.
type OpenID struct {
	http     *upstream.Client
	endpoint string
	appURL   string
}

// NewOpenID creates a handshake helper. appURL is the public base URL of
// this service.
func NewOpenID(steamCfg *config.SteamConfig, appURL string) *OpenID {
	return &OpenID{
		http:     upstream.NewClient("steam_openid", steamCfg.Timeout),
		endpoint: steamCfg.OpenIDURL,
		appURL:   strings.TrimRight(appURL, "/"),
	}
}

// LoginURL is where the browser is sent to sign in.
func (o *OpenID) LoginURL() string {
	q := url.Values{}
	q.Set("openid.ns", openIDNamespace)
	q.Set("openid.mode", "checkid_setup")
	q.Set("openid.return_to", o.appURL+CallbackPath)
	q.Set("openid.realm", o.appURL)
	q.Set("openid.identity", openIDIdentifierSel)
	q.Set("openid.claimed_id", openIDIdentifierSel)
	return o.endpoint + "?" + q.Encode()
}

// Verify replays the callback parameters to Steam with
// openid.mode=check_authentication and returns the 64-bit Steam ID from
// openid.claimed_id when Steam answers is_valid:true.
func (o *OpenID) Verify(ctx context.Context, params url.Values) (string, error) {
	steamID, err := steamIDFromClaimedID(params.Get("openid.claimed_id"))
	if err != nil {
		return "", err
	}

	check := url.Values{}
	for k, vs := range params {
		check[k] = append([]string(nil), vs...)
	}
	check.Set("openid.mode", "check_authentication")

	body, err := o.http.PostForm(ctx, o.endpoint, []byte(check.Encode()))
	if err != nil {
		return "", fmt.Errorf("openid check_authentication: %w", err)
	}
	if !bytes.Contains(body, []byte(assertionValidMarker)) {
		return "", ErrOpenIDInvalid
	}
	return steamID, nil
}

func steamIDFromClaimedID(claimed string) (string, error) {
	if !strings.HasPrefix(claimed, claimedIDPrefix) {
		return "", fmt.Errorf("%w: unexpected claimed_id %q", ErrOpenIDInvalid, claimed)
	}
	id := strings.TrimPrefix(claimed, claimedIDPrefix)
	if id == "" || strings.Trim(id, "0123456789") != "" {
		return "", fmt.Errorf("%w: unexpected claimed_id %q", ErrOpenIDInvalid, claimed)
	}
	return id, nil
}
