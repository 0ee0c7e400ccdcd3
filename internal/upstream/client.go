// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/playnext/internal/metrics"
)

const maxErrorBodySize = 64 * 1024

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned HTTP %d: %s", e.Provider, e.StatusCode, e.Body)
}

// Client performs JSON requests against one external service.
type Client struct {
	provider       string
	http           *http.Client
	userAgent      string
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewClient creates a client. provider labels errors and metrics.
func NewClient(provider string, timeout time.Duration) *Client {
	return &Client{
		provider:       provider,
		http:           &http.Client{Timeout: timeout},
		userAgent:      "playnext/1.0",
		maxRetries:     3,
		retryBaseDelay: time.Second,
	}
}

// WithRetry overrides the 429 retry policy. Tests use a zero delay.
func (c *Client) WithRetry(maxRetries int, baseDelay time.Duration) *Client {
	c.maxRetries = maxRetries
	c.retryBaseDelay = baseDelay
	return c
}

// Provider returns the label passed to NewClient.
func (c *Client) Provider() string {
	return c.provider
}

// GetJSON issues a GET and decodes a 2xx JSON body into out.
func (c *Client) GetJSON(ctx context.Context, url string, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, url, nil, nil, out)
}

// PostJSON marshals body, POSTs it with extra headers and decodes a 2xx
// JSON response into out.
func (c *Client) PostJSON(ctx context.Context, url string, headers http.Header, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", c.provider, err)
	}
	h := headers.Clone()
	if h == nil {
		h = http.Header{}
	}
	h.Set("Content-Type", "application/json")
	return c.doJSON(ctx, http.MethodPost, url, h, payload, out)
}

// PostForm POSTs an urlencoded form and returns the raw 2xx body.
func (c *Client) PostForm(ctx context.Context, url string, form []byte) ([]byte, error) {
	h := http.Header{}
	h.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.do(ctx, http.MethodPost, url, h, form)
	if err != nil {
		metrics.RecordUpstream(c.provider, "error", time.Since(start))
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := c.checkStatus(resp); err != nil {
		metrics.RecordUpstream(c.provider, "error", time.Since(start))
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordUpstream(c.provider, "error", time.Since(start))
		return nil, fmt.Errorf("failed to read %s response: %w", c.provider, err)
	}
	metrics.RecordUpstream(c.provider, "success", time.Since(start))
	return body, nil
}

func (c *Client) doJSON(ctx context.Context, method, url string, headers http.Header, body []byte, out interface{}) error {
	start := time.Now()
	resp, err := c.do(ctx, method, url, headers, body)
	if err != nil {
		metrics.RecordUpstream(c.provider, "error", time.Since(start))
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := c.checkStatus(resp); err != nil {
		metrics.RecordUpstream(c.provider, "error", time.Since(start))
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.RecordUpstream(c.provider, "error", time.Since(start))
		return fmt.Errorf("failed to decode %s response: %w", c.provider, err)
	}
	metrics.RecordUpstream(c.provider, "success", time.Since(start))
	return nil
}

// do sends the request, retrying with exponential backoff while the server
// answers 429. Retry-After (in seconds) takes precedence over the backoff.
func (c *Client) do(ctx context.Context, method, url string, headers http.Header, body []byte) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var reader io.Reader = http.NoBody
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s request: %w", c.provider, err)
		}
		for k, vs := range headers {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s request failed: %w", c.provider, err)
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		_ = resp.Body.Close()
		if attempt >= c.maxRetries {
			return nil, &StatusError{
				Provider:   c.provider,
				StatusCode: http.StatusTooManyRequests,
				Body:       fmt.Sprintf("rate limit exceeded after %d retries", c.maxRetries),
			}
		}

		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
		if s, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && s >= 0 {
			delay = time.Duration(s) * time.Second
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &StatusError{
		Provider:   c.provider,
		StatusCode: resp.StatusCode,
		Body:       string(readBodyForError(resp.Body)),
	}
}

func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
