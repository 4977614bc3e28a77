// Package api is the REST gateway to the PantryPal backend: one method per
// endpoint. Every method builds a request against the configured base URL,
// attaches a bearer token when one is available, maps the snake_case JSON
// response into the client-side shapes from the models package, and returns a
// typed *Error on any non-2xx status. Nothing here retries or imposes
// timeouts; cancellation is the caller's context.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/pantrypal/pantrypal/internal/logging"
)

// TokenSource supplies the current bearer token. An empty string means the
// request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-token TokenSource, mostly for tests and one-off
// scripts.
type StaticToken string

func (s StaticToken) Token() string { return string(s) }

// Client talks to the PantryPal backend.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
	now     func() time.Time
}

type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTokenSource attaches the session's token to outgoing requests.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the request logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithClock overrides the time source used for derived freshness statuses.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New returns a Client for the backend at baseURL (scheme and host, no
// trailing slash required).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		tokens:  StaticToken(""),
		log:     logging.Discard(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// endpoint joins the base URL, path, and query string.
func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// newRequest builds a JSON request with auth and request-id headers.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do executes the request and reads the whole body. Non-2xx responses become
// a *Error carrying failMsg and the status code.
func (c *Client) do(req *http.Request, failMsg string) ([]byte, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error(req.Context(), "request failed", "method", req.Method, "url", req.URL.Path, "err", err)
		return nil, fmt.Errorf("%s: %w", failMsg, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: reading response: %w", failMsg, err)
	}

	c.log.Debug(req.Context(), "request finished",
		"method", req.Method, "url", req.URL.Path,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Message: failMsg, StatusCode: resp.StatusCode}
	}
	return body, nil
}

// call is the common JSON round trip: request, status check, decode into out
// (skipped when out is nil).
func (c *Client) call(ctx context.Context, method, path string, query url.Values, in, out any, failMsg string) error {
	req, err := c.newRequest(ctx, method, path, query, in)
	if err != nil {
		return err
	}
	body, err := c.do(req, failMsg)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", failMsg, err)
	}
	return nil
}

// userQuery builds the ?user_id= query string common to addressed endpoints.
func userQuery(userID int64) url.Values {
	return url.Values{"user_id": []string{itoa(userID)}}
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
