package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/ezymarket/adminctl/internal/client/session"
	"github.com/ezymarket/adminctl/internal/logging"
)

const (
	defaultTimeout  = 10 * time.Second
	requestIDHeader = "X-Request-Id"

	// Error bodies beyond this size are not worth parsing for a message.
	maxErrorBody = 64 << 10
)

// Config holds the client's fixed configuration.
type Config struct {
	// BaseURL is the backend prefix, e.g. "http://localhost:5000/api".
	BaseURL string
	// Timeout is the per-request budget. Zero means defaultTimeout.
	Timeout time.Duration
}

// Client is the single point of outbound HTTP traffic to the backend.
// It attaches the current bearer token at send time and transparently
// refreshes it on 401 (see refresh.go).
type Client struct {
	baseURL string
	session *session.Store
	log     logging.Logger
	notices Notices

	// httpc carries normal traffic; refreshc carries only the token
	// refresh call, so a rejected refresh can never trigger another one.
	httpc    *http.Client
	refreshc *http.Client

	group singleflight.Group
}

// New builds a Client over the given session store. A nil notices sink
// discards notices.
func New(cfg Config, sess *session.Store, log logging.Logger, notices Notices) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("api: base URL is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if notices == nil {
		notices = NopNotices{}
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		session:  sess,
		log:      log,
		notices:  notices,
		httpc:    &http.Client{Timeout: cfg.Timeout},
		refreshc: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Get issues a GET for path with optional query parameters, decoding the
// response body into out (which may be nil).
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete issues a DELETE. Some endpoints expect a JSON body (member
// removal); pass nil otherwise.
func (c *Client) Delete(ctx context.Context, path string, body any) error {
	return c.do(ctx, http.MethodDelete, path, nil, body, nil)
}

// do runs one logical request: send with the current token, refresh once
// on 401, resend with the refreshed token. The one-shot retry guarantees
// a request can never loop through refresh twice.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("%s %s: encode body: %w", method, path, err)
		}
	}

	resp, err := c.send(ctx, method, path, query, payload, c.session.AccessToken())
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)

		token, err := c.refreshAccessToken(ctx)
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}

		// Resend with the token the refresh produced, not whatever the
		// store holds by now: every request parked behind one refresh
		// must go out with that refresh's token.
		resp, err = c.send(ctx, method, path, query, payload, token)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			drain(resp)
			return fmt.Errorf("%s %s: still rejected after token refresh: %w", method, path, ErrUnauthenticated)
		}
	}

	return c.handleResponse(ctx, resp, method, path, out)
}

// send performs a single HTTP attempt with the given bearer token.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte, token string) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, fmt.Errorf("%s %s: build request: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		// Transport failures (timeouts, refused connections) propagate
		// untouched; retry policy belongs to the caller.
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

// handleResponse maps the status code per the error taxonomy and decodes
// a 2xx body into out.
func (c *Client) handleResponse(ctx context.Context, resp *http.Response, method, path string, out any) error {
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		_, _ = io.Copy(io.Discard, resp.Body)
		c.notices.PermissionDenied(ctx)
		return fmt.Errorf("%s %s: %w", method, path, ErrForbidden)

	case resp.StatusCode >= 500:
		_, _ = io.Copy(io.Discard, resp.Body)
		c.notices.ServerError(ctx, resp.StatusCode)
		return fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, ErrServer)

	case resp.StatusCode >= 400:
		apiErr := &APIError{Status: resp.StatusCode}
		if b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)); err == nil {
			var msg struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(b, &msg) == nil {
				apiErr.Message = msg.Message
			}
		}
		return fmt.Errorf("%s %s: %w", method, path, apiErr)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
