package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const refreshPath = "/user/token/refresh"

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// refreshAccessToken exchanges the refresh token for a new access token.
// Concurrent callers collapse into a single network call and every one of
// them receives the token that call produced. Any failure is terminal for
// the session: storage is evicted and a session-expired notice fires.
func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	token, err, _ := c.group.Do("refresh", func() (any, error) {
		// The refresh runs to completion even if the request that
		// started it goes away: other requests wait on its result.
		return c.doRefresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}

func (c *Client) doRefresh(ctx context.Context) (string, error) {
	refreshToken := c.session.RefreshToken()
	if refreshToken == "" {
		c.expireSession(ctx)
		return "", fmt.Errorf("no refresh token: %w", ErrUnauthenticated)
	}

	payload, err := json.Marshal(refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return "", fmt.Errorf("encode refresh request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+refreshPath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if old := c.session.AccessToken(); old != "" {
		req.Header.Set("Authorization", "Bearer "+old)
	}

	// The bare transport: a 401 on the refresh call itself must fail,
	// not recurse into another refresh.
	resp, err := c.refreshc.Do(req)
	if err != nil {
		c.expireSession(ctx)
		return "", fmt.Errorf("refresh call failed (%v): %w", err, ErrUnauthenticated)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.expireSession(ctx)
		return "", fmt.Errorf("refresh rejected with status %d: %w", resp.StatusCode, ErrUnauthenticated)
	}

	var rr refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil || rr.Token == "" {
		c.expireSession(ctx)
		return "", fmt.Errorf("refresh response invalid: %w", ErrUnauthenticated)
	}

	if err := c.session.SetTokens(ctx, rr.Token, rr.RefreshToken); err != nil {
		// The new token still authorizes this process; losing the
		// durable copy only costs a re-login next start.
		c.log.Error(ctx, "failed to persist refreshed tokens", "error", err)
	}
	c.log.Debug(ctx, "access token refreshed")
	return rr.Token, nil
}

// expireSession clears the session everywhere and tells the UI to go back
// to its login surface.
func (c *Client) expireSession(ctx context.Context) {
	if err := c.session.ClearAuth(ctx); err != nil {
		c.log.Error(ctx, "failed to clear session", "error", err)
	}
	c.notices.SessionExpired(ctx)
}
