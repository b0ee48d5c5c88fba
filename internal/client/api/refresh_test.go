package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// authBackend is a fake backend with one protected endpoint and the token
// refresh endpoint. The protected endpoint accepts only the current token.
type authBackend struct {
	mu           sync.Mutex
	validToken   string
	nextToken    string
	nextRefresh  string
	refreshCalls atomic.Int32
	protected    atomic.Int32
	refreshHook  func(r *http.Request) // optional, runs inside the refresh handler
	refreshWait  func()                // optional, delays the refresh response
	refreshFail  bool
	rejectAll    bool // protected endpoint returns 401 regardless of token
}

func newAuthBackend() *authBackend {
	return &authBackend{validToken: "T1", nextToken: "T2", nextRefresh: "R2"}
}

func (b *authBackend) currentToken() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.validToken
}

func (b *authBackend) protectedHandler(w http.ResponseWriter, r *http.Request) {
	b.protected.Add(1)
	if b.rejectAll || r.Header.Get("Authorization") != "Bearer "+b.currentToken() {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	_, _ = w.Write([]byte(`{"data":[{"id":1,"email":"a@x.com"}],"total":1}`))
}

func (b *authBackend) refreshHandler(w http.ResponseWriter, r *http.Request) {
	b.refreshCalls.Add(1)
	if b.refreshHook != nil {
		b.refreshHook(r)
	}
	if b.refreshWait != nil {
		b.refreshWait()
	}
	if b.refreshFail {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	b.mu.Lock()
	b.validToken = b.nextToken
	resp := map[string]string{"token": b.nextToken}
	if b.nextRefresh != "" {
		resp["refreshToken"] = b.nextRefresh
	}
	b.mu.Unlock()
	_ = json.NewEncoder(w).Encode(resp)
}

func (b *authBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/users", b.protectedHandler)
	mux.HandleFunc("/user/token/refresh", b.refreshHandler)
	return mux
}

func startBackend(t *testing.T, b *authBackend) string {
	t.Helper()
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestRefresh_RetriesOriginalRequestWithNewToken(t *testing.T) {
	ctx := context.Background()
	backend := newAuthBackend()
	backend.validToken = "T2" // T1 is already stale
	c, sess, _, notices := newTestClient(t, startBackend(t, backend))
	loginAs(t, sess, "T1", "R1")

	var page Page[struct {
		ID int64 `json:"id"`
	}]
	require.NoError(t, c.Get(ctx, "/admin/users", nil, &page))
	require.Len(t, page.Items, 1)

	require.Equal(t, int32(1), backend.refreshCalls.Load())
	require.Equal(t, int32(2), backend.protected.Load()) // 401 then retry
	require.Equal(t, "T2", sess.AccessToken())
	require.Equal(t, "R2", sess.RefreshToken())
	require.Zero(t, notices.sessionExpired)
}

func TestRefresh_ConcurrentRequestsShareOneRefresh(t *testing.T) {
	const callers = 3
	ctx := context.Background()

	backend := newAuthBackend()
	backend.validToken = "T2"

	// Hold the refresh response until every caller has been rejected
	// once, so all of them are parked behind the same in-flight refresh.
	rejected := make(chan struct{})
	var rejectedOnce sync.Once
	var unauthorized atomic.Int32
	backend.refreshWait = func() {
		<-rejected
		time.Sleep(100 * time.Millisecond)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/admin/users", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer T2" {
			if unauthorized.Add(1) >= callers {
				rejectedOnce.Do(func() { close(rejected) })
			}
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		backend.protected.Add(1)
		_, _ = w.Write([]byte(`{"data":[],"total":0}`))
	})
	mux.HandleFunc("/user/token/refresh", backend.refreshHandler)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, sess, _, notices := newTestClient(t, srv.URL)
	loginAs(t, sess, "T1", "R1")

	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = c.Get(ctx, "/admin/users", nil, nil)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "request %d", i)
	}

	// Exactly one refresh; every retried request carried the token it
	// produced (the protected endpoint only accepts T2 now).
	require.Equal(t, int32(1), backend.refreshCalls.Load())
	require.Equal(t, int32(callers), backend.protected.Load())
	require.Equal(t, "T2", sess.AccessToken())
	require.Zero(t, notices.sessionExpired)
}

func TestRefresh_NoRefreshTokenFailsWithoutRefreshCall(t *testing.T) {
	ctx := context.Background()
	backend := newAuthBackend()
	backend.validToken = "T2"
	c, sess, storage, notices := newTestClient(t, startBackend(t, backend))

	// An access token but no refresh token.
	require.NoError(t, sess.SetTokens(ctx, "T1", ""))

	err := c.Get(ctx, "/admin/users", nil, nil)
	require.ErrorIs(t, err, ErrUnauthenticated)

	require.Equal(t, int32(0), backend.refreshCalls.Load())
	require.False(t, sess.IsAuthenticated())
	require.Zero(t, storage.len())
	require.Equal(t, 1, notices.sessionExpired)
}

func TestRefresh_RejectedRefreshClearsSession(t *testing.T) {
	ctx := context.Background()
	backend := newAuthBackend()
	backend.validToken = "T2"
	backend.refreshFail = true
	c, sess, storage, notices := newTestClient(t, startBackend(t, backend))
	loginAs(t, sess, "T1", "R1")

	err := c.Get(ctx, "/admin/users", nil, nil)
	require.ErrorIs(t, err, ErrUnauthenticated)

	require.Equal(t, int32(1), backend.refreshCalls.Load())
	require.False(t, sess.IsAuthenticated())
	require.Empty(t, sess.RefreshToken())
	require.Zero(t, storage.len())
	require.Equal(t, 1, notices.sessionExpired)
}

func TestRefresh_RequestIsRetriedAtMostOnce(t *testing.T) {
	ctx := context.Background()

	// The refresh succeeds but the protected endpoint keeps rejecting:
	// the request must fail after one retry instead of looping.
	backend := newAuthBackend()
	backend.rejectAll = true
	c, sess, _, _ := newTestClient(t, startBackend(t, backend))
	loginAs(t, sess, "T1", "R1")

	err := c.Get(ctx, "/admin/users", nil, nil)
	require.ErrorIs(t, err, ErrUnauthenticated)

	require.Equal(t, int32(1), backend.refreshCalls.Load())
	require.Equal(t, int32(2), backend.protected.Load())

	// The refresh itself succeeded, so the session keeps its new tokens.
	require.Equal(t, "T2", sess.AccessToken())
	require.Equal(t, "R2", sess.RefreshToken())
}

func TestRefresh_SendsRefreshTokenAndOldAccessToken(t *testing.T) {
	ctx := context.Background()
	backend := newAuthBackend()
	backend.validToken = "T2"

	var gotAuth, gotRefreshToken string
	backend.refreshHook = func(r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotRefreshToken = body["refreshToken"]
	}

	c, sess, _, _ := newTestClient(t, startBackend(t, backend))
	loginAs(t, sess, "T1", "R1")

	require.NoError(t, c.Get(ctx, "/admin/users", nil, nil))
	require.Equal(t, "Bearer T1", gotAuth)
	require.Equal(t, "R1", gotRefreshToken)
}

func TestRefresh_MissingNewRefreshTokenKeepsOld(t *testing.T) {
	ctx := context.Background()
	backend := newAuthBackend()
	backend.validToken = "T2"
	backend.nextRefresh = "" // rotation returns an access token only

	c, sess, _, _ := newTestClient(t, startBackend(t, backend))
	loginAs(t, sess, "T1", "R1")

	require.NoError(t, c.Get(ctx, "/admin/users", nil, nil))
	require.Equal(t, "T2", sess.AccessToken())
	require.Equal(t, "R1", sess.RefreshToken())
}

func TestRefresh_LaterRequestsUseRefreshedTokenFromStore(t *testing.T) {
	ctx := context.Background()
	backend := newAuthBackend()
	backend.validToken = "T2"
	c, sess, _, _ := newTestClient(t, startBackend(t, backend))
	loginAs(t, sess, "T1", "R1")

	require.NoError(t, c.Get(ctx, "/admin/users", nil, nil))

	// A fresh request reads the rotated token at send time: no 401, no
	// second refresh.
	before := backend.protected.Load()
	require.NoError(t, c.Get(ctx, "/admin/users", nil, nil))
	require.Equal(t, before+1, backend.protected.Load())
	require.Equal(t, int32(1), backend.refreshCalls.Load())
	require.Equal(t, "T2", sess.AccessToken())
}
