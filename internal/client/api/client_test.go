package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ezymarket/adminctl/internal/client/models"
	"github.com/ezymarket/adminctl/internal/client/session"
	"github.com/ezymarket/adminctl/internal/logging"
)

// ---- helpers ----

type testStorage struct {
	mu     sync.Mutex
	values map[string][]byte
}

func newTestStorage() *testStorage {
	return &testStorage{values: map[string][]byte{}}
}

func (s *testStorage) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key], nil
}

func (s *testStorage) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *testStorage) SetAll(_ context.Context, values map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range values {
		s.values[k] = v
	}
	return nil
}

func (s *testStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *testStorage) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = map[string][]byte{}
	return nil
}

func (s *testStorage) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

// recordingNotices counts the notices the client emits.
type recordingNotices struct {
	mu               sync.Mutex
	sessionExpired   int
	permissionDenied int
	serverErrors     []int
}

func (n *recordingNotices) SessionExpired(context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sessionExpired++
}

func (n *recordingNotices) PermissionDenied(context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.permissionDenied++
}

func (n *recordingNotices) ServerError(_ context.Context, status int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.serverErrors = append(n.serverErrors, status)
}

func newTestClient(t *testing.T, baseURL string) (*Client, *session.Store, *testStorage, *recordingNotices) {
	t.Helper()
	storage := newTestStorage()
	sess := session.NewStore(storage, logging.Discard())
	notices := &recordingNotices{}
	c, err := New(Config{BaseURL: baseURL}, sess, logging.Discard(), notices)
	require.NoError(t, err)
	return c, sess, storage, notices
}

func loginAs(t *testing.T, sess *session.Store, access, refresh string) {
	t.Helper()
	require.NoError(t, sess.SetAuth(context.Background(), &models.User{ID: 1, Email: "a@x.com"}, access, refresh))
}

// ---- tests ----

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Config{}, nil, logging.Discard(), nil)
	require.Error(t, err)
}

func TestClient_AttachesBearerAndRequestID(t *testing.T) {
	ctx := context.Background()

	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, sess, _, _ := newTestClient(t, srv.URL)
	loginAs(t, sess, "T1", "R1")

	require.NoError(t, c.Get(ctx, "/user/me", nil, nil))
	require.Equal(t, "Bearer T1", gotAuth)
	require.NotEmpty(t, gotReqID)
}

func TestClient_NoTokenMeansNoAuthorizationHeader(t *testing.T) {
	ctx := context.Background()

	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, _, _, _ := newTestClient(t, srv.URL)
	require.NoError(t, c.Post(ctx, "/admin/login", map[string]string{"email": "a@x.com"}, nil))
	require.False(t, sawAuth)
}

func TestClient_Get_QueryAndDecode(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/users", r.URL.Path)
		require.Equal(t, "2", r.URL.Query().Get("page"))
		require.Equal(t, "chef", r.URL.Query().Get("search"))
		_, _ = w.Write([]byte(`{"data":[{"id":1,"email":"a@x.com"}],"total":41}`))
	}))
	defer srv.Close()

	c, sess, _, _ := newTestClient(t, srv.URL)
	loginAs(t, sess, "T1", "R1")

	q := url.Values{}
	q.Set("page", "2")
	q.Set("search", "chef")

	var page Page[models.User]
	require.NoError(t, c.Get(ctx, "/admin/users", q, &page))
	require.Len(t, page.Items, 1)
	require.Equal(t, "a@x.com", page.Items[0].Email)
	require.Equal(t, 41, page.Total)
}

func TestClient_Post_SendsJSONBody(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "Salt", body["name"])
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":9,"name":"Salt"}`))
	}))
	defer srv.Close()

	c, sess, _, _ := newTestClient(t, srv.URL)
	loginAs(t, sess, "T1", "R1")

	var created models.Ingredient
	require.NoError(t, c.Post(ctx, "/ingredients", map[string]string{"name": "Salt"}, &created))
	require.Equal(t, int64(9), created.ID)
}

func TestClient_Forbidden(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c, sess, storage, notices := newTestClient(t, srv.URL)
	loginAs(t, sess, "T1", "R1")

	err := c.Get(ctx, "/admin/users", nil, nil)
	require.ErrorIs(t, err, ErrForbidden)

	// No retry, no session change.
	require.Equal(t, 1, notices.permissionDenied)
	require.Equal(t, 0, notices.sessionExpired)
	require.True(t, sess.IsAuthenticated())
	require.NotZero(t, storage.len())
}

func TestClient_ServerError(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c, sess, _, notices := newTestClient(t, srv.URL)
	loginAs(t, sess, "T1", "R1")

	err := c.Get(ctx, "/recipes/search", nil, nil)
	require.ErrorIs(t, err, ErrServer)
	require.Equal(t, []int{http.StatusBadGateway}, notices.serverErrors)
	require.True(t, sess.IsAuthenticated())
}

func TestClient_APIErrorCarriesBackendMessage(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"name already taken"}`))
	}))
	defer srv.Close()

	c, sess, _, notices := newTestClient(t, srv.URL)
	loginAs(t, sess, "T1", "R1")

	err := c.Post(ctx, "/units", map[string]string{"name": "g"}, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	require.Equal(t, "name already taken", apiErr.Message)
	require.Zero(t, notices.permissionDenied)
	require.Zero(t, notices.sessionExpired)
}

func TestClient_TransportErrorPropagates(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c, sess, _, notices := newTestClient(t, srv.URL)
	loginAs(t, sess, "T1", "R1")

	err := c.Get(ctx, "/tags", nil, nil)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrUnauthenticated)
	require.NotErrorIs(t, err, ErrForbidden)
	require.NotErrorIs(t, err, ErrServer)

	// The caller owns retry policy; no notice, no session change.
	require.Zero(t, notices.sessionExpired)
	require.True(t, sess.IsAuthenticated())
}

func TestClient_Delete_WithBody(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		var body map[string]int64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, int64(12), body["userId"])
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, sess, _, _ := newTestClient(t, srv.URL)
	loginAs(t, sess, "T1", "R1")

	require.NoError(t, c.Delete(ctx, "/admin/groups/3/members", map[string]int64{"userId": 12}))
}

func TestClient_EmptyBodyTolerated(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, sess, _, _ := newTestClient(t, srv.URL)
	loginAs(t, sess, "T1", "R1")

	var out models.Unit
	require.NoError(t, c.Get(ctx, "/units/1", nil, &out))
	require.Zero(t, out.ID)
}
