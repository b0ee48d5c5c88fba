package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ezymarket/adminctl/internal/client/models"
	"github.com/ezymarket/adminctl/internal/logging"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// memStorage is an in-memory Storage for tests.
type memStorage struct {
	mu       sync.Mutex
	values   map[string][]byte
	clearErr error
}

func newMemStorage() *memStorage {
	return &memStorage{values: map[string][]byte{}}
}

func (m *memStorage) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *memStorage) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memStorage) SetAll(_ context.Context, values map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range values {
		m.values[k] = v
	}
	return nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *memStorage) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clearErr != nil {
		return m.clearErr
	}
	m.values = map[string][]byte{}
	return nil
}

func newTestStore(t *testing.T) (*Store, *memStorage) {
	t.Helper()
	st := newMemStorage()
	return NewStore(st, logging.Discard()), st
}

func TestStore_SetAuth_ThenClearAuth(t *testing.T) {
	ctx := context.Background()
	s, st := newTestStore(t)

	user := &models.User{ID: 1, Email: "a@x.com", Role: "admin"}
	require.NoError(t, s.SetAuth(ctx, user, "A", "R"))

	snap := s.Snapshot()
	require.True(t, snap.IsAuthenticated())
	require.Equal(t, "A", snap.AccessToken)
	require.Equal(t, "R", snap.RefreshToken)
	require.Equal(t, user, snap.User)

	require.Equal(t, []byte("A"), st.values[KeyAccessToken])
	require.Equal(t, []byte("R"), st.values[KeyRefreshToken])
	require.NotEmpty(t, st.values[KeyUser])

	require.NoError(t, s.ClearAuth(ctx))

	snap = s.Snapshot()
	require.False(t, snap.IsAuthenticated())
	require.Empty(t, snap.AccessToken)
	require.Empty(t, snap.RefreshToken)
	require.Nil(t, snap.User)
	require.Empty(t, st.values)
}

func TestStore_SetAuth_WithoutRefreshToken_KeepsOld(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.SetAuth(ctx, &models.User{ID: 1}, "A", "R"))
	require.NoError(t, s.SetAuth(ctx, &models.User{ID: 1}, "A2", ""))

	require.Equal(t, "A2", s.AccessToken())
	require.Equal(t, "R", s.RefreshToken())
}

func TestStore_SetTokens_LeavesUserUntouched(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	user := &models.User{ID: 7, UserName: "chef"}
	require.NoError(t, s.SetAuth(ctx, user, "T1", "R1"))
	require.NoError(t, s.SetTokens(ctx, "T2", "R2"))

	require.Equal(t, "T2", s.AccessToken())
	require.Equal(t, "R2", s.RefreshToken())
	require.Equal(t, user, s.User())
	require.True(t, s.IsAuthenticated())

	// Rotation without a new refresh token keeps the current one.
	require.NoError(t, s.SetTokens(ctx, "T3", ""))
	require.Equal(t, "T3", s.AccessToken())
	require.Equal(t, "R2", s.RefreshToken())
}

func TestStore_Load_FromDurableStorage(t *testing.T) {
	ctx := context.Background()
	st := newMemStorage()
	st.values[KeyAccessToken] = []byte("T1")
	st.values[KeyRefreshToken] = []byte("R1")
	st.values[KeyUser] = []byte(`{"id":3,"email":"b@x.com"}`)

	s := NewStore(st, logging.Discard())
	require.NoError(t, s.Load(ctx))

	require.True(t, s.IsAuthenticated())
	require.Equal(t, "T1", s.AccessToken())
	require.Equal(t, "R1", s.RefreshToken())
	require.NotNil(t, s.User())
	require.Equal(t, int64(3), s.User().ID)
}

func TestStore_Load_MalformedUserTreatedAsAbsent(t *testing.T) {
	ctx := context.Background()
	st := newMemStorage()
	st.values[KeyAccessToken] = []byte("T1")
	st.values[KeyUser] = []byte(`{not json`)

	s := NewStore(st, logging.Discard())
	require.NoError(t, s.Load(ctx))

	require.Nil(t, s.User())
	require.True(t, s.IsAuthenticated())
}

func TestStore_Load_PartialWriteToleratedAsLoggedOut(t *testing.T) {
	ctx := context.Background()
	st := newMemStorage()
	// Crash mid-update: only the refresh token survived.
	st.values[KeyRefreshToken] = []byte("R1")

	s := NewStore(st, logging.Discard())
	require.NoError(t, s.Load(ctx))

	require.False(t, s.IsAuthenticated())
	require.Equal(t, "R1", s.RefreshToken())
}

func TestStore_ClearAuth_ResetsMemoryEvenOnStorageError(t *testing.T) {
	ctx := context.Background()
	s, st := newTestStore(t)
	require.NoError(t, s.SetAuth(ctx, &models.User{ID: 1}, "A", "R"))

	st.clearErr = errors.New("disk gone")
	err := s.ClearAuth(ctx)
	require.Error(t, err)
	require.False(t, s.IsAuthenticated())
	require.Empty(t, s.RefreshToken())
}

func TestStore_UpdateUser_DoesNotTouchTokens(t *testing.T) {
	ctx := context.Background()
	s, st := newTestStore(t)
	require.NoError(t, s.SetAuth(ctx, &models.User{ID: 1, UserName: "old"}, "A", "R"))

	require.NoError(t, s.UpdateUser(ctx, &models.User{ID: 1, UserName: "new"}))

	require.Equal(t, "new", s.User().UserName)
	require.Equal(t, "A", s.AccessToken())
	require.Equal(t, "R", s.RefreshToken())
	require.Contains(t, string(st.values[KeyUser]), `"new"`)
}
