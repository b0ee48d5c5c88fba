// Package session holds the client's authentication state: the token pair
// and the cached user profile, mirrored into durable storage under three
// independent keys. The Store is the single writer of those keys; every
// mutation goes through one of its methods.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ezymarket/adminctl/internal/client/models"
	"github.com/ezymarket/adminctl/internal/logging"
)

// Session is a point-in-time snapshot of the authentication state.
type Session struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
}

// IsAuthenticated reports whether the session holds an access token.
// It is always derived, never stored.
func (s Session) IsAuthenticated() bool {
	return s.AccessToken != ""
}

// Store is the process-wide session holder. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	storage Storage
	log     logging.Logger

	user         *models.User
	accessToken  string
	refreshToken string
}

// NewStore builds an empty store over the given durable storage.
// Call Load to populate it from a previous run.
func NewStore(storage Storage, log logging.Logger) *Store {
	return &Store{storage: storage, log: log}
}

// Load initializes the in-memory state from durable storage. Absent or
// malformed entries are treated as logged out; a corrupt cached user
// profile is dropped without failing the load.
func (s *Store) Load(ctx context.Context) error {
	access, err := s.storage.Get(ctx, KeyAccessToken)
	if err != nil {
		return fmt.Errorf("load access token: %w", err)
	}
	refresh, err := s.storage.Get(ctx, KeyRefreshToken)
	if err != nil {
		return fmt.Errorf("load refresh token: %w", err)
	}
	rawUser, err := s.storage.Get(ctx, KeyUser)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	var user *models.User
	if len(rawUser) > 0 {
		var u models.User
		if err := json.Unmarshal(rawUser, &u); err != nil {
			s.log.Warn(ctx, "stored user profile is malformed, ignoring", "error", err)
		} else {
			user = &u
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = string(access)
	s.refreshToken = string(refresh)
	s.user = user
	return nil
}

// SetAuth installs a full session after login. All three durable keys are
// written in one atomic batch before the in-memory state changes.
func (s *Store) SetAuth(ctx context.Context, user *models.User, accessToken, refreshToken string) error {
	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	values := map[string][]byte{
		KeyAccessToken: []byte(accessToken),
		KeyUser:        rawUser,
	}
	if refreshToken != "" {
		values[KeyRefreshToken] = []byte(refreshToken)
	}
	if err := s.storage.SetAll(ctx, values); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.accessToken = accessToken
	if refreshToken != "" {
		s.refreshToken = refreshToken
	}
	return nil
}

// SetTokens replaces the token pair after a refresh. The cached user is
// untouched. An empty refreshToken keeps the previous one.
func (s *Store) SetTokens(ctx context.Context, accessToken, refreshToken string) error {
	values := map[string][]byte{
		KeyAccessToken: []byte(accessToken),
	}
	if refreshToken != "" {
		values[KeyRefreshToken] = []byte(refreshToken)
	}
	if err := s.storage.SetAll(ctx, values); err != nil {
		return fmt.Errorf("persist tokens: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = accessToken
	if refreshToken != "" {
		s.refreshToken = refreshToken
	}
	return nil
}

// ClearAuth wipes the session. The in-memory state is reset even when the
// durable eviction fails, so the process never keeps using dead tokens.
func (s *Store) ClearAuth(ctx context.Context) error {
	err := s.storage.Clear(ctx)

	s.mu.Lock()
	s.user = nil
	s.accessToken = ""
	s.refreshToken = ""
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("evict session storage: %w", err)
	}
	return nil
}

// UpdateUser patches the cached profile snapshot and its durable copy
// without touching the tokens.
func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := s.storage.Set(ctx, KeyUser, rawUser); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	return nil
}

// Snapshot returns a consistent copy of the current session.
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Session{User: s.user, AccessToken: s.accessToken, RefreshToken: s.refreshToken}
}

// AccessToken returns the current access token, empty when logged out.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token, empty when none is held.
func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// User returns the cached profile snapshot, nil when logged out.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated reports whether an access token is currently held.
func (s *Store) IsAuthenticated() bool {
	return s.AccessToken() != ""
}
