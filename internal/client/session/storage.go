package session

import "context"

// Durable storage keys. Absence of any key means logged out.
const (
	KeyAccessToken  = "token"
	KeyRefreshToken = "refreshToken"
	KeyUser         = "user"
)

// Storage is the durable key/value store behind the session. Get returns
// (nil, nil) for an absent key. SetAll must apply every pair atomically.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetAll(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
