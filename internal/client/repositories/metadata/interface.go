// Package metadata persists small key/value state for the client: the
// session token, user id, and token expiry. It is the sqlite equivalent of
// the web client's localStorage entries.
package metadata

import "context"

// Keys used by the session store.
const (
	KeyAuthToken       = "auth_token"
	KeyAuthUserID      = "auth_user_id"
	KeyTokenExpiration = "auth_token_expiration"
)

type Repository interface {
	// Get returns the stored value, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
