package ports

import (
	"context"
	"errors"
)

// Fixed keys under which the session is persisted. Both must survive a
// process restart together; Clear removes both.
const (
	StoreKeyToken = "labelforge_token"
	StoreKeyUser  = "labelforge_user"
)

// ErrKeyNotFound is returned by SessionStore.Get for an absent key.
var ErrKeyNotFound = errors.New("session store: key not found")

// SessionStore is the pluggable persistence behind the session manager.
// Implementations must be safe for concurrent use; Set is atomic per key.
type SessionStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context) error
}
