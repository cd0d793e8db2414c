package service

import (
	"context"
	"sync"

	"github.com/labelforge/labelforge-go/internal/core/ports"
)

// TokenSource supplies the bearer token for authenticated calls.
// *Session satisfies it.
type TokenSource interface {
	Token() string
}

// collection is the shared state machine behind the resource collections:
// a cached list, a loading flag, and a sticky error slot. A failed fetch
// keeps the previously cached items so consumers never flash an empty list.
type collection[T any] struct {
	mu      sync.Mutex
	items   []T
	loading bool
	errMsg  string
}

// fetchAll replaces the cached list with whatever fetch returns. On error
// the previous list is left intact and the error text is retained.
func (c *collection[T]) fetchAll(ctx context.Context, q ports.ListQuery, fetch func(context.Context, ports.ListQuery) ([]T, error)) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	items, err := fetch(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.errMsg = err.Error()
		return err
	}
	c.items = items
	c.errMsg = ""
	return nil
}

// Items returns a copy of the cached list.
func (c *collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Err returns the last fetch error message, or "" when the last fetch succeeded.
func (c *collection[T]) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Loading reports whether a fetch is in flight.
func (c *collection[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}
