package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labelforge/labelforge-go/internal/core/ports"
)

func TestStore_SetGetClear(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Get(ctx, ports.StoreKeyToken)
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, ports.StoreKeyToken, "tok-1"))
	require.NoError(t, s.Set(ctx, ports.StoreKeyUser, `{"id":"u1"}`))

	got, err := s.Get(ctx, ports.StoreKeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got)

	require.NoError(t, s.Clear(ctx))
	_, err = s.Get(ctx, ports.StoreKeyToken)
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)
	_, err = s.Get(ctx, ports.StoreKeyUser)
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)
}

func TestStore_SetOverwrites(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, ports.StoreKeyToken, "old"))
	require.NoError(t, s.Set(ctx, ports.StoreKeyToken, "new"))

	got, err := s.Get(ctx, ports.StoreKeyToken)
	require.NoError(t, err)
	assert.Equal(t, "new", got)
}

func TestStore_FilePermissions(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(context.Background(), ports.StoreKeyToken, "secret"))

	info, err := os.Stat(filepath.Join(dir, ports.StoreKeyToken))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Clear(context.Background()))
	require.NoError(t, s.Clear(context.Background()))
}
