package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCache_Roundtrip(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "/photos", "a.jpg", "material")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, "/photos", "a.jpg", "material", `{"file":"a.jpg"}`))

	raw, ok, err := c.Get(ctx, "/photos", "a.jpg", "material")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"file":"a.jpg"}`, raw)
}

func TestCache_ModesAreIndependent(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "/photos", "a.jpg", "material", "m"))

	_, ok, err := c.Get(ctx, "/photos", "a.jpg", "group")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_PutReplaces(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "/photos", "a.jpg", "material", "old"))
	require.NoError(t, c.Put(ctx, "/photos", "a.jpg", "material", "new"))

	raw, ok, err := c.Get(ctx, "/photos", "a.jpg", "material")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", raw)
}
