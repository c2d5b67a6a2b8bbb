package lrucache

import (
	"context"
	"testing"
	"time"

	"github.com/BearBump/DVCPortal/internal/cache"
	"github.com/stretchr/testify/require"
)

var _ cache.BytesCache = (*Cache)(nil)

func TestCache_GetSet(t *testing.T) {
	c := New(2, time.Minute)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "a")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	b, ok, err := c.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("1"), b)
}

func TestCache_EvictsOldest(t *testing.T) {
	c := New(2, time.Minute)
	ctx := context.Background()
	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	_ = c.Set(ctx, "c", []byte("3"), 0)

	require.Equal(t, 2, c.Len())
	_, ok, _ := c.Get(ctx, "a")
	require.False(t, ok)
}

func TestCache_Expires(t *testing.T) {
	c := New(10, 20*time.Millisecond)
	ctx := context.Background()
	_ = c.Set(ctx, "a", []byte("1"), 0)
	require.Eventually(t, func() bool {
		_, ok, _ := c.Get(ctx, "a")
		return !ok
	}, time.Second, 10*time.Millisecond)
}
