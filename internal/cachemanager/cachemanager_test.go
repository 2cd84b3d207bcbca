package cachemanager

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetSet(t *testing.T) {
	c := New[string](0, 0)

	_, ok := c.Get("missing")
	require.False(t, ok)

	c.Set("k", "v")
	got, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, "v", got)
	require.Equal(t, 1, c.Len())
}

func TestGetOrLoad(t *testing.T) {
	c := New[int](0, 0)
	calls := 0
	load := func() (int, error) {
		calls++
		return 7, nil
	}

	v, err := c.GetOrLoad("k", load)
	require.NoError(t, err)
	require.Equal(t, 7, v)

	v, err = c.GetOrLoad("k", load)
	require.NoError(t, err)
	require.Equal(t, 7, v)
	require.Equal(t, 1, calls, "second read must come from cache")
}

func TestGetOrLoad_ErrorNotCached(t *testing.T) {
	c := New[int](0, 0)
	boom := errors.New("boom")
	calls := 0

	_, err := c.GetOrLoad("k", func() (int, error) {
		calls++
		return 0, boom
	})
	require.ErrorIs(t, err, boom)

	v, err := c.GetOrLoad("k", func() (int, error) {
		calls++
		return 3, nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, v)
	require.Equal(t, 2, calls, "failed load must not poison the cache")
}

func TestFlush(t *testing.T) {
	c := New[string](0, 0)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Flush()
	require.Zero(t, c.Len())
	_, ok := c.Get("a")
	require.False(t, ok)
}

func TestExpiry(t *testing.T) {
	c := New[string](10*time.Millisecond, time.Minute)
	c.Set("k", "v")
	time.Sleep(25 * time.Millisecond)
	_, ok := c.Get("k")
	require.False(t, ok, "entry must expire after its ttl")
}

func TestTypedZeroValues(t *testing.T) {
	type payload struct{ Lines []string }
	c := New[*payload](0, 0)

	v, ok := c.Get("missing")
	require.False(t, ok)
	require.Nil(t, v)

	c.Set("k", &payload{Lines: []string{"x"}})
	got, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, []string{"x"}, got.Lines)
}
