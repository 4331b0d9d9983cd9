package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRememberComputesOnceWhenCached(t *testing.T) {
	repo := newMapCache()
	cache := NewCacheService(repo, NewMetricsService(), time.Minute, nil, true)
	calls := 0
	compute := func() (int, error) { calls++; return 42, nil }

	v, hit, err := remember(context.Background(), cache, "reports:x", compute)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 42, v)

	v, hit, err = remember(context.Background(), cache, "reports:x", compute)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)
}

func TestRememberWithoutCache(t *testing.T) {
	calls := 0
	compute := func() (string, error) { calls++; return "fresh", nil }

	for _, cache := range []*CacheService{nil, NewCacheService(newMapCache(), nil, 0, nil, false)} {
		v, hit, err := remember(context.Background(), cache, "reports:y", compute)
		require.NoError(t, err)
		assert.False(t, hit)
		assert.Equal(t, "fresh", v)
	}
	assert.Equal(t, 2, calls)
}

func TestRememberDoesNotCacheErrors(t *testing.T) {
	repo := newMapCache()
	cache := NewCacheService(repo, nil, time.Minute, nil, true)
	_, _, err := remember(context.Background(), cache, "reports:z", func() (int, error) { return 0, errors.New("boom") })
	assert.Error(t, err)
	assert.Equal(t, 0, repo.sets)
}

func TestCacheServiceInvalidate(t *testing.T) {
	repo := newMapCache()
	cache := NewCacheService(repo, nil, time.Minute, nil, true)
	require.NoError(t, cache.Set(context.Background(), "reports:a", 1, 0))
	require.NoError(t, cache.Invalidate(context.Background(), "reports:*"))

	var out int
	hit, err := cache.Get(context.Background(), "reports:a", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}
