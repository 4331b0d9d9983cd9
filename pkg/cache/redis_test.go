package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edusync-api/pkg/config"
)

func TestOptionsFromFields(t *testing.T) {
	opts, err := Options(config.RedisConfig{Host: "localhost", Port: 6379, Password: "pw", DB: 2})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)
}

func TestOptionsFromURL(t *testing.T) {
	opts, err := Options(config.RedisConfig{URL: "redis://:secret@cache.test:6380/3", Host: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "cache.test:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 3, opts.DB)

	_, err = Options(config.RedisConfig{URL: "http://cache.test"})
	assert.Error(t, err)
}
