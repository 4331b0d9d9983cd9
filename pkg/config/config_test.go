package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.True(t, cfg.Auth.RequireApproval)
	assert.Equal(t, "scrypt", cfg.Password.Algorithm)
	assert.Equal(t, 16, cfg.Password.SaltBytes)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, SessionStoreMemory, cfg.Session.Store)
	assert.Equal(t, "edusync_session", cfg.Session.CookieName)
	assert.Equal(t, 5*time.Minute, cfg.Reports.CacheTTL)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("STORAGE_BACKEND", "Postgres")
	v.Set("REQUIRE_APPROVAL", false)
	v.Set("PASSWORD_HASH_ALGORITHM", "BCRYPT")
	v.Set("SESSION_TTL", "bogus")
	v.Set("SESSION_STORE", "POSTGRES")
	v.Set("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg := fromViper(v)

	assert.Equal(t, StoragePostgres, cfg.StorageBackend)
	assert.False(t, cfg.Auth.RequireApproval)
	assert.Equal(t, "bcrypt", cfg.Password.Algorithm)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, SessionStorePostgres, cfg.Session.Store)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestFromViperConnectionSettings(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, time.Hour, cfg.Database.MaxLifetime)
	assert.Equal(t, 30*time.Minute, cfg.Database.MaxIdleTime)

	v.Set("DATABASE_URL", "postgres://neon.test/edusync")
	v.Set("REDIS_URL", "redis://cache.test:6379/1")
	v.Set("DB_CONN_MAX_LIFETIME", "10m")

	cfg = fromViper(v)
	assert.Equal(t, "postgres://neon.test/edusync", cfg.Database.URL)
	assert.Equal(t, "redis://cache.test:6379/1", cfg.Redis.URL)
	assert.Equal(t, 10*time.Minute, cfg.Database.MaxLifetime)
}
