package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Storage backends selectable through STORAGE_BACKEND.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Session stores selectable through SESSION_STORE.
const (
	SessionStoreMemory   = "memory"
	SessionStoreRedis    = "redis"
	SessionStorePostgres = "postgres"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	StorageBackend string
	SeedDemoData   bool
	EnableMetrics  bool
	EnableSwagger  bool

	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Password PasswordConfig
	Session  SessionConfig
	CORS     CORSConfig
	Log      LogConfig
	Reports  ReportsConfig
}

// DatabaseConfig points at PostgreSQL. URL, when set, replaces the discrete
// connection fields.
type DatabaseConfig struct {
	URL          string
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
	MaxIdleTime  time.Duration
	AutoMigrate  bool
}

// RedisConfig points at Redis. URL, when set, replaces the discrete fields.
type RedisConfig struct {
	URL      string
	Host     string
	Port     int
	Password string
	DB       int
}

// AuthConfig controls the registration workflow.
type AuthConfig struct {
	RequireApproval bool
}

// PasswordConfig selects the password hashing scheme.
type PasswordConfig struct {
	Algorithm  string
	SaltBytes  int
	BcryptCost int
}

// SessionConfig configures server-side sessions and the cookie carrying them.
type SessionConfig struct {
	Secret        string
	TTL           time.Duration
	Store         string
	CookieName    string
	CookieSecure  bool
	PruneInterval time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ReportsConfig governs report caching.
type ReportsConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")
	cfg.StorageBackend = strings.ToLower(v.GetString("STORAGE_BACKEND"))
	cfg.SeedDemoData = v.GetBool("SEED_DEMO_DATA")
	cfg.EnableMetrics = v.GetBool("ENABLE_METRICS")
	cfg.EnableSwagger = v.GetBool("ENABLE_SWAGGER")

	cfg.Database = DatabaseConfig{
		URL:          v.GetString("DATABASE_URL"),
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
		MaxLifetime:  parseDuration(v.GetString("DB_CONN_MAX_LIFETIME"), time.Hour),
		MaxIdleTime:  parseDuration(v.GetString("DB_CONN_MAX_IDLE_TIME"), 30*time.Minute),
		AutoMigrate:  v.GetBool("DB_AUTO_MIGRATE"),
	}

	cfg.Redis = RedisConfig{
		URL:      v.GetString("REDIS_URL"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Auth = AuthConfig{RequireApproval: v.GetBool("REQUIRE_APPROVAL")}

	cfg.Password = PasswordConfig{
		Algorithm:  strings.ToLower(v.GetString("PASSWORD_HASH_ALGORITHM")),
		SaltBytes:  v.GetInt("PASSWORD_SALT_BYTES"),
		BcryptCost: v.GetInt("BCRYPT_COST"),
	}

	cfg.Session = SessionConfig{
		Secret:        v.GetString("SESSION_SECRET"),
		TTL:           parseDuration(v.GetString("SESSION_TTL"), 24*time.Hour),
		Store:         strings.ToLower(v.GetString("SESSION_STORE")),
		CookieName:    v.GetString("SESSION_COOKIE_NAME"),
		CookieSecure:  v.GetBool("SESSION_COOKIE_SECURE"),
		PruneInterval: parseDuration(v.GetString("SESSION_PRUNE_INTERVAL"), 24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Reports = ReportsConfig{
		CacheEnabled: v.GetBool("ENABLE_REPORT_CACHE"),
		CacheTTL:     parseDuration(v.GetString("REPORT_CACHE_TTL"), 5*time.Minute),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 5000)
	v.SetDefault("API_PREFIX", "/api")
	v.SetDefault("STORAGE_BACKEND", StorageMemory)
	v.SetDefault("SEED_DEMO_DATA", true)
	v.SetDefault("ENABLE_METRICS", true)
	v.SetDefault("ENABLE_SWAGGER", true)

	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "edusync")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "1h")
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", "30m")
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("REQUIRE_APPROVAL", true)
	v.SetDefault("PASSWORD_HASH_ALGORITHM", "scrypt")
	v.SetDefault("PASSWORD_SALT_BYTES", 16)
	v.SetDefault("BCRYPT_COST", 10)

	v.SetDefault("SESSION_SECRET", "edusync-secret")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_STORE", SessionStoreMemory)
	v.SetDefault("SESSION_COOKIE_NAME", "edusync_session")
	v.SetDefault("SESSION_COOKIE_SECURE", false)
	v.SetDefault("SESSION_PRUNE_INTERVAL", "24h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_REPORT_CACHE", false)
	v.SetDefault("REPORT_CACHE_TTL", "5m")
}

// SetConfigFile bypasses the search path, so a missing .env surfaces as a raw
// fs error instead of ConfigFileNotFoundError.
func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
