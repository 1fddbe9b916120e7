package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings for parsed document inputs.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Input limits.
	MaxInlineSize   int64
	AllowPrivateIPs bool
	FetchTimeout    time.Duration
	MaxArrayIndex   int

	// Modify tool defaults.
	Format              string
	AllowMixedOperators bool
	IDKey               string

	// Change list pagination.
	ChangeLimit int
	MaxLimit    int
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from DOCMOD_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:        envBool("DOCMOD_CACHE_ENABLED", true),
		CacheMaxSize:        envInt("DOCMOD_CACHE_MAX_SIZE", 32),
		CacheFileTTL:        envDuration("DOCMOD_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:         envDuration("DOCMOD_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:     envDuration("DOCMOD_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval:  envDuration("DOCMOD_CACHE_SWEEP_INTERVAL", 60*time.Second),
		MaxInlineSize:       int64(envInt("DOCMOD_MAX_INLINE_SIZE", 10*1024*1024)),
		AllowPrivateIPs:     envBool("DOCMOD_ALLOW_PRIVATE_IPS", false),
		FetchTimeout:        envDuration("DOCMOD_FETCH_TIMEOUT", 30*time.Second),
		MaxArrayIndex:       envInt("DOCMOD_MAX_ARRAY_INDEX", 100000),
		Format:              envFormat("DOCMOD_FORMAT", formatJSON),
		AllowMixedOperators: envBool("DOCMOD_ALLOW_MIXED", false),
		IDKey:               envString("DOCMOD_ID_KEY", "_id"),
		ChangeLimit:         envInt("DOCMOD_CHANGE_LIMIT", 100),
		MaxLimit:            envInt("DOCMOD_MAX_LIMIT", 1000),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFormat(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if v != formatJSON && v != formatYAML {
		slog.Warn("invalid format env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
