package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearDocmodEnv clears all DOCMOD_* env vars to isolate tests from the ambient environment.
func clearDocmodEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DOCMOD_CACHE_ENABLED", "DOCMOD_CACHE_MAX_SIZE",
		"DOCMOD_CACHE_FILE_TTL", "DOCMOD_CACHE_URL_TTL",
		"DOCMOD_CACHE_CONTENT_TTL", "DOCMOD_CACHE_SWEEP_INTERVAL",
		"DOCMOD_MAX_INLINE_SIZE", "DOCMOD_ALLOW_PRIVATE_IPS", "DOCMOD_FETCH_TIMEOUT", "DOCMOD_MAX_ARRAY_INDEX",
		"DOCMOD_FORMAT", "DOCMOD_ALLOW_MIXED", "DOCMOD_ID_KEY",
		"DOCMOD_CHANGE_LIMIT", "DOCMOD_MAX_LIMIT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearDocmodEnv(t)

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 32, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 5*time.Minute, c.CacheURLTTL)
	assert.Equal(t, 15*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.False(t, c.AllowPrivateIPs)
	assert.Equal(t, 30*time.Second, c.FetchTimeout)
	assert.Equal(t, 100000, c.MaxArrayIndex)
	assert.Equal(t, "json", c.Format)
	assert.False(t, c.AllowMixedOperators)
	assert.Equal(t, "_id", c.IDKey)
	assert.Equal(t, 100, c.ChangeLimit)
	assert.Equal(t, 1000, c.MaxLimit)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearDocmodEnv(t)
	t.Setenv("DOCMOD_CACHE_ENABLED", "false")
	t.Setenv("DOCMOD_CACHE_MAX_SIZE", "50")
	t.Setenv("DOCMOD_CACHE_FILE_TTL", "30m")
	t.Setenv("DOCMOD_CACHE_URL_TTL", "2m")
	t.Setenv("DOCMOD_CACHE_CONTENT_TTL", "10m")
	t.Setenv("DOCMOD_CACHE_SWEEP_INTERVAL", "30s")
	t.Setenv("DOCMOD_MAX_INLINE_SIZE", "5242880")
	t.Setenv("DOCMOD_ALLOW_PRIVATE_IPS", "true")
	t.Setenv("DOCMOD_FORMAT", "yaml")
	t.Setenv("DOCMOD_ALLOW_MIXED", "1")
	t.Setenv("DOCMOD_ID_KEY", "key")
	t.Setenv("DOCMOD_CHANGE_LIMIT", "20")
	t.Setenv("DOCMOD_MAX_LIMIT", "500")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 50, c.CacheMaxSize)
	assert.Equal(t, 30*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 2*time.Minute, c.CacheURLTTL)
	assert.Equal(t, 10*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 30*time.Second, c.CacheSweepInterval)
	assert.Equal(t, int64(5242880), c.MaxInlineSize)
	assert.True(t, c.AllowPrivateIPs)
	assert.Equal(t, "yaml", c.Format)
	assert.True(t, c.AllowMixedOperators)
	assert.Equal(t, "key", c.IDKey)
	assert.Equal(t, 20, c.ChangeLimit)
	assert.Equal(t, 500, c.MaxLimit)
}

func TestLoadConfig_InvalidValues_UseDefaults(t *testing.T) {
	clearDocmodEnv(t)
	t.Setenv("DOCMOD_CACHE_MAX_SIZE", "banana")
	t.Setenv("DOCMOD_CACHE_FILE_TTL", "not-a-duration")
	t.Setenv("DOCMOD_CACHE_ENABLED", "maybe")
	t.Setenv("DOCMOD_CHANGE_LIMIT", "-5")
	t.Setenv("DOCMOD_FORMAT", "xml")
	t.Setenv("DOCMOD_MAX_INLINE_SIZE", "abc")
	t.Setenv("DOCMOD_MAX_LIMIT", "0")

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 32, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 100, c.ChangeLimit)
	assert.Equal(t, "json", c.Format)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.Equal(t, 1000, c.MaxLimit)
}
