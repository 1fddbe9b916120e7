package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/docmod"
	"github.com/erraggy/docmod/internal/options"
	"github.com/erraggy/docmod/value"
)

// docInput represents the three ways a document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type docInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a JSON or YAML document on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch a JSON or YAML document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
}

// cacheEntry holds a parsed document with LRU ordering and TTL expiry.
type cacheEntry struct {
	doc       *value.Document
	insertAt  time.Time
	expiresAt time.Time
}

// docCacheStore provides a session-scoped cache for parsed documents.
// File inputs are keyed by (absolutePath, modTime). Content inputs are keyed
// by a SHA-256 hash. URL inputs are keyed by URL string.
//
// Documents are mutable, so the cache hands out clones and never the stored
// value.
type docCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var docCache = &docCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a clone of a cached document or nil. Expired entries are
// lazily removed.
func (c *docCacheStore) get(key string) *value.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		// Touch entry for LRU.
		e.insertAt = time.Now()
		return e.doc.Clone()
	}
	return nil
}

// putWithTTL stores a clone of doc, evicting the oldest entry if at capacity.
func (c *docCacheStore) putWithTTL(key string, doc *value.Document, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{doc: doc.Clone(), insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *docCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes
// expired entries. Only the first call spawns a sweeper. It stops when ctx
// is cancelled.
func (c *docCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *docCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *docCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cacheKey returns the cache key for the input, or "" when it cannot be
// cached.
func (d docInput) cacheKey() string {
	switch {
	case d.File != "":
		absPath, err := filepath.Abs(d.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "" // Can't stat, don't cache.
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case d.Content != "":
		h := sha256.Sum256([]byte(d.Content))
		return "content:" + hex.EncodeToString(h[:])
	case d.URL != "":
		return "url:" + d.URL
	}
	return ""
}

func (d docInput) ttl() time.Duration {
	switch {
	case d.File != "":
		return cfg.CacheFileTTL
	case d.URL != "":
		return cfg.CacheURLTTL
	}
	return cfg.CacheContentTTL
}

// resolve parses the document from whichever input was provided, using the
// cache when it is enabled. The returned document belongs to the caller.
func (d docInput) resolve(ctx context.Context, what string) (*value.Document, error) {
	count := options.CountSet(
		options.Source{Name: "file", Set: d.File != ""},
		options.Source{Name: "url", Set: d.URL != ""},
		options.Source{Name: "content", Set: d.Content != ""},
	)
	if count != 1 {
		return nil, fmt.Errorf("%s: exactly one of file, url, or content must be provided (got %d)", what, count)
	}

	if d.Content != "" && int64(len(d.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("%s: inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set DOCMOD_MAX_INLINE_SIZE to increase",
			what, len(d.Content), cfg.MaxInlineSize)
	}

	var key string
	if cfg.CacheEnabled {
		key = d.cacheKey()
	}
	if key != "" {
		if cached := docCache.get(key); cached != nil {
			return cached, nil
		}
	}

	data, err := d.read(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	doc, err := value.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}

	if key != "" {
		docCache.putWithTTL(key, doc, d.ttl())
	}
	return doc, nil
}

func (d docInput) read(ctx context.Context) ([]byte, error) {
	switch {
	case d.File != "":
		return os.ReadFile(d.File) //nolint:gosec // G304: reading user-chosen files is the tool's purpose
	case d.URL != "":
		return fetch(ctx, d.URL)
	}
	return []byte(d.Content), nil
}

// fetch downloads a document. Private addresses are refused unless
// DOCMOD_ALLOW_PRIVATE_IPS is set.
func fetch(ctx context.Context, url string) ([]byte, error) {
	client := &http.Client{Timeout: cfg.FetchTimeout}
	if !cfg.AllowPrivateIPs {
		client = newSafeHTTPClient(cfg.FetchTimeout)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", docmod.UserAgent())
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")

	resp, err := client.Do(req) //nolint:gosec // G107: URL is validated by the safe client's dialer
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, cfg.MaxInlineSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("fetch %s: body exceeds maximum %d bytes", url, cfg.MaxInlineSize)
	}
	return data, nil
}
