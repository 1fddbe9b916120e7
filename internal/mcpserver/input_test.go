package mcpserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocInput_ResolveContent(t *testing.T) {
	docCache.reset()
	doc, err := docInput{Content: "name: x\ntags: [a, b]\n"}.resolve(context.Background(), "document")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"x","tags":["a","b"]}`, doc.String())
}

func TestDocInput_ResolveFile(t *testing.T) {
	docCache.reset()
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a": 1}`), 0o600))

	doc, err := docInput{File: path}.resolve(context.Background(), "document")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, doc.String())
}

func TestDocInput_ResolveErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   docInput
		wantErr string
	}{
		{"none provided", docInput{}, "exactly one of file, url, or content must be provided (got 0)"},
		{"multiple provided", docInput{File: "a.json", Content: "{}"}, "exactly one of file, url, or content must be provided (got 2)"},
		{"missing file", docInput{File: "/nonexistent/doc.json"}, "document:"},
		{"not a document", docInput{Content: "[1, 2]"}, "expected a document"},
		{"invalid syntax", docInput{Content: "{"}, "document:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docCache.reset()
			_, err := tt.input.resolve(context.Background(), "document")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDocInput_InlineSizeLimit(t *testing.T) {
	saved := cfg.MaxInlineSize
	cfg.MaxInlineSize = 8
	t.Cleanup(func() { cfg.MaxInlineSize = saved })

	_, err := docInput{Content: `{"abc": "defghij"}`}.resolve(context.Background(), "modifier")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "modifier: inline content size")
}

func TestDocCache_ReturnsPrivateCopies(t *testing.T) {
	docCache.reset()
	input := docInput{Content: `{"a": 1}`}

	first, err := input.resolve(context.Background(), "document")
	require.NoError(t, err)
	assert.Equal(t, 1, docCache.size())
	first.Set("a", 2)

	second, err := input.resolve(context.Background(), "document")
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, `{"a":1}`, second.String(), "cached document must not see caller changes")
}

func TestDocCache_MissOnModifiedFile(t *testing.T) {
	docCache.reset()
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("v: 1\n"), 0o600))

	input := docInput{File: path}
	first, err := input.resolve(context.Background(), "document")
	require.NoError(t, err)
	assert.Equal(t, `{"v":1}`, first.String())

	require.NoError(t, os.WriteFile(path, []byte("v: 2\n"), 0o600))
	// Ensure mtime differs from the first write on coarse-grained filesystems.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	second, err := input.resolve(context.Background(), "document")
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, second.String())
}

func TestDocCache_LRUEviction(t *testing.T) {
	docCache.reset()

	var firstKey string
	for i := range docCache.maxSize + 1 {
		input := docInput{Content: fmt.Sprintf(`{"n": %d}`, i)}
		if i == 0 {
			firstKey = input.cacheKey()
		}
		_, err := input.resolve(context.Background(), "document")
		require.NoError(t, err)
	}

	assert.Equal(t, docCache.maxSize, docCache.size())
	assert.Nil(t, docCache.get(firstKey), "expected oldest entry to be evicted")
}

func TestDocCache_Sweep(t *testing.T) {
	docCache.reset()
	docCache.putWithTTL("expired", nil, -time.Second)
	docCache.putWithTTL("live", nil, time.Hour)

	docCache.sweep()
	assert.Equal(t, 1, docCache.size())
}

func TestDocInput_ResolveURL(t *testing.T) {
	var userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{"remote": true}`))
	}))
	defer server.Close()

	t.Run("private address blocked by default", func(t *testing.T) {
		docCache.reset()
		_, err := docInput{URL: server.URL}.resolve(context.Background(), "document")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "non-public address")
	})

	t.Run("allowed when configured", func(t *testing.T) {
		docCache.reset()
		cfg.AllowPrivateIPs = true
		t.Cleanup(func() { cfg.AllowPrivateIPs = false })

		doc, err := docInput{URL: server.URL}.resolve(context.Background(), "document")
		require.NoError(t, err)
		assert.Equal(t, `{"remote":true}`, doc.String())
		assert.Contains(t, userAgent, "docmod/")
	})
}

func TestFetch_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	cfg.AllowPrivateIPs = true
	t.Cleanup(func() { cfg.AllowPrivateIPs = false })

	_, err := fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}
