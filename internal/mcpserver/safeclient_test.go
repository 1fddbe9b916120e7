package mcpserver

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBlockedIP(t *testing.T) {
	tests := []struct {
		ip      string
		blocked bool
	}{
		{"127.0.0.1", true},
		{"10.1.2.3", true},
		{"172.20.0.1", true},
		{"192.168.0.10", true},
		{"169.254.169.254", true},
		{"224.0.0.251", true},
		{"0.0.0.0", true},
		{"::1", true},
		{"::", true},
		{"fe80::1", true},
		{"ff02::1", true},
		{"fc00::1", true},
		{"8.8.4.4", false},
		{"140.82.112.3", false},
		{"2606:4700:4700::1111", false},
	}
	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			ip := net.ParseIP(tt.ip)
			require.NotNil(t, ip, "failed to parse IP: %s", tt.ip)
			assert.Equal(t, tt.blocked, isBlockedIP(ip))
		})
	}
}

func TestPublicAddrs_Loopback(t *testing.T) {
	_, err := publicAddrs(context.Background(), "127.0.0.1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-public address")
}

func TestNewSafeHTTPClient(t *testing.T) {
	client := newSafeHTTPClient(5 * time.Second)
	assert.Equal(t, 5*time.Second, client.Timeout)
	require.NotNil(t, client.Transport)

	via := make([]*http.Request, maxRedirects)
	req, err := http.NewRequest(http.MethodGet, "http://127.0.0.1/doc.json", nil)
	require.NoError(t, err)
	assert.ErrorContains(t, client.CheckRedirect(req, via), "stopped after 10 redirects")
	assert.ErrorContains(t, client.CheckRedirect(req, via[:1]), "non-public address")
}
