package httpclient

import (
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateURL(t *testing.T) {
	client := NewSaferClient(30 * time.Second)

	cases := []struct {
		name      string
		url       string
		shouldErr bool
	}{
		{"valid https", "https://example.com/path", false},
		{"valid http", "http://example.com", false},
		{"public IP", "http://8.8.8.8/", false},
		{"file scheme", "file:///etc/passwd", true},
		{"ftp scheme", "ftp://example.com", true},
		{"localhost", "http://localhost/admin", true},
		{"localhost subdomain", "http://admin.localhost/", true},
		{"loopback IP", "http://127.0.0.1/", true},
		{"10.x private", "http://10.0.0.1/", true},
		{"192.168.x private", "http://192.168.1.1/", true},
		{"metadata endpoint", "http://169.254.169.254/metadata", true},
		{"credential injection", "http://evil.com@localhost/", true},
		{"empty hostname", "http:///path", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u, err := url.Parse(tc.url)
			require.NoError(t, err)

			err = client.validateURL(u)
			if tc.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsPrivateIP(t *testing.T) {
	cases := []struct {
		ip        string
		isPrivate bool
	}{
		{"10.0.0.1", true},
		{"192.168.255.255", true},
		{"172.16.0.1", true},
		{"127.0.0.1", true},
		{"169.254.169.254", true},
		{"0.0.0.0", true},
		{"224.0.0.1", true},
		{"8.8.8.8", false},
		{"1.1.1.1", false},
		{"::1", true},
		{"fe80::1", true},
		{"fc00::1", true},
	}

	for _, tc := range cases {
		t.Run(tc.ip, func(t *testing.T) {
			ip := net.ParseIP(tc.ip)
			require.NotNil(t, ip)
			assert.Equal(t, tc.isPrivate, isPrivateIP(ip))
		})
	}
}

func TestIsLocalhost(t *testing.T) {
	assert.True(t, isLocalhost("localhost"))
	assert.True(t, isLocalhost("LOCALHOST"))
	assert.True(t, isLocalhost("localhost.localdomain"))
	assert.True(t, isLocalhost("admin.localhost"))
	assert.False(t, isLocalhost("example.com"))
	assert.False(t, isLocalhost("local.host"))
}

func TestDoBlocksLocalhost(t *testing.T) {
	client := NewSaferClient(5 * time.Second)

	req, err := http.NewRequest(http.MethodGet, "http://localhost/", nil)
	require.NoError(t, err)

	resp, err := client.Do(req) //nolint:bodyclose
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "SSRF protection")
}

func TestWrapClientAllowsTestServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := WrapClient(server.Client())

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRedirectLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/again", http.StatusFound)
	}))
	defer server.Close()

	client := NewSaferClient(5 * time.Second)
	client.blockPrivateIP = false
	client.Transport = nil

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := client.Do(req) //nolint:bodyclose
	require.Error(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	assert.Contains(t, err.Error(), "redirects")
}
