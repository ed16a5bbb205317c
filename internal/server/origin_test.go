package server

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNormalizeOrigins(t *testing.T) {
	origins, allowAll := normalizeOrigins([]string{
		" HTTP://Example.com ",
		"http://example.com",
		"",
		"not a url",
		"https://chat.example:8443",
	}, zaptest.NewLogger(t))

	require.False(t, allowAll)
	require.Equal(t, []string{"http://example.com", "https://chat.example:8443"}, origins)
}

func TestOriginPolicy_Allows(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{name: "listed origin", allowed: []string{"http://localhost:8080"}, origin: "http://localhost:8080", want: true},
		{name: "case insensitive", allowed: []string{"http://localhost:8080"}, origin: "HTTP://LOCALHOST:8080", want: true},
		{name: "unlisted origin", allowed: []string{"http://localhost:8080"}, origin: "http://evil.example", want: false},
		{name: "different port", allowed: []string{"http://localhost:8080"}, origin: "http://localhost:9090", want: false},
		{name: "missing origin", allowed: []string{"http://localhost:8080"}, origin: "", want: false},
		{name: "wildcard", allowed: []string{"*"}, origin: "http://anywhere.example", want: true},
		{name: "wildcard still needs a valid origin", allowed: []string{"*"}, origin: "garbage", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := newOriginPolicy(tt.allowed, zaptest.NewLogger(t))
			r := httptest.NewRequest("GET", "/ws", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			require.Equal(t, tt.want, policy.checkOrigin(r))
		})
	}
}
