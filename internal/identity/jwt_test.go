package identity

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestNewJWTProvider_RequiresSecret(t *testing.T) {
	_, err := NewJWTProvider("")
	require.ErrorIs(t, err, ErrEmptySecret)
}

func TestJWTProvider_Identify(t *testing.T) {
	p, err := NewJWTProvider("s3cret")
	require.NoError(t, err)
	other, err := NewJWTProvider("another")
	require.NoError(t, err)

	valid, err := p.Issue("Alice", time.Hour)
	require.NoError(t, err)
	expired, err := p.Issue("Alice", -time.Minute)
	require.NoError(t, err)
	forged, err := other.Issue("Alice", time.Hour)
	require.NoError(t, err)
	nameless, err := p.Issue("  ", time.Hour)
	require.NoError(t, err)
	foreignIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Name:             "Alice",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "elsewhere"},
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		query   string
		want    string
		wantErr bool
	}{
		{name: "no token is anonymous", want: ""},
		{name: "bearer header", header: "Bearer " + valid, want: "Alice"},
		{name: "query parameter", query: valid, want: "Alice"},
		{name: "expired", header: "Bearer " + expired, wantErr: true},
		{name: "wrong secret", query: forged, wantErr: true},
		{name: "missing name", query: nameless, wantErr: true},
		{name: "wrong issuer", query: foreignIssuer, wantErr: true},
		{name: "garbage", query: "not-a-token", wantErr: true},
		{name: "non bearer header falls back to query", header: "Basic abc", query: valid, want: "Alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			target := "/ws"
			if tt.query != "" {
				target += "?token=" + tt.query
			}
			r := httptest.NewRequest("GET", target, nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			name, err := p.Identify(r)
			if tt.wantErr {
				req.ErrorIs(err, ErrInvalidToken)
				return
			}
			req.NoError(err)
			req.Equal(tt.want, name)
		})
	}
}
