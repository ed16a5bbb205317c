// Package identity supplies verified display names for incoming chat
// connections from signed bearer tokens.
package identity

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "chatroom"

var (
	ErrInvalidToken = errors.New("invalid identity token")
	ErrEmptySecret  = errors.New("identity secret is empty")
)

// Claims is the token body. Name is the display name the holder may use.
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// JWTProvider verifies HS256 tokens carried in the Authorization header
// ("Bearer <token>") or the "token" query parameter.
type JWTProvider struct {
	secret []byte
	now    func() time.Time
}

// NewJWTProvider returns a provider verifying tokens signed with secret.
func NewJWTProvider(secret string) (*JWTProvider, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &JWTProvider{secret: []byte(secret), now: time.Now}, nil
}

// Identify returns the verified name for r. A request without a token is
// anonymous and yields "" with no error; a token that does not verify is an
// error.
func (p *JWTProvider) Identify(r *http.Request) (string, error) {
	raw := tokenFrom(r)
	if raw == "" {
		return "", nil
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}

	name := strings.TrimSpace(claims.Name)
	if name == "" {
		return "", fmt.Errorf("%w: no name claim", ErrInvalidToken)
	}
	return name, nil
}

// Issue signs a token granting name for ttl.
func (p *JWTProvider) Issue(name string, ttl time.Duration) (string, error) {
	now := p.now()
	claims := &Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   name,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

func tokenFrom(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return r.URL.Query().Get("token")
}
