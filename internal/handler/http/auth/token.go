// Package auth implements the shared-secret token gate in front of the API.
// A request authenticates by carrying the configured header with a value
// equal to the server secret. There is no session, expiry or rotation.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
)

// DefaultHeader is the request header that carries the token.
const DefaultHeader = "SuperToken"

// ClaimToken is the claim type granted to an authenticated request.
const ClaimToken = "token"

var (
	// ErrMissingCredential indicates that the request carried no token header.
	ErrMissingCredential = errors.New("missing credential")
	// ErrInvalidCredential indicates that the token did not match the secret.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrEmptySecret is returned when an authenticator is built without a secret.
	ErrEmptySecret = errors.New("auth: secret must not be empty")
)

// Claim is a single typed value attached to a principal.
type Claim struct {
	Type  string
	Value string
}

// Principal is the per-request identity produced by a successful check.
type Principal struct {
	Claims []Claim
}

// HasClaim reports whether p carries a claim of the given type.
func (p Principal) HasClaim(typ string) bool {
	for _, c := range p.Claims {
		if c.Type == typ {
			return true
		}
	}
	return false
}

// Authenticator derives a principal from a request.
type Authenticator interface {
	Authenticate(r *http.Request) (Principal, error)
	// Scheme names the challenge sent in WWW-Authenticate on failure.
	Scheme() string
}

// TokenAuthenticator compares one request header against a shared secret.
type TokenAuthenticator struct {
	name   string
	header string
	secret []byte
}

// NewTokenAuthenticator builds an authenticator reading header. An empty
// header name falls back to DefaultHeader; an empty secret is refused.
func NewTokenAuthenticator(header, secret string) (*TokenAuthenticator, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if header == "" {
		header = DefaultHeader
	}
	return &TokenAuthenticator{name: header, header: http.CanonicalHeaderKey(header), secret: []byte(secret)}, nil
}

// Header returns the canonical name of the token header.
func (a *TokenAuthenticator) Header() string { return a.header }

// Scheme implements Authenticator. It is the header name as configured.
func (a *TokenAuthenticator) Scheme() string { return a.name }

// Authenticate implements Authenticator. The value is compared byte for byte
// in constant time; no trimming or case folding is applied.
func (a *TokenAuthenticator) Authenticate(r *http.Request) (Principal, error) {
	values, ok := r.Header[a.header]
	if !ok || len(values) == 0 {
		return Principal{}, ErrMissingCredential
	}
	token := values[0]
	if subtle.ConstantTimeCompare([]byte(token), a.secret) != 1 {
		return Principal{}, ErrInvalidCredential
	}
	return Principal{Claims: []Claim{{Type: ClaimToken, Value: token}}}, nil
}

// GenerateSecret returns a random URL-safe secret built from n random bytes.
func GenerateSecret(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("secret length must be positive, got %d", n)
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

type ctxKey struct{}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// PrincipalFromContext returns the principal stored by the Authz middleware.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok
}
