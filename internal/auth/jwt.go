package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Principal kinds recognized by the marketplace.
const (
	KindClient   = "client"
	KindSeller   = "seller"
	KindDelivery = "delivery"
	KindAdmin    = "admin"
)

// ErrForbidden is returned when a principal's kind does not allow an
// operation.
var ErrForbidden = errors.New("operation not allowed for this principal")

// Principal represents the authenticated caller from JWT.
type Principal struct {
	Name string // account name (seller business, agent name, admin username)
	Kind string // "client" | "seller" | "delivery" | "admin"
}

type principalKey struct{}

// WithPrincipal stores the principal in context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext retrieves the principal from context (if any).
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok
}

// RequireAdmin returns the principal only when it is an admin. Forced
// reassignment of a delivery agent is an administrative operation.
func RequireAdmin(p *Principal) error {
	if p == nil || p.Kind != KindAdmin {
		return ErrForbidden
	}
	return nil
}

// Issue signs an HS256 token carrying the principal's name and kind.
func Issue(secret, name, kind string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	claims := jwt.MapClaims{
		"name": name,
		"kind": kind,
	}
	if ttl > 0 {
		claims["exp"] = time.Now().Add(ttl).Unix()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Verify validates a JWT and extracts its Principal.
func Verify(tokenStr, secret string) (*Principal, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}

	type claims struct {
		Name string `json:"name"`
		Kind string `json:"kind"`
		jwt.RegisteredClaims
	}

	tok, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, err
	}
	c, _ := tok.Claims.(*claims)
	if c == nil || c.Name == "" || c.Kind == "" {
		return nil, errors.New("invalid claims")
	}
	return &Principal{Name: c.Name, Kind: strings.ToLower(c.Kind)}, nil
}

// ParseBearer extracts and validates a Bearer JWT from an Authorization
// header value and returns its Principal.
func ParseBearer(header, secret string) (*Principal, error) {
	if header == "" {
		return nil, errors.New("missing authorization")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errors.New("invalid authorization header")
	}
	return Verify(strings.TrimSpace(parts[1]), secret)
}
