package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ErrOpaqueToken is returned when a bearer token is not a JWT. Such tokens
// are still usable; their expiry is simply unknown to the portal.
var ErrOpaqueToken = errors.New("token is not a JWT")

// Claims are the fields the portal reads from a backend-issued token.
type Claims struct {
	UserID   string `json:"userId,omitempty"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// InspectToken decodes the claims of a backend token without verifying the
// signature. The backend is the only party holding the key; the portal only
// needs the expiry to avoid a round trip with a dead token.
func InspectToken(raw string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorMalformed != 0 {
			return nil, ErrOpaqueToken
		}
		return nil, fmt.Errorf("inspect token: %w", err)
	}
	return claims, nil
}

// TokenExpired reports whether raw carries an expiry that lies before now.
// Tokens without a readable expiry are never considered expired.
func TokenExpired(raw string, now time.Time) bool {
	claims, err := InspectToken(raw)
	if err != nil || claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}

// TokenTTL returns the remaining lifetime of raw, or zero when unknown.
func TokenTTL(raw string, now time.Time) time.Duration {
	claims, err := InspectToken(raw)
	if err != nil || claims.ExpiresAt == nil {
		return 0
	}
	ttl := claims.ExpiresAt.Sub(now)
	if ttl < 0 {
		return 0
	}
	return ttl
}
