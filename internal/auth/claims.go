package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the fields read from the session token. The token is opaque to
// the client: its signature is not verified, the claims are only used to
// skip restoring sessions that have already expired.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token carried an expiry that has passed.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// ParseClaims decodes the registered claims of a JWT without verifying it.
func ParseClaims(token string) (Claims, error) {
	var rc jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &rc); err != nil {
		return Claims{}, fmt.Errorf("parsing token: %w", err)
	}
	c := Claims{Subject: rc.Subject}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	return c, nil
}
