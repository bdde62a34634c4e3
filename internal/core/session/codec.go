// Package session issues and verifies the signed, self-contained
// advisor session token carried by the admin cookie. There is no
// server-side session store: the token embeds the claim set, expires
// after a fixed window, and is simply re-issued at the next login.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rutamundi/backoffice/internal/core/domain"
)

// TTL is the fixed session lifetime. Expiry is set at issuance; there
// is no refresh — an expired token requires a new login.
const TTL = 12 * time.Hour

// CookieName is the HTTP cookie carrying the token.
const CookieName = "advisor_session"

// Claims is the identity embedded in a session token. Tokens minted by
// older deployments carry only AdvisorID and Email; Role is then empty
// and must be re-resolved from the advisor store. An empty Role is a
// legacy shape, not an invalid token.
type Claims struct {
	AdvisorID string             `json:"advisorId"`
	Email     string             `json:"email"`
	Role      domain.AdvisorRole `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// HasRole reports whether the token carried a role or needs resolution.
func (c *Claims) HasRole() bool {
	return c.Role != ""
}

// Codec signs and verifies session tokens with a shared HS256 secret.
type Codec struct {
	secret []byte
}

// NewCodec returns a Codec using the given signing secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Issue signs a token for the advisor, valid for TTL from now.
func (c *Codec) Issue(advisorID, email string, role domain.AdvisorRole) (string, error) {
	now := time.Now()
	claims := Claims{
		AdvisorID: advisorID,
		Email:     email,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify parses and validates a token. It returns nil on any failure —
// bad signature, malformed structure, wrong algorithm, or expiry. A
// failed verification is an expected condition (stale cookie, restarted
// deployment with a new secret) and is never surfaced as an error.
func (c *Codec) Verify(token string) *Claims {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil
	}
	return claims
}
