package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims identifies an anonymous shopper. The session id is carried
// as the JWT subject.
type SessionClaims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

// SessionID returns the subject of the token.
func (c *SessionClaims) SessionID() string {
	if c == nil {
		return ""
	}
	return c.Subject
}

const sessionKind = "shopper_session"
