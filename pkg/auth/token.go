package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/lushka-backend/pkg/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// Session is a freshly minted shopper session.
type Session struct {
	ID        string    `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MintSessionToken issues a signed token for a new session id, or for the
// supplied one when non-empty.
func MintSessionToken(cfg config.SessionConfig, now time.Time, sessionID string) (Session, error) {
	if cfg.Secret == "" {
		return Session{}, fmt.Errorf("session secret is required")
	}
	if cfg.Issuer == "" {
		return Session{}, fmt.Errorf("session issuer is required")
	}
	if cfg.TTL <= 0 {
		return Session{}, fmt.Errorf("session ttl must be positive")
	}

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	expiresAt := now.Add(cfg.TTL)

	claims := SessionClaims{
		Kind: sessionKind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwtSigningMethod, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return Session{}, fmt.Errorf("signing session token: %w", err)
	}
	return Session{ID: sessionID, Token: signed, ExpiresAt: expiresAt.UTC()}, nil
}

// ParseSessionToken validates the token string and returns typed claims.
func ParseSessionToken(cfg config.SessionConfig, tokenString string) (*SessionClaims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}

	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if claims.Kind != sessionKind {
		return nil, fmt.Errorf("unexpected token kind %q", claims.Kind)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, fmt.Errorf("session token missing subject")
	}

	return claims, nil
}
