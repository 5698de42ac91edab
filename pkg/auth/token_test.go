package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/lushka-backend/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{Secret: "secret", Issuer: "lushka", TTL: time.Hour}
}

func TestMintAndParseSessionToken(t *testing.T) {
	cfg := testSessionConfig()
	now := time.Now().UTC()

	session, err := MintSessionToken(cfg, now, "")
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}
	if session.ID == "" || session.Token == "" {
		t.Fatalf("expected id and token, got %+v", session)
	}
	if !session.ExpiresAt.Equal(now.Add(time.Hour).UTC()) {
		t.Fatalf("unexpected expiry %v", session.ExpiresAt)
	}

	claims, err := ParseSessionToken(cfg, session.Token)
	if err != nil {
		t.Fatalf("parse session token: %v", err)
	}
	if claims.SessionID() != session.ID {
		t.Fatalf("expected session id %s, got %s", session.ID, claims.SessionID())
	}
	if claims.Issuer != "lushka" {
		t.Fatalf("unexpected issuer %s", claims.Issuer)
	}
}

func TestMintSessionTokenKeepsSuppliedID(t *testing.T) {
	session, err := MintSessionToken(testSessionConfig(), time.Now(), " sess-42 ")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if session.ID != "sess-42" {
		t.Fatalf("expected trimmed supplied id, got %q", session.ID)
	}
}

func TestMintSessionTokenValidatesConfig(t *testing.T) {
	cases := []config.SessionConfig{
		{Issuer: "lushka", TTL: time.Hour},
		{Secret: "s", TTL: time.Hour},
		{Secret: "s", Issuer: "lushka"},
	}
	for _, cfg := range cases {
		if _, err := MintSessionToken(cfg, time.Now(), ""); err == nil {
			t.Fatalf("expected error for config %+v", cfg)
		}
	}
}

func TestParseSessionTokenRejects(t *testing.T) {
	cfg := testSessionConfig()

	expired, err := MintSessionToken(cfg, time.Now().Add(-2*time.Hour), "")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseSessionToken(cfg, expired.Token); err == nil {
		t.Fatalf("expected expired token to fail")
	}

	valid, err := MintSessionToken(cfg, time.Now(), "")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	other := cfg
	other.Secret = "other"
	if _, err := ParseSessionToken(other, valid.Token); err == nil {
		t.Fatalf("expected wrong secret to fail")
	}
	other = cfg
	other.Issuer = "someone-else"
	if _, err := ParseSessionToken(other, valid.Token); err == nil {
		t.Fatalf("expected wrong issuer to fail")
	}
	if _, err := ParseSessionToken(cfg, strings.Repeat("x", 20)); err == nil {
		t.Fatalf("expected garbage token to fail")
	}
}

func TestParseSessionTokenRejectsForeignKind(t *testing.T) {
	cfg := testSessionConfig()
	now := time.Now()
	claims := SessionClaims{
		Kind: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   "sess",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwtSigningMethod, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseSessionToken(cfg, signed); err == nil {
		t.Fatalf("expected foreign kind to fail")
	}
}
