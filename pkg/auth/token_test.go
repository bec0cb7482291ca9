package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/easybody/easybody-backend/pkg/config"
)

func jwtCfg() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "easybody-test",
		ExpirationMinutes: 15,
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	token, err := MintAccessToken(jwtCfg(), time.Now(), AccessTokenPayload{
		Subject: "idp|7f3a",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("expected compact JWT, got %q", token)
	}

	claims, err := ParseAccessToken(jwtCfg(), token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Subject != "idp|7f3a" {
		t.Fatalf("expected subject to round-trip, got %q", claims.Subject)
	}
	if claims.ID == "" {
		t.Fatal("expected generated jti")
	}
}

func TestMintRejectsBlankSubject(t *testing.T) {
	_, err := MintAccessToken(jwtCfg(), time.Now(), AccessTokenPayload{Subject: "   "})
	if err == nil {
		t.Fatal("expected error for blank subject")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := MintAccessToken(jwtCfg(), time.Now().Add(-time.Hour), AccessTokenPayload{
		Subject: "idp|7f3a",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	if _, err := ParseAccessToken(jwtCfg(), token); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := MintAccessToken(jwtCfg(), time.Now(), AccessTokenPayload{
		Subject: "idp|7f3a",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	other := jwtCfg()
	other.Secret = "different"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected signature error")
	}
}
