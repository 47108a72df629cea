package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenClaims(t *testing.T) {
	access, err := NewAccessToken("secret", 7, "alice", "admin", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	tok, err := jwt.Parse(access.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)

	if claims["sub"].(float64) != 7 {
		t.Errorf("sub = %v, want 7", claims["sub"])
	}
	if claims["username"] != "alice" || claims["role"] != "admin" {
		t.Errorf("identity claims = %v / %v", claims["username"], claims["role"])
	}
	if jti, _ := claims["jti"].(string); jti == "" {
		t.Error("jti missing")
	}
	if time.Until(access.Exp) > 15*time.Minute || time.Until(access.Exp) < 14*time.Minute {
		t.Errorf("expiry %v not ~15 minutes out", access.Exp)
	}
}

func TestAccessTokenJTIUnique(t *testing.T) {
	read := func() string {
		access, err := NewAccessToken("secret", 1, "a", "staff", 5)
		if err != nil {
			t.Fatalf("NewAccessToken: %v", err)
		}
		tok, _, err := jwt.NewParser().ParseUnverified(access.Token, jwt.MapClaims{})
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		jti, _ := tok.Claims.(jwt.MapClaims)["jti"].(string)
		return jti
	}
	if read() == read() {
		t.Error("two tokens share a jti")
	}
}

func TestNewRefreshToken(t *testing.T) {
	a, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	b, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if a.Raw == b.Raw {
		t.Error("two refresh tokens are identical")
	}
	if len(a.Raw) != 96 {
		t.Errorf("raw length = %d, want 96 hex chars", len(a.Raw))
	}
	if time.Until(a.Exp) < 6*24*time.Hour {
		t.Errorf("expiry %v sooner than expected", a.Exp)
	}
}

func TestHashRefreshRaw(t *testing.T) {
	h1 := HashRefreshRaw("token-a")
	h2 := HashRefreshRaw("token-a")
	h3 := HashRefreshRaw("token-b")
	if h1 != h2 {
		t.Error("hash is not deterministic")
	}
	if h1 == h3 {
		t.Error("different tokens share a hash")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(h1))
	}
	if h1 == "token-a" {
		t.Error("hash equals the raw token")
	}
}
