package auth

import (
	"errors"
	"testing"
	"time"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)

	token, err := m.GenerateToken("admin")
	if err != nil {
		t.Fatalf("GenerateToken() err=%v", err)
	}
	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() err=%v", err)
	}
	if claims.Username != "admin" || claims.TokenType != TokenTypeAccess {
		t.Errorf("claims = %+v, want admin/access", claims)
	}
	if claims.ID == "" {
		t.Error("token id should be set")
	}

	refresh, err := m.GenerateRefreshToken("admin")
	if err != nil {
		t.Fatalf("GenerateRefreshToken() err=%v", err)
	}
	claims, err = m.ValidateToken(refresh)
	if err != nil {
		t.Fatalf("ValidateToken(refresh) err=%v", err)
	}
	if claims.TokenType != TokenTypeRefresh {
		t.Errorf("TokenType = %q, want %q", claims.TokenType, TokenTypeRefresh)
	}
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, time.Hour)
	other := NewJWTManager("other", time.Hour, time.Hour)
	expired := NewJWTManager("secret", -time.Minute, time.Hour)

	foreign, _ := other.GenerateToken("admin")
	stale, _ := expired.GenerateToken("admin")

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong key", foreign},
		{"expired", stale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.ValidateToken(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ValidateToken() err=%v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword() err=%v", err)
	}
	if !CheckPasswordHash("s3cret", hash) {
		t.Error("matching password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("wrong password accepted")
	}
}
