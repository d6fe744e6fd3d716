// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/danielhkuo/clear-ballot/models"
)

const testSecret = "test-jwt-secret"

func testUser() models.User {
	return models.User{
		ID:    42,
		Email: "voter@example.com",
		Role:  models.RoleVoter,
	}
}

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(testUser(), testSecret)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken() returned empty string")
	}

	// Three dot-separated JWT segments
	if got := len(strings.Split(token, ".")); got != 3 {
		t.Errorf("Expected 3 token segments, got %d", got)
	}
}

func TestVerifyToken(t *testing.T) {
	validToken, err := GenerateToken(testUser(), testSecret)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name    string
		token   string
		secret  string
		wantErr bool
	}{
		{"valid token", validToken, testSecret, false},
		{"wrong secret", validToken, "other-secret", true},
		{"garbage token", "not.a.token", testSecret, true},
		{"empty token", "", testSecret, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := VerifyToken(tt.token, tt.secret)
			if (err != nil) != tt.wantErr {
				t.Errorf("VerifyToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if err != ErrInvalidToken {
					t.Errorf("VerifyToken() error = %v, want %v", err, ErrInvalidToken)
				}
				return
			}
			if claims.UserID != 42 {
				t.Errorf("Expected user id 42, got %d", claims.UserID)
			}
			if claims.Email != "voter@example.com" {
				t.Errorf("Expected email voter@example.com, got %q", claims.Email)
			}
			if claims.Role != models.RoleVoter {
				t.Errorf("Expected role %q, got %q", models.RoleVoter, claims.Role)
			}
		})
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	// Hand-roll a token that expired an hour ago
	claims := Claims{
		UserID: 42,
		Email:  "voter@example.com",
		Role:   models.RoleVoter,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	if _, err := VerifyToken(token, testSecret); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyTokenRejectsUnsignedAlg(t *testing.T) {
	// alg=none must never verify, whatever the payload says
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("Failed to build none-alg token: %v", err)
	}

	if _, err := VerifyToken(token, testSecret); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken for alg=none token, got %v", err)
	}
}

func TestTokenCookie(t *testing.T) {
	w := httptest.NewRecorder()
	SetTokenCookie(w, "some-token", false)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("Expected 1 cookie, got %d", len(cookies))
	}

	c := cookies[0]
	if c.Name != CookieName {
		t.Errorf("Expected cookie name %q, got %q", CookieName, c.Name)
	}
	if c.Value != "some-token" {
		t.Errorf("Expected cookie value some-token, got %q", c.Value)
	}
	if !c.HttpOnly {
		t.Error("Expected HttpOnly cookie")
	}
	if c.Path != "/" {
		t.Errorf("Expected path /, got %q", c.Path)
	}
	if c.Secure {
		t.Error("Expected Secure=false outside production")
	}
	if c.MaxAge != 86400 {
		t.Errorf("Expected max-age 86400, got %d", c.MaxAge)
	}
}

func TestTokenCookieSecureInProduction(t *testing.T) {
	w := httptest.NewRecorder()
	SetTokenCookie(w, "some-token", true)

	if !w.Result().Cookies()[0].Secure {
		t.Error("Expected Secure cookie in production")
	}
}

func TestClearTokenCookie(t *testing.T) {
	w := httptest.NewRecorder()
	ClearTokenCookie(w, false)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("Expected 1 cookie, got %d", len(cookies))
	}

	c := cookies[0]
	if c.Value != "" {
		t.Errorf("Expected empty cookie value, got %q", c.Value)
	}
	if c.MaxAge >= 0 {
		t.Errorf("Expected negative max-age, got %d", c.MaxAge)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "Sup3rSecret" {
		t.Error("HashPassword() returned plaintext")
	}

	if !CheckPassword(hash, "Sup3rSecret") {
		t.Error("CheckPassword() rejected the correct password")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Error("CheckPassword() accepted a wrong password")
	}
}
