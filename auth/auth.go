// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/clear-ballot/models"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNoToken      = errors.New("no auth token")
)

// CookieName is the credential cookie set on login and cleared on logout.
const CookieName = "auth-token"

// TokenTTL is the credential lifetime.
const TokenTTL = 24 * time.Hour

// Claims is the signed token payload: just enough to look the account
// back up. Authorization always re-reads the users row, never the claims.
type Claims struct {
	UserID int         `json:"id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed HS256 credential for the user, valid
// for TokenTTL.
func GenerateToken(user models.User, secret string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks signature and expiry and returns the claims.
func VerifyToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SetTokenCookie sets the credential as an http-only cookie.
func SetTokenCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(TokenTTL / time.Second),
	})
}

// ClearTokenCookie expires the credential cookie.
func ClearTokenCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// CurrentUser resolves the request's credential cookie to a live users
// row. The row is re-fetched on every call so flags like has_voted are
// never stale within a request. Returns ErrNoToken for anonymous
// requests and ErrInvalidToken for bad or expired credentials; a token
// for a deleted account reads as invalid.
func CurrentUser(db *sql.DB, r *http.Request, secret string) (*models.User, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrNoToken
	}

	claims, err := VerifyToken(cookie.Value, secret)
	if err != nil {
		return nil, err
	}

	user, err := FetchUser(db, claims.UserID)
	if err == sql.ErrNoRows {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FetchUser loads a single users row by id.
func FetchUser(db *sql.DB, id int) (*models.User, error) {
	var u models.User
	err := db.QueryRow(`
		SELECT id, name, email, password, national_id, address,
		       is_registered, has_voted, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &u.NationalID, &u.Address,
		&u.IsRegistered, &u.HasVoted, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a bcrypt hash against a plaintext candidate.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
