// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"net/mail"
	"time"

	"github.com/danielhkuo/clear-ballot/auth"
	"github.com/danielhkuo/clear-ballot/cliparse"
	"github.com/danielhkuo/clear-ballot/middleware"
	"github.com/danielhkuo/clear-ballot/models"
)

type AuthHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAuthHandler(db *sql.DB, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Name) < 2 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Name must be at least 2 characters")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Please enter a valid email address")
		return
	}
	if len(req.Password) < 8 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}
	if !hasPasswordVariety(req.Password) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Password must contain at least one uppercase letter, one lowercase letter, and one number")
		return
	}
	if req.Password != req.ConfirmPassword {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Passwords don't match")
		return
	}
	if !isTwelveDigits(req.NationalID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "National ID must be exactly 12 digits")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	now := time.Now()
	var userID int
	err = h.db.QueryRow(`
		INSERT INTO users (name, email, password, national_id, is_registered, has_voted, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, FALSE, FALSE, 'user', $5, $6)
		RETURNING id
	`, req.Name, req.Email, hash, req.NationalID, now, now).Scan(&userID)

	if err != nil {
		// The unique constraints on email and national_id turn duplicate
		// signups into a constraint rejection
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Email or national ID already in use")
			return
		}
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	slog.Info("user created", "user_id", userID)

	middleware.JSONResponse(w, http.StatusCreated, models.SignupResponse{
		Message: "User created successfully",
		UserID:  userID,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, false)
}

// AdminLogin handles POST /auth/admin-login. Same flow as Login but
// rejects accounts without the admin role.
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, true)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, adminOnly bool) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	var user models.User
	err := h.db.QueryRow(`
		SELECT id, name, email, password, national_id, address,
		       is_registered, has_voted, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`, req.Email).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.NationalID, &user.Address,
		&user.IsRegistered, &user.HasVoted, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if adminOnly && !user.Role.IsAdmin() {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid account type")
		return
	}

	token, err := auth.GenerateToken(user, h.cfg.JWTSecret)
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	auth.SetTokenCookie(w, token, h.cfg.IsProduction())

	slog.Info("user logged in", "user_id", user.ID, "role", user.Role)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Message: "Logged in successfully",
		User:    user,
	})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.db, h.cfg)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, user)
}

// Logout handles GET /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearTokenCookie(w, h.cfg.IsProduction())
	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Logged out successfully",
	})
}

// hasPasswordVariety enforces the lowercase/uppercase/digit rule.
func hasPasswordVariety(password string) bool {
	var lower, upper, digit bool
	for _, c := range password {
		switch {
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= '0' && c <= '9':
			digit = true
		}
	}
	return lower && upper && digit
}
