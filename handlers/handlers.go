// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/clear-ballot/auth"
	"github.com/danielhkuo/clear-ballot/cliparse"
	"github.com/danielhkuo/clear-ballot/middleware"
	"github.com/danielhkuo/clear-ballot/models"
)

// requireUser resolves the request credential to a live account or
// writes a 401. The bool reports whether the caller may proceed.
func requireUser(w http.ResponseWriter, r *http.Request, db *sql.DB, cfg cliparse.Config) (*models.User, bool) {
	user, err := auth.CurrentUser(db, r, cfg.JWTSecret)
	if err == auth.ErrNoToken || err == auth.ErrInvalidToken {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	if err != nil {
		slog.Error("failed to resolve current user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil, false
	}
	return user, true
}

// requireAdmin is requireUser plus the admin capability check (403 for
// authenticated non-admins).
func requireAdmin(w http.ResponseWriter, r *http.Request, db *sql.DB, cfg cliparse.Config) (*models.User, bool) {
	user, ok := requireUser(w, r, db, cfg)
	if !ok {
		return nil, false
	}
	if !user.Role.IsAdmin() {
		middleware.ErrorResponse(w, http.StatusForbidden, "Admin privileges required")
		return nil, false
	}
	return user, true
}

// isUniqueViolation reports whether err is a uniqueness-constraint
// rejection from either supported driver.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// fetchSettings loads the singleton election settings row. Returns
// sql.ErrNoRows when no admin has touched the lifecycle yet.
func fetchSettings(db *sql.DB) (*models.ElectionSettings, error) {
	var s models.ElectionSettings
	err := db.QueryRow(`
		SELECT id, start_date, end_date, is_active, results_visible, updated_at
		FROM election_settings
		ORDER BY id
		LIMIT 1
	`).Scan(&s.ID, &s.StartDate, &s.EndDate, &s.IsActive, &s.ResultsVisible, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// isTwelveDigits checks the national id format: exactly 12 ASCII digits.
func isTwelveDigits(s string) bool {
	if len(s) != 12 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
