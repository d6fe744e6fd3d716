// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/clear-ballot/cliparse"
	"github.com/danielhkuo/clear-ballot/middleware"
	"github.com/danielhkuo/clear-ballot/models"
)

type VoterHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVoterHandler(db *sql.DB, cfg cliparse.Config) *VoterHandler {
	return &VoterHandler{db: db, cfg: cfg}
}

// Register handles POST /voters/register. Confirms the account's own
// national id and records an address, unlocking voting eligibility.
func (h *VoterHandler) Register(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.db, h.cfg)
	if !ok {
		return
	}

	if user.IsRegistered {
		middleware.ErrorResponse(w, http.StatusBadRequest, "You are already registered")
		return
	}

	var req models.RegisterVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !isTwelveDigits(req.NationalID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "National ID must be exactly 12 digits")
		return
	}
	if req.Address == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Address is required")
		return
	}

	// The submitted id must match the account's own id of record;
	// registration is identity confirmation, not identity change
	if req.NationalID != user.NationalID {
		middleware.ErrorResponse(w, http.StatusBadRequest, "National ID does not match your account")
		return
	}

	var updated models.User
	err := h.db.QueryRow(`
		UPDATE users
		SET address = $1, is_registered = TRUE, updated_at = $2
		WHERE id = $3
		RETURNING id, name, email, password, national_id, address,
		          is_registered, has_voted, role, created_at, updated_at
	`, req.Address, time.Now(), user.ID).Scan(
		&updated.ID, &updated.Name, &updated.Email, &updated.Password, &updated.NationalID, &updated.Address,
		&updated.IsRegistered, &updated.HasVoted, &updated.Role, &updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		slog.Error("failed to register voter", "error", err, "user_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	slog.Info("voter registered", "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Message: "Registration successful",
		User:    updated,
	})
}

// ListVoters handles GET /admin/voters
func (h *VoterHandler) ListVoters(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.db, h.cfg); !ok {
		return
	}

	rows, err := h.db.Query(`
		SELECT id, name, email, password, national_id, address,
		       is_registered, has_voted, role, created_at, updated_at
		FROM users
		WHERE role = 'user'
		ORDER BY id
	`)
	if err != nil {
		slog.Error("failed to query voters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	voters := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.Password, &u.NationalID, &u.Address,
			&u.IsRegistered, &u.HasVoted, &u.Role, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			slog.Error("failed to scan voter", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		voters = append(voters, u)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate voters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, voters)
}

// VoterStats handles GET /admin/voter-stats
func (h *VoterHandler) VoterStats(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.db, h.cfg); !ok {
		return
	}

	var stats models.VoterStatsResponse
	err := h.db.QueryRow(`SELECT COUNT(*) FROM users WHERE role = 'user'`).Scan(&stats.TotalVoters)
	if err == nil {
		err = h.db.QueryRow(`SELECT COUNT(*) FROM users WHERE role = 'user' AND is_registered`).Scan(&stats.RegisteredVoters)
	}
	if err == nil {
		err = h.db.QueryRow(`SELECT COUNT(*) FROM users WHERE role = 'user' AND has_voted`).Scan(&stats.VotedVoters)
	}
	if err == nil {
		err = h.db.QueryRow(`SELECT COUNT(*) FROM votes`).Scan(&stats.TotalVotes)
	}
	if err != nil {
		slog.Error("failed to query voter stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats)
}

// DeleteVoter handles DELETE /admin/voters/{id}. Any ballot cast by the
// voter is removed in the same transaction so the has-voted bookkeeping
// and the votes table never disagree.
func (h *VoterHandler) DeleteVoter(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.db, h.cfg); !ok {
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid voter ID")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM votes WHERE voter_id = $1`, id); err != nil {
		slog.Error("failed to delete voter ballots", "error", err, "voter_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete voter")
		return
	}

	res, err := tx.Exec(`DELETE FROM users WHERE id = $1 AND role = 'user'`, id)
	if err != nil {
		slog.Error("failed to delete voter", "error", err, "voter_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete voter")
		return
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Voter not found")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete voter")
		return
	}

	slog.Info("voter deleted", "voter_id", id)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Voter deleted successfully",
	})
}
