// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/clear-ballot/cliparse"
	"github.com/danielhkuo/clear-ballot/middleware"
	"github.com/danielhkuo/clear-ballot/models"
)

type VoteHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVoteHandler(db *sql.DB, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{db: db, cfg: cfg}
}

// CastVote handles POST /votes.
//
// Gates are checked in a fixed order, each with its own failure:
// authenticated, registered, not yet voted, election active, candidate
// exists. The has_voted check here is only the fast path; the UNIQUE
// constraint on votes.voter_id decides races, and a constraint
// rejection surfaces as the same already-voted error.
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.db, h.cfg)
	if !ok {
		return
	}

	if !user.IsRegistered {
		middleware.ErrorResponse(w, http.StatusBadRequest, "You must be registered to vote")
		return
	}

	if user.HasVoted {
		middleware.ErrorResponse(w, http.StatusBadRequest, "You have already cast your vote")
		return
	}

	settings, err := fetchSettings(h.db)
	if err != nil && err != sql.ErrNoRows {
		slog.Error("failed to query election settings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if settings == nil || !settings.IsActive {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Voting is not currently active")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.CandidateID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid candidate ID")
		return
	}

	var candidateExists bool
	err = h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM candidates WHERE id = $1)
	`, req.CandidateID).Scan(&candidateExists)
	if err != nil {
		slog.Error("failed to check candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !candidateExists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}

	// Ballot insert and has_voted flip commit or roll back as a unit; a
	// half-applied state must never persist
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	vote := models.Vote{
		VoterID:     user.ID,
		CandidateID: req.CandidateID,
		CreatedAt:   time.Now(),
	}
	err = tx.QueryRow(`
		INSERT INTO votes (voter_id, candidate_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, vote.VoterID, vote.CandidateID, vote.CreatedAt).Scan(&vote.ID)

	if err != nil {
		if isUniqueViolation(err) {
			// Lost a race with another request for the same voter
			middleware.ErrorResponse(w, http.StatusBadRequest, "You have already cast your vote")
			return
		}
		slog.Error("failed to insert vote", "error", err, "user_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	_, err = tx.Exec(`
		UPDATE users SET has_voted = TRUE, updated_at = $1 WHERE id = $2
	`, time.Now(), user.ID)
	if err != nil {
		slog.Error("failed to update has_voted", "error", err, "user_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	slog.Info("vote cast", "user_id", user.ID, "candidate_id", req.CandidateID)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		Message: "Vote cast successfully",
		Vote:    vote,
	})
}
