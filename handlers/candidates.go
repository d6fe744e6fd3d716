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

type CandidateHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCandidateHandler(db *sql.DB, cfg cliparse.Config) *CandidateHandler {
	return &CandidateHandler{db: db, cfg: cfg}
}

// List handles GET /candidates
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, name, party, age, qualification, created_at, updated_at
		FROM candidates
		ORDER BY id
	`)
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Party, &c.Age, &c.Qualification, &c.CreatedAt, &c.UpdatedAt); err != nil {
			slog.Error("failed to scan candidate", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// Create handles POST /candidates (admin)
func (h *CandidateHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.db, h.cfg); !ok {
		return
	}

	var req models.CandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if msg, ok := validateCandidate(req); !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	now := time.Now()
	var c models.Candidate
	err := h.db.QueryRow(`
		INSERT INTO candidates (name, party, age, qualification, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, party, age, qualification, created_at, updated_at
	`, req.Name, req.Party, req.Age, req.Qualification, now, now).Scan(
		&c.ID, &c.Name, &c.Party, &c.Age, &c.Qualification, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		slog.Error("failed to insert candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create candidate")
		return
	}

	slog.Info("candidate created", "candidate_id", c.ID, "party", c.Party)

	middleware.JSONResponse(w, http.StatusCreated, models.CandidateResponse{
		Message:   "Candidate added successfully",
		Candidate: c,
	})
}

// Get handles GET /candidates/{id}
func (h *CandidateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := candidateID(w, r)
	if !ok {
		return
	}

	var c models.Candidate
	err := h.db.QueryRow(`
		SELECT id, name, party, age, qualification, created_at, updated_at
		FROM candidates
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Party, &c.Age, &c.Qualification, &c.CreatedAt, &c.UpdatedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}
	if err != nil {
		slog.Error("failed to query candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, c)
}

// Update handles PUT /candidates/{id} (admin)
func (h *CandidateHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.db, h.cfg); !ok {
		return
	}

	id, ok := candidateID(w, r)
	if !ok {
		return
	}

	var req models.CandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if msg, ok := validateCandidate(req); !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	var c models.Candidate
	err := h.db.QueryRow(`
		UPDATE candidates
		SET name = $1, party = $2, age = $3, qualification = $4, updated_at = $5
		WHERE id = $6
		RETURNING id, name, party, age, qualification, created_at, updated_at
	`, req.Name, req.Party, req.Age, req.Qualification, time.Now(), id).Scan(
		&c.ID, &c.Name, &c.Party, &c.Age, &c.Qualification, &c.CreatedAt, &c.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}
	if err != nil {
		slog.Error("failed to update candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update candidate")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CandidateResponse{
		Message:   "Candidate updated successfully",
		Candidate: c,
	})
}

// Delete handles DELETE /candidates/{id} (admin).
// Refused while any ballot references the candidate: removing the row
// would orphan votes and silently shrink the tally denominator.
func (h *CandidateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.db, h.cfg); !ok {
		return
	}

	id, ok := candidateID(w, r)
	if !ok {
		return
	}

	var hasVotes bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM votes WHERE candidate_id = $1)
	`, id).Scan(&hasVotes)
	if err != nil {
		slog.Error("failed to check candidate votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if hasVotes {
		middleware.ErrorResponse(w, http.StatusConflict, "Candidate has recorded votes and cannot be deleted")
		return
	}

	res, err := h.db.Exec(`DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete candidate")
		return
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}

	slog.Info("candidate deleted", "candidate_id", id)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Candidate deleted successfully",
	})
}

// candidateID parses the {id} path value, writing a 400 on bad input.
func candidateID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid candidate ID")
		return 0, false
	}
	return id, true
}

func validateCandidate(req models.CandidateRequest) (string, bool) {
	if len(req.Name) < 2 {
		return "Name must be at least 2 characters", false
	}
	if req.Party == "" {
		return "Party is required", false
	}
	if req.Age < 25 {
		return "Age must be at least 25 years", false
	}
	if req.Qualification == "" {
		return "Qualification is required", false
	}
	return "", true
}
