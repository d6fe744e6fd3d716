// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/danielhkuo/clear-ballot/cliparse"
	"github.com/danielhkuo/clear-ballot/middleware"
	"github.com/danielhkuo/clear-ballot/models"
)

type ElectionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewElectionHandler(db *sql.DB, cfg cliparse.Config) *ElectionHandler {
	return &ElectionHandler{db: db, cfg: cfg}
}

// Status handles GET /election/status. Public; with no settings row the
// election reads as inactive with hidden results.
func (h *ElectionHandler) Status(w http.ResponseWriter, r *http.Request) {
	settings, err := fetchSettings(h.db)
	if err == sql.ErrNoRows {
		middleware.JSONResponse(w, http.StatusOK, models.ElectionStatus{})
		return
	}
	if err != nil {
		slog.Error("failed to query election settings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ElectionStatus{
		IsActive:       settings.IsActive,
		StartDate:      &settings.StartDate,
		EndDate:        &settings.EndDate,
		ResultsVisible: settings.ResultsVisible,
	})
}

// SetActive handles PUT /admin/election-status (admin). The toggle is
// purely manual; start/end dates are informational and never flip
// is_active on their own.
func (h *ElectionHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.db, h.cfg); !ok {
		return
	}

	var req models.ElectionActiveRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	settings, err := h.upsertSettings("is_active", req.IsActive)
	if err != nil {
		slog.Error("failed to update election status", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update election status")
		return
	}

	slog.Info("election status updated", "is_active", req.IsActive)

	middleware.JSONResponse(w, http.StatusOK, settings)
}

// SetResultsVisible handles PUT /admin/results-visibility (admin).
func (h *ElectionHandler) SetResultsVisible(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.db, h.cfg); !ok {
		return
	}

	var req models.ResultsVisibleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	settings, err := h.upsertSettings("results_visible", req.ResultsVisible)
	if err != nil {
		slog.Error("failed to update results visibility", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update results visibility")
		return
	}

	slog.Info("results visibility updated", "results_visible", req.ResultsVisible)

	middleware.JSONResponse(w, http.StatusOK, settings)
}

// upsertSettings applies one boolean toggle to the singleton settings
// row, creating it with default dates (start now, end in 24h) if no
// admin has touched the lifecycle yet. column is one of the two fixed
// toggle names, never caller input.
func (h *ElectionHandler) upsertSettings(column string, value bool) (*models.ElectionSettings, error) {
	now := time.Now()

	existing, err := fetchSettings(h.db)
	if err == sql.ErrNoRows {
		var s models.ElectionSettings
		err := h.db.QueryRow(`
			INSERT INTO election_settings (start_date, end_date, `+column+`, updated_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id, start_date, end_date, is_active, results_visible, updated_at
		`, now, now.Add(24*time.Hour), value, now).Scan(
			&s.ID, &s.StartDate, &s.EndDate, &s.IsActive, &s.ResultsVisible, &s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		return &s, nil
	}
	if err != nil {
		return nil, err
	}

	var s models.ElectionSettings
	err = h.db.QueryRow(`
		UPDATE election_settings
		SET `+column+` = $1, updated_at = $2
		WHERE id = $3
		RETURNING id, start_date, end_date, is_active, results_visible, updated_at
	`, value, now, existing.ID).Scan(
		&s.ID, &s.StartDate, &s.EndDate, &s.IsActive, &s.ResultsVisible, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Results handles GET /election/results.
//
// Non-admin requests are refused until an admin flips results_visible.
// Every candidate appears in the output, zero votes included; ranking
// is stable by vote count descending with roster order breaking ties.
func (h *ElectionHandler) Results(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.db, h.cfg)
	if !ok {
		return
	}

	settings, err := fetchSettings(h.db)
	if err != nil && err != sql.ErrNoRows {
		slog.Error("failed to query election settings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	resultsVisible := settings != nil && settings.ResultsVisible
	if !user.Role.IsAdmin() && !resultsVisible {
		middleware.ErrorResponse(w, http.StatusForbidden, "Election results are not yet available")
		return
	}

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

	results := []models.CandidateResult{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Party, &c.Age, &c.Qualification, &c.CreatedAt, &c.UpdatedAt); err != nil {
			slog.Error("failed to scan candidate", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		results = append(results, models.CandidateResult{Candidate: c})
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	countRows, err := h.db.Query(`
		SELECT candidate_id, COUNT(*)
		FROM votes
		GROUP BY candidate_id
	`)
	if err != nil {
		slog.Error("failed to query vote counts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer countRows.Close()

	counts := make(map[int]int)
	totalVotes := 0
	for countRows.Next() {
		var candidateID, count int
		if err := countRows.Scan(&candidateID, &count); err != nil {
			slog.Error("failed to scan vote count", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		counts[candidateID] = count
		totalVotes += count
	}
	if err := countRows.Err(); err != nil {
		slog.Error("failed to iterate vote counts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	for i := range results {
		results[i].VoteCount = counts[results[i].ID]
		if totalVotes > 0 {
			results[i].Percentage = float64(results[i].VoteCount) / float64(totalVotes) * 100
		}
	}

	// Stable: ties keep roster (id) order
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].VoteCount > results[j].VoteCount
	})

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		TotalVotes: totalVotes,
		Candidates: results,
	})
}
