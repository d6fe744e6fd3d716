// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/clear-ballot/cliparse"
	"github.com/danielhkuo/clear-ballot/handlers"
	"github.com/danielhkuo/clear-ballot/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	candidateHandler := handlers.NewCandidateHandler(db, cfg)
	voterHandler := handlers.NewVoterHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, cfg)
	electionHandler := handlers.NewElectionHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Authentication
	mux.HandleFunc("POST /auth/signup", middleware.WithLogging(authHandler.Signup))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("POST /auth/admin-login", middleware.WithLogging(authHandler.AdminLogin))
	mux.HandleFunc("GET /auth/me", middleware.WithLogging(authHandler.Me))
	mux.HandleFunc("GET /auth/logout", middleware.WithLogging(authHandler.Logout))

	// Candidate roster (writes are admin-only, enforced in handlers)
	mux.HandleFunc("GET /candidates", middleware.WithLogging(candidateHandler.List))
	mux.HandleFunc("POST /candidates", middleware.WithLogging(candidateHandler.Create))
	mux.HandleFunc("GET /candidates/{id}", middleware.WithLogging(candidateHandler.Get))
	mux.HandleFunc("PUT /candidates/{id}", middleware.WithLogging(candidateHandler.Update))
	mux.HandleFunc("DELETE /candidates/{id}", middleware.WithLogging(candidateHandler.Delete))

	// Voter registration and ballot casting
	mux.HandleFunc("POST /voters/register", middleware.WithLogging(voterHandler.Register))
	mux.HandleFunc("POST /votes", middleware.WithLogging(voteHandler.CastVote))

	// Election lifecycle and results
	mux.HandleFunc("GET /election/status", middleware.WithLogging(electionHandler.Status))
	mux.HandleFunc("GET /election/results", middleware.WithLogging(electionHandler.Results))
	mux.HandleFunc("PUT /admin/election-status", middleware.WithLogging(electionHandler.SetActive))
	mux.HandleFunc("PUT /admin/results-visibility", middleware.WithLogging(electionHandler.SetResultsVisible))

	// Admin voter management
	mux.HandleFunc("GET /admin/voters", middleware.WithLogging(voterHandler.ListVoters))
	mux.HandleFunc("GET /admin/voter-stats", middleware.WithLogging(voterHandler.VoterStats))
	mux.HandleFunc("DELETE /admin/voters/{id}", middleware.WithLogging(voterHandler.DeleteVoter))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("clear-ballot API v1"))
	})

	return mux
}
