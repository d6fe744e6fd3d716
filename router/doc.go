// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the clear-ballot API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Authentication:

	POST /auth/signup      - Create account
	POST /auth/login       - Log in (sets auth-token cookie)
	POST /auth/admin-login - Log in, admin accounts only
	GET  /auth/me          - Current account
	GET  /auth/logout      - Clear the cookie

Candidate roster (writes admin-only):

	GET    /candidates      - List roster
	POST   /candidates      - Add candidate
	GET    /candidates/{id} - Get candidate
	PUT    /candidates/{id} - Update candidate
	DELETE /candidates/{id} - Remove candidate (refused if voted for)

Voting:

	POST /voters/register - Confirm identity, unlock voting
	POST /votes           - Cast the one ballot

Election:

	GET /election/status  - Public lifecycle projection
	GET /election/results - Tally (gated by results visibility)

Admin:

	PUT    /admin/election-status    - Toggle voting active
	PUT    /admin/results-visibility - Toggle results visibility
	GET    /admin/voters             - List voter accounts
	GET    /admin/voter-stats        - Aggregate counts
	DELETE /admin/voters/{id}        - Remove a voter account

# Handler Initialization

The router creates handler instances with dependency injection:

	authHandler := handlers.NewAuthHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
