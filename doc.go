// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the clear-ballot API server.

clear-ballot is an online election backend: voters sign up, confirm
their identity to register, cast a single ballot, and view tallies;
admins manage the candidate roster, the voter list, and the election
lifecycle (voting active, results visible).

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... JWT_SECRET=... go run main.go

Or with flags:

	go run main.go -p 3318 -d "postgres://..." --jwt-secret "..."

# Configuration

Required settings:

  - DATABASE_URL (-d): connection string
  - JWT_SECRET (--jwt-secret): secret for signing auth tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): postgres (default) or sqlite
  - ENVIRONMENT (-e): production enables the Secure cookie flag
  - ADMIN_EMAIL / ADMIN_PASSWORD / ADMIN_NAME: bootstrap admin account

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (auth, candidates, voters, votes, election)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - auth: JWT credentials, cookies, password hashing
  - db: Schema creation and admin bootstrap
  - cliparse: Configuration parsing

# The One-Vote Invariant

A voter gets exactly one ballot. The casting handler checks the
has_voted flag, but the guarantee lives in the database: votes.voter_id
is UNIQUE, and the ballot insert plus the flag update run in a single
transaction. Two concurrent casts race into the constraint and exactly
one commits.

See package documentation for each component.
*/
package main
