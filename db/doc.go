// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and admin bootstrap.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes. Both PostgreSQL and SQLite dialects are provided; the
application SQL sticks to the common subset ($n placeholders, RETURNING)
so handlers run unchanged against either.

# Tables

The schema includes:

  - users: voter and admin accounts with registration and vote flags
  - candidates: the admin-managed roster
  - votes: one immutable ballot per voter
  - election_settings: the singleton lifecycle record

# Relationships

	users 1──0..1 votes
	candidates 1──* votes

votes.voter_id carries a UNIQUE constraint. This is the storage-level
backstop for the one-vote-per-voter invariant: the has_voted flag check
in the handler is a fast path, the constraint is the guarantee.

# Admin Bootstrap

EnsureAdmin seeds an admin account on startup when ADMIN_EMAIL and
ADMIN_PASSWORD are configured. Idempotent: a second start with the same
email is a no-op.
*/
package db
