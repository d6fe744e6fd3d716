// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"time"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// dbType selects the DDL dialect: "postgres" or "sqlite".
func CreateSchema(db *sql.DB, dbType string) error {
	ddl := schemaPostgres
	if dbType == "sqlite" {
		ddl = schemaSQLite
	}

	_, err := db.Exec(ddl)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// EnsureAdmin inserts a bootstrap admin account if no account with the
// given email exists. passwordHash must already be bcrypt-hashed.
func EnsureAdmin(db *sql.DB, name, email, passwordHash string) error {
	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)
	`, email).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if exists {
		return nil
	}

	now := time.Now()
	_, err = db.Exec(`
		INSERT INTO users (name, email, password, national_id, is_registered, has_voted, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, FALSE, FALSE, 'admin', $5, $6)
	`, name, email, passwordHash, "000000000000", now, now)
	if err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	return nil
}

const schemaPostgres = `
-- Voter and admin accounts
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password TEXT NOT NULL,
    national_id TEXT NOT NULL UNIQUE,
    address TEXT,
    is_registered BOOLEAN NOT NULL DEFAULT FALSE,
    has_voted BOOLEAN NOT NULL DEFAULT FALSE,
    role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_users_role ON users(role);

-- Candidate roster
CREATE TABLE IF NOT EXISTS candidates (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    party TEXT NOT NULL,
    age INTEGER NOT NULL CHECK (age >= 25),
    qualification TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);

-- Ballots. voter_id UNIQUE is the one-vote-per-voter invariant at the
-- storage level; concurrent casts race into this constraint, not past it.
CREATE TABLE IF NOT EXISTS votes (
    id SERIAL PRIMARY KEY,
    voter_id INTEGER NOT NULL UNIQUE REFERENCES users(id),
    candidate_id INTEGER NOT NULL REFERENCES candidates(id),
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_votes_candidate_id ON votes(candidate_id);

-- Election lifecycle (one row expected)
CREATE TABLE IF NOT EXISTS election_settings (
    id SERIAL PRIMARY KEY,
    start_date TIMESTAMP NOT NULL,
    end_date TIMESTAMP NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT FALSE,
    results_visible BOOLEAN NOT NULL DEFAULT FALSE,
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);
`

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password TEXT NOT NULL,
    national_id TEXT NOT NULL UNIQUE,
    address TEXT,
    is_registered BOOLEAN NOT NULL DEFAULT FALSE,
    has_voted BOOLEAN NOT NULL DEFAULT FALSE,
    role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_users_role ON users(role);

CREATE TABLE IF NOT EXISTS candidates (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    party TEXT NOT NULL,
    age INTEGER NOT NULL CHECK (age >= 25),
    qualification TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS votes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    voter_id INTEGER NOT NULL UNIQUE REFERENCES users(id),
    candidate_id INTEGER NOT NULL REFERENCES candidates(id),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_votes_candidate_id ON votes(candidate_id);

CREATE TABLE IF NOT EXISTS election_settings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    start_date TIMESTAMP NOT NULL,
    end_date TIMESTAMP NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT FALSE,
    results_visible BOOLEAN NOT NULL DEFAULT FALSE,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
