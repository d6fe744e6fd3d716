// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first (via godotenv) so
local development does not need exported variables.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: connection string (required)
  - DatabaseType: "postgres" or "sqlite" (default: postgres)
  - JWTSecret: secret for signing auth tokens (required)
  - Environment: "development" or "production"
  - AdminEmail / AdminPassword / AdminName: optional bootstrap admin

# CLI Flags

	-p           Server port
	-d           Database URL
	-t           Database type
	-e           Environment
	--jwt-secret JWT signing secret

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	ENVIRONMENT    → -e
	JWT_SECRET     → --jwt-secret
	ADMIN_EMAIL, ADMIN_PASSWORD, ADMIN_NAME

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - JWT_SECRET must be provided
  - DATABASE_TYPE, when set, must be sqlite or postgres
*/
package cliparse
