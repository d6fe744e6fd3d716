// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential issuing, verification, and password
hashing.

# Tokens

Credentials are HS256 JWTs carrying {id, email, role}, valid for 24
hours:

	token, err := auth.GenerateToken(user, cfg.JWTSecret)
	claims, err := auth.VerifyToken(token, cfg.JWTSecret)

The claims exist only to locate the account. Every authorization
decision re-reads the users row, so a stale role or flag inside a still
valid token never grants anything.

# Cookies

The token travels in an http-only cookie named "auth-token" (path /,
max-age 1 day, Secure in production):

	auth.SetTokenCookie(w, token, cfg.IsProduction())
	auth.ClearTokenCookie(w, cfg.IsProduction())

# Request Resolution

CurrentUser turns a request into a live account record:

	user, err := auth.CurrentUser(db, r, cfg.JWTSecret)

Missing, malformed, or expired credentials come back as ErrNoToken or
ErrInvalidToken; handlers treat both as anonymous.

# Passwords

bcrypt with the default cost:

	hash, err := auth.HashPassword(plaintext)
	ok := auth.CheckPassword(hash, plaintext)
*/
package auth
