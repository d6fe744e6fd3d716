// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the clear-ballot API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AuthHandler: signup, login, admin login, session info, logout
  - CandidateHandler: roster CRUD (admin writes)
  - VoterHandler: voter registration and the admin voter views
  - VoteHandler: ballot casting
  - ElectionHandler: lifecycle toggles, public status, results

Handlers are created via constructor functions that accept *sql.DB and Config:

	voteHandler := handlers.NewVoteHandler(db, cfg)

# Voter State Machine

Per voter, relative to the one election:

	Unregistered → Registered-NotVoted → Voted

The first transition is VoterHandler.Register (own national id plus an
address); the second is VoteHandler.CastVote. Voted is terminal: there
is no vote change and no retraction.

# Casting Gates

CastVote checks, in order: authenticated, registered, not yet voted,
election active, candidate exists. Each gate fails with its own message
so a caller can tell why the ballot was refused. The ballot insert and
the has_voted update run in one transaction, and the UNIQUE constraint
on votes.voter_id settles concurrent casts: the loser's insert is
rejected by the database and reported as already-voted.

# Results

ElectionHandler.Results aggregates votes per candidate with
percentages. Non-admins are refused until results_visible is set;
admins can always look. Candidates with zero votes are included, and
the ordering is vote count descending with roster order for ties.

# Authorization

requireUser resolves the auth-token cookie to a live users row;
requireAdmin adds the Role.IsAdmin capability check. Handlers never
trust token claims for authorization data.
*/
package handlers
