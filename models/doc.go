// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SignupRequest: name, email, password, confirmPassword, nationalId
  - LoginRequest: email, password
  - RegisterVoterRequest: nationalId, address
  - CandidateRequest: name, party, age, qualification
  - CastVoteRequest: candidateId
  - ElectionActiveRequest: isActive
  - ResultsVisibleRequest: resultsVisible

# Response Types

Types for JSON responses:

  - SignupResponse: message, userId
  - LoginResponse: message, user
  - CastVoteResponse: message, vote
  - CandidateResponse: message, candidate
  - ElectionStatus: isActive, startDate, endDate, resultsVisible
  - ResultsResponse: totalVotes, candidates (with voteCount, percentage)
  - VoterStatsResponse: aggregate voter counts for the admin dashboard
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - User: account record with registration and vote flags
  - Candidate: contestant on the roster
  - Vote: immutable ballot linking one voter to one candidate
  - ElectionSettings: the singleton lifecycle record

# Roles

Role is a closed type with two values:

	RoleVoter Role = "user"
	RoleAdmin Role = "admin"

Authorization checks go through Role.IsAdmin rather than ad hoc string
comparison.
*/
package models
