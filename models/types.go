// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Role is the closed set of account capabilities. Stored as text in the
// users table; "user" is the wire value for ordinary voters.
type Role string

const (
	RoleVoter Role = "user"
	RoleAdmin Role = "admin"
)

// IsAdmin reports whether the role carries admin capability.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Request types

type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	NationalID      string `json:"nationalId"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterVoterRequest struct {
	NationalID string `json:"nationalId"`
	Address    string `json:"address"`
}

type CandidateRequest struct {
	Name          string `json:"name"`
	Party         string `json:"party"`
	Age           int    `json:"age"`
	Qualification string `json:"qualification"`
}

type CastVoteRequest struct {
	CandidateID int `json:"candidateId"`
}

type ElectionActiveRequest struct {
	IsActive bool `json:"isActive"`
}

type ResultsVisibleRequest struct {
	ResultsVisible bool `json:"resultsVisible"`
}

// Response types

type SignupResponse struct {
	Message string `json:"message"`
	UserID  int    `json:"userId"`
}

type LoginResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

type CastVoteResponse struct {
	Message string `json:"message"`
	Vote    Vote   `json:"vote"`
}

type CandidateResponse struct {
	Message   string    `json:"message"`
	Candidate Candidate `json:"candidate"`
}

// ElectionStatus is the read-only projection every gate check and the
// public status endpoint consume. Dates are null until a settings row
// exists.
type ElectionStatus struct {
	IsActive       bool       `json:"isActive"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	ResultsVisible bool       `json:"resultsVisible"`
}

type CandidateResult struct {
	Candidate
	VoteCount  int     `json:"voteCount"`
	Percentage float64 `json:"percentage"`
}

type ResultsResponse struct {
	TotalVotes int               `json:"totalVotes"`
	Candidates []CandidateResult `json:"candidates"`
}

type VoterStatsResponse struct {
	TotalVoters      int `json:"totalVoters"`
	RegisteredVoters int `json:"registeredVoters"`
	VotedVoters      int `json:"votedVoters"`
	TotalVotes       int `json:"totalVotes"`
}

// Domain types

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Password     string    `json:"-"` // bcrypt hash, never exposed
	NationalID   string    `json:"nationalId"`
	Address      *string   `json:"address"`
	IsRegistered bool      `json:"isRegistered"`
	HasVoted     bool      `json:"hasVoted"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Candidate struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Party         string    `json:"party"`
	Age           int       `json:"age"`
	Qualification string    `json:"qualification"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Vote is immutable once created. voter_id is UNIQUE in storage; that
// constraint, not the application-level has_voted check, is what keeps
// the one-vote rule true under concurrent requests.
type Vote struct {
	ID          int       `json:"id"`
	VoterID     int       `json:"voterId"`
	CandidateID int       `json:"candidateId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ElectionSettings struct {
	ID             int       `json:"id"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	IsActive       bool      `json:"isActive"`
	ResultsVisible bool      `json:"resultsVisible"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
