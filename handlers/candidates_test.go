// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/clear-ballot/models"
	"github.com/danielhkuo/clear-ballot/testutil"
)

func TestCreateCandidate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewCandidateHandler(db, cfg)

	admin := testutil.CreateTestUser(t, db, "admin@example.com", "000000000001", models.RoleAdmin, false, false)
	voter := testutil.CreateTestUser(t, db, "voter@example.com", "123456789012", models.RoleVoter, false, false)

	tests := []struct {
		name           string
		asUser         models.User
		noAuth         bool
		request        models.CandidateRequest
		expectedStatus int
	}{
		{
			name:           "valid candidate",
			asUser:         admin,
			request:        models.CandidateRequest{Name: "Jane Doe", Party: "Unity", Age: 45, Qualification: "Law degree"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "under minimum age",
			asUser:         admin,
			request:        models.CandidateRequest{Name: "Too Young", Party: "Unity", Age: 24, Qualification: "Graduate"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing party",
			asUser:         admin,
			request:        models.CandidateRequest{Name: "No Party", Age: 40, Qualification: "Graduate"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing qualification",
			asUser:         admin,
			request:        models.CandidateRequest{Name: "No Quals", Party: "Unity", Age: 40},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "name too short",
			asUser:         admin,
			request:        models.CandidateRequest{Name: "X", Party: "Unity", Age: 40, Qualification: "Graduate"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non-admin forbidden",
			asUser:         voter,
			request:        models.CandidateRequest{Name: "Jane Doe", Party: "Unity", Age: 45, Qualification: "Graduate"},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "anonymous unauthorized",
			noAuth:         true,
			request:        models.CandidateRequest{Name: "Jane Doe", Party: "Unity", Age: 45, Qualification: "Graduate"},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.noAuth {
				req = testutil.MakeRequest("POST", "/candidates", tt.request)
			} else {
				req = testutil.MakeRequest("POST", "/candidates", tt.request, testutil.AuthCookie(t, tt.asUser))
			}

			w := httptest.NewRecorder()
			handler.Create(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var resp models.CandidateResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Candidate.ID == 0 {
					t.Error("Expected non-zero candidate id")
				}
				if resp.Candidate.Age != tt.request.Age {
					t.Errorf("Expected age %d, got %d", tt.request.Age, resp.Candidate.Age)
				}
			}
		})
	}
}

func TestListCandidates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewCandidateHandler(db, cfg)

	t.Run("empty roster", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.List(w, testutil.MakeRequest("GET", "/candidates", nil))

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp []models.Candidate
		testutil.AssertJSON(t, w, &resp)
		if len(resp) != 0 {
			t.Errorf("Expected empty list, got %d candidates", len(resp))
		}
	})

	t.Run("roster in id order, no auth needed", func(t *testing.T) {
		first := testutil.CreateTestCandidate(t, db, "First", "Unity", 40)
		second := testutil.CreateTestCandidate(t, db, "Second", "Progress", 52)

		w := httptest.NewRecorder()
		handler.List(w, testutil.MakeRequest("GET", "/candidates", nil))

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp []models.Candidate
		testutil.AssertJSON(t, w, &resp)
		if len(resp) != 2 {
			t.Fatalf("Expected 2 candidates, got %d", len(resp))
		}
		if resp[0].ID != first || resp[1].ID != second {
			t.Error("Expected candidates in roster (id) order")
		}
	})
}

func TestGetCandidate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewCandidateHandler(db, cfg)

	id := testutil.CreateTestCandidate(t, db, "Jane Doe", "Unity", 45)

	tests := []struct {
		name           string
		pathID         string
		expectedStatus int
	}{
		{"existing candidate", "", http.StatusOK},
		{"unknown id", "9999", http.StatusNotFound},
		{"malformed id", "abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pathID := tt.pathID
			if pathID == "" {
				pathID = itoa(id)
			}
			req := testutil.MakeRequest("GET", "/candidates/"+pathID, nil)
			req.SetPathValue("id", pathID)

			w := httptest.NewRecorder()
			handler.Get(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestUpdateCandidate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewCandidateHandler(db, cfg)

	admin := testutil.CreateTestUser(t, db, "admin@example.com", "000000000001", models.RoleAdmin, false, false)
	id := testutil.CreateTestCandidate(t, db, "Jane Doe", "Unity", 45)

	req := testutil.MakeRequest("PUT", "/candidates/"+itoa(id), models.CandidateRequest{
		Name: "Jane Doe", Party: "Renewal", Age: 46, Qualification: "Law degree",
	}, testutil.AuthCookie(t, admin))
	req.SetPathValue("id", itoa(id))

	w := httptest.NewRecorder()
	handler.Update(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var party string
	if err := db.QueryRow(`SELECT party FROM candidates WHERE id = $1`, id).Scan(&party); err != nil {
		t.Fatalf("Failed to query candidate: %v", err)
	}
	if party != "Renewal" {
		t.Errorf("Expected updated party Renewal, got %q", party)
	}
}

func TestDeleteCandidate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewCandidateHandler(db, cfg)

	admin := testutil.CreateTestUser(t, db, "admin@example.com", "000000000001", models.RoleAdmin, false, false)

	t.Run("delete without votes succeeds", func(t *testing.T) {
		id := testutil.CreateTestCandidate(t, db, "Unpopular", "Unity", 40)

		req := testutil.MakeRequest("DELETE", "/candidates/"+itoa(id), nil, testutil.AuthCookie(t, admin))
		req.SetPathValue("id", itoa(id))

		w := httptest.NewRecorder()
		handler.Delete(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("delete with recorded votes refused", func(t *testing.T) {
		id := testutil.CreateTestCandidate(t, db, "Popular", "Unity", 40)
		voter := testutil.CreateTestUser(t, db, "voted@example.com", "123456789012", models.RoleVoter, true, false)
		testutil.CastTestVote(t, db, voter.ID, id)

		req := testutil.MakeRequest("DELETE", "/candidates/"+itoa(id), nil, testutil.AuthCookie(t, admin))
		req.SetPathValue("id", itoa(id))

		w := httptest.NewRecorder()
		handler.Delete(w, req)

		testutil.AssertStatus(t, w, http.StatusConflict)

		// Candidate must still exist
		var exists bool
		if err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM candidates WHERE id = $1)`, id).Scan(&exists); err != nil {
			t.Fatalf("Failed to query candidate: %v", err)
		}
		if !exists {
			t.Error("Candidate with votes was deleted")
		}
	})

	t.Run("delete unknown id", func(t *testing.T) {
		req := testutil.MakeRequest("DELETE", "/candidates/9999", nil, testutil.AuthCookie(t, admin))
		req.SetPathValue("id", "9999")

		w := httptest.NewRecorder()
		handler.Delete(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}
