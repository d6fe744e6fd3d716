// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/danielhkuo/clear-ballot/models"
	"github.com/danielhkuo/clear-ballot/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "clear-ballot API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	// Each route should be matched by the mux; 400/401/403/404 from the
	// handler itself are all fine here
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},

		{"POST", "/auth/signup"},
		{"POST", "/auth/login"},
		{"POST", "/auth/admin-login"},
		{"GET", "/auth/me"},
		{"GET", "/auth/logout"},

		{"GET", "/candidates"},
		{"POST", "/candidates"},
		{"GET", "/candidates/1"},
		{"PUT", "/candidates/1"},
		{"DELETE", "/candidates/1"},

		{"POST", "/voters/register"},
		{"POST", "/votes"},

		{"GET", "/election/status"},
		{"GET", "/election/results"},
		{"PUT", "/admin/election-status"},
		{"PUT", "/admin/results-visibility"},

		{"GET", "/admin/voters"},
		{"GET", "/admin/voter-stats"},
		{"DELETE", "/admin/voters/1"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},            // Only GET is defined
		{"DELETE", "/election/status"}, // Only GET is defined
		{"GET", "/votes"},              // Only POST is defined
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	id := testutil.CreateTestCandidate(t, db, "Alpha", "Unity", 40)

	t.Run("candidate ID extraction", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/candidates/"+strconv.Itoa(id), nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200 for an existing candidate, got %d. Body: %s", w.Code, w.Body.String())
		}

		var resp models.Candidate
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.ID != id {
			t.Errorf("Expected candidate %d, got %d", id, resp.ID)
		}
	})

	t.Run("unknown candidate", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/candidates/9999", nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404 for unknown candidate, got %d", w.Code)
		}
	})
}
