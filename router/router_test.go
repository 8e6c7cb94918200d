// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/baseball-dictionary/auth"
	"github.com/danielhkuo/baseball-dictionary/models"
	"github.com/danielhkuo/baseball-dictionary/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(db, testutil.GetTestConfig(), Services{})

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

func TestAPIRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(db, testutil.GetTestConfig(), Services{})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "baseball-dictionary API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestAdminRoutesRequireKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(db, testutil.GetTestConfig(), Services{})

	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/api/admin/submissions"},
		{"POST", "/api/admin/approve/some-id"},
		{"POST", "/api/admin/reject/some-id"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			for _, headers := range []map[string]string{nil, {"X-API-Key": "wrong"}} {
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, testutil.MakeRequest(tc.method, tc.path, nil, headers))
				testutil.AssertStatus(t, w, http.StatusUnauthorized)
			}
		})
	}
}

func TestRouteExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(db, testutil.GetTestConfig(), Services{})

	// Routes should reach a handler; 404 here would mean no route matched
	testCases := []struct {
		method string
		path   string
		want   int
	}{
		{"GET", "/api/terms", http.StatusOK},
		{"GET", "/api/search?q=walk", http.StatusOK},
		{"POST", "/api/submit", http.StatusBadRequest},
		{"GET", "/api/admin/submissions", http.StatusOK},
		{"POST", "/api/admin/reject/missing", http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, testutil.MakeRequest(tc.method, tc.path, nil, testutil.AdminHeaders()))
			testutil.AssertStatus(t, w, tc.want)
		})
	}
}

func TestSubmitApproveFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	hash, err := auth.HashAdminKey(testutil.TestAdminKey, 4)
	if err != nil {
		t.Fatal(err)
	}
	verifier, err := auth.NewKeyVerifier("", hash)
	if err != nil {
		t.Fatal(err)
	}
	mux := NewRouter(db, testutil.GetTestConfig(), Services{Verifier: verifier})

	// Submit
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api/submit", models.SubmitTermRequest{
		Term:     "Rain delay",
		Analogy:  "Waiting for someone to finish their shower",
		Category: models.CategoryGameDay,
	}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var submitted models.SubmitTermResponse
	testutil.AssertJSON(t, w, &submitted)

	// Pending shows it
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/api/admin/submissions", nil, testutil.AdminHeaders()))
	testutil.AssertStatus(t, w, http.StatusOK)
	var pending []models.Submission
	testutil.AssertJSON(t, w, &pending)
	if len(pending) != 1 || pending[0].SubmittedBy != models.AnonymousSubmitter {
		t.Fatalf("Expected one anonymous pending submission, got %+v", pending)
	}
	if time.Since(pending[0].SubmittedDate) > time.Minute {
		t.Errorf("Unexpected submitted date %v", pending[0].SubmittedDate)
	}

	// Approve
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api/admin/approve/"+submitted.ID, nil, testutil.AdminHeaders()))
	testutil.AssertStatus(t, w, http.StatusOK)

	// Catalog now has it
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/api/terms", nil, nil))
	var terms []models.Term
	testutil.AssertJSON(t, w, &terms)
	if len(terms) != 1 || terms[0].Term != "Rain delay" {
		t.Errorf("Expected approved term in catalog, got %+v", terms)
	}

	// Second approval conflicts
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api/admin/approve/"+submitted.ID, nil, testutil.AdminHeaders()))
	testutil.AssertStatus(t, w, http.StatusConflict)
}
