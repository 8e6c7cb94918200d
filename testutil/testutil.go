// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/baseball-dictionary/auth"
	"github.com/danielhkuo/baseball-dictionary/cliparse"
	"github.com/danielhkuo/baseball-dictionary/db"
	"github.com/danielhkuo/baseball-dictionary/models"
)

// TestAdminKey is the admin key accepted by GetTestConfig
const TestAdminKey = "test-admin-key"

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(context.Background(), conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SeedTestTerms loads the sample catalog
func SeedTestTerms(t *testing.T, conn *sql.DB) {
	t.Helper()
	if _, err := db.SeedTerms(context.Background(), conn, models.SampleTerms()); err != nil {
		t.Fatalf("Failed to seed terms: %v", err)
	}
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: db.TypeSQLite,
		DatabaseURL:  ":memory:",
		AdminAPIKey:  TestAdminKey,
		DataMode:     cliparse.DataModeLive,
		SeedSample:   true,
	}
}

// AdminHeaders returns the headers for an authenticated admin request
func AdminHeaders() map[string]string {
	return map[string]string{"X-API-Key": TestAdminKey}
}

// CreateTestSubmission inserts a submission and returns its ID
// status should be "pending", "approved", or "rejected"
func CreateTestSubmission(t *testing.T, conn *sql.DB, term, category, status string, email *string, submittedAt time.Time) string {
	t.Helper()

	id := auth.GenerateID()
	_, err := conn.Exec(`
		INSERT INTO submission (id, term, analogy, category, submitted_by, email, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, id, term, "Test analogy for "+term, category, "Tester", email, status, submittedAt)
	if err != nil {
		t.Fatalf("Failed to create test submission: %v", err)
	}

	return id
}

// SubmissionStatus reads back a submission's status
func SubmissionStatus(t *testing.T, conn *sql.DB, id string) string {
	t.Helper()

	var status string
	if err := conn.QueryRow("SELECT status FROM submission WHERE id = $1", id).Scan(&status); err != nil {
		t.Fatalf("Failed to read submission status: %v", err)
	}
	return status
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
