// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap/zaptest"

	"github.com/danielhkuo/premios/cliparse"
	"github.com/danielhkuo/premios/db"
	"github.com/danielhkuo/premios/store"
)

// TestDBURL opens a private in-memory SQLite database per connection pool
const TestDBURL = ":memory:"

// TestAdminKey is the admin key used by GetTestConfig
const TestAdminKey = "test-admin-key"

// Now is the fixed instant tests treat as the present
var Now = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

// Clock returns a clock frozen at Now
func Clock() func() time.Time {
	return func() time.Time { return Now }
}

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore returns a store over a fresh test database
func SetupTestStore(t *testing.T) (*store.Store, *sqlx.DB) {
	t.Helper()

	conn := SetupTestDB(t)
	return store.New(conn, zaptest.NewLogger(t)), conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8000,
		DatabaseURL:  TestDBURL,
		DatabaseType: db.TypeSQLite,
		AdminKey:     TestAdminKey,
		LogLevel:     "debug",
	}
}

// CreateTestQuestion inserts a question published at Now+offset and returns
// its ID. A negative offset puts the question in the past.
func CreateTestQuestion(t *testing.T, conn *sqlx.DB, text string, offset time.Duration) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO question (id, question_text, pub_date)
		VALUES ($1, $2, $3)
	`, id, text, store.Timestamp(Now.Add(offset)))
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	return id
}

// AddTestChoice adds a choice to a question and returns the choice ID
func AddTestChoice(t *testing.T, conn *sqlx.DB, questionID, text string, votes int) string {
	t.Helper()

	var order int
	if err := conn.Get(&order, `SELECT COUNT(*) FROM choice WHERE question_id = $1`, questionID); err != nil {
		t.Fatalf("Failed to count test choices: %v", err)
	}

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO choice (id, question_id, choice_text, votes, sort_order)
		VALUES ($1, $2, $3, $4, $5)
	`, id, questionID, text, votes, order)
	if err != nil {
		t.Fatalf("Failed to create test choice: %v", err)
	}

	return id
}

// Votes reads the current vote count of a choice
func Votes(t *testing.T, conn *sqlx.DB, choiceID string) int {
	t.Helper()

	var n int
	if err := conn.Get(&n, `SELECT votes FROM choice WHERE id = $1`, choiceID); err != nil {
		t.Fatalf("Failed to read votes: %v", err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
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

// MakeFormRequest creates a form-encoded HTTP test request
func MakeFormRequest(method, path string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AdminHeaders returns the headers that pass the admin guard
func AdminHeaders() map[string]string {
	return map[string]string{"X-Admin-Key": TestAdminKey}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertContains checks that the response body contains every fragment
func AssertContains(t *testing.T, w *httptest.ResponseRecorder, fragments ...string) {
	t.Helper()
	body := w.Body.String()
	for _, f := range fragments {
		if !strings.Contains(body, f) {
			t.Errorf("Expected body to contain %q. Body: %s", f, body)
		}
	}
}

// AssertNotContains checks that the response body contains none of the fragments
func AssertNotContains(t *testing.T, w *httptest.ResponseRecorder, fragments ...string) {
	t.Helper()
	body := w.Body.String()
	for _, f := range fragments {
		if strings.Contains(body, f) {
			t.Errorf("Expected body not to contain %q. Body: %s", f, body)
		}
	}
}
