// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/ballot-box/cliparse"
	"github.com/danielhkuo/ballot-box/db"
	"github.com/danielhkuo/ballot-box/models"
	"github.com/danielhkuo/ballot-box/store"
)

// SetupTestDB creates a fresh test database with the full schema.
//
// By default this is a sqlite file in t.TempDir(). Set TEST_DATABASE_URL
// (and optionally TEST_DATABASE_TYPE=postgres|pgx) to run against a server;
// its ballot tables are dropped first.
func SetupTestDB(t *testing.T) *store.Store {
	t.Helper()

	ctx := context.Background()
	dbType := db.TypeSQLite
	dsn := filepath.Join(t.TempDir(), "ballot.db")
	if url := os.Getenv("TEST_DATABASE_URL"); url != "" {
		dsn = url
		dbType = os.Getenv("TEST_DATABASE_TYPE")
		if dbType == "" {
			dbType = db.TypePostgres
		}
	}

	s, err := store.Open(ctx, dbType, dsn, store.Options{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if s.Dialect() == db.Postgres {
		for _, table := range db.Tables {
			if _, err := s.DB().Exec("DROP TABLE IF EXISTS " + table + " CASCADE"); err != nil {
				t.Fatalf("Failed to clean database: %v", err)
			}
		}
	}

	if err := s.CreateSchema(ctx); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return s
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  "file:test.db",
		DatabaseType: db.TypeSQLite,
		TxTimeout:    5 * time.Second,
		MaxOpenConns: 10,
	}
}

// CreateTestCandidate inserts a candidate with the given vote count and returns its ID.
// The vote count is set directly; no vote records are created.
func CreateTestCandidate(t *testing.T, s *store.Store, name, position string, votes int64) int64 {
	t.Helper()

	var id int64
	err := s.InTx(context.Background(), func(ctx context.Context, tx *store.Tx) error {
		var err error
		id, err = tx.InsertCandidate(ctx, models.Candidate{Name: name, Position: position})
		return err
	})
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	if votes > 0 {
		_, err = s.DB().Exec(db.Rebind(s.Dialect(), `UPDATE candidates SET vote_count = $1 WHERE id = $2`), votes, id)
		if err != nil {
			t.Fatalf("Failed to set test vote count: %v", err)
		}
	}

	return id
}

// CreateTestVoter registers a voter who has not voted yet
func CreateTestVoter(t *testing.T, s *store.Store, voterID, name, email string) {
	t.Helper()

	err := s.InTx(context.Background(), func(ctx context.Context, tx *store.Tx) error {
		_, err := tx.InsertVoter(ctx, models.Voter{VoterID: voterID, Name: name, Email: email})
		return err
	})
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}
}

// CountRows returns the number of rows in a table
func CountRows(t *testing.T, s *store.Store, table string) int {
	t.Helper()

	var n int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// AssertConsistent fails the test if any vote counter or has_voted flag
// disagrees with the vote records.
func AssertConsistent(t *testing.T, s *store.Store) {
	t.Helper()

	problems, err := s.Inconsistencies(context.Background())
	if err != nil {
		t.Fatalf("Failed to check consistency: %v", err)
	}
	for _, p := range problems {
		t.Errorf("inconsistent ballot state: %s", p)
	}
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
