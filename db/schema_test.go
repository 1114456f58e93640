// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/premios/db"
	"github.com/danielhkuo/premios/testutil"
)

func TestCreateSchemaIsIdempotent(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Second CreateSchema failed: %v", err)
	}
}

func TestSQLiteForeignKeysEnabled(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	var enabled int
	if err := conn.Get(&enabled, "PRAGMA foreign_keys"); err != nil {
		t.Fatalf("Failed to read pragma: %v", err)
	}
	if enabled != 1 {
		t.Errorf("Expected foreign_keys = 1, got %d", enabled)
	}

	_, err := conn.Exec(`
		INSERT INTO choice (id, question_id, choice_text, votes, sort_order)
		VALUES ('c1', 'missing', 'orphan', 0, 0)
	`)
	if err == nil {
		t.Error("Expected orphan choice to be rejected")
	}
}

func TestSQLiteForeignKeysOnEveryConnection(t *testing.T) {
	conn, err := db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "polls.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer conn.Close()

	conn.SetMaxOpenConns(3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		c, err := conn.Connx(ctx)
		if err != nil {
			t.Fatalf("Connection %d: %v", i, err)
		}
		defer c.Close()

		var enabled int
		if err := c.GetContext(ctx, &enabled, "PRAGMA foreign_keys"); err != nil {
			t.Fatalf("Connection %d: failed to read pragma: %v", i, err)
		}
		if enabled != 1 {
			t.Errorf("Connection %d: expected foreign_keys = 1, got %d", i, enabled)
		}
	}
}

func TestSQLiteDSN(t *testing.T) {
	testCases := []struct {
		url  string
		want string
	}{
		{":memory:", ":memory:?_pragma=foreign_keys(1)&_time_format=sqlite"},
		{"polls.db", "polls.db?_pragma=foreign_keys(1)&_time_format=sqlite"},
		{"file:polls.db?mode=rwc", "file:polls.db?mode=rwc&_pragma=foreign_keys(1)&_time_format=sqlite"},
	}

	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			if got := db.SQLiteDSN(tc.url); got != tc.want {
				t.Errorf("SQLiteDSN(%q) = %q, want %q", tc.url, got, tc.want)
			}
		})
	}
}

func TestNegativeVotesRejected(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	q := testutil.CreateTestQuestion(t, conn, "Q", 0)
	c := testutil.AddTestChoice(t, conn, q, "C", 0)

	if _, err := conn.Exec(`UPDATE choice SET votes = -1 WHERE id = $1`, c); err == nil {
		t.Error("Expected negative vote count to violate the check constraint")
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := db.Open("mysql", "whatever"); err == nil {
		t.Error("Expected error for unregistered driver")
	}
}
