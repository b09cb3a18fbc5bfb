package db

import (
	"path/filepath"
	"testing"
)

func TestInitSQLite_CreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	conn, err := InitSQLite(path)
	if err != nil {
		t.Fatalf("InitSQLite failed: %v", err)
	}
	defer conn.Close()

	for _, table := range []string{"users", "tasks"} {
		var name string
		err := conn.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`,
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("expected table %q to exist: %v", table, err)
		}
	}
}

func TestInitSQLite_UsernameUnique(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	conn, err := InitSQLite(path)
	if err != nil {
		t.Fatalf("InitSQLite failed: %v", err)
	}
	defer conn.Close()

	insert := `INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)`
	if _, err := conn.Exec(insert, "alice", "hash", "user"); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if _, err := conn.Exec(insert, "alice", "hash2", "user"); err == nil {
		t.Error("expected unique constraint violation on duplicate username")
	}
}
