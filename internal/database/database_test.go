package database

import (
	"path/filepath"
	"testing"

	"covid-dashboard/internal/config"

	"github.com/rs/zerolog"
)

func TestNew_EmptyPathDisablesJournal(t *testing.T) {
	db, err := New(&config.Config{}, zerolog.Nop())
	if err != nil || db != nil {
		t.Fatalf("expected nil db and no error, got %v %v", db, err)
	}
}

func TestOpen_RunsMigrations(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "journal.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"load_journal", "export_log"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}
