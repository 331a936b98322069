package db_test

import (
	"path/filepath"
	"testing"

	"github.com/KondratDima/TrackCaloryGraduationProject/internal/db"
)

func TestApplyMigrationsIdempotent(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "trackcal.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()

	for i := 0; i < 2; i++ {
		if err := db.ApplyMigrations(sqldb); err != nil {
			t.Fatalf("apply migrations run %d: %v", i+1, err)
		}
	}

	for _, table := range []string{"entries", "profile", "schema_migrations"} {
		var name string
		err := sqldb.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("expected table %q to exist: %v", table, err)
		}
	}
}
