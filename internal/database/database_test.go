package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error")
	}
	if _, err := Migrate(""); err == nil {
		t.Fatal("expected error")
	}
}

func TestMigrateCreatesTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "totalhealth.db")

	version, err := Migrate(path)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if version != 2 {
		t.Fatalf("expected schema version 2, got %d", version)
	}

	// Running again is a no-op.
	if _, err := Migrate(path); err != nil {
		t.Fatalf("migrate twice: %v", err)
	}

	db, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	for _, table := range []string{"memberships", "hotels", "dining_tables", "table_bookings"} {
		assertTableExists(t, db, table)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	wantErr := errors.New("second write failed")

	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO hotels (id, name, vendor_id, created_at) VALUES ('h1', 'Green Bowl', 'v1', CURRENT_TIMESTAMP)`,
		); err != nil {
			return err
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM hotels`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to leave 0 hotels, got %d", count)
	}
}

func TestWithTxCommits(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO hotels (id, name, vendor_id, created_at) VALUES ('h1', 'Green Bowl', 'v1', CURRENT_TIMESTAMP)`,
		)
		return err
	})
	if err != nil {
		t.Fatalf("with tx: %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM hotels`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 hotel, got %d", count)
	}
}

func TestMembershipConservationConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`
		INSERT INTO memberships (id, user_id, total_meals, consumed_meals, remaining_meals, status, created_at, updated_at)
		VALUES ('m1', 'u1', 10, 2, 9, 'active', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	if err == nil {
		t.Fatal("expected check constraint to reject consumed + remaining != total")
	}
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenAndMigrate(filepath.Join(t.TempDir(), "totalhealth.db"))
	if err != nil {
		t.Fatalf("open and migrate: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func assertTableExists(t *testing.T, db *sql.DB, table string) {
	t.Helper()
	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
	if err != nil {
		t.Fatalf("expected table %s: %v", table, err)
	}
}
