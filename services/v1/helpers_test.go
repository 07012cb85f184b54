package v1

import (
	"testing"

	"atm-monitor/client"

	"github.com/jmoiron/sqlx"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := client.OpenDatabase("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := client.InitSchema(db, "sqlite"); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func newTestRepositories(t *testing.T) (*ReportRepository, *UserRepository) {
	t.Helper()
	db := newTestDB(t)
	sdb := client.StatementBuilder("sqlite")
	return NewReportRepository(db, sdb), NewUserRepository(db, sdb)
}
