package testutil

import (
	"database/sql"
	"testing"

	"github.com/bensuskins/weekly-planner/internal/database"
	"github.com/bensuskins/weekly-planner/internal/repository"
)

func NewTestDatabase(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func NewTestRepository(t *testing.T) *repository.SQLiteResourceRepository {
	t.Helper()
	return repository.NewResourceRepository(NewTestDatabase(t))
}
