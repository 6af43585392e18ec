package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Resource names match the original data/{name}.json files one to one; the
// names are part of the persistence contract.
const (
	ResourceItems      = "items"
	ResourceBundles    = "bundles"
	ResourceActivities = "activities"
	ResourceChores     = "chores"
	ResourceStores     = "stores"
	ResourceShopping   = "shopping"
	ResourceWeeklyPlan = "weeklyPlan"
)

var Resources = []string{
	ResourceItems,
	ResourceBundles,
	ResourceActivities,
	ResourceChores,
	ResourceStores,
	ResourceShopping,
	ResourceWeeklyPlan,
}

// KnownResource reports whether name is one of the persisted resources.
func KnownResource(name string) bool {
	for _, resource := range Resources {
		if resource == name {
			return true
		}
	}
	return false
}

// ResourceRepository stores one JSON document per resource. Load returns
// nil data without an error for a resource that was never saved; callers
// substitute their empty default.
type ResourceRepository interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}

type SQLiteResourceRepository struct {
	database *sql.DB
}

func NewResourceRepository(database *sql.DB) *SQLiteResourceRepository {
	return &SQLiteResourceRepository{database: database}
}

func (repository *SQLiteResourceRepository) Load(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := repository.database.QueryRowContext(ctx,
		"SELECT data FROM resources WHERE name = ?", name,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading resource %s: %w", name, err)
	}
	return data, nil
}

func (repository *SQLiteResourceRepository) Save(ctx context.Context, name string, data []byte) error {
	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO resources (name, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at`,
		name, data, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("saving resource %s: %w", name, err)
	}
	return nil
}
