package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bensuskins/weekly-planner/internal/repository"
)

// saveResource serializes one collection and overwrites its persisted
// document. A failure leaves the in-memory state as the source of truth;
// callers report the error but never roll the mutation back.
func saveResource(ctx context.Context, repo repository.ResourceRepository, name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := repo.Save(ctx, name, data); err != nil {
		return fmt.Errorf("saving %s: %w", name, err)
	}
	return nil
}
