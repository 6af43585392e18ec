package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/bensuskins/weekly-planner/internal/repository"
)

// LoadState builds the in-memory state from the persisted resources.
// Missing or corrupt documents decode to their empty defaults with a
// warning, so a fresh or partially broken data store still boots; memory
// becomes the source of truth from here on.
func LoadState(ctx context.Context, repo repository.ResourceRepository) *State {
	state := New()
	for _, name := range repository.Resources {
		data, err := repo.Load(ctx, name)
		if err != nil {
			slog.Warn("loading resource, using empty default", "resource", name, "error", err)
			continue
		}
		if len(data) == 0 {
			continue
		}
		if err := state.decodeResource(name, data); err != nil {
			slog.Warn("decoding resource, using empty default", "resource", name, "error", err)
		}
	}
	state.RebuildItemIndex()
	state.Week.Normalize()
	return state
}

// ReplaceResource swaps in a wholesale replacement for one collection, as
// the raw document API does, and refreshes whatever is derived from it.
// The caller must hold the state lock.
func (state *State) ReplaceResource(name string, data []byte) error {
	if err := state.decodeResource(name, data); err != nil {
		return err
	}
	if name == repository.ResourceItems {
		state.RebuildItemIndex()
	}
	if name == repository.ResourceWeeklyPlan {
		state.Week.Normalize()
	}
	return nil
}

func (state *State) decodeResource(name string, data []byte) error {
	switch name {
	case repository.ResourceItems:
		return decodeInto(name, data, &state.Items)
	case repository.ResourceBundles:
		return decodeInto(name, data, &state.Bundles)
	case repository.ResourceActivities:
		return decodeInto(name, data, &state.Activities)
	case repository.ResourceChores:
		return decodeInto(name, data, &state.Chores)
	case repository.ResourceStores:
		return decodeInto(name, data, &state.Stores)
	case repository.ResourceShopping:
		return decodeInto(name, data, &state.Shopping)
	case repository.ResourceWeeklyPlan:
		return decodeInto(name, data, &state.Week)
	default:
		return fmt.Errorf("unknown resource %q", name)
	}
}

// decodeInto unmarshals into a fresh zero value and assigns only on
// success. Decoding straight into the live field would merge map keys from
// the old plan into the new one instead of replacing it, and a failed
// decode could leave a collection partially overwritten.
func decodeInto[T any](name string, data []byte, target *T) error {
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	*target = value
	return nil
}
