package store

import (
	"errors"
	"sync"

	"github.com/bensuskins/weekly-planner/internal/models"
)

var ErrNotFound = errors.New("not found")

// FallbackStoreName is used when no store is configured at all.
const FallbackStoreName = "Sainsbury's"

// State is the whole in-memory planner state, built once at startup from
// the persisted resources and owned by the services. The HTTP server
// handles requests concurrently, so one lock covers every read-modify-write
// of the collections; saves happen inside the same critical section so the
// persisted documents are always serialized from a consistent snapshot.
type State struct {
	mu sync.Mutex

	Items      []models.Item
	Bundles    []models.Bundle
	Activities []models.Activity
	Chores     []models.Chore
	Stores     []models.Store
	Shopping   []models.ShoppingEntry
	Week       models.WeeklyPlan

	// FallbackStore names the retailer assumed when the stores collection
	// is empty and nothing is flagged default.
	FallbackStore string

	itemIndex map[string]int
}

func New() *State {
	return &State{
		Week:          models.NewWeeklyPlan(),
		FallbackStore: FallbackStoreName,
		itemIndex:     map[string]int{},
	}
}

// Lock serializes access to the state across services.
func (state *State) Lock() { state.mu.Lock() }

func (state *State) Unlock() { state.mu.Unlock() }

// BundleByID scans the bundles collection; bundle ids are not indexed
// because the collection stays small.
func (state *State) BundleByID(id string) (*models.Bundle, bool) {
	for i := range state.Bundles {
		if state.Bundles[i].ID == id {
			return &state.Bundles[i], true
		}
	}
	return nil, false
}

// DefaultStore returns the store flagged default, else the first store,
// else the fallback name.
func (state *State) DefaultStore() string {
	for _, candidate := range state.Stores {
		if candidate.Default {
			return candidate.Name
		}
	}
	if len(state.Stores) > 0 {
		return state.Stores[0].Name
	}
	return state.FallbackStore
}
