package store

import (
	"fmt"
	"strings"

	"github.com/bensuskins/weekly-planner/internal/models"
)

// ItemByID looks an item up through the derived id index. The returned
// pointer is only valid until the next mutation of the items collection.
func (state *State) ItemByID(id string) (*models.Item, bool) {
	index, ok := state.itemIndex[id]
	if !ok {
		return nil, false
	}
	return &state.Items[index], true
}

// ItemByName finds the first item whose name matches case-insensitively,
// in collection order.
func (state *State) ItemByName(name string) (*models.Item, bool) {
	for i := range state.Items {
		if strings.EqualFold(state.Items[i].Name, name) {
			return &state.Items[i], true
		}
	}
	return nil, false
}

// RebuildItemIndex recomputes the id index from scratch. It must be called
// whenever the items collection is replaced wholesale, such as after a bulk
// load.
func (state *State) RebuildItemIndex() {
	state.itemIndex = make(map[string]int, len(state.Items))
	for i, item := range state.Items {
		state.itemIndex[item.ID] = i
	}
}

// AddItem inserts a new item, deriving the id from the name when absent.
// Both derived and caller-supplied ids are disambiguated with a numeric
// suffix, so ids stay unique across the collection.
func (state *State) AddItem(item models.Item) models.Item {
	if item.ID == "" {
		item.ID = state.nextItemID(item.Name)
	} else {
		item.ID = state.disambiguate(item.ID)
	}
	state.Items = append(state.Items, item)
	state.itemIndex[item.ID] = len(state.Items) - 1
	return item
}

func (state *State) nextItemID(name string) string {
	base := Slugify(name)
	if base == "" {
		base = "item"
	}
	return state.disambiguate(base)
}

func (state *State) disambiguate(base string) string {
	id := base
	for n := 2; ; n++ {
		if _, taken := state.itemIndex[id]; !taken {
			return id
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
}

// Slugify lowercases a name and collapses every run of non-alphanumeric
// characters to a single hyphen.
func Slugify(name string) string {
	var builder strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingHyphen = builder.Len() > 0
			continue
		}
		if pendingHyphen {
			builder.WriteByte('-')
			pendingHyphen = false
		}
		builder.WriteRune(r)
	}
	return builder.String()
}

// ItemDefaults seed the fields of items created on the fly by the ad-hoc
// entry flows.
type ItemDefaults struct {
	Category string
	Unit     string
	Sources  []models.Source
}

// FindOrCreateItem returns the existing item with the given name
// (case-insensitive) or creates one from the defaults. Repeated calls with
// the same name within a session return the same item; created reports
// whether this call inserted it.
func (state *State) FindOrCreateItem(name string, defaults ItemDefaults) (item models.Item, created bool) {
	if existing, ok := state.ItemByName(name); ok {
		return *existing, false
	}
	category := defaults.Category
	if category == "" {
		category = "Other|Other"
	}
	unit := defaults.Unit
	if unit == "" {
		unit = "item"
	}
	return state.AddItem(models.Item{
		Name:     name,
		Category: category,
		Unit:     unit,
		Sources:  defaults.Sources,
	}), true
}

// DeleteItem removes an item from the master list. Bundle references to the
// id are left dangling on purpose; the resolver filters them out.
func (state *State) DeleteItem(id string) error {
	index, ok := state.itemIndex[id]
	if !ok {
		return ErrNotFound
	}
	state.Items = append(state.Items[:index], state.Items[index+1:]...)
	state.RebuildItemIndex()
	return nil
}

// ResolvedItem joins a bundle reference with the item it points at.
type ResolvedItem struct {
	Item     models.Item `json:"item"`
	Quantity float64     `json:"quantity"`
	ItemID   string      `json:"itemId"`
}

// ResolveBundle joins a bundle's references against the master list in
// reference order, silently dropping any reference whose item no longer
// exists.
func (state *State) ResolveBundle(bundle models.Bundle) []ResolvedItem {
	resolved := make([]ResolvedItem, 0, len(bundle.Items))
	for _, ref := range bundle.Items {
		item, ok := state.ItemByID(ref.ItemID)
		if !ok {
			continue
		}
		resolved = append(resolved, ResolvedItem{
			Item:     *item,
			Quantity: float64(ref.Quantity),
			ItemID:   ref.ItemID,
		})
	}
	return resolved
}
