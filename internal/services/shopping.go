package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bensuskins/weekly-planner/internal/models"
	"github.com/bensuskins/weekly-planner/internal/quantity"
	"github.com/bensuskins/weekly-planner/internal/repository"
	"github.com/bensuskins/weekly-planner/internal/store"
)

// ShoppingService maintains the derived shopping list: identity-merged
// additions from bundles, items and manual entry, per-entry mutators and
// the grouped views the list is rendered from.
type ShoppingService struct {
	state *store.State
	repo  repository.ResourceRepository
}

func NewShoppingService(state *store.State, repo repository.ResourceRepository) *ShoppingService {
	return &ShoppingService{state: state, repo: repo}
}

func (service *ShoppingService) List() []models.ShoppingEntry {
	service.state.Lock()
	defer service.state.Unlock()
	return append([]models.ShoppingEntry(nil), service.state.Shopping...)
}

// AddOptions control how an item lands on the shopping list. Quantity
// defaults to 1; Unit overrides the item's own unit.
type AddOptions struct {
	Quantity float64
	From     string
	Unit     string
}

// AddFromItem merges an item into the shopping list and persists it.
func (service *ShoppingService) AddFromItem(ctx context.Context, item models.Item, opts AddOptions) error {
	service.state.Lock()
	defer service.state.Unlock()
	service.addFromItem(item, opts)
	return service.save(ctx)
}

// addFromItem implements the merge law: an existing entry (matched by item
// id, then by case-insensitive name) gains a quantity record and becomes
// unchecked again; otherwise a new entry is seeded from the item.
func (service *ShoppingService) addFromItem(item models.Item, opts AddOptions) {
	qty := opts.Quantity
	if qty == 0 {
		qty = 1
	}
	unit := opts.Unit
	if unit == "" {
		unit = item.Unit
	}
	if unit == "" {
		unit = "item"
	}
	record := quantity.Record{Num: quantity.Flexible(qty), Unit: unit, From: opts.From}

	if entry := service.findEntry(item.ID, item.Name); entry != nil {
		entry.Quantities = append(entry.Quantities, record)
		entry.Checked = false
		return
	}

	category := item.Category
	if category == "" {
		category = "Other|Other"
	}
	storeName := "Unknown"
	url := ""
	if source, ok := item.FirstSource(); ok {
		storeName = source.Store
		url = source.URL
	}
	service.state.Shopping = append(service.state.Shopping, models.ShoppingEntry{
		ItemID:     item.ID,
		Name:       item.Name,
		Category:   category,
		Unit:       unit,
		URL:        url,
		Store:      storeName,
		Quantities: []quantity.Record{record},
	})
}

// findEntry implements the merge identity rule: item id first, then
// case-insensitive name. Two distinct items sharing a display name merge
// into one entry; that precedence is kept as-is from the original flow even
// though it can fold genuinely different items together.
func (service *ShoppingService) findEntry(itemID, name string) *models.ShoppingEntry {
	if itemID != "" {
		for i := range service.state.Shopping {
			if service.state.Shopping[i].ItemID == itemID {
				return &service.state.Shopping[i]
			}
		}
	}
	for i := range service.state.Shopping {
		if strings.EqualFold(service.state.Shopping[i].Name, name) {
			return &service.state.Shopping[i]
		}
	}
	return nil
}

// ManualEntry is a free-text addition with no backing master-list item.
type ManualEntry struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Unit     string  `json:"unit"`
	Store    string  `json:"store"`
	Quantity float64 `json:"quantity"`
}

// AddManual adds a manual entry under the same merge law, tagged "Manual".
func (service *ShoppingService) AddManual(ctx context.Context, manual ManualEntry) error {
	if strings.TrimSpace(manual.Name) == "" {
		return fmt.Errorf("manual entry needs a name")
	}

	service.state.Lock()
	defer service.state.Unlock()

	qty := manual.Quantity
	if qty == 0 {
		qty = 1
	}
	unit := manual.Unit
	if unit == "" {
		unit = "item"
	}
	record := quantity.Record{Num: quantity.Flexible(qty), Unit: unit, From: "Manual"}

	if entry := service.findEntry("", manual.Name); entry != nil {
		entry.Quantities = append(entry.Quantities, record)
		entry.Checked = false
		return service.save(ctx)
	}

	category := manual.Category
	if category == "" {
		category = "Other|Other"
	}
	storeName := manual.Store
	if storeName == "" {
		storeName = service.state.DefaultStore()
	}
	service.state.Shopping = append(service.state.Shopping, models.ShoppingEntry{
		Name:       manual.Name,
		Category:   category,
		Unit:       unit,
		Store:      storeName,
		Quantities: []quantity.Record{record},
	})
	return service.save(ctx)
}

// Promotion records one item added during a bundle-selection promotion, for
// the caller's confirmation display.
type Promotion struct {
	Item     models.Item `json:"item"`
	Quantity float64     `json:"quantity"`
	From     string      `json:"from"`
}

// PromoteSelected walks the staged selection in bundle order, adds each
// resolvable (bundle, item) pair with the bundle's name as the source tag,
// then clears the staged selection. Dangling references are skipped.
func (service *ShoppingService) PromoteSelected(ctx context.Context, selection *Selection) ([]Promotion, error) {
	service.state.Lock()
	defer service.state.Unlock()

	var promotions []Promotion
	for _, bundle := range service.state.Bundles {
		for _, ref := range bundle.Items {
			if !selection.IsSelected(bundle.ID, ref.ItemID) {
				continue
			}
			item, ok := service.state.ItemByID(ref.ItemID)
			if !ok {
				continue
			}
			qty := float64(ref.Quantity)
			if qty == 0 {
				qty = 1
			}
			service.addFromItem(*item, AddOptions{Quantity: qty, From: bundle.Name})
			promotions = append(promotions, Promotion{Item: *item, Quantity: qty, From: bundle.Name})
		}
	}
	selection.ClearSelected()
	return promotions, service.save(ctx)
}

// ToggleChecked flips an entry's checked state. Out-of-range indices are
// silent no-ops, as for every index mutator here.
func (service *ShoppingService) ToggleChecked(ctx context.Context, index int) error {
	service.state.Lock()
	defer service.state.Unlock()
	if index < 0 || index >= len(service.state.Shopping) {
		return nil
	}
	service.state.Shopping[index].Checked = !service.state.Shopping[index].Checked
	return service.save(ctx)
}

func (service *ShoppingService) Remove(ctx context.Context, index int) error {
	service.state.Lock()
	defer service.state.Unlock()
	if index < 0 || index >= len(service.state.Shopping) {
		return nil
	}
	service.state.Shopping = append(service.state.Shopping[:index], service.state.Shopping[index+1:]...)
	return service.save(ctx)
}

func (service *ShoppingService) Clear(ctx context.Context) error {
	service.state.Lock()
	defer service.state.Unlock()
	service.state.Shopping = []models.ShoppingEntry{}
	return service.save(ctx)
}

// ClearChecked keeps only the unchecked entries.
func (service *ShoppingService) ClearChecked(ctx context.Context) error {
	service.state.Lock()
	defer service.state.Unlock()
	remaining := service.state.Shopping[:0]
	for _, entry := range service.state.Shopping {
		if !entry.Checked {
			remaining = append(remaining, entry)
		}
	}
	service.state.Shopping = remaining
	return service.save(ctx)
}

// IncrementQty bumps the first quantity record by one. An entry with no
// records carries an implicit quantity of 1, so incrementing it seeds a
// record at 2.
func (service *ShoppingService) IncrementQty(ctx context.Context, index int) error {
	service.state.Lock()
	defer service.state.Unlock()
	if index < 0 || index >= len(service.state.Shopping) {
		return nil
	}
	entry := &service.state.Shopping[index]
	if len(entry.Quantities) == 0 {
		entry.Quantities = []quantity.Record{{Num: 2, Unit: entry.Unit, From: "Manual"}}
		return service.save(ctx)
	}
	entry.Quantities[0].Num++
	return service.save(ctx)
}

// DecrementQty lowers the first quantity record by one, flooring at 1.
func (service *ShoppingService) DecrementQty(ctx context.Context, index int) error {
	service.state.Lock()
	defer service.state.Unlock()
	if index < 0 || index >= len(service.state.Shopping) {
		return nil
	}
	entry := &service.state.Shopping[index]
	if len(entry.Quantities) == 0 {
		return nil
	}
	current := float64(entry.Quantities[0].Num)
	next := current - 1
	if next < 1 {
		next = 1
	}
	if next == current {
		return nil
	}
	entry.Quantities[0].Num = quantity.Flexible(next)
	return service.save(ctx)
}

// UpdateUnit overwrites the entry's unit and every quantity record's unit
// so the display aggregation stays in one group.
func (service *ShoppingService) UpdateUnit(ctx context.Context, index int, unit string) error {
	service.state.Lock()
	defer service.state.Unlock()
	if index < 0 || index >= len(service.state.Shopping) {
		return nil
	}
	entry := &service.state.Shopping[index]
	entry.Unit = unit
	for i := range entry.Quantities {
		entry.Quantities[i].Unit = unit
	}
	return service.save(ctx)
}

// IndexedEntry pairs a shopping entry with its position in the flat list so
// grouped views can still address the index-based mutators.
type IndexedEntry struct {
	Index int                  `json:"index"`
	Entry models.ShoppingEntry `json:"entry"`
}

// EntryGroup is one bucket of a grouped shopping view.
type EntryGroup struct {
	Name    string         `json:"name"`
	Entries []IndexedEntry `json:"entries"`
}

// GroupByStore buckets entries by store in first-seen order, preserving
// list order within each bucket.
func (service *ShoppingService) GroupByStore() []EntryGroup {
	service.state.Lock()
	defer service.state.Unlock()
	return service.groupBy(func(entry models.ShoppingEntry) string { return entry.Store })
}

// GroupByCategory buckets entries by the group segment of their category.
func (service *ShoppingService) GroupByCategory() []EntryGroup {
	service.state.Lock()
	defer service.state.Unlock()
	return service.groupBy(func(entry models.ShoppingEntry) string { return models.TopCategory(entry.Category) })
}

func (service *ShoppingService) groupBy(key func(models.ShoppingEntry) string) []EntryGroup {
	var groups []EntryGroup
	positions := map[string]int{}
	for index, entry := range service.state.Shopping {
		name := key(entry)
		position, seen := positions[name]
		if !seen {
			position = len(groups)
			positions[name] = position
			groups = append(groups, EntryGroup{Name: name})
		}
		groups[position].Entries = append(groups[position].Entries, IndexedEntry{Index: index, Entry: entry})
	}
	return groups
}

// SerializeForCopy renders the unchecked list as plain text for pasting:
// one block per store with unchecked entries, a checkbox line per entry.
func (service *ShoppingService) SerializeForCopy() string {
	service.state.Lock()
	defer service.state.Unlock()

	var blocks []string
	for _, group := range service.groupBy(func(entry models.ShoppingEntry) string { return entry.Store }) {
		var lines []string
		for _, indexed := range group.Entries {
			if indexed.Entry.Checked {
				continue
			}
			line := fmt.Sprintf("☐ %s - %s", indexed.Entry.Name, quantity.Combine(indexed.Entry.Quantities, false))
			if indexed.Entry.Unit != "" {
				line += " " + indexed.Entry.Unit
			}
			lines = append(lines, line)
		}
		if len(lines) == 0 {
			continue
		}
		blocks = append(blocks, group.Name+":\n"+strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func (service *ShoppingService) save(ctx context.Context) error {
	if err := saveResource(ctx, service.repo, repository.ResourceShopping, service.state.Shopping); err != nil {
		slog.Error("saving shopping list", "error", err)
		return err
	}
	return nil
}
