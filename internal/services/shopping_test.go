package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/bensuskins/weekly-planner/internal/models"
	"github.com/bensuskins/weekly-planner/internal/quantity"
	"github.com/bensuskins/weekly-planner/internal/services"
	"github.com/bensuskins/weekly-planner/internal/store"
	"github.com/bensuskins/weekly-planner/internal/testutil"
)

func newShoppingService(t *testing.T) (*services.ShoppingService, *store.State) {
	t.Helper()
	repo := testutil.NewTestRepository(t)
	state := store.LoadState(context.Background(), repo)
	return services.NewShoppingService(state, repo), state
}

func TestAddFromItem_MergesByItemID(t *testing.T) {
	service, _ := newShoppingService(t)
	ctx := context.Background()

	milk := models.Item{ID: "milk", Name: "Milk", Unit: "pint", Category: "Fridge|Dairy"}
	if err := service.AddFromItem(ctx, milk, services.AddOptions{Quantity: 2, From: "Curry"}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := service.AddFromItem(ctx, milk, services.AddOptions{Quantity: 1, From: "Pancakes"}); err != nil {
		t.Fatalf("second add: %v", err)
	}

	entries := service.List()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1 merged entry", len(entries))
	}
	if len(entries[0].Quantities) != 2 {
		t.Fatalf("quantity records = %d, want 2", len(entries[0].Quantities))
	}
	if entries[0].Quantities[1].From != "Pancakes" {
		t.Errorf("second record source = %q", entries[0].Quantities[1].From)
	}
}

func TestAddFromItem_MergesByNameCaseInsensitive(t *testing.T) {
	service, _ := newShoppingService(t)
	ctx := context.Background()

	if err := service.AddManual(ctx, services.ManualEntry{Name: "Bin Bags"}); err != nil {
		t.Fatalf("manual add: %v", err)
	}
	item := models.Item{ID: "bin-bags", Name: "bin bags"}
	if err := service.AddFromItem(ctx, item, services.AddOptions{From: "Cleaning"}); err != nil {
		t.Fatalf("item add: %v", err)
	}

	entries := service.List()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want the name match to merge", len(entries))
	}
}

func TestAddFromItem_ResetsChecked(t *testing.T) {
	service, _ := newShoppingService(t)
	ctx := context.Background()

	eggs := models.Item{ID: "eggs", Name: "Eggs"}
	if err := service.AddFromItem(ctx, eggs, services.AddOptions{}); err != nil {
		t.Fatalf("adding: %v", err)
	}
	if err := service.ToggleChecked(ctx, 0); err != nil {
		t.Fatalf("checking: %v", err)
	}

	if err := service.AddFromItem(ctx, eggs, services.AddOptions{}); err != nil {
		t.Fatalf("re-adding: %v", err)
	}
	if service.List()[0].Checked {
		t.Error("re-adding a checked entry should uncheck it")
	}
}

func TestAddFromItem_NewEntryDefaults(t *testing.T) {
	service, _ := newShoppingService(t)
	ctx := context.Background()

	item := models.Item{
		ID:      "salmon",
		Name:    "Salmon",
		Sources: []models.Source{{Store: "Tesco", URL: "https://tesco.example/salmon"}},
	}
	if err := service.AddFromItem(ctx, item, services.AddOptions{}); err != nil {
		t.Fatalf("adding: %v", err)
	}

	entry := service.List()[0]
	if entry.Category != "Other|Other" {
		t.Errorf("category = %q, want the Other default", entry.Category)
	}
	if entry.Unit != "item" {
		t.Errorf("unit = %q, want item", entry.Unit)
	}
	if entry.Store != "Tesco" || entry.URL != "https://tesco.example/salmon" {
		t.Errorf("store/url not taken from first source: %+v", entry)
	}
	if len(entry.Quantities) != 1 || float64(entry.Quantities[0].Num) != 1 {
		t.Errorf("quantity should default to 1, got %+v", entry.Quantities)
	}
}

func TestAddFromItem_NoSourceMeansUnknownStore(t *testing.T) {
	service, _ := newShoppingService(t)

	if err := service.AddFromItem(context.Background(), models.Item{ID: "bread", Name: "Bread"}, services.AddOptions{}); err != nil {
		t.Fatalf("adding: %v", err)
	}
	if got := service.List()[0].Store; got != "Unknown" {
		t.Errorf("store = %q, want Unknown", got)
	}
}

func TestAddManual_DefaultsToConfiguredStore(t *testing.T) {
	service, state := newShoppingService(t)
	state.Stores = []models.Store{{Name: "Tesco"}, {Name: "Aldi", Default: true}}

	if err := service.AddManual(context.Background(), services.ManualEntry{Name: "Batteries"}); err != nil {
		t.Fatalf("adding: %v", err)
	}

	entry := service.List()[0]
	if entry.Store != "Aldi" {
		t.Errorf("store = %q, want the default store", entry.Store)
	}
	if entry.Quantities[0].From != "Manual" {
		t.Errorf("source tag = %q, want Manual", entry.Quantities[0].From)
	}
}

func TestAddManual_RequiresName(t *testing.T) {
	service, _ := newShoppingService(t)
	if err := service.AddManual(context.Background(), services.ManualEntry{Name: "   "}); err == nil {
		t.Error("expected an error for a blank name")
	}
}

func TestPromoteSelected(t *testing.T) {
	service, state := newShoppingService(t)
	ctx := context.Background()

	state.AddItem(models.Item{ID: "milk", Name: "Milk", Unit: "pint"})
	state.AddItem(models.Item{ID: "eggs", Name: "Eggs"})
	state.Bundles = []models.Bundle{
		{ID: "dinner-1", Name: "Omelette", Items: []models.BundleItem{
			{ItemID: "eggs", Quantity: 6},
			{ItemID: "milk", Quantity: 0},
			{ItemID: "gone", Quantity: 1},
		}},
	}

	selection := services.NewSelection()
	selection.SelectAll("dinner-1", []string{"eggs", "milk", "gone"})

	promotions, err := service.PromoteSelected(ctx, selection)
	if err != nil {
		t.Fatalf("promoting: %v", err)
	}

	if len(promotions) != 2 {
		t.Fatalf("promotions = %d, want the dangling ref skipped", len(promotions))
	}
	if promotions[0].Item.ID != "eggs" || promotions[0].Quantity != 6 {
		t.Errorf("first promotion = %+v, want eggs x6 in bundle order", promotions[0])
	}
	if promotions[1].Quantity != 1 {
		t.Errorf("zero quantity should promote as 1, got %v", promotions[1].Quantity)
	}
	if promotions[1].From != "Omelette" {
		t.Errorf("source tag = %q, want the bundle name", promotions[1].From)
	}
	if selection.CountSelected() != 0 {
		t.Error("promotion should clear the staged selection")
	}
	if len(service.List()) != 2 {
		t.Errorf("shopping entries = %d, want 2", len(service.List()))
	}
}

func TestIncrementQty_SeedsImplicitQuantity(t *testing.T) {
	service, state := newShoppingService(t)
	ctx := context.Background()

	state.Shopping = []models.ShoppingEntry{{Name: "Flour", Unit: "kg"}}

	if err := service.IncrementQty(ctx, 0); err != nil {
		t.Fatalf("incrementing: %v", err)
	}

	records := service.List()[0].Quantities
	if len(records) != 1 || float64(records[0].Num) != 2 || records[0].Unit != "kg" {
		t.Errorf("records = %+v, want a single seeded record at 2", records)
	}
}

func TestDecrementQty_FloorsAtOne(t *testing.T) {
	service, _ := newShoppingService(t)
	ctx := context.Background()

	if err := service.AddManual(ctx, services.ManualEntry{Name: "Rice", Quantity: 2}); err != nil {
		t.Fatalf("adding: %v", err)
	}

	if err := service.DecrementQty(ctx, 0); err != nil {
		t.Fatalf("decrementing: %v", err)
	}
	if got := float64(service.List()[0].Quantities[0].Num); got != 1 {
		t.Errorf("quantity = %v, want 1", got)
	}

	// Already at the floor, nothing changes.
	if err := service.DecrementQty(ctx, 0); err != nil {
		t.Fatalf("decrementing again: %v", err)
	}
	if got := float64(service.List()[0].Quantities[0].Num); got != 1 {
		t.Errorf("quantity = %v, want floor at 1", got)
	}
}

func TestIndexMutators_IgnoreOutOfRange(t *testing.T) {
	service, _ := newShoppingService(t)
	ctx := context.Background()

	if err := service.ToggleChecked(ctx, 5); err != nil {
		t.Errorf("toggle out of range: %v", err)
	}
	if err := service.Remove(ctx, -1); err != nil {
		t.Errorf("remove out of range: %v", err)
	}
	if err := service.DecrementQty(ctx, 0); err != nil {
		t.Errorf("decrement out of range: %v", err)
	}
}

func TestUpdateUnit_RewritesAllRecords(t *testing.T) {
	service, _ := newShoppingService(t)
	ctx := context.Background()

	item := models.Item{ID: "flour", Name: "Flour", Unit: "bag"}
	service.AddFromItem(ctx, item, services.AddOptions{Quantity: 1})
	service.AddFromItem(ctx, item, services.AddOptions{Quantity: 2})

	if err := service.UpdateUnit(ctx, 0, "kg"); err != nil {
		t.Fatalf("updating unit: %v", err)
	}

	entry := service.List()[0]
	if entry.Unit != "kg" {
		t.Errorf("unit = %q", entry.Unit)
	}
	for _, record := range entry.Quantities {
		if record.Unit != "kg" {
			t.Errorf("record unit = %q, want every record rewritten", record.Unit)
		}
	}
}

func TestClearChecked_KeepsUnchecked(t *testing.T) {
	service, state := newShoppingService(t)
	ctx := context.Background()

	state.Shopping = []models.ShoppingEntry{
		{Name: "A", Checked: true},
		{Name: "B"},
		{Name: "C", Checked: true},
	}

	if err := service.ClearChecked(ctx); err != nil {
		t.Fatalf("clearing: %v", err)
	}

	entries := service.List()
	if len(entries) != 1 || entries[0].Name != "B" {
		t.Errorf("entries = %+v, want only B", entries)
	}
}

func TestGroupByStore_FirstSeenOrder(t *testing.T) {
	service, state := newShoppingService(t)

	state.Shopping = []models.ShoppingEntry{
		{Name: "Milk", Store: "Tesco"},
		{Name: "Soap", Store: "Boots"},
		{Name: "Eggs", Store: "Tesco"},
	}

	groups := service.GroupByStore()
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if groups[0].Name != "Tesco" || groups[1].Name != "Boots" {
		t.Errorf("group order = %q, %q, want first-seen order", groups[0].Name, groups[1].Name)
	}
	if groups[0].Entries[1].Index != 2 {
		t.Errorf("flat index = %d, want the original position preserved", groups[0].Entries[1].Index)
	}
}

func TestGroupByCategory_UsesTopSegment(t *testing.T) {
	service, state := newShoppingService(t)

	state.Shopping = []models.ShoppingEntry{
		{Name: "Milk", Category: "Fridge|Dairy"},
		{Name: "Cheese", Category: "Fridge|Dairy"},
		{Name: "Mystery", Category: ""},
	}

	groups := service.GroupByCategory()
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if groups[0].Name != "Fridge" {
		t.Errorf("first group = %q", groups[0].Name)
	}
	if groups[1].Name != "Other" {
		t.Errorf("empty category should bucket under Other, got %q", groups[1].Name)
	}
}

func TestSerializeForCopy(t *testing.T) {
	service, state := newShoppingService(t)

	state.Shopping = []models.ShoppingEntry{
		{Name: "Milk", Store: "Tesco", Unit: "pint", Quantities: []quantity.Record{{Num: 2, Unit: "pint"}}},
		{Name: "Done", Store: "Tesco", Checked: true},
		{Name: "Soap", Store: "Boots", Checked: true},
	}

	text := service.SerializeForCopy()

	if !strings.Contains(text, "Tesco:\n☐ Milk - 2 pint") {
		t.Errorf("missing Tesco block, got:\n%s", text)
	}
	if strings.Contains(text, "Done") {
		t.Error("checked entries must not appear")
	}
	if strings.Contains(text, "Boots") {
		t.Error("all-checked groups must be dropped entirely")
	}
}
