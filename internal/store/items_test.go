package store_test

import (
	"testing"

	"github.com/bensuskins/weekly-planner/internal/models"
	"github.com/bensuskins/weekly-planner/internal/store"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Olive Oil", "olive-oil"},
		{"  Olive   Oil  ", "olive-oil"},
		{"Ben & Jerry's", "ben-jerry-s"},
		{"Eggs (12)", "eggs-12"},
		{"CHEDDAR", "cheddar"},
		{"---", ""},
	}
	for _, test := range tests {
		if got := store.Slugify(test.name); got != test.want {
			t.Errorf("Slugify(%q) = %q, want %q", test.name, got, test.want)
		}
	}
}

func TestAddItem_SlugCollisions(t *testing.T) {
	state := store.New()

	first := state.AddItem(models.Item{Name: "Olive Oil"})
	second := state.AddItem(models.Item{Name: "olive oil"})
	third := state.AddItem(models.Item{Name: "Olive  Oil!"})

	if first.ID != "olive-oil" {
		t.Errorf("first id = %q, want olive-oil", first.ID)
	}
	if second.ID != "olive-oil-2" {
		t.Errorf("second id = %q, want olive-oil-2", second.ID)
	}
	if third.ID != "olive-oil-3" {
		t.Errorf("third id = %q, want olive-oil-3", third.ID)
	}
}

func TestAddItem_SuppliedIDCollision(t *testing.T) {
	state := store.New()
	state.AddItem(models.Item{ID: "milk", Name: "Milk"})

	second := state.AddItem(models.Item{ID: "milk", Name: "Oat Milk"})
	if second.ID != "milk-2" {
		t.Errorf("second id = %q, want the supplied id suffixed", second.ID)
	}

	first, ok := state.ItemByID("milk")
	if !ok || first.Name != "Milk" {
		t.Errorf("original item no longer resolves: %+v", first)
	}
	if item, ok := state.ItemByID("milk-2"); !ok || item.Name != "Oat Milk" {
		t.Errorf("suffixed item does not resolve: %+v", item)
	}
}

func TestAddItem_EmptyNameGetsFallbackSlug(t *testing.T) {
	state := store.New()
	item := state.AddItem(models.Item{Name: "!!!"})
	if item.ID != "item" {
		t.Errorf("id = %q, want item", item.ID)
	}
}

func TestFindOrCreateItem_Idempotent(t *testing.T) {
	state := store.New()

	created, wasCreated := state.FindOrCreateItem("Milk", store.ItemDefaults{})
	if !wasCreated {
		t.Fatal("expected first call to create")
	}
	if created.Category != "Other|Other" || created.Unit != "item" {
		t.Errorf("defaults not applied: category=%q unit=%q", created.Category, created.Unit)
	}

	again, wasCreated := state.FindOrCreateItem("MILK", store.ItemDefaults{Category: "Fridge|Dairy"})
	if wasCreated {
		t.Fatal("expected second call to find the existing item")
	}
	if again.ID != created.ID {
		t.Errorf("got id %q, want %q", again.ID, created.ID)
	}
	if again.Category != "Other|Other" {
		t.Errorf("existing item mutated: category=%q", again.Category)
	}
	if len(state.Items) != 1 {
		t.Errorf("items = %d, want 1", len(state.Items))
	}
}

func TestItemByName_CaseInsensitiveFirstMatch(t *testing.T) {
	state := store.New()
	state.AddItem(models.Item{Name: "Cheddar"})
	state.AddItem(models.Item{Name: "cheddar"})

	item, ok := state.ItemByName("CHEDDAR")
	if !ok {
		t.Fatal("expected a match")
	}
	if item.ID != "cheddar" {
		t.Errorf("got %q, want the first occurrence", item.ID)
	}
}

func TestDeleteItem_LeavesDanglingRefsOutOfResolve(t *testing.T) {
	state := store.New()
	milk := state.AddItem(models.Item{Name: "Milk"})
	eggs := state.AddItem(models.Item{Name: "Eggs"})

	bundle := models.Bundle{
		ID:   "dinner-1",
		Name: "Breakfast",
		Items: []models.BundleItem{
			{ItemID: milk.ID, Quantity: 2},
			{ItemID: eggs.ID, Quantity: 6},
		},
	}

	if err := state.DeleteItem(milk.ID); err != nil {
		t.Fatalf("deleting item: %v", err)
	}
	if err := state.DeleteItem("missing"); err != store.ErrNotFound {
		t.Errorf("deleting missing item: got %v, want ErrNotFound", err)
	}

	resolved := state.ResolveBundle(bundle)
	if len(resolved) != 1 {
		t.Fatalf("resolved = %d entries, want 1", len(resolved))
	}
	if resolved[0].ItemID != eggs.ID || resolved[0].Quantity != 6 {
		t.Errorf("resolved entry = %+v", resolved[0])
	}
}

func TestDeleteItem_RebuildsIndex(t *testing.T) {
	state := store.New()
	state.AddItem(models.Item{Name: "A"})
	b := state.AddItem(models.Item{Name: "B"})
	c := state.AddItem(models.Item{Name: "C"})

	if err := state.DeleteItem(b.ID); err != nil {
		t.Fatalf("deleting item: %v", err)
	}

	item, ok := state.ItemByID(c.ID)
	if !ok {
		t.Fatal("expected c to still resolve")
	}
	if item.Name != "C" {
		t.Errorf("index points at %q after delete, want C", item.Name)
	}
}

func TestDefaultStore_Precedence(t *testing.T) {
	state := store.New()
	if got := state.DefaultStore(); got != store.FallbackStoreName {
		t.Errorf("empty stores: got %q, want fallback", got)
	}

	state.Stores = []models.Store{{Name: "Tesco"}, {Name: "Aldi"}}
	if got := state.DefaultStore(); got != "Tesco" {
		t.Errorf("no default flag: got %q, want first store", got)
	}

	state.Stores[1].Default = true
	if got := state.DefaultStore(); got != "Aldi" {
		t.Errorf("default flag: got %q, want Aldi", got)
	}
}
