package models

import (
	"encoding/json"
	"strings"

	"github.com/bensuskins/weekly-planner/internal/quantity"
)

// Source is one place an item can be bought.
type Source struct {
	Store string `json:"store"`
	URL   string `json:"url"`
	Note  string `json:"note,omitempty"`
}

// Item is an entry in the master grocery list. The id is derived from the
// name when the item is created and never changes afterwards.
type Item struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Unit     string   `json:"unit"`
	Sources  []Source `json:"sources"`
}

// FirstSource returns the item's preferred source, if it has any.
func (item Item) FirstSource() (Source, bool) {
	if len(item.Sources) == 0 {
		return Source{}, false
	}
	return item.Sources[0], true
}

type BundleCategory string

const (
	BundleBreakfast  BundleCategory = "breakfast"
	BundleLunch      BundleCategory = "lunch"
	BundleDinner     BundleCategory = "dinner"
	BundleSnack      BundleCategory = "snack"
	BundleHousehold  BundleCategory = "household"
	BundleToiletries BundleCategory = "toiletries"
)

func (category BundleCategory) Valid() bool {
	switch category {
	case BundleBreakfast, BundleLunch, BundleDinner, BundleSnack, BundleHousehold, BundleToiletries:
		return true
	}
	return false
}

// BundleItem is a soft reference to a master-list item. The id may not
// resolve any more: deleting an item leaves its references dangling, and
// the resolver drops them silently.
type BundleItem struct {
	ItemID   string            `json:"itemId"`
	Quantity quantity.Flexible `json:"quantity"`
}

// Bundle groups the items needed for a meal, a household job or similar.
type Bundle struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Category BundleCategory `json:"category"`
	URL      string         `json:"url,omitempty"`
	Items    []BundleItem   `json:"items"`
}

type Activity struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

type Chore struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Frequency string `json:"frequency,omitempty"`
}

// Store is a retailer the shopping list can be grouped by.
type Store struct {
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
	Default bool   `json:"default,omitempty"`
}

// ShoppingEntry is one line of the derived shopping list. ItemID is empty
// for manual entries that have no backing master-list item.
type ShoppingEntry struct {
	ItemID     string            `json:"itemId,omitempty"`
	Name       string            `json:"name"`
	Category   string            `json:"category"`
	Unit       string            `json:"unit"`
	URL        string            `json:"url,omitempty"`
	Store      string            `json:"store"`
	Quantities []quantity.Record `json:"quantities"`
	Checked    bool              `json:"checked"`
}

// TopCategory returns the group segment of a "Group|Subgroup" category,
// which is what the category-grouped shopping view buckets by.
func TopCategory(category string) string {
	group, _, _ := strings.Cut(category, "|")
	if group == "" {
		return "Other"
	}
	return group
}

// SlotRef is a point-in-time snapshot of a scheduled bundle, activity or
// chore. Renaming the source entity does not rewrite slots that already
// reference it.
type SlotRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SlotList tolerates the legacy wire shape where a slot held a single
// object or a bare string instead of a list; everything is normalized to a
// list when the plan is decoded.
type SlotList []SlotRef

func (list *SlotList) UnmarshalJSON(data []byte) error {
	var refs []SlotRef
	if err := json.Unmarshal(data, &refs); err == nil {
		*list = refs
		return nil
	}
	var single SlotRef
	if err := json.Unmarshal(data, &single); err == nil {
		if single.ID == "" && single.Name == "" {
			*list = nil
		} else {
			*list = SlotList{single}
		}
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err == nil && name != "" {
		*list = SlotList{{ID: name, Name: name}}
		return nil
	}
	*list = nil
	return nil
}

// Contains reports whether a ref with the given id is already in the slot.
func (list SlotList) Contains(id string) bool {
	for _, ref := range list {
		if ref.ID == id {
			return true
		}
	}
	return false
}

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

type SlotKind string

const (
	SlotActivities SlotKind = "activities"
	SlotChores     SlotKind = "chores"
)

// MealDays is the storage and iteration order for the meal columns.
var MealDays = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// PlannerDays is the display week for activities and chores. It starts on
// Saturday; the rotated order is part of the wire format and must not be
// sorted.
var PlannerDays = []string{"sat", "sun", "mon", "tue", "wed", "thu", "fri"}

// TimeSlots are the within-day slots for activities and chores.
var TimeSlots = []string{"all", "am", "pm", "eve"}

func ValidMealDay(day string) bool    { return contains(MealDays, day) }
func ValidPlannerDay(day string) bool { return contains(PlannerDays, day) }
func ValidTimeSlot(slot string) bool  { return contains(TimeSlots, slot) }

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}

// WeeklyPlan is the sparse schedule grid. Meal maps are keyed by day,
// activity and chore maps by "day-time".
type WeeklyPlan struct {
	Breakfast  map[string]SlotList `json:"breakfast"`
	Lunch      map[string]SlotList `json:"lunch"`
	Dinner     map[string]SlotList `json:"dinner"`
	Activities map[string]SlotList `json:"activities"`
	Chores     map[string]SlotList `json:"chores"`
}

func NewWeeklyPlan() WeeklyPlan {
	plan := WeeklyPlan{}
	plan.Normalize()
	return plan
}

// Normalize allocates any maps a partial document left nil.
func (plan *WeeklyPlan) Normalize() {
	if plan.Breakfast == nil {
		plan.Breakfast = map[string]SlotList{}
	}
	if plan.Lunch == nil {
		plan.Lunch = map[string]SlotList{}
	}
	if plan.Dinner == nil {
		plan.Dinner = map[string]SlotList{}
	}
	if plan.Activities == nil {
		plan.Activities = map[string]SlotList{}
	}
	if plan.Chores == nil {
		plan.Chores = map[string]SlotList{}
	}
}

// Meals returns the slot map for a meal type, or nil for an unknown type.
func (plan *WeeklyPlan) Meals(meal MealType) map[string]SlotList {
	switch meal {
	case MealBreakfast:
		return plan.Breakfast
	case MealLunch:
		return plan.Lunch
	case MealDinner:
		return plan.Dinner
	}
	return nil
}

// Timed returns the slot map for activities or chores, or nil for an
// unknown kind.
func (plan *WeeklyPlan) Timed(kind SlotKind) map[string]SlotList {
	switch kind {
	case SlotActivities:
		return plan.Activities
	case SlotChores:
		return plan.Chores
	}
	return nil
}

// Clone returns a deep copy so callers can marshal or render the plan
// outside the state lock.
func (plan WeeklyPlan) Clone() WeeklyPlan {
	return WeeklyPlan{
		Breakfast:  cloneSlots(plan.Breakfast),
		Lunch:      cloneSlots(plan.Lunch),
		Dinner:     cloneSlots(plan.Dinner),
		Activities: cloneSlots(plan.Activities),
		Chores:     cloneSlots(plan.Chores),
	}
}

func cloneSlots(slots map[string]SlotList) map[string]SlotList {
	cloned := make(map[string]SlotList, len(slots))
	for key, list := range slots {
		cloned[key] = append(SlotList(nil), list...)
	}
	return cloned
}

// CategoryGroup is one aisle group of the fixed shopping taxonomy.
type CategoryGroup struct {
	Name string   `json:"name" yaml:"name"`
	Subs []string `json:"subs" yaml:"subs"`
}

// DefaultTaxonomy mirrors the aisle layout the rendering layer expects.
var DefaultTaxonomy = []CategoryGroup{
	{Name: "Fridge", Subs: []string{"Meats", "Dairy", "Sauces", "Other"}},
	{Name: "Cupboard", Subs: []string{"Carbs", "Cereal", "Tinned", "Condiments", "Other"}},
	{Name: "Freezer", Subs: []string{"Ice cream", "Vegetables", "Meat", "Other"}},
	{Name: "Fresh", Subs: []string{"Fruit", "Vegetables", "Other"}},
	{Name: "Bakery", Subs: []string{"Bread", "Other"}},
	{Name: "Other", Subs: []string{"Toiletries", "Household", "Other"}},
}
