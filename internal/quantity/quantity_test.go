package quantity_test

import (
	"encoding/json"
	"testing"

	"github.com/bensuskins/weekly-planner/internal/quantity"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"2", 2},
		{"2.5", 2.5},
		{"1/2", 0.5},
		{"3/4", 0.75},
		{"1 1/2", 1.5},
		{"2 3/4", 2.75},
		{" 1/2 ", 0.5},
		{"", 1},
		{"   ", 1},
		{"abc", 1},
		{"1/0", 1},
		{"a/b", 1},
		{"0", 0},
	}

	for _, test := range tests {
		if got := quantity.Parse(test.input); got != test.want {
			t.Errorf("Parse(%q) = %v, want %v", test.input, got, test.want)
		}
	}
}

func TestFlexible_UnmarshalJSON(t *testing.T) {
	var record quantity.Record

	if err := json.Unmarshal([]byte(`{"num": 2, "unit": "kg", "from": "Curry"}`), &record); err != nil {
		t.Fatalf("unmarshaling numeric quantity: %v", err)
	}
	if record.Num != 2 {
		t.Errorf("expected num 2, got %v", record.Num)
	}

	if err := json.Unmarshal([]byte(`{"num": "1 1/2", "unit": "kg", "from": "Curry"}`), &record); err != nil {
		t.Fatalf("unmarshaling string quantity: %v", err)
	}
	if record.Num != 1.5 {
		t.Errorf("expected num 1.5, got %v", record.Num)
	}
}

func TestCombine(t *testing.T) {
	records := []quantity.Record{
		{Num: 1, Unit: "kg"},
		{Num: 0.5, Unit: "kg"},
	}
	if got := quantity.Combine(records, true); got != "1.5 kg" {
		t.Errorf("expected '1.5 kg', got %q", got)
	}
	if got := quantity.Combine(records, false); got != "1.5" {
		t.Errorf("expected '1.5', got %q", got)
	}
}

func TestCombine_Empty(t *testing.T) {
	if got := quantity.Combine(nil, false); got != "1" {
		t.Errorf("expected '1' for empty records, got %q", got)
	}
}

func TestCombine_GroupsByUnitInFirstSeenOrder(t *testing.T) {
	records := []quantity.Record{
		{Num: 2, Unit: "tins"},
		{Num: 1, Unit: "kg"},
		{Num: 1, Unit: "tins"},
	}
	if got := quantity.Combine(records, true); got != "3 tins + 1 kg" {
		t.Errorf("expected '3 tins + 1 kg', got %q", got)
	}
}

func TestCombine_EmptyUnitIsAValidGroup(t *testing.T) {
	records := []quantity.Record{
		{Num: 2, Unit: ""},
		{Num: 1, Unit: ""},
	}
	if got := quantity.Combine(records, true); got != "3" {
		t.Errorf("expected '3', got %q", got)
	}
}

func TestCombine_WholeSumsDropTheDecimal(t *testing.T) {
	records := []quantity.Record{
		{Num: 0.5, Unit: "pint"},
		{Num: 1.5, Unit: "pint"},
	}
	if got := quantity.Combine(records, true); got != "2 pint" {
		t.Errorf("expected '2 pint', got %q", got)
	}
}
