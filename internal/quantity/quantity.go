package quantity

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Flexible is a quantity that may arrive as a JSON number or as a legacy
// string such as "2", "1/2" or "1 1/2". Strings are converted with Parse at
// decode time so the rest of the code only ever sees numbers.
type Flexible float64

func (f *Flexible) UnmarshalJSON(data []byte) error {
	var number float64
	if err := json.Unmarshal(data, &number); err == nil {
		*f = Flexible(number)
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*f = Flexible(Parse(text))
		return nil
	}
	*f = 1
	return nil
}

// Record is one quantity contribution to a shopping entry, tagged with the
// bundle or flow it came from.
type Record struct {
	Num  Flexible `json:"num"`
	Unit string   `json:"unit"`
	From string   `json:"from"`
}

// Parse converts a quantity string to a number. It understands plain
// numbers, fractions ("1/2") and mixed fractions ("1 1/2"), and falls back
// to 1 for empty or unparseable input, so callers never handle an error.
func Parse(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 1
	}
	if numerator, denominator, ok := splitFraction(value); ok {
		return numerator / denominator
	}
	if whole, rest, found := strings.Cut(value, " "); found {
		if wholePart, err := strconv.ParseFloat(whole, 64); err == nil {
			if numerator, denominator, ok := splitFraction(strings.TrimSpace(rest)); ok {
				return wholePart + numerator/denominator
			}
		}
	}
	if number, err := strconv.ParseFloat(value, 64); err == nil {
		return number
	}
	return 1
}

func splitFraction(value string) (numerator, denominator float64, ok bool) {
	left, right, found := strings.Cut(value, "/")
	if !found {
		return 0, 0, false
	}
	numerator, errLeft := strconv.ParseFloat(strings.TrimSpace(left), 64)
	denominator, errRight := strconv.ParseFloat(strings.TrimSpace(right), 64)
	if errLeft != nil || errRight != nil || denominator == 0 {
		return 0, 0, false
	}
	return numerator, denominator, true
}

// Combine renders a set of quantity records as one display string, grouping
// by unit in first-seen order and summing within each group, e.g.
// "1.5 kg + 2 tins". Whole sums print without a decimal point. Empty input
// reads as "1": an entry with no records counts as a single unit.
func Combine(records []Record, includeUnit bool) string {
	if len(records) == 0 {
		return "1"
	}

	totals := make(map[string]float64)
	var unitOrder []string
	for _, record := range records {
		if _, seen := totals[record.Unit]; !seen {
			unitOrder = append(unitOrder, record.Unit)
		}
		totals[record.Unit] += float64(record.Num)
	}

	parts := make([]string, 0, len(unitOrder))
	for _, unit := range unitOrder {
		part := formatAmount(totals[unit])
		if includeUnit && unit != "" {
			part += " " + unit
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " + ")
}

func formatAmount(amount float64) string {
	if amount == math.Trunc(amount) {
		return strconv.FormatInt(int64(amount), 10)
	}
	return fmt.Sprintf("%.1f", amount)
}
