package basket

import (
	"fmt"
	"math"
	"strings"
)

// itemSep joins item labels into map keys. Unit separator keeps labels
// containing commas or spaces unambiguous.
const itemSep = "\x1f"

// Basket is the order x sub-category presence matrix. Rows follow the
// first-appearance order of each order identifier; columns are the
// sorted distinct sub-categories with at least one positive-quantity
// purchase anywhere in the dataset.
type Basket struct {
	Orders   []string
	Items    []string
	Presence [][]bool

	itemIndex map[string]int
}

// NumOrders returns the number of basket rows.
func (b *Basket) NumOrders() int {
	return len(b.Orders)
}

// NumItems returns the number of sub-category columns.
func (b *Basket) NumItems() int {
	return len(b.Items)
}

// Contains reports whether the given basket row contains the item.
func (b *Basket) Contains(row int, item string) bool {
	idx, ok := b.itemIndex[item]
	if !ok || row < 0 || row >= len(b.Presence) {
		return false
	}
	return b.Presence[row][idx]
}

// OrderItems returns the set of items present in the given basket row,
// in column order.
func (b *Basket) OrderItems(row int) []string {
	if row < 0 || row >= len(b.Presence) {
		return nil
	}
	var items []string
	for i, present := range b.Presence[row] {
		if present {
			items = append(items, b.Items[i])
		}
	}
	return items
}

// Itemset is a set of sub-category labels with its observed support.
// Items are kept sorted; Count is the number of baskets containing every
// item, and Support is Count over the total basket count.
type Itemset struct {
	Items   []string `json:"items"`
	Count   int      `json:"count"`
	Support float64  `json:"support"`
}

// Key returns the canonical map key for the itemset.
func (is Itemset) Key() string {
	return strings.Join(is.Items, itemSep)
}

// String renders the itemset for logs and report tables.
func (is Itemset) String() string {
	return strings.Join(is.Items, ", ")
}

// Rule is a directional association rule derived from one frequent
// itemset. Antecedent and consequent are disjoint and non-empty.
type Rule struct {
	Antecedent []string `json:"antecedents"`
	Consequent []string `json:"consequents"`
	Support    float64  `json:"support"`
	Confidence float64  `json:"confidence"`
	Lift       float64  `json:"lift"`
}

// String renders the rule in "A, B -> C" form.
func (r Rule) String() string {
	return strings.Join(r.Antecedent, ", ") + " -> " + strings.Join(r.Consequent, ", ")
}

// ThresholdError reports a support or confidence threshold outside the
// valid (0,1] range. It is raised before any computation begins; an
// empty result from a valid threshold is not an error.
type ThresholdError struct {
	Name  string
	Value float64
}

// Error implements the error interface
func (e *ThresholdError) Error() string {
	return fmt.Sprintf("%s must be in (0,1], got %v", e.Name, e.Value)
}

// validateThreshold checks a threshold value, naming it in the error.
// NaN needs its own check: every ordered comparison against it is false,
// so it would otherwise pass the range test and poison the exact-support
// comparison downstream.
func validateThreshold(name string, value float64) error {
	if math.IsNaN(value) || value <= 0 || value > 1 {
		return &ThresholdError{Name: name, Value: value}
	}
	return nil
}
