package basket

import (
	"sort"

	"retailcli/internal/dataset"
)

// Encode builds the presence matrix from joined transactions: group by
// (order, sub-category), sum quantity, threshold to boolean. An order
// whose only line carries a zero quantity still gets a row, but the
// sub-category only becomes a column if some order bought it; unseen or
// zero-total sub-categories are never represented.
func Encode(txns []dataset.Transaction) *Basket {
	// Sum quantity per (order, sub-category).
	type orderEntry struct {
		id    string
		items map[string]int
	}
	orderIdx := make(map[string]int)
	var orders []orderEntry
	itemSeen := make(map[string]bool)

	for _, txn := range txns {
		idx, ok := orderIdx[txn.OrderID]
		if !ok {
			idx = len(orders)
			orderIdx[txn.OrderID] = idx
			orders = append(orders, orderEntry{id: txn.OrderID, items: make(map[string]int)})
		}
		orders[idx].items[txn.SubCategory] += txn.Quantity
	}

	for _, o := range orders {
		for item, qty := range o.items {
			if qty > 0 {
				itemSeen[item] = true
			}
		}
	}

	items := make([]string, 0, len(itemSeen))
	for item := range itemSeen {
		items = append(items, item)
	}
	sort.Strings(items)

	itemIndex := make(map[string]int, len(items))
	for i, item := range items {
		itemIndex[item] = i
	}

	b := &Basket{
		Orders:    make([]string, len(orders)),
		Items:     items,
		Presence:  make([][]bool, len(orders)),
		itemIndex: itemIndex,
	}
	for i, o := range orders {
		b.Orders[i] = o.id
		row := make([]bool, len(items))
		for item, qty := range o.items {
			if qty > 0 {
				row[itemIndex[item]] = true
			}
		}
		b.Presence[i] = row
	}
	return b
}
