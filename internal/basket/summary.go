package basket

import (
	"sort"

	"retailcli/internal/dataset"
)

// Overview carries the headline figures of the joined dataset. Amounts
// stay in the source currency; conversion happens at formatting time.
type Overview struct {
	TotalOrders   int     `json:"total_orders"`
	TotalLines    int     `json:"total_lines"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalProfit   float64 `json:"total_profit"`
	AvgLineAmount float64 `json:"avg_line_amount"`
}

// CategorySummary is the per-category rollup of order lines, sales,
// profit and margin.
type CategorySummary struct {
	Category     string  `json:"category"`
	Lines        int     `json:"lines"`
	TotalAmount  float64 `json:"total_amount"`
	AvgAmount    float64 `json:"avg_amount"`
	TotalProfit  float64 `json:"total_profit"`
	ProfitMargin float64 `json:"profit_margin"`
}

// LabelCount pairs a label with an occurrence count.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// LabelAmount pairs a label with a summed amount.
type LabelAmount struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Summarize computes the headline overview of the joined transactions.
func Summarize(txns []dataset.Transaction) Overview {
	orders := make(map[string]bool)
	var o Overview
	for _, txn := range txns {
		orders[txn.OrderID] = true
		o.TotalRevenue += txn.Amount
		o.TotalProfit += txn.Profit
	}
	o.TotalOrders = len(orders)
	o.TotalLines = len(txns)
	if len(txns) > 0 {
		o.AvgLineAmount = o.TotalRevenue / float64(len(txns))
	}
	return o
}

// CategorySummaries rolls transactions up per category, ordered by total
// amount descending with category name breaking ties.
func CategorySummaries(txns []dataset.Transaction) []CategorySummary {
	byCategory := make(map[string]*CategorySummary)
	for _, txn := range txns {
		cs, ok := byCategory[txn.Category]
		if !ok {
			cs = &CategorySummary{Category: txn.Category}
			byCategory[txn.Category] = cs
		}
		cs.Lines++
		cs.TotalAmount += txn.Amount
		cs.TotalProfit += txn.Profit
	}

	summaries := make([]CategorySummary, 0, len(byCategory))
	for _, cs := range byCategory {
		if cs.Lines > 0 {
			cs.AvgAmount = cs.TotalAmount / float64(cs.Lines)
		}
		if cs.TotalAmount != 0 {
			cs.ProfitMargin = cs.TotalProfit / cs.TotalAmount * 100
		}
		summaries = append(summaries, *cs)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].TotalAmount != summaries[j].TotalAmount {
			return summaries[i].TotalAmount > summaries[j].TotalAmount
		}
		return summaries[i].Category < summaries[j].Category
	})
	return summaries
}

// TopSubCategories returns the n sub-categories with the most order
// lines, descending.
func TopSubCategories(txns []dataset.Transaction, n int) []LabelCount {
	counts := make(map[string]int)
	for _, txn := range txns {
		counts[txn.SubCategory]++
	}
	return topCounts(counts, n)
}

// TopStatesBySales returns the n states with the highest summed amount.
func TopStatesBySales(txns []dataset.Transaction, n int) []LabelAmount {
	sales := make(map[string]float64)
	for _, txn := range txns {
		sales[txn.State] += txn.Amount
	}
	return topAmounts(sales, n)
}

// TopCitiesBySales returns the n cities with the highest summed amount.
func TopCitiesBySales(txns []dataset.Transaction, n int) []LabelAmount {
	sales := make(map[string]float64)
	for _, txn := range txns {
		sales[txn.City] += txn.Amount
	}
	return topAmounts(sales, n)
}

func topCounts(counts map[string]int, n int) []LabelCount {
	ranked := make([]LabelCount, 0, len(counts))
	for label, count := range counts {
		ranked = append(ranked, LabelCount{Label: label, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Label < ranked[j].Label
	})
	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

func topAmounts(sales map[string]float64, n int) []LabelAmount {
	ranked := make([]LabelAmount, 0, len(sales))
	for label, amount := range sales {
		ranked = append(ranked, LabelAmount{Label: label, Amount: amount})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Amount != ranked[j].Amount {
			return ranked[i].Amount > ranked[j].Amount
		}
		return ranked[i].Label < ranked[j].Label
	})
	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
