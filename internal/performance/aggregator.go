package performance

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"retailcli/internal/dataset"
)

// Aggregator reconciles actual monthly sales against targets.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates a new performance aggregator
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// Aggregate groups transactions by (month bucket, category), sums the
// amounts and left-outer-joins the result against the target records.
// Keys with actual sales but no target row stay in the output with a
// zero target and a not-applicable achievement, so under-planned
// categories remain visible. Rows come back chronologically, categories
// alphabetical within a month.
//
// Any transaction whose order date matches no recognized format fails
// the whole aggregation with a DateParseError naming the value.
func (a *Aggregator) Aggregate(ctx context.Context, txns []dataset.Transaction, targets []TargetRecord) ([]MonthlyCategoryPerformance, error) {
	start := time.Now()
	a.logger.InfoContext(ctx, "starting performance aggregation",
		"transactions", len(txns),
		"targets", len(targets),
	)

	type key struct {
		month    string
		category string
	}

	actuals := make(map[key]float64)
	for _, txn := range txns {
		month, err := NormalizeDate(txn.OrderDate)
		if err != nil {
			return nil, err
		}
		actuals[key{month: month, category: txn.Category}] += txn.Amount
	}

	targetByKey := make(map[key]float64, len(targets))
	for _, tr := range targets {
		k := key{month: tr.Month, category: tr.Category}
		if _, dup := targetByKey[k]; dup {
			a.logger.WarnContext(ctx, "duplicate target row ignored",
				"month", tr.Month,
				"category", tr.Category,
			)
			continue
		}
		targetByKey[k] = tr.Target
	}

	rows := make([]MonthlyCategoryPerformance, 0, len(actuals))
	for k, actual := range actuals {
		target, hasTarget := targetByKey[k]
		row := MonthlyCategoryPerformance{
			Month:    k.month,
			Category: k.category,
			Actual:   actual,
			Target:   target,
			Variance: actual - target,
		}
		if hasTarget && target > 0 {
			row.Achievement = actual / target * 100
			row.HasTarget = true
		}
		rows = append(rows, row)
	}

	if err := sortChronologically(rows); err != nil {
		return nil, err
	}

	a.logger.InfoContext(ctx, "performance aggregation completed",
		"rows", len(rows),
		"duration", time.Since(start),
	)
	return rows, nil
}

// sortChronologically orders rows by re-parsing the month bucket; the
// bucket key itself does not sort lexicographically across years.
func sortChronologically(rows []MonthlyCategoryPerformance) error {
	type sortable struct {
		when time.Time
		row  int
	}
	order := make([]sortable, len(rows))
	for i, row := range rows {
		when, err := ParseMonthKey(row.Month)
		if err != nil {
			return err
		}
		order[i] = sortable{when: when, row: i}
	}
	sort.SliceStable(order, func(i, j int) bool {
		if !order[i].when.Equal(order[j].when) {
			return order[i].when.Before(order[j].when)
		}
		return rows[order[i].row].Category < rows[order[j].row].Category
	})
	sorted := make([]MonthlyCategoryPerformance, len(rows))
	for i, o := range order {
		sorted[i] = rows[o.row]
	}
	copy(rows, sorted)
	return nil
}

// CategoryRollups aggregates monthly rows into one row per category,
// ordered by actual amount descending.
func CategoryRollups(rows []MonthlyCategoryPerformance) []CategoryPerformance {
	byCategory := make(map[string]*CategoryPerformance)
	for _, row := range rows {
		cp, ok := byCategory[row.Category]
		if !ok {
			cp = &CategoryPerformance{Category: row.Category}
			byCategory[row.Category] = cp
		}
		cp.Actual += row.Actual
		cp.Target += row.Target
	}

	rollups := make([]CategoryPerformance, 0, len(byCategory))
	for _, cp := range byCategory {
		cp.Variance = cp.Actual - cp.Target
		if cp.Target > 0 {
			cp.Achievement = cp.Actual / cp.Target * 100
			cp.HasTarget = true
		}
		rollups = append(rollups, *cp)
	}
	sort.Slice(rollups, func(i, j int) bool {
		if rollups[i].Actual != rollups[j].Actual {
			return rollups[i].Actual > rollups[j].Actual
		}
		return rollups[i].Category < rollups[j].Category
	})
	return rollups
}

// Overall sums every monthly row into a single performance figure.
func Overall(rows []MonthlyCategoryPerformance) CategoryPerformance {
	total := CategoryPerformance{Category: "All"}
	for _, row := range rows {
		total.Actual += row.Actual
		total.Target += row.Target
	}
	total.Variance = total.Actual - total.Target
	if total.Target > 0 {
		total.Achievement = total.Actual / total.Target * 100
		total.HasTarget = true
	}
	return total
}
