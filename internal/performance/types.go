package performance

import (
	"strconv"

	"retailcli/internal/config"
	"retailcli/internal/dataset"
)

// TargetRecord is one row of the sales-target table: the planned amount
// for a month bucket and category.
type TargetRecord struct {
	Month    string  `json:"month"`
	Category string  `json:"category"`
	Target   float64 `json:"target"`
}

// MonthlyCategoryPerformance reconciles actual sales against the target
// for one (month, category) key. HasTarget distinguishes a genuine zero
// target from a missing target row; Achievement is only meaningful when
// HasTarget is true, and renders as not-applicable otherwise.
type MonthlyCategoryPerformance struct {
	Month       string  `json:"month"`
	Category    string  `json:"category"`
	Actual      float64 `json:"actual"`
	Target      float64 `json:"target"`
	Achievement float64 `json:"achievement"`
	HasTarget   bool    `json:"has_target"`
	Variance    float64 `json:"variance"`
}

// CategoryPerformance is the per-category rollup across all months.
type CategoryPerformance struct {
	Category    string  `json:"category"`
	Actual      float64 `json:"actual"`
	Target      float64 `json:"target"`
	Achievement float64 `json:"achievement"`
	HasTarget   bool    `json:"has_target"`
	Variance    float64 `json:"variance"`
}

// Targets converts the raw target table into typed records, validating
// the column contract eagerly.
func Targets(t *dataset.Table) ([]TargetRecord, error) {
	if err := t.RequireColumns(
		config.ColTargetMonth,
		config.ColCategory,
		config.ColTarget,
	); err != nil {
		return nil, err
	}

	records := make([]TargetRecord, 0, t.NumRows())
	for i := range t.Rows {
		raw := t.Cell(i, config.ColTarget)
		target, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &dataset.ParseError{
				Table: t.Name, Column: config.ColTarget, Row: i, Value: raw, Err: err,
			}
		}
		records = append(records, TargetRecord{
			Month:    t.Cell(i, config.ColTargetMonth),
			Category: t.Cell(i, config.ColCategory),
			Target:   target,
		})
	}
	return records, nil
}
