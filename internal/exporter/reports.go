package exporter

import (
	"fmt"
	"strings"

	"retailcli/internal/basket"
	"retailcli/internal/performance"
)

// ReportExporter writes analysis results as CSV reports.
type ReportExporter struct {
	csvWriter *CSVWriter
	formatter *Formatter
}

// NewReportExporter creates a report exporter rooted at baseDir.
func NewReportExporter(baseDir string, exchangeRate float64) *ReportExporter {
	return &ReportExporter{
		csvWriter: NewCSVWriter(baseDir),
		formatter: NewFormatter(exchangeRate),
	}
}

// ExportItemsets writes frequent itemsets ordered as given.
func (r *ReportExporter) ExportItemsets(itemsets []basket.Itemset, filePath string) error {
	records := make([][]string, 0, len(itemsets))
	for _, is := range itemsets {
		records = append(records, []string{
			strings.Join(is.Items, ", "),
			formatInt(len(is.Items)),
			formatInt(is.Count),
			fmt.Sprintf("%.6f", is.Support),
		})
	}
	headers := []string{"Itemset", "Size", "Count", "Support"}
	if err := r.csvWriter.WriteSimpleCSV(filePath, headers, records); err != nil {
		return fmt.Errorf("failed to write itemsets report: %w", err)
	}
	return nil
}

// ExportRules writes association rules ordered as given.
func (r *ReportExporter) ExportRules(rules []basket.Rule, filePath string) error {
	records := make([][]string, 0, len(rules))
	for _, rule := range rules {
		records = append(records, []string{
			strings.Join(rule.Antecedent, ", "),
			strings.Join(rule.Consequent, ", "),
			fmt.Sprintf("%.6f", rule.Support),
			fmt.Sprintf("%.6f", rule.Confidence),
			fmt.Sprintf("%.6f", rule.Lift),
		})
	}
	headers := []string{"Antecedent", "Consequent", "Support", "Confidence", "Lift"}
	if err := r.csvWriter.WriteSimpleCSV(filePath, headers, records); err != nil {
		return fmt.Errorf("failed to write rules report: %w", err)
	}
	return nil
}

// ExportPerformance writes the monthly performance rows. Months with no
// target row render an empty achievement cell rather than a misleading
// zero percent.
func (r *ReportExporter) ExportPerformance(rows []performance.MonthlyCategoryPerformance, filePath string) error {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		achievement := ""
		if row.HasTarget {
			achievement = formatPercent(row.Achievement)
		}
		records = append(records, []string{
			row.Month,
			row.Category,
			formatFloat(row.Actual),
			formatFloat(row.Target),
			achievement,
			formatFloat(row.Variance),
		})
	}
	headers := []string{"Month", "Category", "Actual", "Target", "Achievement", "Variance"}
	if err := r.csvWriter.WriteSimpleCSV(filePath, headers, records); err != nil {
		return fmt.Errorf("failed to write performance report: %w", err)
	}
	return nil
}

// ExportCategorySummaries writes the per-category sales rollup with
// amounts rendered in both currencies.
func (r *ReportExporter) ExportCategorySummaries(summaries []basket.CategorySummary, filePath string) error {
	records := make([][]string, 0, len(summaries))
	for _, cs := range summaries {
		records = append(records, []string{
			cs.Category,
			formatInt(cs.Lines),
			r.formatter.Rupees(cs.TotalAmount),
			r.formatter.USD(cs.TotalAmount),
			formatFloat(cs.AvgAmount),
			formatFloat(cs.TotalProfit),
			formatPercent(cs.ProfitMargin),
		})
	}
	headers := []string{"Category", "Lines", "Total Sales (INR)", "Total Sales (USD)", "Avg Line Amount", "Total Profit", "Profit Margin"}
	if err := r.csvWriter.WriteSimpleCSV(filePath, headers, records); err != nil {
		return fmt.Errorf("failed to write category summary report: %w", err)
	}
	return nil
}
