package exporter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"retailcli/internal/basket"
	"retailcli/internal/performance"
)

// WorkbookExporter bundles all analysis results into one Excel workbook,
// one sheet per report.
type WorkbookExporter struct {
	baseDir string
}

// NewWorkbookExporter creates a workbook exporter rooted at baseDir.
func NewWorkbookExporter(baseDir string) *WorkbookExporter {
	return &WorkbookExporter{baseDir: baseDir}
}

// WorkbookData carries everything a full workbook export needs.
type WorkbookData struct {
	Itemsets    []basket.Itemset
	Rules       []basket.Rule
	Performance []performance.MonthlyCategoryPerformance
	Categories  []basket.CategorySummary
}

// Export writes the workbook to filePath under the base directory.
func (w *WorkbookExporter) Export(data WorkbookData, filePath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeItemsetSheet(f, data.Itemsets); err != nil {
		return err
	}
	if err := w.writeRuleSheet(f, data.Rules); err != nil {
		return err
	}
	if err := w.writePerformanceSheet(f, data.Performance); err != nil {
		return err
	}
	if err := w.writeCategorySheet(f, data.Categories); err != nil {
		return err
	}

	fullPath := filePath
	if !filepath.IsAbs(filePath) && w.baseDir != "" {
		fullPath = filepath.Join(w.baseDir, filePath)
	}
	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (w *WorkbookExporter) writeItemsetSheet(f *excelize.File, itemsets []basket.Itemset) error {
	const sheet = "Frequent Itemsets"
	// The default sheet becomes the first report sheet
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeRow(f, sheet, 1, []interface{}{"Itemset", "Size", "Count", "Support"}); err != nil {
		return err
	}
	for i, is := range itemsets {
		row := []interface{}{strings.Join(is.Items, ", "), len(is.Items), is.Count, is.Support}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func (w *WorkbookExporter) writeRuleSheet(f *excelize.File, rules []basket.Rule) error {
	const sheet = "Association Rules"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := writeRow(f, sheet, 1, []interface{}{"Antecedent", "Consequent", "Support", "Confidence", "Lift"}); err != nil {
		return err
	}
	for i, rule := range rules {
		row := []interface{}{
			strings.Join(rule.Antecedent, ", "),
			strings.Join(rule.Consequent, ", "),
			rule.Support,
			rule.Confidence,
			rule.Lift,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func (w *WorkbookExporter) writePerformanceSheet(f *excelize.File, rows []performance.MonthlyCategoryPerformance) error {
	const sheet = "Monthly Performance"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := writeRow(f, sheet, 1, []interface{}{"Month", "Category", "Actual", "Target", "Achievement", "Variance"}); err != nil {
		return err
	}
	for i, row := range rows {
		var achievement interface{}
		if row.HasTarget {
			achievement = row.Achievement
		} else {
			achievement = "N/A"
		}
		cells := []interface{}{row.Month, row.Category, row.Actual, row.Target, achievement, row.Variance}
		if err := writeRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func (w *WorkbookExporter) writeCategorySheet(f *excelize.File, summaries []basket.CategorySummary) error {
	const sheet = "Category Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := writeRow(f, sheet, 1, []interface{}{"Category", "Lines", "Total Amount", "Avg Amount", "Total Profit", "Profit Margin"}); err != nil {
		return err
	}
	for i, cs := range summaries {
		row := []interface{}{cs.Category, cs.Lines, cs.TotalAmount, cs.AvgAmount, cs.TotalProfit, cs.ProfitMargin}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
	}
	return nil
}
