// Package exporter writes analysis results to disk.
//
// CSVWriter is the core writer: headers, streaming, and a UTF-8 BOM so
// Excel opens the files correctly. ReportExporter turns frequent
// itemsets, association rules and performance rows into CSV reports,
// and WorkbookExporter bundles the same results into a single Excel
// workbook with one sheet per report.
package exporter
