package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"retailcli/internal/config"
	"retailcli/internal/infrastructure"
	"retailcli/internal/services"
)

func main() {
	dataDir := flag.String("data-dir", "", "directory holding the input CSVs (defaults to configured value)")
	reportsDir := flag.String("reports-dir", "", "directory to write reports into (defaults to configured value)")
	minSupport := flag.Float64("min-support", 0, "minimum support threshold in (0,1] (defaults to configured value)")
	minConfidence := flag.Float64("min-confidence", 0, "minimum confidence threshold in (0,1] (defaults to configured value)")
	topN := flag.Int("top", 0, "number of entries in top-N tables (defaults to configured value)")
	noExport := flag.Bool("no-export", false, "skip writing CSV and Excel reports")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		cfg.Paths.DataDir = *dataDir
	}
	if *reportsDir != "" {
		cfg.Paths.ReportsDir = *reportsDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	svc := services.NewAnalysisService(cfg, logger, nil, nil)

	ctx := context.Background()
	result, err := svc.Run(ctx, services.AnalysisRequest{
		MinSupport:    *minSupport,
		MinConfidence: *minConfidence,
		TopN:          *topN,
	})
	if err != nil {
		logger.Error("Analysis failed", "error", err)
		os.Exit(1)
	}

	if !*noExport {
		if err := os.MkdirAll(cfg.Paths.ReportsDir, 0755); err != nil {
			logger.Error("Failed to create reports directory", "error", err)
			os.Exit(1)
		}
		if err := svc.WriteReports(ctx, result); err != nil {
			logger.Error("Failed to write reports", "error", err)
			os.Exit(1)
		}
	}

	printSummary(result)
}

func printSummary(result *services.AnalysisResult) {
	fmt.Printf("Run %s completed in %s\n\n", result.RunID, result.Duration.Round(time.Millisecond))

	fmt.Printf("Dataset: %d orders, %d lines, revenue %.2f, profit %.2f\n\n",
		result.Overview.TotalOrders,
		result.Overview.TotalLines,
		result.Overview.TotalRevenue,
		result.Overview.TotalProfit)

	fmt.Printf("Frequent itemsets (min support %.4f): %d\n", result.MinSupport, len(result.Itemsets))
	fmt.Printf("Association rules (min confidence %.2f): %d\n\n", result.MinConfidence, len(result.Rules))

	if len(result.TopByLift) > 0 {
		fmt.Println("Top rules by lift:")
		for _, rule := range result.TopByLift {
			fmt.Printf("  %-50s support=%.4f confidence=%.3f lift=%.3f\n",
				rule.String(), rule.Support, rule.Confidence, rule.Lift)
		}
		fmt.Println()
	}

	if len(result.Performance) > 0 {
		fmt.Println("Monthly performance vs target:")
		fmt.Printf("  %-8s %-12s %12s %12s %12s\n", "Month", "Category", "Actual", "Target", "Achievement")
		for _, row := range result.Performance {
			achievement := "n/a"
			if row.HasTarget {
				achievement = fmt.Sprintf("%.1f%%", row.Achievement)
			}
			fmt.Printf("  %-8s %-12s %12.2f %12.2f %12s\n",
				row.Month, row.Category, row.Actual, row.Target, achievement)
		}
		fmt.Println()
	}

	if len(result.Categories) > 0 {
		fmt.Println("Category summary:")
		for _, cs := range result.Categories {
			fmt.Printf("  %-15s lines=%-5d amount=%12.2f margin=%6.2f%%\n",
				cs.Category, cs.Lines, cs.TotalAmount, cs.ProfitMargin)
		}
	}

	if len(result.TopStates) > 0 {
		names := make([]string, 0, len(result.TopStates))
		for _, s := range result.TopStates {
			names = append(names, s.Label)
		}
		fmt.Printf("\nTop states by sales: %s\n", strings.Join(names, ", "))
	}
}
