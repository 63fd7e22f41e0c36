package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"retailcli/internal/basket"
	"retailcli/internal/config"
	"retailcli/internal/dataset"
	"retailcli/internal/exporter"
	"retailcli/internal/infrastructure"
	"retailcli/internal/performance"
)

// WebSocketHub is the broadcast surface the service needs; satisfied by
// websocket.Hub.
type WebSocketHub interface {
	BroadcastWithTrace(messageType string, data interface{}, traceID string)
}

// Event types pushed to websocket clients during a run
const (
	EventAnalysisStarted  = "analysis:started"
	EventAnalysisComplete = "analysis:complete"
	EventAnalysisFailed   = "analysis:failed"
)

// AnalysisRequest carries per-run threshold overrides. Zero values fall
// back to the configured defaults.
type AnalysisRequest struct {
	MinSupport    float64 `json:"min_support" validate:"omitempty,gt=0,lte=1"`
	MinConfidence float64 `json:"min_confidence" validate:"omitempty,gt=0,lte=1"`
	TopN          int     `json:"top_n" validate:"omitempty,gt=0"`
}

// AnalysisResult is the complete output of one run.
type AnalysisResult struct {
	RunID         string        `json:"run_id"`
	StartedAt     time.Time     `json:"started_at"`
	Duration      time.Duration `json:"duration"`
	MinSupport    float64       `json:"min_support"`
	MinConfidence float64       `json:"min_confidence"`

	Itemsets      []basket.Itemset `json:"itemsets"`
	Rules         []basket.Rule    `json:"rules"`
	TopBySupport  []basket.Rule    `json:"top_by_support"`
	TopByLift     []basket.Rule    `json:"top_by_lift"`

	Performance     []performance.MonthlyCategoryPerformance `json:"performance"`
	CategoryRollups []performance.CategoryPerformance        `json:"category_rollups"`
	Overall         performance.CategoryPerformance          `json:"overall"`

	Overview         basket.Overview          `json:"overview"`
	Categories       []basket.CategorySummary `json:"categories"`
	TopSubCategories []basket.LabelCount      `json:"top_sub_categories"`
	TopStates        []basket.LabelAmount     `json:"top_states"`
	TopCities        []basket.LabelAmount     `json:"top_cities"`
}

// AnalysisService orchestrates analysis runs and retains the latest
// result in memory.
type AnalysisService struct {
	cfg        *config.Config
	logger     *slog.Logger
	hub        WebSocketHub
	miner      *basket.Miner
	aggregator *performance.Aggregator
	reports    *exporter.ReportExporter
	workbook   *exporter.WorkbookExporter
	metrics    *Metrics

	mu     sync.RWMutex
	latest *AnalysisResult
}

// NewAnalysisService creates the analysis service. hub and metrics may
// be nil for CLI use.
func NewAnalysisService(cfg *config.Config, logger *slog.Logger, hub WebSocketHub, metrics *Metrics) *AnalysisService {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	logger = logger.With(slog.String("component", "analysis_service"))

	return &AnalysisService{
		cfg:        cfg,
		logger:     logger,
		hub:        hub,
		miner:      basket.NewMiner(logger),
		aggregator: performance.NewAggregator(logger),
		reports:    exporter.NewReportExporter(cfg.Paths.ReportsDir, cfg.Analysis.ExchangeRate),
		workbook:   exporter.NewWorkbookExporter(cfg.Paths.ReportsDir),
		metrics:    metrics,
	}
}

// Run executes a full analysis and stores the result as latest.
func (s *AnalysisService) Run(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	started := time.Now()
	runID := uuid.New().String()
	ctx = infrastructure.WithTraceID(ctx, runID)

	minSupport := req.MinSupport
	if minSupport == 0 {
		minSupport = s.cfg.Analysis.MinSupport
	}
	minConfidence := req.MinConfidence
	if minConfidence == 0 {
		minConfidence = s.cfg.Analysis.MinConfidence
	}
	topN := req.TopN
	if topN == 0 {
		topN = s.cfg.Analysis.TopN
	}

	if s.cfg.Analysis.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Analysis.RunTimeout)
		defer cancel()
	}

	s.logger.InfoContext(ctx, "analysis run started",
		"run_id", runID,
		"min_support", minSupport,
		"min_confidence", minConfidence,
	)
	s.broadcast(EventAnalysisStarted, map[string]interface{}{
		"run_id":         runID,
		"min_support":    minSupport,
		"min_confidence": minConfidence,
	}, runID)

	result, err := s.execute(ctx, runID, started, minSupport, minConfidence, topN)
	if err != nil {
		s.logger.ErrorContext(ctx, "analysis run failed",
			"run_id", runID,
			"error", err,
			"duration", time.Since(started),
		)
		if s.metrics != nil {
			s.metrics.RunsTotal.WithLabelValues("failed").Inc()
		}
		s.broadcast(EventAnalysisFailed, map[string]interface{}{
			"run_id": runID,
			"error":  err.Error(),
		}, runID)
		return nil, err
	}

	s.mu.Lock()
	s.latest = result
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RunsTotal.WithLabelValues("completed").Inc()
		s.metrics.RunDuration.Observe(result.Duration.Seconds())
		s.metrics.ItemsetsMined.Set(float64(len(result.Itemsets)))
		s.metrics.RulesDerived.Set(float64(len(result.Rules)))
	}

	s.logger.InfoContext(ctx, "analysis run completed",
		"run_id", runID,
		"itemsets", len(result.Itemsets),
		"rules", len(result.Rules),
		"performance_rows", len(result.Performance),
		"duration", result.Duration,
	)
	s.broadcast(EventAnalysisComplete, map[string]interface{}{
		"run_id":   runID,
		"itemsets": len(result.Itemsets),
		"rules":    len(result.Rules),
		"duration": result.Duration.String(),
	}, runID)

	return result, nil
}

func (s *AnalysisService) execute(ctx context.Context, runID string, started time.Time, minSupport, minConfidence float64, topN int) (*AnalysisResult, error) {
	txns, targets, err := s.loadInputs(ctx)
	if err != nil {
		return nil, err
	}

	result := &AnalysisResult{
		RunID:         runID,
		StartedAt:     started,
		MinSupport:    minSupport,
		MinConfidence: minConfidence,
	}

	// The basket and performance branches share only the joined
	// transactions, which neither mutates
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		encoded := basket.Encode(txns)
		itemsets, err := s.miner.Mine(gctx, encoded, minSupport)
		if err != nil {
			return fmt.Errorf("mine frequent itemsets: %w", err)
		}
		rules, err := basket.DeriveRules(itemsets, minConfidence)
		if err != nil {
			return fmt.Errorf("derive association rules: %w", err)
		}
		result.Itemsets = itemsets
		result.Rules = rules
		result.TopBySupport = basket.TopBySupport(rules, topN)
		result.TopByLift = basket.TopByLift(rules, topN)
		return nil
	})

	g.Go(func() error {
		rows, err := s.aggregator.Aggregate(gctx, txns, targets)
		if err != nil {
			return fmt.Errorf("aggregate performance: %w", err)
		}
		result.Performance = rows
		result.CategoryRollups = performance.CategoryRollups(rows)
		result.Overall = performance.Overall(rows)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Overview = basket.Summarize(txns)
	result.Categories = basket.CategorySummaries(txns)
	result.TopSubCategories = basket.TopSubCategories(txns, topN)
	result.TopStates = basket.TopStatesBySales(txns, topN)
	result.TopCities = basket.TopCitiesBySales(txns, topN)
	result.Duration = time.Since(started)

	return result, nil
}

// loadInputs reads the three CSV inputs, joins the order tables on the
// order ID and converts them into typed records.
func (s *AnalysisService) loadInputs(ctx context.Context) ([]dataset.Transaction, []performance.TargetRecord, error) {
	lines, err := dataset.LoadOrderLines(s.cfg.OrderLinePath())
	if err != nil {
		return nil, nil, fmt.Errorf("load order lines: %w", err)
	}
	headers, err := dataset.LoadOrderHeaders(s.cfg.OrderHeaderPath())
	if err != nil {
		return nil, nil, fmt.Errorf("load order headers: %w", err)
	}
	targetTable, err := dataset.LoadTargets(s.cfg.TargetPath())
	if err != nil {
		return nil, nil, fmt.Errorf("load targets: %w", err)
	}

	joined, err := dataset.InnerJoin(lines, headers, config.ColOrderID)
	if err != nil {
		return nil, nil, err
	}
	s.logger.InfoContext(ctx, "order tables joined",
		"line_rows", lines.NumRows(),
		"header_rows", headers.NumRows(),
		"joined_rows", joined.NumRows(),
	)

	txns, err := dataset.Transactions(joined)
	if err != nil {
		return nil, nil, err
	}
	targets, err := performance.Targets(targetTable)
	if err != nil {
		return nil, nil, err
	}
	return txns, targets, nil
}

// Latest returns the most recent analysis result, or false when no run
// has completed yet.
func (s *AnalysisService) Latest() (*AnalysisResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.latest != nil
}

// ExportReports writes the latest result as CSV reports and an Excel
// workbook under the configured reports directory.
func (s *AnalysisService) ExportReports(ctx context.Context) error {
	result, ok := s.Latest()
	if !ok {
		return fmt.Errorf("no analysis result to export")
	}
	return s.WriteReports(ctx, result)
}

// WriteReports writes the given result to disk.
func (s *AnalysisService) WriteReports(ctx context.Context, result *AnalysisResult) error {
	if err := s.reports.ExportItemsets(result.Itemsets, "frequent_itemsets.csv"); err != nil {
		return err
	}
	if err := s.reports.ExportRules(result.Rules, "association_rules.csv"); err != nil {
		return err
	}
	if err := s.reports.ExportPerformance(result.Performance, "monthly_performance.csv"); err != nil {
		return err
	}
	if err := s.reports.ExportCategorySummaries(result.Categories, "category_summary.csv"); err != nil {
		return err
	}
	if err := s.workbook.Export(exporter.WorkbookData{
		Itemsets:    result.Itemsets,
		Rules:       result.Rules,
		Performance: result.Performance,
		Categories:  result.Categories,
	}, "analysis.xlsx"); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "reports written",
		"reports_dir", s.cfg.Paths.ReportsDir,
		"run_id", result.RunID,
	)
	return nil
}

func (s *AnalysisService) broadcast(messageType string, data interface{}, traceID string) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastWithTrace(messageType, data, traceID)
}
