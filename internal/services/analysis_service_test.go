package services

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailcli/internal/config"
	"retailcli/internal/dataset"
)

const (
	orderLinesCSV = `Order ID,Amount,Profit,Quantity,Category,Sub-Category
B-1,1000,200,2,Electronics,Phones
B-1,300,50,1,Electronics,Accessories
B-2,800,100,1,Electronics,Phones
B-3,400,-20,3,Clothing,Saree
`
	orderHeadersCSV = `Order ID,Order Date,CustomerName,State,City
B-1,4/13/2018,Harivansh,Maharashtra,Mumbai
B-2,13-04-2018,Madhav,Gujarat,Ahmedabad
B-3,5/2/2018,Gopal,Maharashtra,Pune
`
	targetsCSV = `Month of Order Date,Category,Target
18-Apr,Electronics,2000
18-May,Clothing,500
`
)

type recordingHub struct {
	mu     sync.Mutex
	events []string
}

func (h *recordingHub) BroadcastWithTrace(messageType string, data interface{}, traceID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, messageType)
}

func (h *recordingHub) Events() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.events...)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "OrderDetails.csv"), []byte(orderLinesCSV), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ListofOrders.csv"), []byte(orderHeadersCSV), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Salestarget.csv"), []byte(targetsCSV), 0644))

	cfg := config.Default()
	cfg.Paths.DataDir = dir
	cfg.Paths.ReportsDir = filepath.Join(dir, "reports")
	return cfg
}

func TestAnalysisService_Run(t *testing.T) {
	cfg := testConfig(t)
	hub := &recordingHub{}
	metrics := NewMetrics(prometheus.NewRegistry())
	svc := NewAnalysisService(cfg, nil, hub, metrics)

	result, err := svc.Run(context.Background(), AnalysisRequest{
		MinSupport:    0.3,
		MinConfidence: 0.5,
		TopN:          5,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 0.3, result.MinSupport)

	// Three orders: Phones in two, Accessories and Saree in one each.
	keys := make(map[string]float64)
	for _, is := range result.Itemsets {
		keys[is.String()] = is.Support
	}
	assert.InDelta(t, 2.0/3.0, keys["Phones"], 1e-9)
	assert.InDelta(t, 1.0/3.0, keys["Accessories"], 1e-9)
	assert.InDelta(t, 1.0/3.0, keys["Accessories, Phones"], 1e-9)

	// April dates in both formats share the 18-Apr bucket.
	require.NotEmpty(t, result.Performance)
	april := result.Performance[0]
	assert.Equal(t, "18-Apr", april.Month)
	assert.Equal(t, "Electronics", april.Category)
	assert.InDelta(t, 2100, april.Actual, 1e-9)
	assert.True(t, april.HasTarget)
	assert.InDelta(t, 105, april.Achievement, 1e-9)

	// May Clothing has sales but its target row names 18-May Clothing.
	may := result.Performance[1]
	assert.Equal(t, "18-May", may.Month)
	assert.Equal(t, "Clothing", may.Category)
	assert.True(t, may.HasTarget)

	assert.Equal(t, 3, result.Overview.TotalOrders)
	assert.Equal(t, 4, result.Overview.TotalLines)

	latest, ok := svc.Latest()
	require.True(t, ok)
	assert.Equal(t, result.RunID, latest.RunID)

	events := hub.Events()
	require.Len(t, events, 2)
	assert.Equal(t, EventAnalysisStarted, events[0])
	assert.Equal(t, EventAnalysisComplete, events[1])
}

func TestAnalysisService_DefaultsApplied(t *testing.T) {
	cfg := testConfig(t)
	cfg.Analysis.MinSupport = 0.2
	cfg.Analysis.MinConfidence = 0.4
	svc := NewAnalysisService(cfg, nil, nil, nil)

	result, err := svc.Run(context.Background(), AnalysisRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0.2, result.MinSupport)
	assert.Equal(t, 0.4, result.MinConfidence)
}

func TestAnalysisService_InvalidThreshold(t *testing.T) {
	cfg := testConfig(t)
	hub := &recordingHub{}
	svc := NewAnalysisService(cfg, nil, hub, nil)

	_, err := svc.Run(context.Background(), AnalysisRequest{MinSupport: 1.5})
	require.Error(t, err)

	events := hub.Events()
	require.Len(t, events, 2)
	assert.Equal(t, EventAnalysisFailed, events[1])

	_, ok := svc.Latest()
	assert.False(t, ok)
}

func TestAnalysisService_MissingInputFile(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.Remove(cfg.TargetPath()))
	svc := NewAnalysisService(cfg, nil, nil, nil)

	_, err := svc.Run(context.Background(), AnalysisRequest{})
	require.Error(t, err)
}

func TestAnalysisService_SchemaViolation(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.OrderLinePath(), []byte("Order ID,Amount\nB-1,100\n"), 0644))
	svc := NewAnalysisService(cfg, nil, nil, nil)

	_, err := svc.Run(context.Background(), AnalysisRequest{})
	var schemaErr *dataset.SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestAnalysisService_WriteReports(t *testing.T) {
	cfg := testConfig(t)
	svc := NewAnalysisService(cfg, nil, nil, nil)

	require.Error(t, svc.ExportReports(context.Background()), "export before any run must fail")

	result, err := svc.Run(context.Background(), AnalysisRequest{})
	require.NoError(t, err)
	require.NoError(t, svc.WriteReports(context.Background(), result))

	for _, name := range []string{
		"frequent_itemsets.csv",
		"association_rules.csv",
		"monthly_performance.csv",
		"category_summary.csv",
		"analysis.xlsx",
	} {
		_, err := os.Stat(filepath.Join(cfg.Paths.ReportsDir, name))
		assert.NoError(t, err, name)
	}
}
