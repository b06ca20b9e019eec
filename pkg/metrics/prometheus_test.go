package metrics_test

import (
	"strings"
	"testing"

	"StockLens/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.NewWithRegisterer(reg)

	r.RecordCacheHit("AAPL")
	r.RecordCacheHit("MSFT")
	r.RecordCacheMiss("AAPL")
	r.RecordLocalThrottle("AAPL")
	r.RecordProviderError("openai", "QUOTA_EXCEEDED")
	r.RecordStage("marketData", 0.2)
	r.RecordAnalysis("ok")

	n, err := testutil.GatherAndCount(reg,
		"stocklens_quotes_cache_lookups_total",
		"stocklens_quotes_local_throttles_total",
		"stocklens_provider_errors_total",
		"stocklens_analysis_stage_duration_seconds",
		"stocklens_analysis_runs_total",
	)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}

func TestLocalThrottlesIgnoreSymbol(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.NewWithRegisterer(reg)

	for _, sym := range []string{"AAPL", "MSFT", "ZZZZZZZZZZZZZZZZ"} {
		r.RecordLocalThrottle(sym)
	}

	n, err := testutil.GatherAndCount(reg, "stocklens_quotes_local_throttles_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	expected := `
# HELP stocklens_quotes_local_throttles_total Quote lookups refused by the per-symbol window
# TYPE stocklens_quotes_local_throttles_total counter
stocklens_quotes_local_throttles_total 3
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "stocklens_quotes_local_throttles_total"))
}

func TestRecordersUseSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.NewWithRegisterer(prometheus.NewRegistry())
		metrics.NewWithRegisterer(prometheus.NewRegistry())
	})
}
