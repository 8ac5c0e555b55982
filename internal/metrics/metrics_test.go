package metrics_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strikearr/internal/engine"
	"strikearr/internal/metrics"
)

func TestRecordRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.RecordRun([]engine.Outcome{
		{Status: engine.StatusStriked},
		{Status: engine.StatusStriked},
		{Status: engine.StatusRemoved},
	}, true, 10*time.Millisecond)
	m.RecordRun(nil, false, time.Millisecond)
	m.RemovalRequested()
	m.RemovalFailed()
	m.SetLedgerEntries(4)
	m.AddPruned(2)

	expected := `
# HELP strikearr_outcomes_total Evaluated queue items by status
# TYPE strikearr_outcomes_total counter
strikearr_outcomes_total{status="Removed"} 1
strikearr_outcomes_total{status="Striked"} 2
# HELP strikearr_runs_total Total number of monitor runs
# TYPE strikearr_runs_total counter
strikearr_runs_total 2
# HELP strikearr_fetch_failures_total Queue fetches that failed and produced an empty snapshot
# TYPE strikearr_fetch_failures_total counter
strikearr_fetch_failures_total 1
# HELP strikearr_ledger_entries Number of items tracked in the strike ledger
# TYPE strikearr_ledger_entries gauge
strikearr_ledger_entries 4
`
	err := testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"strikearr_outcomes_total", "strikearr_runs_total", "strikearr_fetch_failures_total", "strikearr_ledger_entries")
	require.NoError(t, err)

	removals := `
# HELP strikearr_removal_failures_total Queue item removals the platform did not accept
# TYPE strikearr_removal_failures_total counter
strikearr_removal_failures_total 1
# HELP strikearr_ledger_pruned_total Ledger entries dropped because the item left the queue
# TYPE strikearr_ledger_pruned_total counter
strikearr_ledger_pruned_total 2
`
	err = testutil.GatherAndCompare(reg, strings.NewReader(removals),
		"strikearr_removal_failures_total", "strikearr_ledger_pruned_total")
	assert.NoError(t, err)
}

func TestServerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.RemovalRequested()

	server, err := metrics.Listen("127.0.0.1:0", reg, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx) }()

	var body string
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + server.Addr() + "/metrics")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		data, _ := io.ReadAll(resp.Body)
		body = string(data)
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)
	assert.Contains(t, body, "strikearr_removals_requested_total 1")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNewPanicsOnDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg)
	assert.Panics(t, func() { metrics.New(reg) })
}
