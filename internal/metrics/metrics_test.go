package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sonumahanty/Swiss-Re/internal/analysis"
	"github.com/sonumahanty/Swiss-Re/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *report.Result {
	return &report.Result{
		RunID:         "run-1",
		Source:        "employees.csv",
		GeneratedAt:   time.Unix(1700000000, 0),
		Duration:      250 * time.Millisecond,
		EmployeeCount: 13,
		ManagerCount:  8,
		Underpaid:     make([]analysis.SalaryIssue, 3),
		Overpaid:      make([]analysis.SalaryIssue, 2),
		LongLines:     make([]analysis.ReportingLineIssue, 2),
	}
}

func TestObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, "employees.csv")

	m.Observe(sampleResult())

	assert.Equal(t, 13.0, testutil.ToFloat64(m.Employees))
	assert.Equal(t, 8.0, testutil.ToFloat64(m.Managers))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Issues.WithLabelValues(KindUnderpaid)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Issues.WithLabelValues(KindOverpaid)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Issues.WithLabelValues(KindLongReportingLine)))
	assert.Equal(t, 0.25, testutil.ToFloat64(m.Duration))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Success))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(m.LastRunTime))
}

func TestObserve_IncompleteRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, "employees.csv")

	res := sampleResult()
	res.LongLines = nil
	res.LinesErr = errors.New("cycle")
	m.Observe(res)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.Success))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Issues.WithLabelValues(KindUnderpaid)))
	// only underpaid and overpaid series exist
	assert.Equal(t, 2, testutil.CollectAndCount(m.Issues))
}

func TestObserveFailure(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry(), "employees.csv")
	m.Success.Set(1)

	m.ObserveFailure()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Success))
}

func TestMetricsExposition(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, "employees.csv")
	m.Observe(sampleResult())

	expected := `
# HELP orgscan_issues Number of findings by kind in the last run
# TYPE orgscan_issues gauge
orgscan_issues{kind="long_reporting_line",source="employees.csv"} 2
orgscan_issues{kind="overpaid",source="employees.csv"} 2
orgscan_issues{kind="underpaid",source="employees.csv"} 3
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "orgscan_issues"))
}

func TestTextfileExporter(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, "employees.csv")
	m.Observe(sampleResult())

	path := filepath.Join(t.TempDir(), "orgscan.prom")
	exporter := NewTextfileExporter(path, reg)

	require.NoError(t, exporter.Start(t.Context()))
	require.NoError(t, exporter.Stop(t.Context()))
	assert.Equal(t, "Metrics Textfile Exporter", exporter.Name())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `orgscan_employees{source="employees.csv"} 13`)
	assert.Contains(t, string(data), `orgscan_last_run_success{source="employees.csv"} 1`)
}

func TestTextfileExporter_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "orgscan.prom")
	exporter := NewTextfileExporter(path, prometheus.NewRegistry())

	err := exporter.Start(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}
