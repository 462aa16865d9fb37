// Package metrics exposes the outcome of an analysis run as Prometheus
// gauges and writes them in the node_exporter textfile format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sonumahanty/Swiss-Re/internal/report"
)

// Issue kinds used as the "kind" label
const (
	KindUnderpaid         = "underpaid"
	KindOverpaid          = "overpaid"
	KindLongReportingLine = "long_reporting_line"
)

// Metrics holds the gauges describing the last analysis run
type Metrics struct {
	Employees   prometheus.Gauge     // Employees in the roster
	Managers    prometheus.Gauge     // Employees with at least one direct report
	Issues      *prometheus.GaugeVec // Findings per kind
	Duration    prometheus.Gauge     // Wall time of the checks in seconds
	Success     prometheus.Gauge     // 1 when every check completed
	LastRunTime prometheus.Gauge     // Unix time the run started
}

// NewMetrics creates the analysis gauges and registers them with reg.
// The source label identifies the roster file.
func NewMetrics(reg prometheus.Registerer, source string) *Metrics {
	labels := prometheus.Labels{"source": source}

	m := &Metrics{
		Employees: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "orgscan_employees",
			Help:        "Number of employees in the analysed roster",
			ConstLabels: labels,
		}),
		Managers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "orgscan_managers",
			Help:        "Number of employees with at least one direct report",
			ConstLabels: labels,
		}),
		Issues: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "orgscan_issues",
			Help:        "Number of findings by kind in the last run",
			ConstLabels: labels,
		}, []string{"kind"}),
		Duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "orgscan_analysis_duration_seconds",
			Help:        "Time spent running the organisational checks",
			ConstLabels: labels,
		}),
		Success: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "orgscan_last_run_success",
			Help:        "1 if the last run completed every check, 0 otherwise",
			ConstLabels: labels,
		}),
		LastRunTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "orgscan_last_run_timestamp_seconds",
			Help:        "Unix time at which the last run started",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(m.Employees)
	reg.MustRegister(m.Managers)
	reg.MustRegister(m.Issues)
	reg.MustRegister(m.Duration)
	reg.MustRegister(m.Success)
	reg.MustRegister(m.LastRunTime)

	return m
}

// Observe records a finished run. The long reporting line gauge is left
// unset when that check failed.
func (m *Metrics) Observe(res *report.Result) {
	m.Employees.Set(float64(res.EmployeeCount))
	m.Managers.Set(float64(res.ManagerCount))
	m.Duration.Set(res.Duration.Seconds())
	m.LastRunTime.Set(float64(res.GeneratedAt.Unix()))

	m.Issues.WithLabelValues(KindUnderpaid).Set(float64(len(res.Underpaid)))
	m.Issues.WithLabelValues(KindOverpaid).Set(float64(len(res.Overpaid)))

	if res.LinesErr != nil {
		m.Success.Set(0)
		return
	}
	m.Issues.WithLabelValues(KindLongReportingLine).Set(float64(len(res.LongLines)))
	m.Success.Set(1)
}

// ObserveFailure records a run that produced no result
func (m *Metrics) ObserveFailure() {
	m.Success.Set(0)
}
