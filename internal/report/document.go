package report

import (
	"math"
	"time"

	"github.com/sonumahanty/Swiss-Re/internal/analysis"
)

// document is the serialised form of a Result. Amounts are rounded to
// cents here; the analyzer keeps full precision.
type document struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	Source      string    `json:"source" yaml:"source"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	DurationMs  int64     `json:"duration_ms" yaml:"duration_ms"`
	Employees   int       `json:"employees" yaml:"employees"`
	Managers    int       `json:"managers" yaml:"managers"`

	Thresholds thresholdsDoc `json:"thresholds" yaml:"thresholds"`

	Underpaid          []salaryDoc `json:"underpaid_managers" yaml:"underpaid_managers"`
	Overpaid           []salaryDoc `json:"overpaid_managers" yaml:"overpaid_managers"`
	LongReportingLines []lineDoc   `json:"long_reporting_lines" yaml:"long_reporting_lines"`

	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

type thresholdsDoc struct {
	UnderpaidMultiplier float64 `json:"underpaid_multiplier" yaml:"underpaid_multiplier"`
	OverpaidMultiplier  float64 `json:"overpaid_multiplier" yaml:"overpaid_multiplier"`
	MaxReportingDepth   int     `json:"max_reporting_depth" yaml:"max_reporting_depth"`
}

type salaryDoc struct {
	ID                  int64   `json:"id" yaml:"id"`
	Name                string  `json:"name" yaml:"name"`
	Salary              float64 `json:"salary" yaml:"salary"`
	Amount              float64 `json:"amount" yaml:"amount"`
	ExpectedSalary      float64 `json:"expected_salary" yaml:"expected_salary"`
	DirectReports       int     `json:"direct_reports" yaml:"direct_reports"`
	AverageReportSalary float64 `json:"average_report_salary" yaml:"average_report_salary"`
}

type lineDoc struct {
	ID           int64  `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	ManagerCount int    `json:"manager_count" yaml:"manager_count"`
	Excess       int    `json:"excess" yaml:"excess"`
}

func newDocument(r *Result) document {
	doc := document{
		RunID:       r.RunID,
		Source:      r.Source,
		GeneratedAt: r.GeneratedAt,
		DurationMs:  r.Duration.Milliseconds(),
		Employees:   r.EmployeeCount,
		Managers:    r.ManagerCount,
		Thresholds: thresholdsDoc{
			UnderpaidMultiplier: r.Thresholds.UnderpaidMultiplier,
			OverpaidMultiplier:  r.Thresholds.OverpaidMultiplier,
			MaxReportingDepth:   r.Thresholds.MaxReportingDepth,
		},
		Underpaid:          salaryDocs(r.Underpaid),
		Overpaid:           salaryDocs(r.Overpaid),
		LongReportingLines: make([]lineDoc, 0, len(r.LongLines)),
	}

	for _, issue := range r.LongLines {
		doc.LongReportingLines = append(doc.LongReportingLines, lineDoc{
			ID:           int64(issue.Employee.ID()),
			Name:         issue.Employee.FullName(),
			ManagerCount: issue.ManagerCount,
			Excess:       issue.Excess,
		})
	}

	if r.LinesErr != nil {
		doc.Error = r.LinesErr.Error()
	}
	return doc
}

func salaryDocs(issues []analysis.SalaryIssue) []salaryDoc {
	out := make([]salaryDoc, 0, len(issues))
	for _, issue := range issues {
		out = append(out, salaryDoc{
			ID:                  int64(issue.Manager.ID()),
			Name:                issue.Manager.FullName(),
			Salary:              cents(issue.Manager.Salary()),
			Amount:              cents(issue.Amount),
			ExpectedSalary:      cents(issue.ExpectedSalary()),
			DirectReports:       issue.DirectReportCount,
			AverageReportSalary: cents(issue.AverageReportSalary),
		})
	}
	return out
}

func cents(v float64) float64 {
	return math.Round(v*100) / 100
}
