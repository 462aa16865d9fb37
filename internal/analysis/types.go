package analysis

import (
	"fmt"
	"math"

	"github.com/sonumahanty/Swiss-Re/internal/models"
)

// IssueKind tags a salary finding
type IssueKind string

const (
	IssueUnderpaid IssueKind = "UNDERPAID"
	IssueOverpaid  IssueKind = "OVERPAID"
)

// Thresholds are the rules the analyzer checks against
type Thresholds struct {
	UnderpaidMultiplier float64
	OverpaidMultiplier  float64
	MaxReportingDepth   int
}

// DefaultThresholds returns the 1.20 / 1.50 / 4 rules
func DefaultThresholds() Thresholds {
	return Thresholds{
		UnderpaidMultiplier: DefaultUnderpaidMultiplier,
		OverpaidMultiplier:  DefaultOverpaidMultiplier,
		MaxReportingDepth:   DefaultMaxReportingDepth,
	}
}

// Validate checks the thresholds are usable
func (t Thresholds) Validate() error {
	if !isFinite(t.UnderpaidMultiplier) {
		return fmt.Errorf("underpaid multiplier must be a finite number, got %v", t.UnderpaidMultiplier)
	}
	if !isFinite(t.OverpaidMultiplier) {
		return fmt.Errorf("overpaid multiplier must be a finite number, got %v", t.OverpaidMultiplier)
	}
	if t.UnderpaidMultiplier <= 0 {
		return fmt.Errorf("underpaid multiplier must be positive, got %v", t.UnderpaidMultiplier)
	}
	if t.OverpaidMultiplier <= 0 {
		return fmt.Errorf("overpaid multiplier must be positive, got %v", t.OverpaidMultiplier)
	}
	if t.UnderpaidMultiplier > t.OverpaidMultiplier {
		return fmt.Errorf("underpaid multiplier (%v) must not exceed overpaid multiplier (%v)",
			t.UnderpaidMultiplier, t.OverpaidMultiplier)
	}
	if t.MaxReportingDepth < 0 {
		return fmt.Errorf("max reporting depth must not be negative, got %d", t.MaxReportingDepth)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// SalaryIssue is a manager whose salary falls outside the allowed band
// relative to the average of their direct reports
type SalaryIssue struct {
	Manager models.Employee
	Kind    IssueKind
	// Amount is the shortfall (UNDERPAID) or the overpay (OVERPAID); always > 0
	Amount              float64
	AverageReportSalary float64
	DirectReportCount   int
}

// ExpectedSalary is the band limit the manager missed: the minimum for
// UNDERPAID, the maximum for OVERPAID
func (i SalaryIssue) ExpectedSalary() float64 {
	if i.Kind == IssueOverpaid {
		return i.Manager.Salary() - i.Amount
	}
	return i.Manager.Salary() + i.Amount
}

// ReportingLineIssue is an employee with too many managers above them
type ReportingLineIssue struct {
	Employee models.Employee
	// ManagerCount is the number of manager hops up to and including the CEO
	ManagerCount int
	// Excess is ManagerCount minus the allowed maximum
	Excess int
}
