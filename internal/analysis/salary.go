package analysis

import (
	"github.com/sonumahanty/Swiss-Re/internal/logging"
	"github.com/sonumahanty/Swiss-Re/internal/models"
)

// UnderpaidManagers returns managers earning less than UnderpaidMultiplier
// times the average salary of their direct reports, in input order.
// Employees without direct reports are never reported.
func (a *Analyzer) UnderpaidManagers() []SalaryIssue {
	issues := make([]SalaryIssue, 0)
	for _, manager := range a.employees {
		average, count, ok := a.averageReportSalary(manager.ID())
		if !ok {
			continue
		}

		minimum := average * a.thresholds.UnderpaidMultiplier
		if manager.Salary() < minimum {
			issues = append(issues, SalaryIssue{
				Manager:             manager,
				Kind:                IssueUnderpaid,
				Amount:              minimum - manager.Salary(),
				AverageReportSalary: average,
				DirectReportCount:   count,
			})
		}
	}

	a.logger.DebugWithFields("Underpaid managers evaluated", logging.Field("issues", len(issues)))
	return issues
}

// OverpaidManagers returns managers earning more than OverpaidMultiplier
// times the average salary of their direct reports, in input order
func (a *Analyzer) OverpaidManagers() []SalaryIssue {
	issues := make([]SalaryIssue, 0)
	for _, manager := range a.employees {
		average, count, ok := a.averageReportSalary(manager.ID())
		if !ok {
			continue
		}

		maximum := average * a.thresholds.OverpaidMultiplier
		if manager.Salary() > maximum {
			issues = append(issues, SalaryIssue{
				Manager:             manager,
				Kind:                IssueOverpaid,
				Amount:              manager.Salary() - maximum,
				AverageReportSalary: average,
				DirectReportCount:   count,
			})
		}
	}

	a.logger.DebugWithFields("Overpaid managers evaluated", logging.Field("issues", len(issues)))
	return issues
}

// averageReportSalary returns the mean direct-report salary. ok is false
// when id has no direct reports.
func (a *Analyzer) averageReportSalary(id models.EmployeeID) (average float64, count int, ok bool) {
	reports := a.directReports[id]
	if len(reports) == 0 {
		return 0, 0, false
	}

	var total float64
	for _, r := range reports {
		total += r.Salary()
	}
	return total / float64(len(reports)), len(reports), true
}
