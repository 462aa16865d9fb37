package analysis

import (
	"errors"
	"fmt"

	"github.com/sonumahanty/Swiss-Re/internal/logging"
	"github.com/sonumahanty/Swiss-Re/internal/models"
)

// LongReportingLines returns employees with more than MaxReportingDepth
// managers between them and the CEO, in input order.
//
// The query needs exactly one root. Without one it reports ErrCycle if any
// reporting line loops, ErrNoRoot otherwise; with several it reports
// ErrMultipleRoots. A loop or an unresolved manager reference found while
// walking fails the whole query: no partial result is returned.
func (a *Analyzer) LongReportingLines() ([]ReportingLineIssue, error) {
	if err := a.checkSingleRoot(); err != nil {
		a.logger.WarnWithFields("Reporting line query aborted", logging.Field("error", err))
		return nil, err
	}

	issues := make([]ReportingLineIssue, 0)
	for _, e := range a.employees {
		if e.IsRoot() {
			continue
		}

		managers, err := a.managersAbove(e)
		if err != nil {
			a.logger.WarnWithFields("Reporting line query aborted",
				logging.Field("employee_id", e.ID()),
				logging.Field("error", err))
			return nil, err
		}

		if managers > a.thresholds.MaxReportingDepth {
			issues = append(issues, ReportingLineIssue{
				Employee:     e,
				ManagerCount: managers,
				Excess:       managers - a.thresholds.MaxReportingDepth,
			})
		}
	}

	a.logger.DebugWithFields("Reporting lines evaluated", logging.Field("issues", len(issues)))
	return issues, nil
}

// ReportingDepth returns the number of managers above id, counting the CEO.
// The CEO has depth 0.
func (a *Analyzer) ReportingDepth(id models.EmployeeID) (int, error) {
	e, ok := a.byID[id]
	if !ok {
		return 0, fmt.Errorf("employee %d not found", id)
	}
	return a.managersAbove(e)
}

// checkSingleRoot fails unless exactly one employee has no manager
func (a *Analyzer) checkSingleRoot() error {
	var roots []models.Employee
	for _, e := range a.employees {
		if e.IsRoot() {
			roots = append(roots, e)
		}
	}

	switch len(roots) {
	case 1:
		return nil
	case 0:
		// A rootless roster usually means the lines loop; name the loop if there is one
		for _, e := range a.employees {
			if _, err := a.managersAbove(e); errors.Is(err, ErrCycle) {
				return err
			}
		}
		return newStructuralError(KindNoRoot, fmt.Sprintf("none of %d employees is without a manager", len(a.employees)))
	default:
		return newEmployeeStructuralError(KindMultipleRoots, roots[1],
			fmt.Sprintf("%d employees have no manager (first two: %d, %d)", len(roots), roots[0].ID(), roots[1].ID()))
	}
}

// managersAbove walks manager references upwards from e until it reaches an
// employee without a manager. Each step counts one manager. The visited set
// is local to this walk.
func (a *Analyzer) managersAbove(e models.Employee) (int, error) {
	visited := make(map[models.EmployeeID]struct{})
	count := 0
	current := e

	for !current.IsRoot() {
		if _, seen := visited[current.ID()]; seen {
			return 0, newEmployeeStructuralError(KindCycle, current,
				fmt.Sprintf("reporting line of %s (ID: %d) revisits %s (ID: %d)",
					e.FullName(), e.ID(), current.FullName(), current.ID()))
		}
		visited[current.ID()] = struct{}{}

		managerID, _ := current.ManagerID()
		manager, ok := a.byID[managerID]
		if !ok {
			return 0, newEmployeeStructuralError(KindDanglingManager, current,
				fmt.Sprintf("%s (ID: %d) references unknown manager ID %d",
					current.FullName(), current.ID(), managerID))
		}

		current = manager
		count++
	}

	return count, nil
}
