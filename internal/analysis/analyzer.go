package analysis

import (
	"fmt"

	"github.com/sonumahanty/Swiss-Re/internal/logging"
	"github.com/sonumahanty/Swiss-Re/internal/models"
)

// Analyzer answers organisational-health queries over one roster.
// The indices are built once in NewAnalyzer and never modified, so an
// Analyzer is safe for concurrent use by multiple readers.
type Analyzer struct {
	employees     []models.Employee
	byID          map[models.EmployeeID]models.Employee
	directReports map[models.EmployeeID][]models.Employee
	thresholds    Thresholds
	logger        *logging.Logger
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithThresholds overrides DefaultThresholds
func WithThresholds(t Thresholds) Option {
	return func(a *Analyzer) { a.thresholds = t }
}

// WithLogger replaces the default "analysis" logger
func WithLogger(logger *logging.Logger) Option {
	return func(a *Analyzer) { a.logger = logger }
}

// NewAnalyzer indexes employees in one pass. It fails on an empty roster,
// duplicate IDs or invalid thresholds. Root, cycle and reference problems are
// left to LongReportingLines so the salary queries stay usable.
func NewAnalyzer(employees []models.Employee, opts ...Option) (*Analyzer, error) {
	a := &Analyzer{
		thresholds: DefaultThresholds(),
		logger:     logging.GetLogger("analysis"),
	}
	for _, opt := range opts {
		opt(a)
	}

	if err := a.thresholds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid thresholds: %w", err)
	}
	if len(employees) == 0 {
		return nil, newStructuralError(KindEmptyRoster, "")
	}

	a.employees = make([]models.Employee, len(employees))
	copy(a.employees, employees)
	a.byID = make(map[models.EmployeeID]models.Employee, len(employees))
	a.directReports = make(map[models.EmployeeID][]models.Employee)

	for _, e := range a.employees {
		if _, exists := a.byID[e.ID()]; exists {
			return nil, newEmployeeStructuralError(KindDuplicateID, e,
				fmt.Sprintf("employee ID %d appears more than once", e.ID()))
		}
		a.byID[e.ID()] = e

		if managerID, ok := e.ManagerID(); ok {
			a.directReports[managerID] = append(a.directReports[managerID], e)
		}
	}

	a.logger.DebugWithFields("Analyzer indices built",
		logging.Field("employees", len(a.employees)),
		logging.Field("managers", len(a.directReports)))

	return a, nil
}

// Thresholds returns the rules in effect
func (a *Analyzer) Thresholds() Thresholds { return a.thresholds }

// Employees returns the roster in input order
func (a *Analyzer) Employees() []models.Employee {
	out := make([]models.Employee, len(a.employees))
	copy(out, a.employees)
	return out
}

// Employee looks up one employee by ID
func (a *Analyzer) Employee(id models.EmployeeID) (models.Employee, bool) {
	e, ok := a.byID[id]
	return e, ok
}

// DirectReports returns the employees reporting to id, in input order
func (a *Analyzer) DirectReports(id models.EmployeeID) []models.Employee {
	reports := a.directReports[id]
	out := make([]models.Employee, len(reports))
	copy(out, reports)
	return out
}

// ManagerCount is the number of employees with at least one direct report
// that is present in the roster
func (a *Analyzer) ManagerCount() int {
	count := 0
	for id := range a.directReports {
		if _, ok := a.byID[id]; ok {
			count++
		}
	}
	return count
}

// Root returns the first employee without a manager, in input order
func (a *Analyzer) Root() (models.Employee, bool) {
	for _, e := range a.employees {
		if e.IsRoot() {
			return e, true
		}
	}
	return models.Employee{}, false
}
