// Package analysis evaluates organisational-health rules over a roster.
//
// # Model
//
// The roster is kept as a flat, input-ordered slice of models.Employee.
// Two indices are derived from it once, in NewAnalyzer:
//
//   - byID: employee ID to employee
//   - directReports: manager ID to the employees that reference it, in input order
//
// Employees never carry a list of their reports; the manager/report relation
// exists only in the derived index, so there is no cyclic ownership.
//
// # Queries
//
//   - UnderpaidManagers: salary < 1.20 × mean direct-report salary
//   - OverpaidManagers: salary > 1.50 × mean direct-report salary
//   - LongReportingLines: more than 4 managers between an employee and the CEO
//
// The multipliers and the depth limit are configurable through WithThresholds.
// Results keep input order and full floating-point precision; rounding and
// layout belong to the report package.
//
// # Structural errors
//
// LongReportingLines walks manager references iteratively with a visited set
// per walk, so a malformed roster fails with a StructuralError (ErrCycle,
// ErrNoRoot, ErrMultipleRoots, ErrDanglingManager) instead of looping.
// The salary queries do not depend on the shape above a manager and never fail.
package analysis
