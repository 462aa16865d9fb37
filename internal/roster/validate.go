package roster

import (
	"github.com/sonumahanty/Swiss-Re/internal/models"
)

// Validate checks the organisation-wide invariants of a parsed roster:
// exactly one CEO, unique IDs, manager references that resolve to another
// employee, and a reporting line from every employee up to the CEO.
// Checks run in that order and the first failure is returned.
func Validate(employees []models.Employee) error {
	if len(employees) == 0 {
		return models.NewValidationError("No employee data found in CSV file")
	}

	ceoCount := 0
	for _, e := range employees {
		if e.IsRoot() {
			ceoCount++
		}
	}
	if ceoCount == 0 {
		return models.NewValidationError("No CEO found (employee with no manager)")
	}
	if ceoCount > 1 {
		return models.NewValidationError("Multiple CEOs found (employees with no manager): %d", ceoCount)
	}

	byID := make(map[models.EmployeeID]models.Employee, len(employees))
	for _, e := range employees {
		if _, exists := byID[e.ID()]; exists {
			return models.NewValidationError("Duplicate employee IDs found: %d", e.ID())
		}
		byID[e.ID()] = e
	}

	for _, e := range employees {
		managerID, ok := e.ManagerID()
		if !ok {
			continue
		}
		if _, exists := byID[managerID]; !exists {
			return models.NewValidationError("Employee %s (ID: %d) references non-existent manager ID: %d",
				e.FullName(), e.ID(), managerID)
		}
		if managerID == e.ID() {
			return models.NewValidationError("Employee %s (ID: %d) cannot be their own manager",
				e.FullName(), e.ID())
		}
	}

	return checkConnected(employees, byID)
}

// checkConnected fails if some employee's reporting line loops instead of
// reaching the CEO. All manager references are known to resolve here.
func checkConnected(employees []models.Employee, byID map[models.EmployeeID]models.Employee) error {
	connected := make(map[models.EmployeeID]bool, len(employees))

	for _, e := range employees {
		var path []models.EmployeeID
		onPath := make(map[models.EmployeeID]bool)
		current := e

		for !current.IsRoot() && !connected[current.ID()] {
			if onPath[current.ID()] {
				return models.NewValidationError(
					"Employee %s (ID: %d) is not connected to the CEO (circular reporting line through ID: %d)",
					e.FullName(), e.ID(), current.ID())
			}
			onPath[current.ID()] = true
			path = append(path, current.ID())

			managerID, _ := current.ManagerID()
			current = byID[managerID]
		}

		for _, id := range path {
			connected[id] = true
		}
	}

	return nil
}
