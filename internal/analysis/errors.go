package analysis

import (
	"errors"
	"fmt"

	"github.com/sonumahanty/Swiss-Re/internal/models"
)

// StructuralKind classifies a structural defect in the reporting graph
type StructuralKind string

const (
	KindEmptyRoster     StructuralKind = "empty_roster"
	KindDuplicateID     StructuralKind = "duplicate_id"
	KindNoRoot          StructuralKind = "no_root"
	KindMultipleRoots   StructuralKind = "multiple_roots"
	KindCycle           StructuralKind = "cycle"
	KindDanglingManager StructuralKind = "dangling_manager"
)

// Sentinels for errors.Is; every StructuralError matches the one for its Kind
var (
	ErrEmptyRoster     = errors.New("roster is empty")
	ErrDuplicateID     = errors.New("duplicate employee id")
	ErrNoRoot          = errors.New("no root employee found (employee with no manager)")
	ErrMultipleRoots   = errors.New("multiple root employees found (employees with no manager)")
	ErrCycle           = errors.New("circular reporting structure detected")
	ErrDanglingManager = errors.New("manager reference does not resolve")
)

var sentinels = map[StructuralKind]error{
	KindEmptyRoster:     ErrEmptyRoster,
	KindDuplicateID:     ErrDuplicateID,
	KindNoRoot:          ErrNoRoot,
	KindMultipleRoots:   ErrMultipleRoots,
	KindCycle:           ErrCycle,
	KindDanglingManager: ErrDanglingManager,
}

// StructuralError reports that the reporting graph violates a required
// invariant. It is fatal for the query that raised it.
type StructuralError struct {
	Kind StructuralKind

	// EmployeeID is where the defect was detected; valid when HasEmployee is set
	EmployeeID  models.EmployeeID
	HasEmployee bool
	Detail      string
}

func newStructuralError(kind StructuralKind, detail string) *StructuralError {
	return &StructuralError{Kind: kind, Detail: detail}
}

func newEmployeeStructuralError(kind StructuralKind, e models.Employee, detail string) *StructuralError {
	return &StructuralError{Kind: kind, EmployeeID: e.ID(), HasEmployee: true, Detail: detail}
}

// Error returns the error message
func (e *StructuralError) Error() string {
	reason := string(e.Kind)
	if sentinel, ok := sentinels[e.Kind]; ok {
		reason = sentinel.Error()
	}
	msg := "structural error: " + reason
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	return msg
}

// Is matches the sentinel of the error's kind
func (e *StructuralError) Is(target error) bool {
	sentinel, ok := sentinels[e.Kind]
	return ok && sentinel == target
}

// IsStructuralError checks if an error is (or wraps) a StructuralError
func IsStructuralError(err error) bool {
	var target *StructuralError
	return errors.As(err, &target)
}
