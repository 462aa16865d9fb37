package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmployee_Subordinate(t *testing.T) {
	e := NewEmployee(123, "John", "Doe", 50000).ReportingTo(456)

	assert.Equal(t, EmployeeID(123), e.ID())
	assert.Equal(t, "John", e.FirstName())
	assert.Equal(t, "Doe", e.LastName())
	assert.Equal(t, 50000.0, e.Salary())
	assert.Equal(t, "John Doe", e.FullName())
	assert.False(t, e.IsRoot())

	managerID, ok := e.ManagerID()
	require.True(t, ok)
	assert.Equal(t, EmployeeID(456), managerID)
}

func TestNewEmployee_Root(t *testing.T) {
	ceo := NewEmployee(1, "Jane", "CEO", 100000)

	assert.True(t, ceo.IsRoot())
	_, ok := ceo.ManagerID()
	assert.False(t, ok)
	assert.Equal(t, "Jane CEO", ceo.FullName())
}

func TestReportingTo_ReturnsCopy(t *testing.T) {
	root := NewEmployee(7, "Ada", "Lovelace", 90000)
	child := root.ReportingTo(1)

	assert.True(t, root.IsRoot(), "original value must not change")
	assert.False(t, child.IsRoot())
}

func TestSameAs_ComparesIdentityOnly(t *testing.T) {
	a := NewEmployee(123, "John", "Doe", 50000).ReportingTo(456)
	b := NewEmployee(123, "Jane", "Smith", 60000).ReportingTo(789)
	c := NewEmployee(124, "John", "Doe", 50000).ReportingTo(456)

	assert.True(t, a.SameAs(b))
	assert.False(t, a.SameAs(c))
}

func TestEmployeeString(t *testing.T) {
	e := NewEmployee(123, "John", "Doe", 50000).ReportingTo(456)
	assert.Equal(t, `Employee{id=123, firstName="John", lastName="Doe", salary=50000.00, managerId=456}`, e.String())

	root := NewEmployee(1, "Jane", "CEO", 1)
	assert.Contains(t, root.String(), "managerId=none")
}

func TestValidationError(t *testing.T) {
	plain := NewValidationError("duplicate employee IDs found: %d", 4)
	assert.Equal(t, "duplicate employee IDs found: 4", plain.Error())

	lined := NewLineValidationError(3, "salary cannot be negative")
	assert.Equal(t, "line 3: salary cannot be negative", lined.Error())

	wrapped := fmt.Errorf("reading roster: %w", lined)
	assert.True(t, IsValidationError(wrapped))
	assert.False(t, IsValidationError(fmt.Errorf("other")))
}
