package models

import (
	"fmt"
	"strconv"
)

// EmployeeID identifies an employee within a roster
type EmployeeID int64

// String returns the decimal form of the identifier
func (id EmployeeID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Employee is a single roster entry. It is an immutable value: fields are only
// set through NewEmployee and ReportingTo, both of which return copies.
type Employee struct {
	id         EmployeeID
	firstName  string
	lastName   string
	salary     float64
	managerID  EmployeeID
	hasManager bool
}

// NewEmployee creates an employee without a manager reference (a root).
// Use ReportingTo to attach the manager.
func NewEmployee(id EmployeeID, firstName, lastName string, salary float64) Employee {
	return Employee{
		id:        id,
		firstName: firstName,
		lastName:  lastName,
		salary:    salary,
	}
}

// ReportingTo returns a copy of the employee that reports to managerID
func (e Employee) ReportingTo(managerID EmployeeID) Employee {
	e.managerID = managerID
	e.hasManager = true
	return e
}

// ID returns the employee identifier
func (e Employee) ID() EmployeeID { return e.id }

// FirstName returns the first name
func (e Employee) FirstName() string { return e.firstName }

// LastName returns the last name
func (e Employee) LastName() string { return e.lastName }

// FullName returns "first last"
func (e Employee) FullName() string { return e.firstName + " " + e.lastName }

// Salary returns the yearly salary
func (e Employee) Salary() float64 { return e.salary }

// ManagerID returns the manager reference. The boolean is false for the root.
func (e Employee) ManagerID() (EmployeeID, bool) {
	return e.managerID, e.hasManager
}

// IsRoot reports whether the employee has no manager (the CEO)
func (e Employee) IsRoot() bool { return !e.hasManager }

// SameAs compares identity only; two records with the same ID are the same employee
func (e Employee) SameAs(other Employee) bool { return e.id == other.id }

// String is used in log lines and error messages
func (e Employee) String() string {
	manager := "none"
	if e.hasManager {
		manager = e.managerID.String()
	}
	return fmt.Sprintf("Employee{id=%d, firstName=%q, lastName=%q, salary=%.2f, managerId=%s}",
		e.id, e.firstName, e.lastName, e.salary, manager)
}
