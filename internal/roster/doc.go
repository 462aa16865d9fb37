// Package roster reads the employee CSV and checks that it describes a
// single consistent organisation before it is handed to the analyzer.
//
// The expected layout is a header row followed by one employee per line:
//
//	Id,firstName,lastName,salary,managerId
//	123,Joe,Doe,60000,
//	124,Martin,Chekov,45000,123
//
// The CEO is the only row with an empty managerId. Blank lines are ignored.
// Every problem is reported as a *models.ValidationError, with the source
// line when the problem belongs to one row.
package roster
