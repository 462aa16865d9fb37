package analysis

// Default organisational-health rules
const (
	// DefaultUnderpaidMultiplier: a manager should earn at least 20% more than
	// the average of their direct reports
	DefaultUnderpaidMultiplier = 1.20

	// DefaultOverpaidMultiplier: a manager should earn at most 50% more than
	// the average of their direct reports
	DefaultOverpaidMultiplier = 1.50

	// DefaultMaxReportingDepth is the largest allowed number of managers
	// between an employee and the CEO
	DefaultMaxReportingDepth = 4
)
