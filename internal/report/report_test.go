package report

import (
	"context"
	"testing"

	"github.com/sonumahanty/Swiss-Re/internal/analysis"
	"github.com/sonumahanty/Swiss-Re/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func emp(id int64, first, last string, salary float64, manager int64) models.Employee {
	e := models.NewEmployee(models.EmployeeID(id), first, last, salary)
	if manager == 0 {
		return e
	}
	return e.ReportingTo(models.EmployeeID(manager))
}

// sampleRoster has one underpaid manager (2), one overpaid manager (3) and
// one employee (8) five managers below the CEO
func sampleRoster() []models.Employee {
	return []models.Employee{
		emp(1, "Joe", "Doe", 100000, 0),
		emp(2, "Martin", "Chekov", 45000, 1),
		emp(3, "Bob", "Ronstad", 90000, 1),
		emp(4, "Alice", "Hasacat", 50000, 2),
		emp(5, "Brett", "Hardleaf", 34000, 3),
		emp(6, "Carl", "Deep", 40000, 4),
		emp(7, "Dana", "Deeper", 30000, 6),
		emp(8, "Eve", "Deepest", 22000, 7),
	}
}

func newAnalyzer(t *testing.T, employees []models.Employee) *analysis.Analyzer {
	t.Helper()
	a, err := analysis.NewAnalyzer(employees)
	require.NoError(t, err)
	return a
}

func newRecordingBuilder() (*Builder, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return NewBuilder(provider.Tracer("test"), nil), recorder
}

func TestBuild(t *testing.T) {
	builder, recorder := newRecordingBuilder()

	res, err := builder.Build(context.Background(), newAnalyzer(t, sampleRoster()), "employees.csv")
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, "employees.csv", res.Source)
	assert.Equal(t, 8, res.EmployeeCount)
	assert.Equal(t, 6, res.ManagerCount)
	assert.Equal(t, analysis.DefaultThresholds(), res.Thresholds)
	assert.NoError(t, res.LinesErr)

	require.Len(t, res.Underpaid, 1)
	assert.Equal(t, "Martin Chekov", res.Underpaid[0].Manager.FullName())
	assert.InDelta(t, 15000, res.Underpaid[0].Amount, 1e-6)

	require.Len(t, res.Overpaid, 1)
	assert.Equal(t, "Bob Ronstad", res.Overpaid[0].Manager.FullName())
	assert.InDelta(t, 39000, res.Overpaid[0].Amount, 1e-6)

	require.Len(t, res.LongLines, 1)
	assert.Equal(t, models.EmployeeID(8), res.LongLines[0].Employee.ID())
	assert.Equal(t, 5, res.LongLines[0].ManagerCount)

	assert.Equal(t, 3, res.IssueCount())

	names := make(map[string]bool)
	for _, s := range recorder.Ended() {
		names[s.Name()] = true
	}
	assert.True(t, names["report.Build"])
	assert.True(t, names["analysis.UnderpaidManagers"])
	assert.True(t, names["analysis.OverpaidManagers"])
	assert.True(t, names["analysis.LongReportingLines"])
}

func TestBuild_UniqueRunIDs(t *testing.T) {
	a := newAnalyzer(t, sampleRoster())

	first, err := Build(context.Background(), a, "a.csv")
	require.NoError(t, err)
	second, err := Build(context.Background(), a, "a.csv")
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestBuild_StructuralErrorKeepsSalaryFindings(t *testing.T) {
	builder, recorder := newRecordingBuilder()
	a := newAnalyzer(t, []models.Employee{
		emp(1, "Employee", "One", 45000, 2),
		emp(2, "Employee", "Two", 50000, 1),
	})

	res, err := builder.Build(context.Background(), a, "cycle.csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, analysis.ErrCycle)
	assert.True(t, analysis.IsStructuralError(err))

	require.NotNil(t, res)
	assert.Len(t, res.Underpaid, 2)
	assert.Nil(t, res.LongLines)
	assert.ErrorIs(t, res.LinesErr, analysis.ErrCycle)

	for _, s := range recorder.Ended() {
		if s.Name() == "analysis.LongReportingLines" || s.Name() == "report.Build" {
			assert.Equal(t, codes.Error, s.Status().Code, s.Name())
		}
	}
}
