// Package report runs the organisational checks against an analyzer and
// renders the findings as text, JSON or YAML.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sonumahanty/Swiss-Re/internal/analysis"
	"github.com/sonumahanty/Swiss-Re/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one analysis run
type Result struct {
	RunID         string
	Source        string
	GeneratedAt   time.Time
	Duration      time.Duration
	EmployeeCount int
	ManagerCount  int
	Thresholds    analysis.Thresholds

	Underpaid []analysis.SalaryIssue
	Overpaid  []analysis.SalaryIssue
	LongLines []analysis.ReportingLineIssue

	// LinesErr is set when the reporting line query failed; LongLines is
	// nil in that case while the salary findings are still valid
	LinesErr error
}

// IssueCount returns the number of findings across all three checks
func (r *Result) IssueCount() int {
	return len(r.Underpaid) + len(r.Overpaid) + len(r.LongLines)
}

// Builder runs the checks and assembles a Result
type Builder struct {
	tracer trace.Tracer
	logger *logging.Logger
	now    func() time.Time
}

// NewBuilder creates a builder. A nil tracer uses the global provider.
func NewBuilder(tracer trace.Tracer, logger *logging.Logger) *Builder {
	if tracer == nil {
		tracer = otel.Tracer("orgscan/report")
	}
	if logger == nil {
		logger = logging.GetLogger("report")
	}
	return &Builder{tracer: tracer, logger: logger, now: time.Now}
}

// Build runs the three queries concurrently. The analyzer is read-only so
// the queries share it without locking.
//
// If the reporting line query fails the error is returned together with a
// Result that still carries the salary findings.
func (b *Builder) Build(ctx context.Context, a *analysis.Analyzer, source string) (*Result, error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)

	ctx, span := b.tracer.Start(ctx, "report.Build",
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("roster.source", source),
		),
	)
	defer span.End()

	logger := b.logger.WithContext(ctx)
	start := b.now()

	res := &Result{
		RunID:         runID,
		Source:        source,
		GeneratedAt:   start.UTC(),
		EmployeeCount: len(a.Employees()),
		ManagerCount:  a.ManagerCount(),
		Thresholds:    a.Thresholds(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		_, s := b.tracer.Start(gctx, "analysis.UnderpaidManagers")
		defer s.End()
		res.Underpaid = a.UnderpaidManagers()
		s.SetAttributes(attribute.Int("result.issue_count", len(res.Underpaid)))
		return nil
	})

	g.Go(func() error {
		_, s := b.tracer.Start(gctx, "analysis.OverpaidManagers")
		defer s.End()
		res.Overpaid = a.OverpaidManagers()
		s.SetAttributes(attribute.Int("result.issue_count", len(res.Overpaid)))
		return nil
	})

	g.Go(func() error {
		_, s := b.tracer.Start(gctx, "analysis.LongReportingLines")
		defer s.End()
		lines, err := a.LongReportingLines()
		if err != nil {
			s.RecordError(err)
			s.SetStatus(codes.Error, "Reporting line query failed")
			return fmt.Errorf("reporting line analysis failed: %w", err)
		}
		res.LongLines = lines
		s.SetAttributes(attribute.Int("result.issue_count", len(lines)))
		return nil
	})

	err := g.Wait()
	res.Duration = b.now().Sub(start)

	span.SetAttributes(
		attribute.Int("result.employee_count", res.EmployeeCount),
		attribute.Int("result.issue_count", res.IssueCount()),
	)

	if err != nil {
		res.LinesErr = err
		span.RecordError(err)
		span.SetStatus(codes.Error, "Analysis incomplete")
		logger.ErrorWithErr("Analysis incomplete", err)
		return res, err
	}

	logger.InfoWithFields("Analysis complete",
		logging.Field("employees", res.EmployeeCount),
		logging.Field("underpaid", len(res.Underpaid)),
		logging.Field("overpaid", len(res.Overpaid)),
		logging.Field("long_lines", len(res.LongLines)),
		logging.Field("duration_ms", res.Duration.Milliseconds()))

	return res, nil
}

// Build runs the checks with a default builder
func Build(ctx context.Context, a *analysis.Analyzer, source string) (*Result, error) {
	return NewBuilder(nil, nil).Build(ctx, a, source)
}
