package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// captureLogs initializes the logger at level and returns the output buffer
func captureLogs(t *testing.T, level string, packageLevels map[string]string) *bytes.Buffer {
	t.Helper()
	t.Setenv("LOG_TIMESTAMP", "2024-01-01T00:00:00Z")

	require.NoError(t, Initialize(level, packageLevels))
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	t.Cleanup(func() {
		restore()
		_ = Initialize("info")
	})
	return &buf
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		level string
		want  LogLevel
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"warn", WARN},
		{"error", ERROR},
		{"fatal", FATAL},
		{"nonsense", INFO},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			captureLogs(t, tt.level, nil)
			assert.Equal(t, tt.want, GetLogger("x").level)
		})
	}
}

func TestLineFormat(t *testing.T) {
	buf := captureLogs(t, "info", nil)

	GetLogger("roster").Info("loaded %d employees", 5)

	assert.Equal(t, "[2024-01-01T00:00:00Z] [INFO] roster: loaded 5 employees\n", buf.String())
}

func TestMessageWithoutArgsIsNotFormatted(t *testing.T) {
	buf := captureLogs(t, "info", nil)

	// Called through a method value so vet's printf check does not flag the
	// deliberate '%' in a no-args message.
	info := GetLogger("report").Info
	info("100% done")

	assert.Contains(t, buf.String(), "report: 100% done")
}

func TestLevelFiltering(t *testing.T) {
	buf := captureLogs(t, "warn", nil)
	logger := GetLogger("analysis")

	logger.Debug("debug line")
	logger.Info("info line")
	logger.Warn("warn line")
	logger.Error("error line")

	out := buf.String()
	assert.NotContains(t, out, "debug line")
	assert.NotContains(t, out, "info line")
	assert.Contains(t, out, "[WARN] analysis: warn line")
	assert.Contains(t, out, "[ERROR] analysis: error line")
}

func TestStructuredFieldsAreSorted(t *testing.T) {
	buf := captureLogs(t, "debug", nil)

	GetLogger("analysis").
		WithField("zeta", 1).
		DebugWithFields("query finished", Field("alpha", "a"), Field("middle", true))

	assert.Contains(t, buf.String(), "analysis: query finished | alpha=a middle=true zeta=1")
}

func TestCallFieldsOverrideLoggerFields(t *testing.T) {
	buf := captureLogs(t, "info", nil)

	GetLogger("x").WithField("k", "logger").InfoWithFields("msg", Field("k", "call"))

	assert.Contains(t, buf.String(), "k=call")
	assert.NotContains(t, buf.String(), "k=logger")
}

func TestWithFieldDoesNotMutateParent(t *testing.T) {
	buf := captureLogs(t, "info", nil)

	parent := GetLogger("x")
	child := parent.WithField("file", "employees.csv")
	renamed := child.WithName("y")

	parent.Info("parent")
	child.Info("child")
	renamed.Info("renamed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.NotContains(t, lines[0], "file=")
	assert.Contains(t, lines[1], "x: child | file=employees.csv")
	assert.Contains(t, lines[2], "y: renamed | file=employees.csv")
}

func TestErrorWithErr(t *testing.T) {
	buf := captureLogs(t, "info", nil)

	GetLogger("cli").ErrorWithErr("analysis failed", errors.New("cycle detected"))

	assert.Contains(t, buf.String(), "[ERROR] cli: analysis failed | error=cycle detected")
}

func TestFatalCallsExit(t *testing.T) {
	buf := captureLogs(t, "info", nil)

	var code int
	previous := exitFunc
	exitFunc = func(c int) { code = c }
	t.Cleanup(func() { exitFunc = previous })

	GetLogger("cli").Fatal("cannot continue: %s", "bad config")

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "[FATAL] cli: cannot continue: bad config")
}

func TestPackageLevelOverrides(t *testing.T) {
	buf := captureLogs(t, "warn", map[string]string{
		"roster":     "debug",
		"analysis.*": "info",
	})

	GetLogger("roster").Debug("roster debug")
	GetLogger("analysis.depth").Info("depth info")
	GetLogger("analysis.depth").Debug("depth debug")
	GetLogger("report").Info("report info")

	out := buf.String()
	assert.Contains(t, out, "roster debug")
	assert.Contains(t, out, "depth info")
	assert.NotContains(t, out, "depth debug")
	assert.NotContains(t, out, "report info")
}

func TestGetPackageLogLevel_MostSpecificPatternWins(t *testing.T) {
	captureLogs(t, "info", map[string]string{
		"analysis.*":       "warn",
		"analysis.depth.*": "debug",
	})

	assert.Equal(t, DEBUG, GetPackageLogLevel("analysis.depth.walk"))
	assert.Equal(t, WARN, GetPackageLogLevel("analysis.salary"))
	assert.Equal(t, LogLevel(-1), GetPackageLogLevel("roster"))
}

func TestSetPackageLogLevels_Invalid(t *testing.T) {
	err := SetPackageLogLevels(map[string]string{"roster": "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"roster"`)
}

func TestMatchesPattern(t *testing.T) {
	assert.True(t, matchesPattern("analysis", "analysis"))
	assert.True(t, matchesPattern("analysis.depth", "analysis.*"))
	assert.True(t, matchesPattern("analysis", "analysis.*"))
	assert.False(t, matchesPattern("analysisx", "analysis.*"))
	assert.False(t, matchesPattern("roster", "analysis.*"))
}

func TestContextFields(t *testing.T) {
	buf := captureLogs(t, "info", nil)

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx := WithRunID(context.Background(), "run-123")
	ctx, span := tp.Tracer("test").Start(ctx, "op")
	defer span.End()

	GetLogger("report").WithContext(ctx).Info("rendering")

	out := buf.String()
	assert.Contains(t, out, "run_id=run-123")
	assert.Contains(t, out, "trace_id="+span.SpanContext().TraceID().String())
	assert.Contains(t, out, "span_id="+span.SpanContext().SpanID().String())
}

func TestContextFields_Empty(t *testing.T) {
	assert.Nil(t, extractContextFields(nil))
	assert.Nil(t, extractContextFields(context.Background()))

	_, ok := RunIDFromContext(WithRunID(context.Background(), ""))
	assert.False(t, ok)
}

func TestConcurrentLogging(t *testing.T) {
	buf := captureLogs(t, "info", nil)
	logger := GetLogger("worker")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			logger.InfoWithFields("tick", Field("i", i))
		}(i)
	}
	wg.Wait()

	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 20)
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel(" Warning ")
	require.NoError(t, err)
	assert.Equal(t, WARN, level)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
	assert.Equal(t, "LEVEL(9)", LogLevel(9).String())
}
