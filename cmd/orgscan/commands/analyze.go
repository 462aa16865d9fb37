package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sonumahanty/Swiss-Re/internal/analysis"
	"github.com/sonumahanty/Swiss-Re/internal/config"
	"github.com/sonumahanty/Swiss-Re/internal/lifecycle"
	"github.com/sonumahanty/Swiss-Re/internal/logging"
	"github.com/sonumahanty/Swiss-Re/internal/metrics"
	"github.com/sonumahanty/Swiss-Re/internal/report"
	"github.com/sonumahanty/Swiss-Re/internal/roster"
	"github.com/sonumahanty/Swiss-Re/internal/tracing"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type analyzeOptions struct {
	configPath          string
	format              string
	color               string
	currency            string
	underpaidMultiplier float64
	overpaidMultiplier  float64
	maxDepth            int
	metricsFile         string
	lenientHeader       bool
	tracingEndpoint     string
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <roster.csv>",
		Short: "Analyze an employee roster",
		Long: `Analyze reads the roster CSV and reports:
  - managers earning less than the underpaid multiplier times the average salary of their direct reports
  - managers earning more than the overpaid multiplier times that average
  - employees with more than the allowed number of managers between them and the CEO

Exit codes: 0 success, 1 usage or configuration error, 2 invalid roster,
3 broken reporting structure (salary findings are still printed).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, args[0])
		},
	}

	defaults := config.Default()
	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to the YAML configuration file")
	flags.StringVarP(&opts.format, "format", "o", defaults.Report.Format, "Report format: text, json or yaml")
	flags.StringVar(&opts.color, "color", defaults.Report.Color, "Colour the text report: auto, always or never")
	flags.StringVar(&opts.currency, "currency", defaults.Report.Currency, "Currency prefix for amounts in the text report")
	flags.Float64Var(&opts.underpaidMultiplier, "underpaid-multiplier", defaults.Analysis.UnderpaidMultiplier,
		"Managers must earn at least this multiple of their direct reports' average salary")
	flags.Float64Var(&opts.overpaidMultiplier, "overpaid-multiplier", defaults.Analysis.OverpaidMultiplier,
		"Managers must earn at most this multiple of their direct reports' average salary")
	flags.IntVar(&opts.maxDepth, "max-depth", defaults.Analysis.MaxReportingDepth,
		"Maximum number of managers between an employee and the CEO")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "Write run metrics to this Prometheus textfile")
	flags.BoolVar(&opts.lenientHeader, "lenient-header", false, "Accept the CSV header regardless of letter case")
	flags.StringVar(&opts.tracingEndpoint, "tracing-endpoint", "", "OTLP gRPC endpoint for traces; enables tracing")

	return cmd
}

// resolveConfig loads the config file and applies explicitly set flags on top
func resolveConfig(cmd *cobra.Command, opts *analyzeOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.CheckMinVersion(Version); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Report.Format = opts.format
	}
	if flags.Changed("color") {
		cfg.Report.Color = opts.color
	}
	if flags.Changed("currency") {
		cfg.Report.Currency = opts.currency
	}
	if flags.Changed("underpaid-multiplier") {
		cfg.Analysis.UnderpaidMultiplier = opts.underpaidMultiplier
	}
	if flags.Changed("overpaid-multiplier") {
		cfg.Analysis.OverpaidMultiplier = opts.overpaidMultiplier
	}
	if flags.Changed("max-depth") {
		cfg.Analysis.MaxReportingDepth = opts.maxDepth
	}
	if flags.Changed("metrics-file") {
		cfg.Metrics.Textfile = opts.metricsFile
	}
	if flags.Changed("lenient-header") {
		cfg.Input.StrictHeader = !opts.lenientHeader
	}
	if flags.Changed("tracing-endpoint") {
		cfg.Tracing.Enabled = opts.tracingEndpoint != ""
		cfg.Tracing.Endpoint = opts.tracingEndpoint
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions, path string) (err error) {
	logger := logging.GetLogger("orgscan")

	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	renderer, err := report.NewRenderer(cfg.Report.Format, report.Options{
		Currency: cfg.Report.Currency,
		Color:    useColor(cfg.Report.Color, cmd.OutOrStdout()),
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	manager := lifecycle.NewManager()

	tracingProvider, err := tracing.NewTracingProvider(tracing.Config{
		Enabled:        cfg.Tracing.Enabled,
		Endpoint:       cfg.Tracing.Endpoint,
		TLSCAPath:      cfg.Tracing.TLSCAPath,
		TLSInsecure:    cfg.Tracing.TLSInsecure,
		ServiceVersion: Version,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if err := manager.Register(tracingProvider); err != nil {
		return err
	}

	var runMetrics *metrics.Metrics
	if cfg.Metrics.Textfile != "" {
		registry := prometheus.NewRegistry()
		runMetrics = metrics.NewMetrics(registry, path)
		if err := manager.Register(metrics.NewTextfileExporter(cfg.Metrics.Textfile, registry)); err != nil {
			return err
		}
	}

	if err := manager.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if stopErr := manager.Stop(context.Background()); stopErr != nil && err == nil {
			err = stopErr
		}
	}()

	readerOpts := []roster.ReaderOption{}
	if !cfg.Input.StrictHeader {
		readerOpts = append(readerOpts, roster.WithLenientHeader())
	}

	employees, err := roster.NewReader(readerOpts...).ReadFile(path)
	if err != nil {
		if runMetrics != nil {
			runMetrics.ObserveFailure()
		}
		return err
	}

	analyzer, err := analysis.NewAnalyzer(employees, analysis.WithThresholds(cfg.Analysis.Thresholds()))
	if err != nil {
		if runMetrics != nil {
			runMetrics.ObserveFailure()
		}
		return err
	}

	res, buildErr := report.NewBuilder(tracingProvider.GetTracer("orgscan/report"), nil).Build(ctx, analyzer, path)
	if buildErr != nil && res == nil {
		return buildErr
	}
	if runMetrics != nil {
		runMetrics.Observe(res)
	}

	if err := renderer.Render(cmd.OutOrStdout(), res); err != nil {
		return err
	}

	if buildErr != nil {
		logger.Warn("Report is incomplete: %v", buildErr)
		return buildErr
	}
	return nil
}

// useColor resolves the colour mode against the output writer. auto means
// colour only on a terminal and only when NO_COLOR is unset.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
