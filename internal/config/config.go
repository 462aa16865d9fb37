package config

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-version"
	"github.com/sonumahanty/Swiss-Re/internal/analysis"
)

// SchemaVersion is the only config schema this build understands
const SchemaVersion = "v1"

// Report formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Colour modes for the text report
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds all configuration for an analysis run.
//
// Example YAML structure:
//
//	schema_version: v1
//	min_version: "0.1.0"
//	input:
//	  strict_header: true
//	analysis:
//	  underpaid_multiplier: 1.20
//	  overpaid_multiplier: 1.50
//	  max_reporting_depth: 4
//	report:
//	  format: text
//	  color: auto
//	  currency: "$"
//	metrics:
//	  textfile: /var/lib/node_exporter/orgscan.prom
//	tracing:
//	  enabled: false
type Config struct {
	// SchemaVersion is the explicit config schema version ("v1")
	SchemaVersion string `yaml:"schema_version"`

	// MinVersion is the oldest orgscan release that may read this file
	MinVersion string `yaml:"min_version,omitempty"`

	Input    InputConfig    `yaml:"input"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Report   ReportConfig   `yaml:"report"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

// InputConfig controls roster parsing
type InputConfig struct {
	// StrictHeader requires the header row to match exactly, including case
	StrictHeader bool `yaml:"strict_header"`
}

// AnalysisConfig holds the rule thresholds
type AnalysisConfig struct {
	UnderpaidMultiplier float64 `yaml:"underpaid_multiplier"`
	OverpaidMultiplier  float64 `yaml:"overpaid_multiplier"`
	MaxReportingDepth   int     `yaml:"max_reporting_depth"`
}

// Thresholds converts the section into analyzer thresholds
func (a AnalysisConfig) Thresholds() analysis.Thresholds {
	return analysis.Thresholds{
		UnderpaidMultiplier: a.UnderpaidMultiplier,
		OverpaidMultiplier:  a.OverpaidMultiplier,
		MaxReportingDepth:   a.MaxReportingDepth,
	}
}

// ReportConfig controls rendering
type ReportConfig struct {
	Format   string `yaml:"format"`
	Color    string `yaml:"color"`
	Currency string `yaml:"currency"`
}

// MetricsConfig controls the Prometheus textfile export
type MetricsConfig struct {
	// Textfile is the output path; empty disables the export
	Textfile string `yaml:"textfile"`
}

// TracingConfig controls OTLP trace export
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	TLSCAPath   string `yaml:"tls_ca_path"`
	TLSInsecure bool   `yaml:"tls_insecure"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	t := analysis.DefaultThresholds()
	return Config{
		SchemaVersion: SchemaVersion,
		Input: InputConfig{
			StrictHeader: true,
		},
		Analysis: AnalysisConfig{
			UnderpaidMultiplier: t.UnderpaidMultiplier,
			OverpaidMultiplier:  t.OverpaidMultiplier,
			MaxReportingDepth:   t.MaxReportingDepth,
		},
		Report: ReportConfig{
			Format:   FormatText,
			Color:    ColorAuto,
			Currency: "$",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.SchemaVersion != SchemaVersion {
		return NewConfigError(fmt.Sprintf(
			"unsupported schema_version: %q (expected %q)",
			c.SchemaVersion, SchemaVersion,
		))
	}

	if c.MinVersion != "" {
		if _, err := version.NewVersion(c.MinVersion); err != nil {
			return NewConfigError(fmt.Sprintf("invalid min_version %q: %v", c.MinVersion, err))
		}
	}

	if err := c.Analysis.Thresholds().Validate(); err != nil {
		return NewConfigError(fmt.Sprintf("analysis: %v", err))
	}

	switch c.Report.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return NewConfigError(fmt.Sprintf(
			"report.format must be one of %q, %q, %q (got %q)",
			FormatText, FormatJSON, FormatYAML, c.Report.Format,
		))
	}

	switch c.Report.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return NewConfigError(fmt.Sprintf(
			"report.color must be one of %q, %q, %q (got %q)",
			ColorAuto, ColorAlways, ColorNever, c.Report.Color,
		))
	}

	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return NewConfigError("tracing.endpoint must be set when tracing is enabled")
	}

	return nil
}

// CheckMinVersion fails when the running binary is older than the
// min_version the file asks for
func (c *Config) CheckMinVersion(binaryVersion string) error {
	if c.MinVersion == "" {
		return nil
	}

	minVer, err := version.NewVersion(c.MinVersion)
	if err != nil {
		return NewConfigError(fmt.Sprintf("invalid min_version %q: %v", c.MinVersion, err))
	}
	current, err := version.NewVersion(binaryVersion)
	if err != nil {
		return fmt.Errorf("invalid binary version %q: %w", binaryVersion, err)
	}

	if current.LessThan(minVer) {
		return NewConfigError(fmt.Sprintf(
			"config requires orgscan %s or newer (running %s)",
			minVer.String(), current.String(),
		))
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	message string
}

// NewConfigError creates a new configuration error
func NewConfigError(message string) *ConfigError {
	return &ConfigError{message: message}
}

// Error returns the error message
func (e *ConfigError) Error() string {
	return e.message
}

// IsConfigError checks if an error is (or wraps) a ConfigError
func IsConfigError(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}
