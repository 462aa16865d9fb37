package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/sonumahanty/Swiss-Re/internal/analysis"
	"github.com/sonumahanty/Swiss-Re/internal/logging"
	"github.com/sonumahanty/Swiss-Re/internal/models"
	"github.com/spf13/cobra"
)

const Version = "0.1.0"

// Process exit codes
const (
	ExitOK         = 0
	ExitFailure    = 1 // generic or configuration error
	ExitInvalid    = 2 // roster failed validation
	ExitStructural = 3 // reporting graph is structurally broken
)

func newRootCmd() *cobra.Command {
	var logLevelFlags []string // Supports multiple --log-level flags

	rootCmd := &cobra.Command{
		Use:   "orgscan",
		Short: "orgscan - organisational structure analysis",
		Long: `orgscan reads an employee roster and reports managers paid outside the
allowed band relative to their direct reports, and employees whose reporting
line to the CEO is too long.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLog(logLevelFlags)
		},
	}

	// Supports per-package log levels: --log-level debug --log-level roster=debug
	rootCmd.PersistentFlags().StringSliceVar(&logLevelFlags, "log-level",
		[]string{"warn"},
		"Log level for packages. Use 'default=level' for default, or 'package.name=level' for per-package.\n"+
			"Examples: --log-level debug (all), --log-level analysis=debug --log-level roster=info")

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// Execute runs the CLI with os.Args
func Execute() error {
	return newRootCmd().Execute()
}

// ExitCode maps an error returned by Execute to the process exit status
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case models.IsValidationError(err):
		return ExitInvalid
	case analysis.IsStructuralError(err):
		return ExitStructural
	default:
		return ExitFailure
	}
}

// setupLog initializes the logging system with parsed log level flags
// Priority: CLI flags > Environment variables
func setupLog(flags []string) error {
	defaultLevel, packageLevels, err := parseLogLevelFlags(flags)
	if err != nil {
		return err
	}
	return logging.Initialize(defaultLevel, packageLevels)
}

// parseLogLevelFlags parses CLI flags and environment variables
// Priority: CLI flags > Environment variables
//
// CLI format: ["debug"], ["default=info", "roster=debug"], or ["info"]
// Env vars: LOG_LEVEL_ROSTER=debug (package name uppercased, dots to underscores)
//
// Returns: (defaultLevel, packageLevels map, error)
func parseLogLevelFlags(flags []string) (string, map[string]string, error) {
	result := make(map[string]string)

	for _, envPair := range os.Environ() {
		if !strings.HasPrefix(envPair, "LOG_LEVEL_") {
			continue
		}
		parts := strings.SplitN(envPair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		result[convertEnvKeyToPackageName(parts[0])] = parts[1]
	}

	for _, flag := range flags {
		if !strings.Contains(flag, "=") {
			// A bare level sets the default
			result["default"] = flag
			continue
		}
		parts := strings.SplitN(flag, "=", 2)
		result[parts[0]] = parts[1]
	}

	defaultLevel := "warn"
	if level, exists := result["default"]; exists {
		defaultLevel = level
		delete(result, "default")
	}

	if err := validateLogLevel(defaultLevel); err != nil {
		return "", nil, err
	}

	for pkg, level := range result {
		if err := validateLogLevel(level); err != nil {
			return "", nil, fmt.Errorf("invalid log level for package %q: %v", pkg, err)
		}
	}

	return defaultLevel, result, nil
}

// convertEnvKeyToPackageName converts LOG_LEVEL_ANALYSIS_SALARY -> analysis.salary
func convertEnvKeyToPackageName(envKey string) string {
	name := strings.TrimPrefix(envKey, "LOG_LEVEL_")
	return strings.ToLower(strings.ReplaceAll(name, "_", "."))
}

// validateLogLevel checks if a level string is valid
func validateLogLevel(level string) error {
	if _, err := logging.ParseLevel(level); err != nil {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error, fatal)", level)
	}
	return nil
}
