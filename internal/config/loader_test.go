package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orgscan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `schema_version: v1
min_version: "0.1.0"
input:
  strict_header: false
analysis:
  underpaid_multiplier: 1.1
  overpaid_multiplier: 1.6
  max_reporting_depth: 3
report:
  format: json
  color: never
  currency: "EUR "
metrics:
  textfile: /tmp/orgscan.prom
tracing:
  enabled: true
  endpoint: "localhost:4317"
  tls_insecure: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.1.0", cfg.MinVersion)
	assert.False(t, cfg.Input.StrictHeader)
	assert.Equal(t, 1.1, cfg.Analysis.UnderpaidMultiplier)
	assert.Equal(t, 1.6, cfg.Analysis.OverpaidMultiplier)
	assert.Equal(t, 3, cfg.Analysis.MaxReportingDepth)
	assert.Equal(t, FormatJSON, cfg.Report.Format)
	assert.Equal(t, ColorNever, cfg.Report.Color)
	assert.Equal(t, "EUR ", cfg.Report.Currency)
	assert.Equal(t, "/tmp/orgscan.prom", cfg.Metrics.Textfile)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "localhost:4317", cfg.Tracing.Endpoint)
	assert.True(t, cfg.Tracing.TLSInsecure)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `schema_version: v1
analysis:
  max_reporting_depth: 6
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Analysis.MaxReportingDepth)
	assert.Equal(t, 1.20, cfg.Analysis.UnderpaidMultiplier)
	assert.Equal(t, 1.50, cfg.Analysis.OverpaidMultiplier)
	assert.True(t, cfg.Input.StrictHeader)
	assert.Equal(t, FormatText, cfg.Report.Format)
	assert.Equal(t, "$", cfg.Report.Currency)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("file not found", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load config")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeConfig(t, "schema_version: v1\nanalysis: [unclosed\n")
		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("schema version", func(t *testing.T) {
		path := writeConfig(t, "schema_version: v2\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
		assert.Contains(t, err.Error(), "config validation failed")
	})

	t.Run("non-finite multipliers", func(t *testing.T) {
		for _, value := range []string{".nan", ".inf", "-.inf"} {
			path := writeConfig(t, "schema_version: v1\nanalysis:\n  underpaid_multiplier: "+value+"\n")
			_, err := Load(path)
			require.Error(t, err, value)
			assert.True(t, IsConfigError(err), value)
			assert.Contains(t, err.Error(), "finite", value)
		}
	})

	t.Run("bad thresholds", func(t *testing.T) {
		path := writeConfig(t, "schema_version: v1\nanalysis:\n  overpaid_multiplier: 1.0\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}
