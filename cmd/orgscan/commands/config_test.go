package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	out, err := run(t, "config", "defaults")
	require.NoError(t, err)

	assert.Contains(t, out, "schema_version: v1")
	assert.Contains(t, out, "min_version:")
	assert.Contains(t, out, Version)
	assert.Contains(t, out, "underpaid_multiplier: 1.2")
}

func TestConfigDefaults_WriteAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orgscan.yaml")

	out, err := run(t, "config", "defaults", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote default configuration to "+path)

	out, err = run(t, "config", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
}

func TestConfigValidate_Invalid(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", "schema_version: v1\nreport:\n  format: pdf\n")

	_, err := run(t, "config", "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, ExitCode(err))
	assert.Contains(t, err.Error(), "report.format")
}
