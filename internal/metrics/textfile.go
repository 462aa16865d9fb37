package metrics

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sonumahanty/Swiss-Re/internal/logging"
)

// TextfileExporter writes gathered metrics to a file for the node_exporter
// textfile collector. It is a lifecycle component: Stop writes the file.
type TextfileExporter struct {
	path     string
	gatherer prometheus.Gatherer
	logger   *logging.Logger
}

// NewTextfileExporter creates an exporter writing to path
func NewTextfileExporter(path string, gatherer prometheus.Gatherer) *TextfileExporter {
	return &TextfileExporter{
		path:     path,
		gatherer: gatherer,
		logger:   logging.GetLogger("metrics"),
	}
}

// Start checks that the target directory exists so a bad path fails
// before the analysis runs
func (e *TextfileExporter) Start(ctx context.Context) error {
	dir := filepath.Dir(e.path)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("metrics directory does not exist: %s", dir)
		}
		return fmt.Errorf("failed to stat metrics directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("metrics path parent is not a directory: %s", dir)
	}
	return nil
}

// Stop writes the textfile
func (e *TextfileExporter) Stop(ctx context.Context) error {
	return e.Flush()
}

// Name returns the component name
func (e *TextfileExporter) Name() string {
	return "Metrics Textfile Exporter"
}

// Flush writes the current metric values to the textfile
func (e *TextfileExporter) Flush() error {
	if err := prometheus.WriteToTextfile(e.path, e.gatherer); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", e.path, err)
	}
	e.logger.Debug("Wrote metrics textfile: %s", e.path)
	return nil
}
