package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Renderer writes a Result in one output format
type Renderer interface {
	Render(w io.Writer, r *Result) error
}

// Options tune rendering
type Options struct {
	// Currency prefixes every amount in the text report
	Currency string
	// Color enables ANSI styling in the text report
	Color bool
}

// NewRenderer returns the renderer for format ("text", "json" or "yaml")
func NewRenderer(format string, opts Options) (Renderer, error) {
	switch format {
	case "text", "":
		return NewTextRenderer(opts), nil
	case "json":
		return JSONRenderer{}, nil
	case "yaml":
		return YAMLRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// JSONRenderer writes the result as indented JSON
type JSONRenderer struct{}

// Render implements Renderer
func (JSONRenderer) Render(w io.Writer, r *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newDocument(r)); err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	return nil
}

// YAMLRenderer writes the result as YAML
type YAMLRenderer struct{}

// Render implements Renderer
func (YAMLRenderer) Render(w io.Writer, r *Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(r)); err != nil {
		return fmt.Errorf("failed to encode YAML report: %w", err)
	}
	return enc.Close()
}
