// Package export writes stage outputs to disk for downstream tools that do
// not speak the HTTP API: graph.json, metrics.json, and analysis.json (or
// their YAML equivalents), optionally gzip-compressed.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"gopkg.in/yaml.v3"

	"migraph/internal/analysis"
	"migraph/internal/graph"
	"migraph/internal/logging"
)

// Options controls an export.
type Options struct {
	// OutDir is the target directory, created if needed
	OutDir string
	// Format is "json" or "yaml"
	Format string
	// Compress gzips every written file (adds a .gz suffix)
	Compress bool
}

// Exporter writes run outputs to disk.
type Exporter struct {
	logger *logging.Logger
}

// NewExporter creates a new exporter
func NewExporter(logger *logging.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// ExportRun writes the graph, metrics, and analysis of a run and returns the
// written file paths.
func (e *Exporter) ExportRun(result *graph.Result, analyses map[string]*analysis.Analysis, opts Options) ([]string, error) {
	if opts.OutDir == "" {
		opts.OutDir = "."
	}
	if opts.Format == "" {
		opts.Format = "json"
	}
	if opts.Format != "json" && opts.Format != "yaml" {
		return nil, fmt.Errorf("unsupported export format %q", opts.Format)
	}
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	files := []struct {
		name    string
		payload interface{}
	}{
		{"graph", result.Graph},
		{"metrics", result.Metrics},
		{"analysis", analyses},
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		path, err := e.writeFile(opts, f.name, f.payload)
		if err != nil {
			return nil, err
		}
		written = append(written, path)
	}

	e.logger.Info("Export complete", map[string]interface{}{
		"dir":    opts.OutDir,
		"format": opts.Format,
		"files":  len(written),
	})
	return written, nil
}

func (e *Exporter) writeFile(opts Options, name string, payload interface{}) (string, error) {
	var data []byte
	var err error
	if opts.Format == "yaml" {
		data, err = yaml.Marshal(payload)
	} else {
		data, err = json.MarshalIndent(payload, "", "  ")
	}
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", name, err)
	}

	path := filepath.Join(opts.OutDir, name+"."+opts.Format)
	if opts.Compress {
		path += ".gz"
		data, err = gzipBytes(data)
		if err != nil {
			return "", fmt.Errorf("compress %s: %w", name, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func gzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
