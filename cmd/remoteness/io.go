package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/katalvlaran/remoteness/metrics"
	"github.com/katalvlaran/remoteness/raster"
)

// writeJSON encodes v to path, or to stdout when path is "-".
func writeJSON(stdout io.Writer, path string, v any) error {
	if path == "-" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

// writeMetrics dumps the collected metrics in the Prometheus text format.
func writeMetrics(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := metrics.WriteText(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func loadOptionalMask(path string) (*raster.Mask, error) {
	if path == "" {
		return nil, nil
	}
	return raster.LoadMask(path)
}

func loadOptionalFloat(path string) (*raster.Float, error) {
	if path == "" {
		return nil, nil
	}
	return raster.LoadFloat(path)
}

func loadOptionalInt(path string) (*raster.Int, error) {
	if path == "" {
		return nil, nil
	}
	return raster.LoadInt(path)
}

func saveOptional(path string, f *raster.Float, what string) error {
	if path == "" || f == nil {
		return nil
	}
	if err := raster.SaveFloat(path, f); err != nil {
		return fmt.Errorf("write %s: %w", what, err)
	}
	return nil
}
