package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains every resolved file location of a run
type Paths struct {
	BaseDir      string
	LogsDir      string
	InputFile    string
	CleanedCSV   string
	CleanedExcel string
	ReportJSON   string
	Quarantine   string
	MetricsFile  string
}

// GetPaths resolves the configured locations against the base directory.
// An empty base directory means the current working directory.
func (c *Config) GetPaths() (*Paths, error) {
	base := c.Paths.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		base = wd
	}

	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory %s: %w", base, err)
	}

	return &Paths{
		BaseDir:      abs,
		LogsDir:      resolve(abs, c.Paths.LogsDir),
		InputFile:    resolve(abs, c.Paths.Input),
		CleanedCSV:   resolve(abs, c.Paths.OutputCSV),
		CleanedExcel: resolve(abs, c.Paths.OutputExcel),
		ReportJSON:   resolve(abs, c.Paths.Report),
		Quarantine:   resolve(abs, c.Paths.Quarantine),
		MetricsFile:  resolve(abs, c.Telemetry.MetricsFile),
	}, nil
}

// resolve joins a relative path onto base; empty stays empty
func resolve(base, p string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// OutputDirs returns the distinct parent directories of all outputs
func (p *Paths) OutputDirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, f := range []string{p.CleanedCSV, p.CleanedExcel, p.ReportJSON, p.Quarantine, p.MetricsFile} {
		if f == "" {
			continue
		}
		dir := filepath.Dir(f)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// LogPathResolution logs the resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Path resolution",
		slog.String("base_dir", p.BaseDir),
		slog.String("input", p.InputFile),
		slog.String("cleaned_csv", p.CleanedCSV),
		slog.String("cleaned_excel", p.CleanedExcel),
		slog.String("report", p.ReportJSON),
		slog.String("quarantine", p.Quarantine),
		slog.String("metrics", p.MetricsFile))
}
