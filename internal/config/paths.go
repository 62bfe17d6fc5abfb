package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths resolves where one run writes its artifacts. All outputs live
// under a single base directory so a run can be archived or deleted as a
// unit.
type Paths struct {
	OutputDir    string
	LogsDir      string
	DataCSV      string
	ReportTXT    string
	WorkbookXLSX string
}

// ResolvePaths derives the artifact paths from the output configuration.
// A relative output dir is taken relative to the working directory.
func ResolvePaths(out OutputConfig) (*Paths, error) {
	dir := out.Dir
	if !filepath.IsAbs(dir) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		dir = filepath.Join(wd, dir)
	}

	return &Paths{
		OutputDir:    dir,
		LogsDir:      filepath.Join(dir, "logs"),
		DataCSV:      filepath.Join(dir, out.DataFile),
		ReportTXT:    filepath.Join(dir, out.ReportFile),
		WorkbookXLSX: filepath.Join(dir, out.WorkbookFile),
	}, nil
}

// EnsureDirectories creates the output tree if missing.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.OutputDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetLogPath returns the path for a named log file inside the run's logs
// directory.
func (p *Paths) GetLogPath(name string) string {
	return filepath.Join(p.LogsDir, name)
}
