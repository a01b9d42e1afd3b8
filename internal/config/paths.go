package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths
// This is the single source of truth for file locations in the application
type Paths struct {
	BaseDir    string
	DataDir    string
	ExportsDir string
	LogsDir    string
}

// NewPaths lays out the default directory structure under baseDir:
//
//	base/
//	  data/            (tmdb_5000_*.csv inputs)
//	  data/exports/    (cleaned tables, summaries, workbooks)
//	  logs/
func NewPaths(baseDir string) *Paths {
	return &Paths{
		BaseDir:    baseDir,
		DataDir:    filepath.Join(baseDir, DefaultDataDir),
		ExportsDir: filepath.Join(baseDir, filepath.FromSlash(DefaultExportsDir)),
		LogsDir:    filepath.Join(baseDir, DefaultLogsDir),
	}
}

// ResolvePaths applies the configured data and export directories on top of
// the default layout rooted at baseDir. Relative directories are taken
// relative to baseDir.
func (c *Config) ResolvePaths(baseDir string) *Paths {
	paths := NewPaths(baseDir)
	if c.Dataset.DataDir != "" {
		paths.DataDir = paths.resolve(c.Dataset.DataDir)
	}
	if c.Export.OutputDir != "" {
		paths.ExportsDir = paths.resolve(c.Export.OutputDir)
	}
	if c.Logging.FilePath != "" {
		paths.LogsDir = filepath.Dir(paths.resolve(c.Logging.FilePath))
	}
	return paths
}

func (p *Paths) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.BaseDir, filepath.FromSlash(path))
}

// EnsureDirectories creates the data, export and log directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.ExportsDir,
		p.LogsDir,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// GetExportPath returns the path for an exported file
func (p *Paths) GetExportPath(filename string) string {
	return filepath.Join(p.ExportsDir, filename)
}

// LogPathResolution logs the resolved directories
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("path resolution summary",
		slog.Group("directories",
			slog.String("base", p.BaseDir),
			slog.String("data", p.DataDir),
			slog.String("exports", p.ExportsDir),
			slog.String("logs", p.LogsDir),
		))
}
