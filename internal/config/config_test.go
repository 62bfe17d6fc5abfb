package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 50, cfg.Analysis.GapToleranceDays)
	assert.Equal(t, []int{12, 24}, cfg.Analysis.CorrWindows)
	assert.Equal(t, 12, cfg.Analysis.BetaWindow)
	assert.Equal(t, "Date", cfg.Input.DateColumn)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoadFromFile(t *testing.T) {
	content := `
analysis:
  gap_tolerance_days: 40
  beta_window: 24
output:
  dir: /tmp/hedge-out
logging:
  level: debug
`
	path := filepath.Join(t.TempDir(), "hedgecli.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.Analysis.GapToleranceDays)
	assert.Equal(t, 24, cfg.Analysis.BetaWindow)
	assert.Equal(t, "/tmp/hedge-out", cfg.Output.Dir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched fields keep their defaults.
	assert.Equal(t, []int{12, 24}, cfg.Analysis.CorrWindows)
	assert.Equal(t, "Price", cfg.Input.PriceColumn)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	content := "analysis:\n  beta_window: 24\n"
	path := filepath.Join(t.TempDir(), "hedgecli.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv("HEDGE_ANALYSIS_BETA_WINDOW", "36")
	t.Setenv("HEDGE_ANALYSIS_CORR_WINDOWS", "6,12,24")
	t.Setenv("HEDGE_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 36, cfg.Analysis.BetaWindow)
	assert.Equal(t, []int{6, 12, 24}, cfg.Analysis.CorrWindows)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hedgecli.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analysis: ["), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults pass", func(c *Config) {}, false},
		{"zero gap tolerance", func(c *Config) { c.Analysis.GapToleranceDays = 0 }, true},
		{"window below two", func(c *Config) { c.Analysis.CorrWindows = []int{1} }, true},
		{"beta window below fit minimum", func(c *Config) { c.Analysis.BetaWindow = 2 }, true},
		{"empty corr windows", func(c *Config) { c.Analysis.CorrWindows = nil }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"bad log output", func(c *Config) { c.Logging.Output = "syslog" }, true},
		{"missing date column", func(c *Config) { c.Input.DateColumn = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResolvePaths(t *testing.T) {
	t.Run("absolute dir", func(t *testing.T) {
		out := Default().Output
		out.Dir = t.TempDir()

		paths, err := ResolvePaths(out)
		require.NoError(t, err)
		assert.Equal(t, out.Dir, paths.OutputDir)
		assert.Equal(t, filepath.Join(out.Dir, "final_analysis_data.csv"), paths.DataCSV)
		assert.Equal(t, filepath.Join(out.Dir, "analysis_summary.txt"), paths.ReportTXT)
		assert.Equal(t, filepath.Join(out.Dir, "analysis_charts.xlsx"), paths.WorkbookXLSX)
	})

	t.Run("relative dir resolves against cwd", func(t *testing.T) {
		out := Default().Output
		out.Dir = "out"

		paths, err := ResolvePaths(out)
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(paths.OutputDir))
	})

	t.Run("ensure directories", func(t *testing.T) {
		out := Default().Output
		out.Dir = filepath.Join(t.TempDir(), "nested", "run")

		paths, err := ResolvePaths(out)
		require.NoError(t, err)
		require.NoError(t, paths.EnsureDirectories())

		info, err := os.Stat(paths.LogsDir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}
