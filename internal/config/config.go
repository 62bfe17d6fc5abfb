package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration. Precedence is
// environment variables over config file over built-in defaults.
type Config struct {
	Input    InputConfig    `yaml:"input" envconfig:"INPUT"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
	Output   OutputConfig   `yaml:"output" envconfig:"OUTPUT"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
}

// InputConfig locates the two input series and their columns.
type InputConfig struct {
	PriceFile   string `yaml:"price_file" envconfig:"PRICE_FILE"`
	IndexFile   string `yaml:"index_file" envconfig:"INDEX_FILE"`
	DateColumn  string `yaml:"date_column" envconfig:"DATE_COLUMN" validate:"required"`
	PriceColumn string `yaml:"price_column" envconfig:"PRICE_COLUMN" validate:"required"`
	IndexColumn string `yaml:"index_column" envconfig:"INDEX_COLUMN" validate:"required"`
}

// AnalysisConfig holds the statistical parameters.
type AnalysisConfig struct {
	GapToleranceDays int   `yaml:"gap_tolerance_days" envconfig:"GAP_TOLERANCE_DAYS" validate:"gt=0"`
	CorrWindows      []int `yaml:"corr_windows" envconfig:"CORR_WINDOWS" validate:"min=1,dive,gte=2"`
	BetaWindow       int   `yaml:"beta_window" envconfig:"BETA_WINDOW" validate:"gte=3"`
}

// OutputConfig names the artifacts one run produces.
type OutputConfig struct {
	Dir          string `yaml:"dir" envconfig:"DIR" validate:"required"`
	DataFile     string `yaml:"data_file" envconfig:"DATA_FILE" validate:"required"`
	ReportFile   string `yaml:"report_file" envconfig:"REPORT_FILE" validate:"required"`
	WorkbookFile string `yaml:"workbook_file" envconfig:"WORKBOOK_FILE" validate:"required"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Input: InputConfig{
			DateColumn:  "Date",
			PriceColumn: "Price",
			IndexColumn: "CPI",
		},
		Analysis: AnalysisConfig{
			GapToleranceDays: 50,
			CorrWindows:      []int{12, 24},
			BetaWindow:       12,
		},
		Output: OutputConfig{
			Dir:          "out",
			DataFile:     "final_analysis_data.csv",
			ReportFile:   "analysis_summary.txt",
			WorkbookFile: "analysis_charts.xlsx",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/hedgecli.log",
		},
	}
}

// Load builds the effective configuration: defaults, then the YAML file
// (if present), then HEDGE_* environment variables on top.
func Load(filePath string) (*Config, error) {
	cfg := Default()

	if filePath == "" {
		filePath = defaultConfigFilePath()
	}
	if filePath != "" {
		if _, err := os.Stat(filePath); err == nil {
			if err := loadFromFile(filePath, &cfg); err != nil {
				return nil, fmt.Errorf("load config from file: %w", err)
			}
		}
	}

	if err := envconfig.Process("HEDGE", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) {
		msgs := make([]string, 0, len(invalid))
		for _, fe := range invalid {
			msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return err
}

// loadFromFile overlays YAML file values onto cfg.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// defaultConfigFilePath looks for hedgecli.yaml next to the working
// directory. Missing file is not an error; defaults apply.
func defaultConfigFilePath() string {
	for _, candidate := range []string{"hedgecli.yaml", "hedgecli.yml"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
