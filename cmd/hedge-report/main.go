// Command hedge-report runs the inflation-hedge study end to end: it
// loads the monthly price and CPI series, aligns and analyzes them, and
// writes the data export, the chart workbook, and the text summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"hedgecli/internal/analysis"
	"hedgecli/internal/config"
	"hedgecli/internal/exporter"
	"hedgecli/internal/infrastructure"
	"hedgecli/internal/report"
	"hedgecli/internal/timeseries"
)

func main() {
	prices := flag.String("prices", "", "CSV file with the monthly price series")
	cpi := flag.String("cpi", "", "CSV file with the monthly CPI series")
	outDir := flag.String("out", "", "output directory (defaults to config output dir)")
	configFile := flag.String("config", "", "optional YAML config file")
	betaWindow := flag.Int("beta-window", 0, "rolling beta window in months (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Flags win over config and environment.
	if *prices != "" {
		cfg.Input.PriceFile = *prices
	}
	if *cpi != "" {
		cfg.Input.IndexFile = *cpi
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if *betaWindow > 0 {
		cfg.Analysis.BetaWindow = *betaWindow
	}
	if cfg.Input.PriceFile == "" || cfg.Input.IndexFile == "" {
		fmt.Fprintln(os.Stderr, "both -prices and -cpi are required (or set via config/env)")
		flag.Usage()
		os.Exit(2)
	}

	paths, err := config.ResolvePaths(cfg.Output)
	if err != nil {
		slog.Error("Failed to resolve output paths", "error", err)
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create output directories", "error", err)
		os.Exit(1)
	}

	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = paths.GetLogPath("hedge-report.log")
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	// One run ID tags every log record of this invocation.
	ctx := infrastructure.WithRunID(context.Background(), uuid.NewString())

	logger.InfoContext(ctx, "starting hedge report",
		slog.String("price_file", cfg.Input.PriceFile),
		slog.String("cpi_file", cfg.Input.IndexFile),
		slog.String("output_dir", paths.OutputDir),
	)

	if err := run(ctx, cfg, paths, logger); err != nil {
		logger.ErrorContext(ctx, "hedge report failed", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "hedge report complete",
		slog.String("data_csv", paths.DataCSV),
		slog.String("workbook", paths.WorkbookXLSX),
		slog.String("summary", paths.ReportTXT),
	)
}

func run(ctx context.Context, cfg *config.Config, paths *config.Paths, logger *slog.Logger) error {
	loader := timeseries.NewLoader(logger)

	priceSeries, err := loader.LoadSeries(cfg.Input.PriceFile, cfg.Input.DateColumn, cfg.Input.PriceColumn)
	if err != nil {
		return fmt.Errorf("load price series: %w", err)
	}
	indexSeries, err := loader.LoadSeries(cfg.Input.IndexFile, cfg.Input.DateColumn, cfg.Input.IndexColumn)
	if err != nil {
		return fmt.Errorf("load index series: %w", err)
	}

	analyzer := analysis.NewAnalyzer(analysis.Config{
		GapToleranceDays: cfg.Analysis.GapToleranceDays,
		CorrWindows:      cfg.Analysis.CorrWindows,
		BetaWindow:       cfg.Analysis.BetaWindow,
	}, logger)

	result, err := analyzer.Run(ctx, priceSeries, indexSeries)
	if err != nil {
		return err
	}

	if err := exporter.NewCSVWriter(logger).ExportAnalysis(paths.DataCSV, result); err != nil {
		return fmt.Errorf("export data CSV: %w", err)
	}
	if err := exporter.NewWorkbookWriter(logger).Export(paths.WorkbookXLSX, result); err != nil {
		return fmt.Errorf("export workbook: %w", err)
	}
	if err := report.NewSummarizer(logger).Write(paths.ReportTXT, result); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
