package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"hedgecli/internal/analysis"
)

// CSVWriter provides CSV export functionality for analysis results.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	w.logger.Info("writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(options.Records)))

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8.
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return writer.Error()
}

// ExportAnalysis writes the enriched record table to filePath. Column
// layout matches the study's data export: one row per analysis month,
// rolling columns named by their window width, NaN cells left empty.
func (w *CSVWriter) ExportAnalysis(filePath string, result *analysis.Result) error {
	headers, records := AnalysisRows(result)
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}

// AnalysisRows converts a result into CSV headers and rows.
func AnalysisRows(result *analysis.Result) ([]string, [][]string) {
	headers := []string{"Date", "Price", "CPI", "Inflation_Rate", "Asset_Return"}
	for _, rc := range result.RollingCorr {
		headers = append(headers, fmt.Sprintf("Rolling_Corr_%dm", rc.Window))
	}
	headers = append(headers, fmt.Sprintf("Rolling_Beta_%dm", result.RollingBeta.Window))

	records := make([][]string, 0, len(result.Records))
	for i, rec := range result.Records {
		row := []string{
			rec.Month.Format("2006-01-02"),
			formatValue(rec.Price),
			formatValue(rec.Index),
			formatValue(rec.InflationRate),
			formatValue(rec.AssetReturn),
		}
		for _, rc := range result.RollingCorr {
			row = append(row, formatValue(columnValue(rc.Values, i)))
		}
		row = append(row, formatValue(columnValue(result.RollingBeta.Values, i)))
		records = append(records, row)
	}
	return headers, records
}

// columnValue reads a rolling column defensively; short columns read NaN.
func columnValue(values []float64, i int) float64 {
	if i >= len(values) {
		return math.NaN()
	}
	return values[i]
}

// formatValue renders a float for CSV. Undefined values become empty
// cells, never zero.
func formatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
