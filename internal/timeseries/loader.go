package timeseries

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// Loader reads monthly observation series from CSV files.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new CSV series loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// LoadSeries reads one CSV file and extracts a monthly series from the
// named date and value columns. Column lookup is case-insensitive; when
// the requested column is missing the loader falls back to positional
// defaults (date in column 0, value in column 1), matching how the raw
// exports are laid out.
func (l *Loader) LoadSeries(path, dateCol, valueCol string) ([]Observation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open series file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read series file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty series file: %s", path)
	}

	dateIdx, valueIdx, dataStart := locateColumns(records[0], dateCol, valueCol)
	if len(records) <= dataStart {
		return nil, fmt.Errorf("series file contains only a header: %s", path)
	}

	var (
		tokens []string
		values []float64
	)
	for i := dataStart; i < len(records); i++ {
		record := records[i]
		if len(record) <= dateIdx || len(record) <= valueIdx {
			l.logger.Warn("skipping short record",
				"file", path,
				"line", i+1,
				"fields", len(record),
			)
			continue
		}

		value, err := ParseAmount(record[valueIdx])
		if err != nil {
			return nil, fmt.Errorf("parse %s (line %d): %w", valueCol, i+1, err)
		}

		tokens = append(tokens, record[dateIdx])
		values = append(values, value)
	}

	series, err := BuildSeries(valueCol, tokens, values)
	if err != nil {
		return nil, err
	}

	l.logger.Info("loaded series",
		"file", path,
		"column", valueCol,
		"observations", len(series),
	)
	return series, nil
}

// ParseAmount converts numeric text to a float64, tolerating the
// comma-grouped encoding price exports use ("71,245.50"). Parsing goes
// through decimal so grouped input round-trips exactly before the final
// float conversion.
func ParseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return d.InexactFloat64(), nil
}

// locateColumns resolves the date and value column indices from the header
// row. A header row is assumed whenever its date cell does not parse as a
// date; otherwise the file is headerless and positional defaults apply.
func locateColumns(header []string, dateCol, valueCol string) (dateIdx, valueIdx, dataStart int) {
	dateIdx, valueIdx = 0, 1

	found := false
	for i, cell := range header {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case strings.ToLower(dateCol):
			dateIdx = i
			found = true
		case strings.ToLower(valueCol):
			valueIdx = i
			found = true
		}
	}
	if found {
		return dateIdx, valueIdx, 1
	}

	// No recognized header names. If the first cell parses as a date the
	// file has no header at all.
	if _, ok := parseAny(header[dateIdx]); ok {
		return dateIdx, valueIdx, 0
	}
	return dateIdx, valueIdx, 1
}
