package exporter

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/xuri/excelize/v2"

	"hedgecli/internal/analysis"
)

// Sheet names inside the exported workbook.
const (
	dataSheet    = "Data"
	trendSheet   = "Trend"
	rollingSheet = "Rolling"
	scatterSheet = "Scatter"
)

// Fixed data sheet columns: A=Date, B=Price, C=CPI, D=Inflation_Rate,
// E=Asset_Return. Rolling columns start at F.
const firstRollingColumn = 6

// WorkbookWriter builds the Excel workbook with the data table and the
// three study charts.
type WorkbookWriter struct {
	logger *slog.Logger
}

// NewWorkbookWriter creates a new workbook writer instance.
func NewWorkbookWriter(logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{logger: logger}
}

// Export writes the workbook to filePath.
func (w *WorkbookWriter) Export(filePath string, result *analysis.Result) error {
	w.logger.Info("writing workbook",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(result.Records)))

	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeDataSheet(f, result); err != nil {
		return fmt.Errorf("write data sheet: %w", err)
	}
	if err := w.addTrendChart(f, result); err != nil {
		return fmt.Errorf("add trend chart: %w", err)
	}
	if err := w.addRollingChart(f, result); err != nil {
		return fmt.Errorf("add rolling chart: %w", err)
	}
	if err := w.addScatterChart(f, result); err != nil {
		return fmt.Errorf("add scatter chart: %w", err)
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}
	idx, err := f.GetSheetIndex(dataSheet)
	if err != nil {
		return fmt.Errorf("locate data sheet: %w", err)
	}
	f.SetActiveSheet(idx)

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// writeDataSheet fills the Data sheet with the enriched record table.
// Undefined values become blank cells.
func (w *WorkbookWriter) writeDataSheet(f *excelize.File, result *analysis.Result) error {
	if _, err := f.NewSheet(dataSheet); err != nil {
		return err
	}

	header := []interface{}{"Date", "Price", "CPI", "Inflation_Rate", "Asset_Return"}
	for _, rc := range result.RollingCorr {
		header = append(header, fmt.Sprintf("Rolling_Corr_%dm", rc.Window))
	}
	header = append(header, fmt.Sprintf("Rolling_Beta_%dm", result.RollingBeta.Window))
	if err := f.SetSheetRow(dataSheet, "A1", &header); err != nil {
		return err
	}

	for i, rec := range result.Records {
		row := []interface{}{
			rec.Month.Format("2006-01-02"),
			cellValue(rec.Price),
			cellValue(rec.Index),
			cellValue(rec.InflationRate),
			cellValue(rec.AssetReturn),
		}
		for _, rc := range result.RollingCorr {
			row = append(row, cellValue(columnValue(rc.Values, i)))
		}
		row = append(row, cellValue(columnValue(result.RollingBeta.Values, i)))

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(dataSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// addTrendChart draws the price and index level series over time.
func (w *WorkbookWriter) addTrendChart(f *excelize.File, result *analysis.Result) error {
	if _, err := f.NewSheet(trendSheet); err != nil {
		return err
	}

	n := len(result.Records)
	chart := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("%s!$B$1", dataSheet),
				Categories: categoriesRef(n),
				Values:     seriesRef(2, n),
			},
			{
				Name:       fmt.Sprintf("%s!$C$1", dataSheet),
				Categories: categoriesRef(n),
				Values:     seriesRef(3, n),
			},
		},
		Title:     []excelize.RichTextRun{{Text: "Price vs CPI Level"}},
		Legend:    excelize.ChartLegend{Position: "top"},
		Dimension: excelize.ChartDimension{Width: 960, Height: 540},
	}
	return f.AddChart(trendSheet, "A1", chart)
}

// addRollingChart draws every rolling correlation column plus the rolling
// beta column.
func (w *WorkbookWriter) addRollingChart(f *excelize.File, result *analysis.Result) error {
	if _, err := f.NewSheet(rollingSheet); err != nil {
		return err
	}

	n := len(result.Records)
	var series []excelize.ChartSeries
	col := firstRollingColumn
	for range result.RollingCorr {
		series = append(series, excelize.ChartSeries{
			Name:       headerRef(col),
			Categories: categoriesRef(n),
			Values:     seriesRef(col, n),
		})
		col++
	}
	series = append(series, excelize.ChartSeries{
		Name:       headerRef(col),
		Categories: categoriesRef(n),
		Values:     seriesRef(col, n),
	})

	chart := &excelize.Chart{
		Type:      excelize.Line,
		Series:    series,
		Title:     []excelize.RichTextRun{{Text: "Rolling Correlation and Hedge Ratio"}},
		Legend:    excelize.ChartLegend{Position: "top"},
		Dimension: excelize.ChartDimension{Width: 960, Height: 540},
	}
	return f.AddChart(rollingSheet, "A1", chart)
}

// addScatterChart draws asset return against inflation rate with the
// whole-sample fitted line as a two-point overlay series.
func (w *WorkbookWriter) addScatterChart(f *excelize.File, result *analysis.Result) error {
	if _, err := f.NewSheet(scatterSheet); err != nil {
		return err
	}

	// Fitted line endpoints over the observed inflation range, written as
	// a small helper table on the scatter sheet itself.
	xMin, xMax, ok := inflationRange(result.Records)
	fit := result.Regression
	helper := [][]interface{}{
		{"Fit_X", "Fit_Y"},
		{cellValue(xMin), cellValue(fit.Intercept + fit.Slope*xMin)},
		{cellValue(xMax), cellValue(fit.Intercept + fit.Slope*xMax)},
	}
	for i, row := range helper {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(scatterSheet, cell, &row); err != nil {
			return err
		}
	}

	n := len(result.Records)
	series := []excelize.ChartSeries{
		{
			Name:       fmt.Sprintf("%s!$E$1", dataSheet),
			Categories: seriesRef(4, n), // inflation rate on x
			Values:     seriesRef(5, n), // asset return on y
		},
	}
	if ok {
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$B$1", scatterSheet),
			Categories: fmt.Sprintf("%s!$A$2:$A$3", scatterSheet),
			Values:     fmt.Sprintf("%s!$B$2:$B$3", scatterSheet),
		})
	}

	chart := &excelize.Chart{
		Type:   excelize.Scatter,
		Series: series,
		Title: []excelize.RichTextRun{{
			Text: fmt.Sprintf("Asset Return vs Inflation (r = %.3f, R-sq = %.4f)", result.Correlation, fit.RSquared),
		}},
		Legend:    excelize.ChartLegend{Position: "top"},
		Dimension: excelize.ChartDimension{Width: 720, Height: 540},
	}
	return f.AddChart(scatterSheet, "D1", chart)
}

// categoriesRef references the date column for n records.
func categoriesRef(n int) string {
	return fmt.Sprintf("%s!$A$2:$A$%d", dataSheet, n+1)
}

// seriesRef references a data column (1-based) for n records.
func seriesRef(col, n int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return fmt.Sprintf("%s!$%s$2:$%s$%d", dataSheet, name, name, n+1)
}

// headerRef references a column's header cell.
func headerRef(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return fmt.Sprintf("%s!$%s$1", dataSheet, name)
}

// cellValue maps undefined floats to a blank cell.
func cellValue(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

// inflationRange finds the min and max defined inflation rates. ok is
// false when no record has a defined rate.
func inflationRange(records []analysis.ReturnRecord) (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, rec := range records {
		if math.IsNaN(rec.InflationRate) {
			continue
		}
		if rec.InflationRate < min {
			min = rec.InflationRate
		}
		if rec.InflationRate > max {
			max = rec.InflationRate
		}
		ok = true
	}
	return min, max, ok
}
