// Package exporter writes the analysis artifacts.
//
// CSVWriter: the enriched record table (month, price, index, inflation
// rate, asset return, rolling columns) with undefined values exported as
// empty cells, and optional UTF-8 BOM for Excel compatibility.
//
// WorkbookWriter: an Excel workbook with the data sheet and three chart
// sheets (price vs index trend, rolling correlation and beta, return vs
// inflation scatter with the fitted regression line), built on excelize.
package exporter
