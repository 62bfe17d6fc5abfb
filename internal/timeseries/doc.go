// Package timeseries handles ingestion and normalization of monthly
// observation series.
//
// Input files carry dates in several textual encodings ("Jul 2024",
// "Jul 24", "01/07/2024", "2024-07-01"). The normalizer tries a fixed
// ladder of layouts against the whole column and snaps every accepted
// date to the first day of its calendar month, producing the canonical
// month key the analysis pipeline joins on.
//
// This package contains two main components:
//
// Date normalization: column-wide layout detection with a lenient
// per-token fallback, plus duplicate-month rejection.
//
// Loader: CSV series loading with header detection and numeric
// normalization of comma-grouped price text.
package timeseries
