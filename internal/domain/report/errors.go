package report

import "errors"

var (
	// ErrExportFailed wraps any failure to produce or write the export file.
	ErrExportFailed = errors.New("failed to write export file")
)
