package excel

import "errors"

// Upload failures. Every failed parse wraps exactly one of these so callers
// can branch with errors.Is; per-row anomalies never surface as errors.
var (
	ErrInputFormat    = errors.New("unsupported spreadsheet format")
	ErrReadFailure    = errors.New("failed to read file")
	ErrEmptySheet     = errors.New("spreadsheet is empty")
	ErrNoValidRecords = errors.New("no valid sales records found")
)
