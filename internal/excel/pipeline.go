package excel

import (
	"fmt"
	"io"

	"salesboard/internal/domain"
)

type Result struct {
	HeaderRow  int
	SourceRows int
	Records    []domain.SalesRecord
}

func (r Result) Dropped() int {
	return r.SourceRows - len(r.Records)
}

// ParseSales reads an upload and runs it through the normalization
// pipeline.
func ParseSales(fileName, contentType string, reader io.Reader, assembler Assembler) (Result, error) {
	rows, err := ReadSheet(fileName, contentType, reader)
	if err != nil {
		return Result{}, err
	}
	return NormalizeRows(rows, assembler)
}

// NormalizeRows locates the data rows and assembles them into records.
func NormalizeRows(rows []RawRow, assembler Assembler) (Result, error) {
	if len(rows) == 0 || allBlank(rows) {
		return Result{}, fmt.Errorf("%w: no rows to process", ErrEmptySheet)
	}

	headerIdx, data := LocateRows(rows)
	records := assembler.Assemble(data)
	if len(records) == 0 {
		return Result{}, fmt.Errorf(
			"%w: %d candidate rows had no positive amount; check that code, client, amount, payment, channel and date are in columns A, B, G, H, I and J",
			ErrNoValidRecords, len(data),
		)
	}
	return Result{
		HeaderRow:  headerIdx,
		SourceRows: len(data),
		Records:    records,
	}, nil
}
