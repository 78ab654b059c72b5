package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

type sheetFormat int

const (
	formatWorkbook sheetFormat = iota + 1
	formatCSV
)

// oleSignature opens every legacy BIFF (.xls) workbook.
var oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// detectFormat decides how an upload is decoded from its name and declared
// content type. Legacy .xls workbooks are rejected here; only OOXML
// workbooks and CSV are read.
func detectFormat(fileName, contentType string) (sheetFormat, error) {
	ext := strings.ToLower(strings.TrimSpace(filepath.Ext(fileName)))
	switch ext {
	case ".xlsx", ".xlsm":
		return formatWorkbook, nil
	case ".csv":
		return formatCSV, nil
	case ".xls":
		return 0, fmt.Errorf("%w: %q is a legacy .xls workbook, save it as .xlsx or .csv", ErrInputFormat, fileName)
	}

	mime := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.Contains(mime, "ms-excel"):
		return 0, fmt.Errorf("%w: %q is a legacy .xls workbook, save it as .xlsx or .csv", ErrInputFormat, fileName)
	case strings.Contains(mime, "sheet"), strings.Contains(mime, "excel"):
		return formatWorkbook, nil
	case strings.Contains(mime, "csv"):
		return formatCSV, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInputFormat, fileName)
}

// ReadSheet decodes the first sheet of an upload into positional rows.
func ReadSheet(fileName, contentType string, reader io.Reader) ([]RawRow, error) {
	format, err := detectFormat(fileName, contentType)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadFailure, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: input file is empty", ErrReadFailure)
	}

	if format == formatWorkbook && bytes.HasPrefix(data, oleSignature) {
		return nil, fmt.Errorf("%w: %q is a legacy .xls workbook, save it as .xlsx or .csv", ErrInputFormat, fileName)
	}

	var rows []RawRow
	switch format {
	case formatCSV:
		rows, err = parseCSVRows(data)
	default:
		rows, err = parseWorkbookRows(data)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || allBlank(rows) {
		return nil, fmt.Errorf("%w: first sheet has no rows", ErrEmptySheet)
	}
	return rows, nil
}

func parseCSVRows(data []byte) ([]RawRow, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\ufeff"))))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read csv rows: %v", ErrReadFailure, err)
	}

	rows := make([]RawRow, 0, len(records))
	for _, record := range records {
		row := make(RawRow, len(record))
		for idx, value := range record {
			if value == "" {
				continue
			}
			row[idx] = Text(value)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseWorkbookRows(data []byte) ([]RawRow, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: open excel file: %v", ErrReadFailure, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: excel file has no sheets", ErrEmptySheet)
	}
	sheet := sheets[0]

	values, err := file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet rows: %v", ErrReadFailure, err)
	}

	rows := make([]RawRow, 0, len(values))
	for rowIdx, cells := range values {
		row := make(RawRow, len(cells))
		for colIdx, raw := range cells {
			if raw == "" {
				continue
			}
			name, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, fmt.Errorf("%w: cell name: %v", ErrReadFailure, err)
			}
			cellType, err := file.GetCellType(sheet, name)
			if err != nil {
				return nil, fmt.Errorf("%w: cell %s type: %v", ErrReadFailure, name, err)
			}
			row[colIdx] = typedCell(raw, cellType)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// typedCell restores the value kind that GetRows flattens to text. Numeric
// cells carry no type attribute in the sheet XML, so unset counts as number.
func typedCell(raw string, cellType excelize.CellType) Cell {
	switch cellType {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return Number(value)
		}
	case excelize.CellTypeDate:
		if serial, ok := isoToSerial(raw); ok {
			return Number(serial)
		}
	case excelize.CellTypeBool:
		if raw == "1" {
			return Text("TRUE")
		}
		return Text("FALSE")
	}
	return Text(raw)
}

func isoToSerial(raw string) (float64, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		parsed, err := time.Parse(layout, strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		return float64(parsed.Unix())/secondsPerDay + unixEpochSerial, true
	}
	return 0, false
}

func allBlank(rows []RawRow) bool {
	for _, row := range rows {
		if !row.IsBlank() {
			return false
		}
	}
	return true
}
