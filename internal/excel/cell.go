package excel

import (
	"math"
	"strconv"
	"strings"
)

type CellKind int

const (
	CellAbsent CellKind = iota
	CellNumber
	CellText
)

// Cell is one untyped spreadsheet value. The zero Cell is absent.
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
}

func Absent() Cell {
	return Cell{}
}

func Number(value float64) Cell {
	return Cell{Kind: CellNumber, Number: value}
}

func Text(value string) Cell {
	return Cell{Kind: CellText, Text: value}
}

func (c Cell) IsAbsent() bool {
	return c.Kind == CellAbsent
}

// IsBlank reports absent cells and text cells holding only whitespace.
func (c Cell) IsBlank() bool {
	switch c.Kind {
	case CellAbsent:
		return true
	case CellText:
		return strings.TrimSpace(c.Text) == ""
	default:
		return false
	}
}

func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellText:
		return c.Text
	default:
		return ""
	}
}

// IsNumeric reports whether the cell holds a finite number or a decimal
// string that reads as one. Hex literals and "Inf" spellings do not count.
func (c Cell) IsNumeric() bool {
	switch c.Kind {
	case CellNumber:
		return isFinite(c.Number)
	case CellText:
		value := strings.TrimSpace(c.Text)
		if value == "" || strings.ContainsAny(value, "xX") {
			return false
		}
		parsed, err := strconv.ParseFloat(value, 64)
		return err == nil && isFinite(parsed)
	default:
		return false
	}
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

// RawRow is a positional row. Columns beyond its length read as absent.
type RawRow []Cell

func (r RawRow) At(idx int) Cell {
	if idx < 0 || idx >= len(r) {
		return Absent()
	}
	return r[idx]
}

func (r RawRow) IsBlank() bool {
	for _, cell := range r {
		if !cell.IsBlank() {
			return false
		}
	}
	return true
}

// JoinedText concatenates the present cells with single spaces, uppercased
// for keyword matching.
func (r RawRow) JoinedText() string {
	parts := make([]string, 0, len(r))
	for _, cell := range r {
		if cell.IsAbsent() {
			continue
		}
		parts = append(parts, cell.String())
	}
	return strings.ToUpper(strings.Join(parts, " "))
}
