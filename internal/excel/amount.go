package excel

import (
	"math"
	"strconv"
	"strings"
)

const DefaultCentsThreshold = 100000.0

// AmountParser turns a raw cell into a monetary amount in currency units.
//
// Some POS exports write amounts in cents. With CentsHeuristic enabled,
// values above CentsThreshold are assumed to be cents and divided by 100.
// This misreads genuinely large sales, so it stays off unless configured.
type AmountParser struct {
	CentsHeuristic bool
	CentsThreshold float64
}

// ParseAmount parses with the heuristic disabled.
func ParseAmount(cell Cell) float64 {
	return AmountParser{}.Parse(cell)
}

// Parse never fails: anything unreadable is zero sales.
func (p AmountParser) Parse(cell Cell) float64 {
	var value float64
	switch cell.Kind {
	case CellNumber:
		value = cell.Number
	case CellText:
		value = parseAmountText(cell.Text)
	default:
		return 0
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}

	if p.CentsHeuristic {
		threshold := p.CentsThreshold
		if threshold <= 0 {
			threshold = DefaultCentsThreshold
		}
		if value > threshold {
			value /= 100
		}
	}
	return value
}

func parseAmountText(raw string) float64 {
	value := cleanAmountText(raw)
	if value == "" {
		return 0
	}

	lastComma := strings.LastIndex(value, ",")
	lastPeriod := strings.LastIndex(value, ".")
	switch {
	case lastComma >= 0 && lastComma > lastPeriod && (lastPeriod >= 0 || strings.Count(value, ",") == 1):
		// 1.234,56 or 150,00
		value = strings.ReplaceAll(value, ".", "")
		value = strings.Replace(value, ",", ".", 1)
	case lastComma >= 0:
		// 1,234.56 or 1,234,567
		value = strings.ReplaceAll(value, ",", "")
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0
	}
	return parsed
}

// cleanAmountText keeps ASCII digits, separators and one minus sign placed
// before the first digit.
func cleanAmountText(raw string) string {
	var b strings.Builder
	seenDigit := false
	seenMinus := false
	for _, ch := range strings.TrimSpace(raw) {
		switch {
		case ch >= '0' && ch <= '9':
			seenDigit = true
			b.WriteRune(ch)
		case ch == ',' || ch == '.':
			b.WriteRune(ch)
		case ch == '-' && !seenDigit && !seenMinus:
			seenMinus = true
			b.WriteRune(ch)
		}
	}
	return b.String()
}
