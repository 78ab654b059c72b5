package excel

import "strings"

var headerKeywords = []string{
	"CÓDIGO",
	"CODIGO",
	"CLIENTE",
	"VALOR",
	"CODE",
	"CLIENT",
	"AMOUNT",
}

const footerKeyword = "TOTAL"

// NoHeader is reported when the sheet starts directly with data.
const NoHeader = -1

// FindHeaderRow returns the index of the first row mentioning a header
// keyword. A footer total below data rows ("Total Valor") is not a header.
// Without one, row 0 is taken as an unlabeled header unless its first cell
// already looks like data, in which case NoHeader is returned.
func FindHeaderRow(rows []RawRow) int {
	seenData := false
	for idx, row := range rows {
		text := row.JoinedText()
		if seenData && strings.Contains(text, footerKeyword) {
			continue
		}
		if hasHeaderKeyword(text) {
			return idx
		}
		if row.At(colCode).IsNumeric() {
			seenData = true
		}
	}
	if len(rows) > 0 && rows[0].At(colCode).IsNumeric() {
		return NoHeader
	}
	return 0
}

func hasHeaderKeyword(text string) bool {
	for _, keyword := range headerKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// LocateRows finds the header and returns the data rows after it. Footer
// totals and rows whose first column is not number-like are skipped.
func LocateRows(rows []RawRow) (int, []RawRow) {
	headerIdx := FindHeaderRow(rows)
	if headerIdx+1 >= len(rows) {
		return headerIdx, nil
	}

	data := make([]RawRow, 0, len(rows)-headerIdx-1)
	for _, row := range rows[headerIdx+1:] {
		if strings.Contains(row.JoinedText(), footerKeyword) {
			continue
		}
		if !row.At(colCode).IsNumeric() {
			continue
		}
		data = append(data, row)
	}
	return headerIdx, data
}
