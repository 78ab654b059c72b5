package excel

import (
	"fmt"
	"strings"

	"salesboard/internal/domain"
)

// Export columns are assigned by position; header text varies between POS
// exports and is not trusted.
const (
	colCode    = 0
	colClient  = 1
	colAmount  = 6
	colPayment = 7
	colChannel = 8
	colDate    = 9
)

type Assembler struct {
	Amounts AmountParser
	Dates   DateNormalizer
}

// Assemble maps located data rows to sales records. IDs follow the row
// position before filtering; rows with a non-positive amount are dropped.
func (a Assembler) Assemble(rows []RawRow) []domain.SalesRecord {
	records := make([]domain.SalesRecord, 0, len(rows))
	for idx, row := range rows {
		record := a.assembleRow(row, idx)
		if record.Amount <= 0 {
			continue
		}
		records = append(records, record)
	}
	return records
}

func (a Assembler) assembleRow(row RawRow, idx int) domain.SalesRecord {
	seq := idx + 1
	return domain.SalesRecord{
		ID:            seq,
		Code:          textOr(row.At(colCode), fmt.Sprintf("V%03d", seq)),
		Client:        textOr(row.At(colClient), domain.UnspecifiedClient),
		Amount:        a.Amounts.Parse(row.At(colAmount)),
		PaymentMethod: ClassifyPaymentMethod(row.At(colPayment)),
		Channel:       textOr(row.At(colChannel), domain.Unspecified),
		Date:          a.Dates.Normalize(row.At(colDate)),
	}
}

func textOr(cell Cell, fallback string) string {
	value := strings.TrimSpace(cell.String())
	if value == "" {
		return fallback
	}
	return value
}
