package excel

import (
	"math"
	"strings"
	"time"

	"salesboard/internal/domain"
)

const (
	// Serial day numbers between these bounds (2009–2036) are read as
	// spreadsheet dates. The serial epoch is 1899-12-30.
	minDateSerial   = 40000
	maxDateSerial   = 50000
	unixEpochSerial = 25569
	secondsPerDay   = 86400
)

// DateNormalizer renders date cells in the dd/mm/yyyy display form. It is a
// best-effort heuristic: unrecognized text passes through untouched.
type DateNormalizer struct {
	Location *time.Location
	Now      func() time.Time
}

func NewDateNormalizer(loc *time.Location) DateNormalizer {
	return DateNormalizer{Location: loc, Now: time.Now}
}

func (d DateNormalizer) Normalize(cell Cell) string {
	switch cell.Kind {
	case CellNumber:
		if cell.Number > minDateSerial && cell.Number < maxDateSerial {
			return SerialToTime(cell.Number).Format(domain.DisplayDateLayout)
		}
	case CellText:
		if strings.TrimSpace(cell.Text) != "" {
			return cell.Text
		}
	}
	return d.Today()
}

func (d DateNormalizer) Today() string {
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	loc := d.Location
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc).Format(domain.DisplayDateLayout)
}

// SerialToTime converts a spreadsheet serial day number to a UTC instant.
func SerialToTime(serial float64) time.Time {
	seconds := (serial - unixEpochSerial) * secondsPerDay
	whole, frac := math.Modf(seconds)
	return time.Unix(int64(whole), int64(math.Round(frac*1e9))).UTC()
}
