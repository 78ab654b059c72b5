package analytics

import (
	"strings"
	"time"
)

const isoDateLayout = "2006-01-02"

// ParseDisplayDate reads a dd/mm/yyyy record date back into a calendar day
// at midnight in loc. The display form is not ISO ordered, so the parts are
// reversed before parsing.
func ParseDisplayDate(value string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	parts := strings.Split(strings.TrimSpace(value), "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	iso := strings.Join([]string{parts[2], pad2(parts[1]), pad2(parts[0])}, "-")
	parsed, err := time.ParseInLocation(isoDateLayout, iso, loc)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// parseBound accepts range bounds as yyyy-mm-dd or dd/mm/yyyy.
func parseBound(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	if parsed, err := time.ParseInLocation(isoDateLayout, value, loc); err == nil {
		return parsed, true
	}
	return ParseDisplayDate(value, loc)
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func pad2(value string) string {
	value = strings.TrimSpace(value)
	if len(value) == 1 {
		return "0" + value
	}
	return value
}
