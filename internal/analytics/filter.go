package analytics

import (
	"time"

	"salesboard/internal/domain"
)

// Filter returns the records matching every active predicate of filter.
// now anchors the relative date windows; its location decides calendar days.
func Filter(records []domain.SalesRecord, filter domain.FilterState, now time.Time) []domain.SalesRecord {
	matchDate := datePredicate(filter, now)
	result := make([]domain.SalesRecord, 0, len(records))
	for _, record := range records {
		if !matchesExact(filter.PaymentMethod, record.PaymentMethod) {
			continue
		}
		if !matchesExact(filter.Channel, record.Channel) {
			continue
		}
		if !matchDate(record.Date) {
			continue
		}
		result = append(result, record)
	}
	return result
}

func matchesExact(want, got string) bool {
	return want == "" || want == domain.FilterAll || want == got
}

func datePredicate(filter domain.FilterState, now time.Time) func(string) bool {
	loc := now.Location()
	today := startOfDay(now)

	switch filter.DateMode {
	case "", domain.DateAll:
		return func(string) bool { return true }
	case domain.DateCustom:
		start, hasStart := parseBound(filter.DateRange.Start, loc)
		end, hasEnd := parseBound(filter.DateRange.End, loc)
		if !hasStart && !hasEnd {
			return func(string) bool { return true }
		}
		return func(value string) bool {
			day, ok := ParseDisplayDate(value, loc)
			if !ok {
				return false
			}
			if hasStart && day.Before(start) {
				return false
			}
			if hasEnd && day.After(end) {
				return false
			}
			return true
		}
	case domain.DateToday:
		return withinDays(today, today, loc)
	case domain.DateYesterday:
		yesterday := today.AddDate(0, 0, -1)
		return withinDays(yesterday, yesterday, loc)
	case domain.DateLast7Days:
		return withinDays(today.AddDate(0, 0, -6), today, loc)
	case domain.DateLast30Days:
		return withinDays(today.AddDate(0, 0, -29), today, loc)
	case domain.DateThisMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
		return withinDays(first, first.AddDate(0, 1, -1), loc)
	case domain.DateLastMonth:
		first := time.Date(today.Year(), today.Month()-1, 1, 0, 0, 0, 0, loc)
		return withinDays(first, first.AddDate(0, 1, -1), loc)
	default:
		literal := string(filter.DateMode)
		return func(value string) bool { return value == literal }
	}
}

// withinDays matches record dates in the inclusive calendar-day range.
func withinDays(first, last time.Time, loc *time.Location) func(string) bool {
	return func(value string) bool {
		day, ok := ParseDisplayDate(value, loc)
		if !ok {
			return false
		}
		return !day.Before(first) && !day.After(last)
	}
}
