package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"salesboard/internal/domain"
)

// orderedSums keeps group totals in order of first appearance.
type orderedSums struct {
	keys []string
	sums map[string]decimal.Decimal
}

func newOrderedSums() *orderedSums {
	return &orderedSums{sums: make(map[string]decimal.Decimal)}
}

func (o *orderedSums) add(key string, amount decimal.Decimal) {
	current, ok := o.sums[key]
	if !ok {
		o.keys = append(o.keys, key)
	}
	o.sums[key] = current.Add(amount)
}

// Summarize computes every aggregate view over records. Amounts are summed
// as decimals so the per-method, per-date and grand totals agree exactly.
func Summarize(records []domain.SalesRecord) domain.Summary {
	total := decimal.Zero
	methods := newOrderedSums()
	days := newOrderedSums()
	clients := make(map[string]struct{}, len(records))

	for _, record := range records {
		amount := decimal.NewFromFloat(record.Amount)
		total = total.Add(amount)
		methods.add(record.PaymentMethod, amount)
		days.add(record.Date, amount)
		clients[record.Client] = struct{}{}
	}

	summary := domain.Summary{
		Total:          total,
		Count:          len(records),
		UniqueClients:  len(clients),
		AverageTicket:  decimal.Zero,
		PaymentMethods: make([]domain.NamedAmount, 0, len(methods.keys)),
		Daily:          make([]domain.DailyTotal, 0, len(days.keys)),
	}
	if summary.Count > 0 {
		summary.AverageTicket = total.Div(decimal.NewFromInt(int64(summary.Count)))
	}
	for _, key := range methods.keys {
		summary.PaymentMethods = append(summary.PaymentMethods, domain.NamedAmount{Name: key, Value: methods.sums[key]})
	}
	for _, key := range days.keys {
		summary.Daily = append(summary.Daily, domain.DailyTotal{Date: key, Total: days.sums[key]})
	}
	return summary
}

// RankClients orders clients by total sales, largest first. limit <= 0
// returns every client.
func RankClients(records []domain.SalesRecord, limit int) []domain.ClientRank {
	index := make(map[string]int)
	ranks := make([]domain.ClientRank, 0)
	for _, record := range records {
		pos, ok := index[record.Client]
		if !ok {
			pos = len(ranks)
			index[record.Client] = pos
			ranks = append(ranks, domain.ClientRank{Client: record.Client, Total: decimal.Zero})
		}
		ranks[pos].Total = ranks[pos].Total.Add(decimal.NewFromFloat(record.Amount))
		ranks[pos].Sales++
	}

	sort.SliceStable(ranks, func(i, j int) bool {
		if cmp := ranks[i].Total.Cmp(ranks[j].Total); cmp != 0 {
			return cmp > 0
		}
		return ranks[i].Sales > ranks[j].Sales
	})
	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks
}

// Options lists the distinct values a filter can select from the batch.
func Options(records []domain.SalesRecord, loc *time.Location) domain.FilterOptions {
	options := domain.FilterOptions{
		PaymentMethods: distinct(records, func(r domain.SalesRecord) string { return r.PaymentMethod }),
		Channels:       distinct(records, func(r domain.SalesRecord) string { return r.Channel }),
		Dates:          distinct(records, func(r domain.SalesRecord) string { return r.Date }),
	}
	sortDates(options.Dates, loc)
	return options
}

// PaymentMethodDetail narrows records to one payment method.
func PaymentMethodDetail(records []domain.SalesRecord, method string) domain.PaymentMethodDetail {
	matched := make([]domain.SalesRecord, 0)
	for _, record := range records {
		if record.PaymentMethod == method {
			matched = append(matched, record)
		}
	}
	return domain.PaymentMethodDetail{
		Method:  method,
		Summary: Summarize(matched),
		Records: matched,
	}
}

func distinct(records []domain.SalesRecord, key func(domain.SalesRecord) string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, record := range records {
		value := key(record)
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		values = append(values, value)
	}
	return values
}

// sortDates orders display dates chronologically; text that is not a date
// goes last in lexical order.
func sortDates(values []string, loc *time.Location) {
	sort.SliceStable(values, func(i, j int) bool {
		left, leftOK := ParseDisplayDate(values[i], loc)
		right, rightOK := ParseDisplayDate(values[j], loc)
		switch {
		case leftOK && rightOK:
			if left.Equal(right) {
				return values[i] < values[j]
			}
			return left.Before(right)
		case leftOK != rightOK:
			return leftOK
		default:
			return values[i] < values[j]
		}
	})
}
