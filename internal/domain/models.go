package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	Unspecified       = "Não informado"
	UnspecifiedClient = "Cliente não informado"
	FilterAll         = "all"

	// DisplayDateLayout is the canonical dd/mm/yyyy form of SalesRecord.Date.
	DisplayDateLayout = "02/01/2006"
)

type SalesRecord struct {
	ID            int     `json:"id"`
	Code          string  `json:"code"`
	Client        string  `json:"client"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	Channel       string  `json:"channel"`
	Date          string  `json:"date"`
}

// Batch is the full result of one upload. A new Batch always replaces the
// previous one; records are never merged across uploads.
type Batch struct {
	ID         uuid.UUID     `json:"id"`
	FileName   string        `json:"file_name"`
	UploadedAt time.Time     `json:"uploaded_at"`
	HeaderRow  int           `json:"header_row"`
	SourceRows int           `json:"source_rows"`
	Records    []SalesRecord `json:"records"`
}

type BatchInfo struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	UploadedAt  time.Time `json:"uploaded_at"`
	HeaderRow   int       `json:"header_row"`
	SourceRows  int       `json:"source_rows"`
	RecordCount int       `json:"record_count"`
	Dropped     int       `json:"dropped"`
}

func (b Batch) Info() BatchInfo {
	return BatchInfo{
		ID:          b.ID,
		FileName:    b.FileName,
		UploadedAt:  b.UploadedAt,
		HeaderRow:   b.HeaderRow,
		SourceRows:  b.SourceRows,
		RecordCount: len(b.Records),
		Dropped:     b.SourceRows - len(b.Records),
	}
}

type DateMode string

const (
	DateAll        DateMode = "all"
	DateCustom     DateMode = "custom"
	DateToday      DateMode = "today"
	DateYesterday  DateMode = "yesterday"
	DateLast7Days  DateMode = "last7days"
	DateLast30Days DateMode = "last30days"
	DateThisMonth  DateMode = "thisMonth"
	DateLastMonth  DateMode = "lastMonth"
)

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FilterState is the read-only filter descriptor. DateRange is only
// consulted when DateMode is DateCustom. Any DateMode outside the named
// constants is matched literally against SalesRecord.Date.
type FilterState struct {
	PaymentMethod string    `json:"payment_method"`
	Channel       string    `json:"channel"`
	DateMode      DateMode  `json:"date_mode"`
	DateRange     DateRange `json:"date_range"`
}

func DefaultFilter() FilterState {
	return FilterState{
		PaymentMethod: FilterAll,
		Channel:       FilterAll,
		DateMode:      DateAll,
	}
}

type NamedAmount struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

type DailyTotal struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

type Summary struct {
	Total          decimal.Decimal `json:"total"`
	Count          int             `json:"count"`
	UniqueClients  int             `json:"unique_clients"`
	AverageTicket  decimal.Decimal `json:"average_ticket"`
	PaymentMethods []NamedAmount   `json:"payment_methods"`
	Daily          []DailyTotal    `json:"daily"`
}

type FilterOptions struct {
	PaymentMethods []string `json:"payment_methods"`
	Channels       []string `json:"channels"`
	Dates          []string `json:"dates"`
}

type ClientRank struct {
	Client string          `json:"client"`
	Total  decimal.Decimal `json:"total"`
	Sales  int             `json:"sales"`
}

type PaymentMethodDetail struct {
	Method  string        `json:"method"`
	Summary Summary       `json:"summary"`
	Records []SalesRecord `json:"records"`
}

type Report struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Batch       BatchInfo     `json:"batch"`
	Filter      FilterState   `json:"filter"`
	Summary     Summary       `json:"summary"`
	Records     []SalesRecord `json:"records"`
}

type UploadEntry struct {
	ID          int64     `json:"id"`
	BatchID     uuid.UUID `json:"batch_id"`
	FileName    string    `json:"file_name"`
	HeaderRow   int       `json:"header_row"`
	SourceRows  int       `json:"source_rows"`
	RecordCount int       `json:"record_count"`
	Total       float64   `json:"total"`
	CreatedAt   time.Time `json:"created_at"`
}
