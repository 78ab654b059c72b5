package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"salesboard/internal/analytics"
	"salesboard/internal/domain"
	"salesboard/internal/excel"
)

var (
	ErrNoBatch         = errors.New("no sales file has been uploaded yet")
	ErrHistoryDisabled = errors.New("upload history is not configured")
)

// HistoryStore records accepted uploads. It is optional.
type HistoryStore interface {
	RecordUpload(ctx context.Context, entry domain.UploadEntry) (domain.UploadEntry, error)
	ListUploads(ctx context.Context, limit, offset int) ([]domain.UploadEntry, error)
}

type Options struct {
	Location *time.Location
	Amounts  excel.AmountParser
	Log      zerolog.Logger
}

// Service owns the current Batch. Uploads are parsed outside the lock and
// swapped in whole, so readers only ever see a complete Batch.
type Service struct {
	mu    sync.RWMutex
	batch *domain.Batch

	assembler excel.Assembler
	history   HistoryStore
	loc       *time.Location
	log       zerolog.Logger
	nowFn     func() time.Time
}

func New(history HistoryStore, opts Options) *Service {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	s := &Service{
		history: history,
		loc:     loc,
		log:     opts.Log,
		nowFn:   time.Now,
	}
	s.assembler = excel.Assembler{
		Amounts: opts.Amounts,
		Dates:   excel.DateNormalizer{Location: loc, Now: s.now},
	}
	return s
}

func (s *Service) now() time.Time {
	return s.nowFn().In(s.loc)
}

// Upload parses a spreadsheet and, on success, replaces the current Batch.
// On failure the previous Batch stays in place.
func (s *Service) Upload(ctx context.Context, fileName, contentType string, reader io.Reader) (domain.BatchInfo, error) {
	result, err := excel.ParseSales(fileName, contentType, reader, s.assembler)
	if err != nil {
		s.log.Warn().Err(err).Str("file", fileName).Msg("upload rejected")
		return domain.BatchInfo{}, err
	}

	batch := domain.Batch{
		ID:         uuid.New(),
		FileName:   fileName,
		UploadedAt: s.now(),
		HeaderRow:  result.HeaderRow,
		SourceRows: result.SourceRows,
		Records:    result.Records,
	}
	s.Replace(batch)

	info := batch.Info()
	s.log.Info().
		Str("batch_id", info.ID.String()).
		Str("file", fileName).
		Int("header_row", info.HeaderRow).
		Int("rows", info.SourceRows).
		Int("records", info.RecordCount).
		Int("dropped", info.Dropped).
		Msg("sales batch replaced")

	if s.history != nil {
		total := analytics.Summarize(batch.Records).Total
		if _, err := s.history.RecordUpload(ctx, domain.UploadEntry{
			BatchID:     batch.ID,
			FileName:    fileName,
			HeaderRow:   batch.HeaderRow,
			SourceRows:  batch.SourceRows,
			RecordCount: len(batch.Records),
			Total:       total.InexactFloat64(),
		}); err != nil {
			s.log.Error().Err(err).Str("batch_id", info.ID.String()).Msg("record upload history")
		}
	}
	return info, nil
}

// Replace installs batch as the single source of truth.
func (s *Service) Replace(batch domain.Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch = &batch
}

func (s *Service) Current() (domain.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.batch == nil {
		return domain.Batch{}, ErrNoBatch
	}
	batch := *s.batch
	batch.Records = slices.Clone(s.batch.Records)
	return batch, nil
}

func (s *Service) Records(filter domain.FilterState) ([]domain.SalesRecord, error) {
	batch, err := s.Current()
	if err != nil {
		return nil, err
	}
	return analytics.Filter(batch.Records, filter, s.now()), nil
}

func (s *Service) Summary(filter domain.FilterState) (domain.Summary, error) {
	records, err := s.Records(filter)
	if err != nil {
		return domain.Summary{}, err
	}
	return analytics.Summarize(records), nil
}

// Options lists filter choices from the whole batch, ignoring any filter.
func (s *Service) Options() (domain.FilterOptions, error) {
	batch, err := s.Current()
	if err != nil {
		return domain.FilterOptions{}, err
	}
	return analytics.Options(batch.Records, s.loc), nil
}

func (s *Service) TopClients(filter domain.FilterState, limit int) ([]domain.ClientRank, error) {
	records, err := s.Records(filter)
	if err != nil {
		return nil, err
	}
	return analytics.RankClients(records, limit), nil
}

func (s *Service) PaymentMethodDetail(filter domain.FilterState, method string) (domain.PaymentMethodDetail, error) {
	records, err := s.Records(filter)
	if err != nil {
		return domain.PaymentMethodDetail{}, err
	}
	return analytics.PaymentMethodDetail(records, method), nil
}

// Report bundles the filter descriptor with the views it produced, for
// exporters.
func (s *Service) Report(filter domain.FilterState) (domain.Report, error) {
	batch, err := s.Current()
	if err != nil {
		return domain.Report{}, err
	}
	now := s.now()
	records := analytics.Filter(batch.Records, filter, now)
	return domain.Report{
		GeneratedAt: now,
		Batch:       batch.Info(),
		Filter:      filter,
		Summary:     analytics.Summarize(records),
		Records:     records,
	}, nil
}

func (s *Service) UploadHistory(ctx context.Context, limit, offset int) ([]domain.UploadEntry, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	items, err := s.history.ListUploads(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("upload history: %w", err)
	}
	return items, nil
}
