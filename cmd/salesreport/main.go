package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"salesboard/internal/config"
	"salesboard/internal/db"
	"salesboard/internal/domain"
	"salesboard/internal/excel"
	"salesboard/internal/logger"
	"salesboard/internal/repository"
	"salesboard/internal/service"
)

type options struct {
	filePath      string
	paymentMethod string
	channel       string
	dateMode      string
	start         string
	end           string
	top           int
	record        bool
}

type output struct {
	Batch      domain.BatchInfo     `json:"batch"`
	Filter     domain.FilterState   `json:"filter"`
	Summary    domain.Summary       `json:"summary"`
	TopClients []domain.ClientRank  `json:"top_clients"`
	Options    domain.FilterOptions `json:"options"`
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintf(os.Stderr, "salesreport: %v\n", err)
		os.Exit(1)
	}
}

func execute() error {
	decimal.MarshalJSONWithoutQuotes = true
	opts, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logger.New(cfg.LogLevel).Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	ctx := context.Background()
	var history service.HistoryStore
	if opts.record {
		if cfg.DatabaseURL == "" {
			return errors.New("-record needs DATABASE_URL")
		}
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		defer pool.Close()
		if err := db.RunMigrations(ctx, pool, log); err != nil {
			return fmt.Errorf("migration error: %w", err)
		}
		history = repository.New(pool)
	}

	svc := service.New(history, service.Options{
		Location: cfg.Location,
		Amounts: excel.AmountParser{
			CentsHeuristic: cfg.CentsHeuristic,
			CentsThreshold: cfg.CentsThreshold,
		},
		Log: log,
	})

	return run(ctx, svc, opts, os.Stdout)
}

func run(ctx context.Context, svc *service.Service, opts options, w io.Writer) error {
	file, err := os.Open(opts.filePath)
	if err != nil {
		return fmt.Errorf("open %s: %w", opts.filePath, err)
	}
	defer file.Close()

	info, err := svc.Upload(ctx, filepath.Base(opts.filePath), "", file)
	if err != nil {
		return fmt.Errorf("parse %s: %w", opts.filePath, err)
	}

	filter, err := buildFilter(opts)
	if err != nil {
		return err
	}
	summary, err := svc.Summary(filter)
	if err != nil {
		return err
	}
	top, err := svc.TopClients(filter, opts.top)
	if err != nil {
		return err
	}
	choices, err := svc.Options()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output{
		Batch:      info,
		Filter:     filter,
		Summary:    summary,
		TopClients: top,
		Options:    choices,
	})
}

// buildFilter turns the flags into a filter descriptor. Custom range bounds
// must be yyyy-mm-dd, the same rule the HTTP API applies.
func buildFilter(opts options) (domain.FilterState, error) {
	filter := domain.DefaultFilter()
	if opts.paymentMethod != "" {
		filter.PaymentMethod = opts.paymentMethod
	}
	if opts.channel != "" {
		filter.Channel = opts.channel
	}
	filter.DateRange = domain.DateRange{
		Start: strings.TrimSpace(opts.start),
		End:   strings.TrimSpace(opts.end),
	}
	switch {
	case opts.dateMode != "":
		filter.DateMode = domain.DateMode(opts.dateMode)
	case filter.DateRange.Start != "" || filter.DateRange.End != "":
		filter.DateMode = domain.DateCustom
	}

	if filter.DateMode == domain.DateCustom {
		for _, bound := range []string{filter.DateRange.Start, filter.DateRange.End} {
			if bound == "" {
				continue
			}
			if _, err := time.Parse("2006-01-02", bound); err != nil {
				return domain.FilterState{}, fmt.Errorf("invalid date bound %q: use yyyy-mm-dd", bound)
			}
		}
	}
	return filter, nil
}

func parseFlags(fs *flag.FlagSet, args []string) (options, error) {
	var opts options
	fs.StringVar(
		&opts.filePath,
		"file",
		"",
		"path to the sales export (.xlsx or .csv)",
	)
	fs.StringVar(
		&opts.paymentMethod,
		"payment",
		"",
		"only include this payment method label",
	)
	fs.StringVar(
		&opts.channel,
		"channel",
		"",
		"only include this channel",
	)
	fs.StringVar(
		&opts.dateMode,
		"date",
		"",
		"date filter: all, custom, today, yesterday, last7days, last30days, thisMonth, lastMonth or a dd/mm/yyyy date",
	)
	fs.StringVar(
		&opts.start,
		"start",
		"",
		"custom range start (yyyy-mm-dd)",
	)
	fs.StringVar(
		&opts.end,
		"end",
		"",
		"custom range end (yyyy-mm-dd)",
	)
	fs.IntVar(
		&opts.top,
		"top",
		10,
		"number of clients in the ranking (0 for all)",
	)
	fs.BoolVar(
		&opts.record,
		"record",
		false,
		"store the upload in the history table (needs DATABASE_URL)",
	)
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	opts.filePath = strings.TrimSpace(opts.filePath)
	if opts.filePath == "" {
		return options{}, errors.New("-file is required")
	}
	if opts.top < 0 {
		return options{}, fmt.Errorf("invalid -top: %d", opts.top)
	}
	return opts, nil
}
