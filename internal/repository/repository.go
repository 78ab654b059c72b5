package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"salesboard/internal/domain"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// RecordUpload stores the metadata of an accepted batch. Records themselves
// are never persisted.
func (r *Repository) RecordUpload(ctx context.Context, entry domain.UploadEntry) (domain.UploadEntry, error) {
	entry.FileName = strings.TrimSpace(entry.FileName)
	if entry.FileName == "" {
		entry.FileName = "-"
	}
	if err := r.pool.QueryRow(ctx, `
		INSERT INTO uploads (
			batch_id,
			file_name,
			header_row,
			source_rows,
			record_count,
			total
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`,
		entry.BatchID,
		entry.FileName,
		entry.HeaderRow,
		entry.SourceRows,
		entry.RecordCount,
		entry.Total,
	).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return domain.UploadEntry{}, fmt.Errorf("record upload: %w", err)
	}
	return entry, nil
}

func (r *Repository) ListUploads(ctx context.Context, limit, offset int) ([]domain.UploadEntry, error) {
	limit = normalizeLimit(limit)
	offset = normalizeOffset(offset)

	rows, err := r.pool.Query(ctx, `
		SELECT
			id,
			batch_id,
			file_name,
			header_row,
			source_rows,
			record_count,
			total::double precision,
			created_at
		FROM uploads
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	defer rows.Close()

	items := make([]domain.UploadEntry, 0, limit)
	for rows.Next() {
		item, err := scanUpload(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate uploads: %w", err)
	}
	return items, nil
}

func scanUpload(row pgx.Row) (domain.UploadEntry, error) {
	var item domain.UploadEntry
	if err := row.Scan(
		&item.ID,
		&item.BatchID,
		&item.FileName,
		&item.HeaderRow,
		&item.SourceRows,
		&item.RecordCount,
		&item.Total,
		&item.CreatedAt,
	); err != nil {
		return domain.UploadEntry{}, fmt.Errorf("scan upload: %w", err)
	}
	return item, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
