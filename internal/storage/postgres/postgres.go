package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/FranksOps/jobscout/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ensure postgresBackend implements storage.Backend
var _ storage.Backend = (*postgresBackend)(nil)

type postgresBackend struct {
	pool *pgxpool.Pool
}

const schema = `
CREATE TABLE IF NOT EXISTS invocations (
	id TEXT PRIMARY KEY,
	tool TEXT NOT NULL,
	kind TEXT NOT NULL,
	target TEXT,
	status_code INTEGER NOT NULL,
	content_type TEXT,
	bytes BIGINT NOT NULL,
	links INTEGER NOT NULL,
	blocked BOOLEAN NOT NULL,
	block_src TEXT,
	duration_ms BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	error TEXT
);
`

// New creates a new Postgres-backed storage.Backend.
func New(ctx context.Context, dsn string) (storage.Backend, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	return &postgresBackend{pool: pool}, nil
}

func (b *postgresBackend) Save(ctx context.Context, record *storage.Record) error {
	query := `
	INSERT INTO invocations (
		id, tool, kind, target, status_code, content_type, bytes, links, blocked, block_src, duration_ms, created_at, error
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := b.pool.Exec(ctx, query,
		record.ID,
		record.Tool,
		record.Kind,
		record.Target,
		record.StatusCode,
		record.ContentType,
		record.Bytes,
		record.Links,
		record.Blocked,
		record.BlockSrc,
		record.Duration.Milliseconds(),
		record.CreatedAt,
		record.Error,
	)

	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}

	return nil
}

func (b *postgresBackend) Query(ctx context.Context, filter storage.Filter) ([]*storage.Record, error) {
	query := `SELECT id, tool, kind, target, status_code, content_type, bytes, links, blocked, block_src, duration_ms, created_at, error FROM invocations WHERE 1=1`
	args := []any{}
	paramCount := 1

	if filter.Tool != "" {
		query += fmt.Sprintf(` AND tool = $%d`, paramCount)
		args = append(args, filter.Tool)
		paramCount++
	}
	if filter.Blocked != nil {
		query += fmt.Sprintf(` AND blocked = $%d`, paramCount)
		args = append(args, *filter.Blocked)
		paramCount++
	}
	if filter.Since != nil {
		query += fmt.Sprintf(` AND created_at >= $%d`, paramCount)
		args = append(args, *filter.Since)
		paramCount++
	}

	query += ` ORDER BY created_at DESC`

	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, paramCount)
		args = append(args, filter.Limit)
		paramCount++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, paramCount)
		args = append(args, filter.Offset)
		paramCount++
	}

	rows, err := b.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	defer rows.Close()

	var records []*storage.Record
	for rows.Next() {
		var r storage.Record
		var durationMs int64

		err := rows.Scan(
			&r.ID, &r.Tool, &r.Kind, &r.Target, &r.StatusCode, &r.ContentType,
			&r.Bytes, &r.Links, &r.Blocked, &r.BlockSrc, &durationMs, &r.CreatedAt, &r.Error,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}

		r.Duration = time.Duration(durationMs) * time.Millisecond
		records = append(records, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	return records, nil
}

func (b *postgresBackend) Close() error {
	b.pool.Close()
	return nil
}
