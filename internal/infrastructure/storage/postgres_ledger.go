package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"HeadlineSync/internal/ports"
)

// PostgresLedger appends successful transfers to a transfer_ledger table for
// audit. It is an optional supplement: the de-duplication source of truth
// remains the Articles table scan.
type PostgresLedger struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.TransferLedger = (*PostgresLedger)(nil)

// Open connects to Postgres and ensures the ledger table exists.
func Open(dsn string) (*PostgresLedger, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open ledger database: %w", err)
	}

	ledger := NewPostgresLedger(db)
	if err := ledger.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return ledger, nil
}

// NewPostgresLedger wires a sql.DB implementation.
func NewPostgresLedger(db *sql.DB) *PostgresLedger {
	return &PostgresLedger{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// RecordTransfer upserts one ledger row keyed by the source headline ID.
func (l *PostgresLedger) RecordTransfer(ctx context.Context, headlineID, articleID, title string, at time.Time) error {
	if l.db == nil {
		return nil
	}

	query, args, err := l.builder.
		Insert("transfer_ledger").
		Columns("headline_id", "article_id", "title", "transferred_at").
		Values(headlineID, articleID, title, at).
		Suffix("ON CONFLICT (headline_id) DO UPDATE SET article_id = EXCLUDED.article_id, transferred_at = EXCLUDED.transferred_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build ledger insert: %w", err)
	}

	if _, err := l.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("record transfer %s: %w", headlineID, err)
	}

	return nil
}

// Close releases the underlying connection pool.
func (l *PostgresLedger) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}

func (l *PostgresLedger) ensureSchema() error {
	const ddl = `CREATE TABLE IF NOT EXISTS transfer_ledger (
        headline_id    TEXT PRIMARY KEY,
        article_id     TEXT NOT NULL,
        title          TEXT NOT NULL DEFAULT '',
        transferred_at TIMESTAMPTZ NOT NULL
    )`

	if _, err := l.db.Exec(ddl); err != nil {
		return fmt.Errorf("ensure ledger schema: %w", err)
	}

	return nil
}
