package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"semtrack/internal/logger"
)

const kvTable = "semtrack_kv"

// SQL keeps the byte store in a single postgres key-value table.
// Still one logical writer; the database is just a different place to
// put the same two documents.
type SQL struct {
	db      *sqlx.DB
	builder squirrel.StatementBuilderType
}

// OpenSQL connects to the given postgres URL and ensures the kv table
// exists.
func OpenSQL(url string) (*SQL, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewSQL(db)
}

// NewSQL wraps an existing connection. Used by tests with sqlmock.
func NewSQL(db *sqlx.DB) (*SQL, error) {
	s := &SQL{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
	if err := s.migrate(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure kv table: %w", err)
	}
	return s, nil
}

func (s *SQL) migrate(ctx context.Context) error {
	ddl := `CREATE TABLE IF NOT EXISTS ` + kvTable + ` (
    key TEXT PRIMARY KEY,
    value BYTEA NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	query, args, err := s.builder.
		Select("value").
		From(kvTable).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var value []byte
	if err := s.db.GetContext(ctx, &value, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *SQL) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := s.builder.
		Insert(kvTable).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()").
		ToSql()
	if err != nil {
		return err
	}

	logger.KV().Debug("upserting %d bytes under %q", len(value), key)
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// Close releases the underlying connection pool.
func (s *SQL) Close() error {
	return s.db.Close()
}
