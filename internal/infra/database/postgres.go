package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq" // Postgres driver

	"github.com/sellmypostoffice/valuation-api/internal/entity"
)

// NewDBConnection opens the pool and pings it so a bad DSN fails at
// startup instead of on the first request.
func NewDBConnection(connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// PostgresKV stores every blob in a single table keyed by
// (bucket, key). Schema migrations beyond the bootstrap DDL are out of
// scope here.
type PostgresKV struct {
	DB *sql.DB
}

func NewPostgresKV(db *sql.DB) *PostgresKV {
	return &PostgresKV{DB: db}
}

// EnsureSchema creates the blobs table if it is missing.
func (p *PostgresKV) EnsureSchema(ctx context.Context) error {
	_, err := p.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS blobs (
			bucket     TEXT NOT NULL,
			key        TEXT NOT NULL,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (bucket, key)
		)
	`)
	return err
}

func (p *PostgresKV) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	var value []byte
	err := p.DB.QueryRowContext(ctx,
		`SELECT value FROM blobs WHERE bucket = $1 AND key = $2`,
		bucket, key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (p *PostgresKV) Set(ctx context.Context, bucket, key string, value []byte) error {
	_, err := p.DB.ExecContext(ctx, `
		INSERT INTO blobs (bucket, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (bucket, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, bucket, key, value)
	return err
}

func (p *PostgresKV) Delete(ctx context.Context, bucket, key string) (bool, error) {
	res, err := p.DB.ExecContext(ctx,
		`DELETE FROM blobs WHERE bucket = $1 AND key = $2`,
		bucket, key,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
