package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"unipower/domain/core"
	"unipower/domain/power"
	"unipower/ports"
)

// SweepRepositoryImpl implements ports.ResultStore for PostgreSQL
type SweepRepositoryImpl struct {
	db *sqlx.DB
}

// NewSweepRepository creates a new PostgreSQL sweep repository
func NewSweepRepository(db *sqlx.DB) *SweepRepositoryImpl {
	return &SweepRepositoryImpl{db: db}
}

var _ ports.ResultStore = (*SweepRepositoryImpl)(nil)

// Connect opens a PostgreSQL connection and verifies it
func Connect(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS sweeps (
	id         UUID PRIMARY KEY,
	label      TEXT NOT NULL,
	seed       BIGINT NOT NULL,
	alpha      DOUBLE PRECISION NOT NULL,
	runtime_ms BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS power_rows (
	sweep_id    UUID NOT NULL REFERENCES sweeps(id) ON DELETE CASCADE,
	sample_size INTEGER NOT NULL,
	bins        INTEGER NOT NULL,
	test_name   TEXT NOT NULL,
	power       DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (sweep_id, sample_size, bins, test_name)
);
`

// EnsureSchema creates the sweep tables if they do not exist
func (r *SweepRepositoryImpl) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

// SaveSweep persists a sweep envelope and all of its power rows in one
// transaction.
func (r *SweepRepositoryImpl) SaveSweep(ctx context.Context, rec ports.SweepRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO sweeps (id, label, seed, alpha, runtime_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rec.ID, rec.Label, rec.Seed, rec.Alpha, rec.RuntimeMs, createdAt)
	if err != nil {
		return err
	}

	for _, row := range rec.Table.Rows {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO power_rows (sweep_id, sample_size, bins, test_name, power)
			VALUES ($1, $2, $3, $4, $5)
		`, rec.ID, row.SampleSize, row.Bins, row.Test, row.Power)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadSweep retrieves one sweep envelope with its power rows
func (r *SweepRepositoryImpl) LoadSweep(ctx context.Context, id core.SweepID) (*ports.SweepRecord, error) {
	var rec ports.SweepRecord
	err := r.db.GetContext(ctx, &rec, `
		SELECT id, label, seed, alpha, runtime_ms, created_at
		FROM sweeps
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrSweepNotFound
	}
	if err != nil {
		return nil, err
	}

	var rows []power.Row
	err = r.db.SelectContext(ctx, &rows, `
		SELECT sample_size, bins, test_name, power
		FROM power_rows
		WHERE sweep_id = $1
		ORDER BY sample_size, bins, test_name
	`, id)
	if err != nil {
		return nil, err
	}
	rec.Table = power.Table{Rows: rows}
	return &rec, nil
}

// ListSweeps returns the most recent sweep envelopes without rows
func (r *SweepRepositoryImpl) ListSweeps(ctx context.Context, limit int) ([]ports.SweepRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var recs []ports.SweepRecord
	err := r.db.SelectContext(ctx, &recs, `
		SELECT id, label, seed, alpha, runtime_ms, created_at
		FROM sweeps
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return recs, nil
}
