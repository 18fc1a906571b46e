package ports

import (
	"context"
	"time"

	"unipower/domain/core"
	"unipower/domain/power"
)

// SweepRecord is the persistence envelope for one sweep run
type SweepRecord struct {
	ID        core.SweepID `json:"id" db:"id"`
	Label     string       `json:"label" db:"label"`
	Seed      int64        `json:"seed" db:"seed"`
	Alpha     float64      `json:"alpha" db:"alpha"`
	RuntimeMs int64        `json:"runtime_ms" db:"runtime_ms"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
	Table     power.Table  `json:"table"`
}

// ResultStore persists sweep envelopes and their power rows
type ResultStore interface {
	SaveSweep(ctx context.Context, rec SweepRecord) error
	LoadSweep(ctx context.Context, id core.SweepID) (*SweepRecord, error)
	ListSweeps(ctx context.Context, limit int) ([]SweepRecord, error)
}
