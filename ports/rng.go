package ports

import (
	"context"

	"golang.org/x/exp/rand"
)

// RNGPort provides seeded random number generation for deterministic operations
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a
	// named operation. The same (name, seed) pair always yields an
	// identically-behaving stream, so parallel sweep cells reproduce
	// regardless of scheduling.
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)
}
