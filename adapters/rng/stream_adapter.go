package rng

import (
	"context"
	"hash/fnv"

	"golang.org/x/exp/rand"
)

// StreamAdapter derives independent deterministic streams from a base
// seed and a stream name by FNV-mixing the name into the seed. Each
// caller owns its returned stream; no state is shared between streams.
type StreamAdapter struct{}

// NewStreamAdapter creates a stream adapter
func NewStreamAdapter() *StreamAdapter {
	return &StreamAdapter{}
}

// SeededStream implements ports.RNGPort
func (a *StreamAdapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	h := fnv.New64a()
	h.Write([]byte(name))
	mixed := uint64(seed) ^ h.Sum64()
	return rand.New(rand.NewSource(mixed)), nil
}
