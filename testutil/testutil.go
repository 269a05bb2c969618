// Package testutil provides deterministic generators for hit-list tests
// and benchmarks.
package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/althonos/hmmer/tophits"
)

// RNG encapsulates a seeded random number generator.
// It is thread-safe, so parallel producers may share one instance.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 { return r.seed }

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// SortKeys returns n random sort keys in [0, scale).
func (r *RNG) SortKeys(n int, scale float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]float64, n)
	for i := range keys {
		keys[i] = r.rand.Float64() * scale
	}
	return keys
}

// FillRandomHits appends n hits with random sort keys to dst. Each hit
// carries one domain whose score mirrors the hit's, with the name built
// from the given tag, so merged lists remain traceable to their producer.
func FillRandomHits(rng *RNG, dst *tophits.TopHits, n int, tag string) error {
	for i := 0; i < n; i++ {
		key := rng.Float64()

		hit, err := dst.CreateNextHit()
		if err != nil {
			return err
		}
		hit.Name = fmt.Sprintf("%s-hit%05d", tag, i)
		hit.Acc = fmt.Sprintf("%s-acc%05d", tag, i)
		hit.Desc = "synthetic hit for testing"
		hit.SortKey = key
		hit.Score = float32(key)
		hit.PValue = 1 - key
		hit.Domains = []tophits.Domain{
			{Score: float32(key), PValue: 1 - key, IEnv: 1, JEnv: 100, IAli: 2, JAli: 99},
		}
		hit.BestDomain = 0
	}
	return nil
}
