package dice

import (
	"math/rand/v2"
	"sync"
)

// randomSource implements Source over a PCG generator.
type randomSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource creates a Source seeded with seed.
// The same seed yields the same sequence of rolls.
func NewRandomSource(seed uint64) Source {
	return &randomSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewUnseededSource creates a Source backed by the runtime's global generator.
func NewUnseededSource() Source {
	return globalSource{}
}

// Float64 implements Source.Float64
func (r *randomSource) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
