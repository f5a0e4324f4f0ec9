// uuid simple generator that allows mocking
package uuid

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator is an interface for generating UUIDs
type Generator interface {
	New() string
}

// GoogleUUIDGenerator implements the Generator interface using Google's UUID package
type GoogleUUIDGenerator struct{}

// New generates a new UUID string
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

// NewGoogleUUIDGenerator creates a new GoogleUUIDGenerator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}

// SequentialGenerator yields "<prefix>-1", "<prefix>-2", ... for tests and
// reproducible simulations.
type SequentialGenerator struct {
	prefix string
	n      atomic.Uint64
}

// NewSequentialGenerator creates a SequentialGenerator.
func NewSequentialGenerator(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// New returns the next id.
func (g *SequentialGenerator) New() string {
	return fmt.Sprintf("%s-%d", g.prefix, g.n.Add(1))
}
