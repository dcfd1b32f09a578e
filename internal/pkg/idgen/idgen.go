// Package idgen generates character and history record identifiers
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mock.go -package=idgenmock github.com/KirkDiggler/charsheet-api/internal/pkg/idgen Generator

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// UUIDGenerator generates random (version 4) UUIDs, optionally prefixed
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a random UUID generator
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate returns prefix_<uuid>, or the bare UUID without a prefix
func (g *UUIDGenerator) Generate() string {
	return withPrefix(g.prefix, uuid.New().String())
}

// TimeOrderedGenerator generates version 7 UUIDs. They sort by creation
// time, which keeps history record IDs in append order.
type TimeOrderedGenerator struct {
	prefix string
}

// NewTimeOrdered creates a time-ordered UUID generator
func NewTimeOrdered(prefix string) *TimeOrderedGenerator {
	return &TimeOrderedGenerator{prefix: prefix}
}

// Generate returns prefix_<uuidv7>. It falls back to a random UUID when the
// clock cannot be read.
func (g *TimeOrderedGenerator) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return withPrefix(g.prefix, id.String())
}

// SequentialGenerator generates prefix_1, prefix_2, ... for tests
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate returns the next sequential ID
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	return withPrefix(g.prefix, fmt.Sprintf("%d", n))
}

func withPrefix(prefix, id string) string {
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}
