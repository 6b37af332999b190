package id

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID ids: unique, and lexicographically ordered
// by creation time, so id-ascending listings follow creation order.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
