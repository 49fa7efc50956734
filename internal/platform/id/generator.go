package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs for import batches and other external references.
type Generator interface {
	NewID() (string, error)
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return v.String(), nil
}

// Fixed always returns the same id. Useful for deterministic tests.
type Fixed string

func (f Fixed) NewID() (string, error) {
	return string(f), nil
}
