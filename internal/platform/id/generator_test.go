package id

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator_ProducesDistinctUUIDs(t *testing.T) {
	gen := NewUUIDGenerator()

	first, err := gen.NewID()
	require.NoError(t, err)
	second, err := gen.NewID()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	_, err = uuid.Parse(first)
	assert.NoError(t, err)
}

func TestFixed(t *testing.T) {
	got, err := Fixed("batch-1").NewID()
	require.NoError(t, err)
	assert.Equal(t, "batch-1", got)
}
