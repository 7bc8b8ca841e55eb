package api_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splists/api"
)

func TestBatchIDsAreUnique(t *testing.T) {
	batch := api.NewBatch()
	require.NotEmpty(t, batch.ID())
	assert.NotEqual(t, batch.ID(), api.NewBatch().ID())
}
