package api

import (
	"github.com/google/uuid"
)

// Batch marks a group of requests intended for a single $batch round
// trip. The executor that folds them lives with the transport, outside
// this package; bindings only check membership through
// RequestConfig.Batch and refuse operations that cannot be expressed as
// a single batched request (see Lists.Ensure).
type Batch struct {
	id uuid.UUID
}

// NewBatch creates a batch group token.
func NewBatch() *Batch {
	return &Batch{id: uuid.New()}
}

// ID returns the batch boundary identifier.
func (b *Batch) ID() string {
	return b.id.String()
}
