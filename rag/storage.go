package rag

import (
	"context"
)

// Storage persists an index snapshot to durable storage and loads it back.
type Storage interface {
	// Save writes the snapshot, replacing any previous corpus version.
	Save(ctx context.Context, snap *Snapshot) error
	// Load reads the stored snapshot. Returns ErrEmptyIndex when nothing has
	// been saved yet.
	Load(ctx context.Context) (*Snapshot, error)
}
