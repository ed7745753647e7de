package rag

import (
	"context"
)

// Embedder is the interface to the external embedding service. It turns text
// into a fixed-dimension vector; the dimension is a property of the model and
// must stay constant across one corpus version.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
