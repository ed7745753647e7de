package rag

import (
	"context"
)

// Generator is the interface to the external generation service: prompt in,
// raw model text out. Implementations map their transport failures onto the
// ErrServiceUnavailable / ErrRateLimited / ErrInvalidInput kinds.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
