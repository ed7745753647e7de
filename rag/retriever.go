package rag

import (
	"context"
)

// Retriever answers a query with the most relevant chunks from the corpus.
type Retriever interface {
	Retrieve(ctx context.Context, query *Query) (RetrievalResult, error)
}
