// Package retriever answers queries with the most semantically similar
// corpus chunks.
package retriever

import (
	"context"

	"github.com/pkg/errors"

	"github.com/dRAOUF1/RAG-Assistant/rag"
	"github.com/dRAOUF1/RAG-Assistant/rag/index"
)

var _ rag.Retriever = (*SemanticRetriever)(nil)

// SemanticRetriever embeds the question through the external embedding
// service and ranks index chunks by cosine similarity. Matches below the
// similarity threshold are dropped even when fewer than TopK clear the bar;
// an empty result is a reportable outcome, not an error. A positive
// query-level threshold overrides the retriever's default.
type SemanticRetriever struct {
	embedder  rag.Embedder
	index     *index.Index
	threshold float64
}

func New(embedder rag.Embedder, x *index.Index, opts ...Option) (*SemanticRetriever, error) {
	if embedder == nil {
		return nil, errors.New("embedder is required")
	}
	if x == nil {
		return nil, errors.New("index is required")
	}
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	return &SemanticRetriever{
		embedder:  embedder,
		index:     x,
		threshold: options.SimilarityThreshold,
	}, nil
}

func (r *SemanticRetriever) Retrieve(ctx context.Context, query *rag.Query) (rag.RetrievalResult, error) {
	if query == nil || query.Question == "" {
		return nil, errors.Wrap(rag.ErrInvalidInput, "question is empty")
	}

	var vector []float32
	err := rag.Retry(ctx, func() error {
		var err error
		vector, err = r.embedder.Embed(ctx, query.Question)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "embedding question")
	}

	result, err := r.index.Query(vector, query.TopK, query.AllowedDocuments)
	if err != nil {
		return nil, err
	}

	threshold := r.threshold
	if query.SimilarityThreshold > 0 {
		threshold = query.SimilarityThreshold
	}
	kept := result[:0]
	for _, sc := range result {
		if sc.Score >= threshold {
			kept = append(kept, sc)
		}
	}
	return kept, nil
}
