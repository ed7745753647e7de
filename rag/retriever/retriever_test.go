package retriever

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dRAOUF1/RAG-Assistant/rag"
	"github.com/dRAOUF1/RAG-Assistant/rag/index"
)

// stubEmbedder returns a fixed vector, optionally failing transiently first.
type stubEmbedder struct {
	vector    []float32
	failures  int
	permanent error
}

func (e *stubEmbedder) Embed(context.Context, string) ([]float32, error) {
	if e.permanent != nil {
		return nil, e.permanent
	}
	if e.failures > 0 {
		e.failures--
		return nil, errors.Wrap(rag.ErrServiceUnavailable, "stub outage")
	}
	return e.vector, nil
}

func buildIndex(t *testing.T) *index.Index {
	t.Helper()
	x := index.New()
	vectors := map[string][]float32{
		"hp1-00000": {1, 0},
		"hp1-00001": {0.8, 0.6}, // cosine 0.8 against the stub query vector
		"hg-00000":  {0, 1},
	}
	for id, vector := range vectors {
		require.NoError(t, x.Add(&rag.Chunk{
			ID:         id,
			DocumentID: id[:len(id)-6],
			Text:       "text for " + id,
		}, vector))
	}
	return x
}

func TestRetrieve(t *testing.T) {
	t.Parallel()
	r, err := New(&stubEmbedder{vector: []float32{1, 0}}, buildIndex(t))
	require.NoError(t, err)

	result, err := r.Retrieve(context.Background(),
		&rag.Query{Question: "Qui est Harry?", TopK: 2})
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "hp1-00000", result[0].Chunk.ID)
	assert.Equal(t, "hp1-00001", result[1].Chunk.ID)
}

func TestRetrieveThreshold(t *testing.T) {
	t.Parallel()
	r, err := New(&stubEmbedder{vector: []float32{1, 0}}, buildIndex(t),
		WithSimilarityThreshold(0.95))
	require.NoError(t, err)

	result, err := r.Retrieve(context.Background(),
		&rag.Query{Question: "Qui est Harry?", TopK: 3})
	require.NoError(t, err)
	require.Len(t, result, 1, "matches below the threshold are dropped")
	assert.Equal(t, "hp1-00000", result[0].Chunk.ID)
}

func TestRetrieveQueryThresholdOverridesDefault(t *testing.T) {
	t.Parallel()
	r, err := New(&stubEmbedder{vector: []float32{1, 0}}, buildIndex(t),
		WithSimilarityThreshold(0.5))
	require.NoError(t, err)

	result, err := r.Retrieve(context.Background(),
		&rag.Query{Question: "Qui est Harry?", TopK: 3, SimilarityThreshold: 0.95})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "hp1-00000", result[0].Chunk.ID)

	// a zero query threshold falls back to the retriever's default
	result, err = r.Retrieve(context.Background(),
		&rag.Query{Question: "Qui est Harry?", TopK: 3})
	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestRetrieveThresholdRemovesEverything(t *testing.T) {
	t.Parallel()
	r, err := New(&stubEmbedder{vector: []float32{1, 0}}, buildIndex(t),
		WithSimilarityThreshold(1.1))
	require.NoError(t, err)

	result, err := r.Retrieve(context.Background(),
		&rag.Query{Question: "hors sujet", TopK: 3})
	require.NoError(t, err, "an empty result is not an error")
	assert.Empty(t, result)
}

func TestRetrieveRetriesTransientFailures(t *testing.T) {
	t.Parallel()
	embedder := &stubEmbedder{vector: []float32{0, 1}, failures: 2}
	r, err := New(embedder, buildIndex(t))
	require.NoError(t, err)

	result, err := r.Retrieve(context.Background(),
		&rag.Query{Question: "Qui est Katniss?", TopK: 1})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "hg-00000", result[0].Chunk.ID)
}

func TestRetrieveDoesNotRetryInvalidInput(t *testing.T) {
	t.Parallel()
	embedder := &stubEmbedder{permanent: errors.Wrap(rag.ErrInvalidInput, "text too long")}
	r, err := New(embedder, buildIndex(t))
	require.NoError(t, err)

	_, err = r.Retrieve(context.Background(),
		&rag.Query{Question: "question", TopK: 1})
	assert.True(t, errors.Is(err, rag.ErrInvalidInput), "got %v", err)
}

func TestRetrieveEmptyQuestion(t *testing.T) {
	t.Parallel()
	r, err := New(&stubEmbedder{vector: []float32{1, 0}}, buildIndex(t))
	require.NoError(t, err)
	_, err = r.Retrieve(context.Background(), &rag.Query{TopK: 1})
	assert.True(t, errors.Is(err, rag.ErrInvalidInput), "got %v", err)
}

func TestRetrieveSourceFilter(t *testing.T) {
	t.Parallel()
	r, err := New(&stubEmbedder{vector: []float32{1, 0}}, buildIndex(t))
	require.NoError(t, err)

	result, err := r.Retrieve(context.Background(), &rag.Query{
		Question:         "Qui est Katniss?",
		TopK:             5,
		AllowedDocuments: []string{"hg"},
	})
	require.NoError(t, err)
	for _, sc := range result {
		assert.Equal(t, "hg", sc.Chunk.DocumentID)
	}

	_, err = r.Retrieve(context.Background(), &rag.Query{
		Question:         "question",
		TopK:             5,
		AllowedDocuments: []string{"absent"},
	})
	assert.True(t, errors.Is(err, rag.ErrEmptyIndex), "got %v", err)
}
