package query

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dRAOUF1/RAG-Assistant/rag"
	"github.com/dRAOUF1/RAG-Assistant/rag/index"
	"github.com/dRAOUF1/RAG-Assistant/rag/retriever"
)

type stubRetriever struct {
	result rag.RetrievalResult
	err    error
	query  *rag.Query
}

func (r *stubRetriever) Retrieve(_ context.Context, query *rag.Query) (rag.RetrievalResult, error) {
	r.query = query
	return r.result, r.err
}

type stubGenerator struct {
	output   string
	failures int
	prompt   string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	if g.failures > 0 {
		g.failures--
		return "", errors.Wrap(rag.ErrRateLimited, "stub throttle")
	}
	g.prompt = prompt
	return g.output, nil
}

func TestAsk(t *testing.T) {
	t.Parallel()
	retriever := &stubRetriever{result: rag.RetrievalResult{
		scored("hp1-00000", "hp1", "Harry habite au 4 Privet Drive.", 0.92),
	}}
	generator := &stubGenerator{output: "Harry habite chez les Dursley [S1]."}

	pipeline, err := NewPipeline(retriever, generator,
		rag.WithTopK(5), rag.WithContextBudget(500))
	require.NoError(t, err)

	answer, err := pipeline.Ask(context.Background(), "Ou habite Harry?")
	require.NoError(t, err)

	assert.Equal(t, 5, retriever.query.TopK)
	assert.Contains(t, generator.prompt, "Harry habite au 4 Privet Drive.")
	require.Len(t, answer.Citations, 1)
	assert.Equal(t, "hp1", answer.Citations[0].DocumentID)
}

func TestAskPerQueryOverrides(t *testing.T) {
	t.Parallel()
	retriever := &stubRetriever{result: rag.RetrievalResult{
		scored("hg-00000", "hg", "Katniss chasse avec un arc.", 0.8),
	}}
	pipeline, err := NewPipeline(retriever, &stubGenerator{output: "ok"})
	require.NoError(t, err)

	_, err = pipeline.Ask(context.Background(), "Qui chasse?",
		rag.WithAllowedDocuments([]string{"hg"}), rag.WithTopK(2))
	require.NoError(t, err)
	assert.Equal(t, []string{"hg"}, retriever.query.AllowedDocuments)
	assert.Equal(t, 2, retriever.query.TopK)

	// defaults stay untouched for the next question
	_, err = pipeline.Ask(context.Background(), "Et ensuite?")
	require.NoError(t, err)
	assert.Empty(t, retriever.query.AllowedDocuments)
	assert.Equal(t, rag.DefaultTopK, retriever.query.TopK)
}

type fixedEmbedder struct {
	vector []float32
}

func (e fixedEmbedder) Embed(context.Context, string) ([]float32, error) {
	return e.vector, nil
}

func TestAskSimilarityThresholdFiltersPrompt(t *testing.T) {
	t.Parallel()
	x := index.New()
	require.NoError(t, x.Add(&rag.Chunk{ID: "hp1-00000", DocumentID: "hp1",
		Text: "Harry recoit un Nimbus 2000."}, []float32{1, 0}))
	// cosine 0.6 against the stub query vector
	require.NoError(t, x.Add(&rag.Chunk{ID: "hg-00000", DocumentID: "hg",
		Text: "Katniss chasse avec un arc."}, []float32{0.6, 0.8}))

	r, err := retriever.New(fixedEmbedder{vector: []float32{1, 0}}, x)
	require.NoError(t, err)
	generator := &stubGenerator{output: "reponse [S1]"}
	pipeline, err := NewPipeline(r, generator, rag.WithSimilarityThreshold(0.9))
	require.NoError(t, err)

	_, err = pipeline.Ask(context.Background(), "Quel balai recoit Harry?")
	require.NoError(t, err)
	assert.Contains(t, generator.prompt, "Nimbus 2000")
	assert.NotContains(t, generator.prompt, "Katniss")

	// a per-call threshold relaxes the pipeline default
	_, err = pipeline.Ask(context.Background(), "Quel balai recoit Harry?",
		rag.WithSimilarityThreshold(0.5))
	require.NoError(t, err)
	assert.Contains(t, generator.prompt, "Katniss")
}

func TestAskRetriesGeneration(t *testing.T) {
	t.Parallel()
	retriever := &stubRetriever{result: rag.RetrievalResult{
		scored("hp1-00000", "hp1", "contexte", 0.9),
	}}
	generator := &stubGenerator{output: "reponse [S1]", failures: 2}
	pipeline, err := NewPipeline(retriever, generator)
	require.NoError(t, err)

	answer, err := pipeline.Ask(context.Background(), "question")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(answer.Text, "reponse"))
}

func TestAskPropagatesEmptyIndex(t *testing.T) {
	t.Parallel()
	retriever := &stubRetriever{err: errors.Wrap(rag.ErrEmptyIndex, "nothing indexed")}
	pipeline, err := NewPipeline(retriever, &stubGenerator{output: "x"})
	require.NoError(t, err)

	_, err = pipeline.Ask(context.Background(), "question")
	assert.True(t, errors.Is(err, rag.ErrEmptyIndex), "got %v", err)
}

func TestAskNoContext(t *testing.T) {
	t.Parallel()
	retriever := &stubRetriever{}
	pipeline, err := NewPipeline(retriever, &stubGenerator{output: "x"})
	require.NoError(t, err)

	_, err = pipeline.Ask(context.Background(), "question")
	assert.True(t, errors.Is(err, rag.ErrNoContext), "got %v", err)

	answer, err := pipeline.Ask(context.Background(), "question",
		rag.WithAllowNoContext(true))
	require.NoError(t, err)
	assert.Empty(t, answer.Citations)
}
