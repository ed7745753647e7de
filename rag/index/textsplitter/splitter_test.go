package textsplitter

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dRAOUF1/RAG-Assistant/rag"
)

func doc(pages ...string) *rag.Document {
	return &rag.Document{ID: "book", Title: "Book", Pages: pages}
}

func TestSplitDocument(t *testing.T) {
	t.Parallel()
	splitter := New(WithChunkSize(6), WithChunkOverlap(2))
	chunks, err := splitter.SplitDocument(doc("ab cd ef gh"))
	require.NoError(t, err)

	texts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		texts = append(texts, c.Text)
	}
	assert.Equal(t, []string{"ab cd ", "d ef ", "f gh"}, texts)

	for i, c := range chunks {
		assert.Equal(t, i, c.Seq)
		assert.Equal(t, "book", c.DocumentID)
		assert.NotEmpty(t, c.Text)
	}
	assert.Empty(t, chunks[0].PrevID)
	assert.Equal(t, chunks[0].ID, chunks[1].PrevID)
	assert.Equal(t, chunks[2].ID, chunks[1].NextID)
	assert.Empty(t, chunks[len(chunks)-1].NextID)
}

func TestSplitDocumentInvalidConfig(t *testing.T) {
	t.Parallel()
	type testCase struct {
		name         string
		chunkSize    int
		chunkOverlap int
		text         string
	}
	testCases := []testCase{
		{name: "zero size", chunkSize: 0, chunkOverlap: 0, text: "hello"},
		{name: "negative overlap", chunkSize: 10, chunkOverlap: -1, text: "hello"},
		{name: "overlap equals size", chunkSize: 10, chunkOverlap: 10, text: "hello"},
		{name: "overlap above size", chunkSize: 10, chunkOverlap: 12, text: "hello"},
		{name: "empty document", chunkSize: 10, chunkOverlap: 2, text: "  \n "},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			splitter := New(
				WithChunkSize(tc.chunkSize),
				WithChunkOverlap(tc.chunkOverlap))
			_, err := splitter.SplitDocument(doc(tc.text))
			assert.True(t, errors.Is(err, rag.ErrInvalidConfig), "got %v", err)
		})
	}
}

// Concatenating chunk texts minus the shared overlap regions must rebuild the
// original document exactly.
func TestSplitDocumentReconstruction(t *testing.T) {
	t.Parallel()
	texts := []string{
		"Harry Potter habitait au 4 Privet Drive. Il dormait sous l'escalier. " +
			"Un jour, une lettre arriva.\n\nElle venait de Poudlard, l'école des " +
			"sorciers. Hagrid vint le chercher en personne.",
		strings.Repeat("mot ", 500),
		"sans aucun separateur" + strings.Repeat("x", 300),
	}
	for _, text := range texts {
		for _, overlap := range []int{0, 7, 30} {
			splitter := New(WithChunkSize(64), WithChunkOverlap(overlap))
			d := doc(text)
			chunks, err := splitter.SplitDocument(d)
			require.NoError(t, err)

			rebuilt := ""
			for i, c := range chunks {
				runes := []rune(c.Text)
				if i > 0 {
					runes = runes[overlap:]
				}
				rebuilt += string(runes)
			}
			assert.Equal(t, d.Content(), rebuilt)

			for i := 1; i < len(chunks); i++ {
				prev := []rune(chunks[i-1].Text)
				cur := []rune(chunks[i].Text)
				assert.Equal(t, string(prev[len(prev)-overlap:]),
					string(cur[:overlap]), "chunks %d/%d share overlap", i-1, i)
			}
		}
	}
}

func TestSplitDocumentPrefersNaturalBreaks(t *testing.T) {
	t.Parallel()
	text := "Une phrase courte. Une autre phrase qui continue bien au dela de la coupe."
	splitter := New(WithChunkSize(30), WithChunkOverlap(5))
	chunks, err := splitter.SplitDocument(doc(text))
	require.NoError(t, err)
	assert.Equal(t, "Une phrase courte. ", chunks[0].Text)
}

func TestSplitDocumentSpansAndPages(t *testing.T) {
	t.Parallel()
	d := doc("premiere page", "seconde page")
	splitter := New(WithChunkSize(10), WithChunkOverlap(3))
	chunks, err := splitter.SplitDocument(d)
	require.NoError(t, err)

	content := []rune(d.Content())
	for _, c := range chunks {
		assert.Equal(t, c.Text, string(content[c.Span.Start:c.Span.End]))
		assert.Equal(t, d.PageFor(c.Span.Start), c.Page)
	}
	assert.Equal(t, 1, chunks[0].Page)
	assert.Equal(t, 2, chunks[len(chunks)-1].Page)
}
