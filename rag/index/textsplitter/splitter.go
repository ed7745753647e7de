package textsplitter

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/dRAOUF1/RAG-Assistant/rag"
)

// separators a cut prefers to land after, most desirable first. The empty
// fallback is the hard cut at chunk size.
var separators = []string{"\n\n", ". ", "! ", "? ", "\n", " "}

// Splitter cuts a document into overlapping rune windows. Consecutive chunks
// share exactly ChunkOverlap runes, so concatenating chunk texts minus the
// overlaps reconstructs the document. Cuts prefer a natural break found
// within BreakWindow runes behind the hard cut point.
type Splitter struct {
	ChunkSize    int
	ChunkOverlap int
	BreakWindow  int
}

// New creates a splitter with the given options. Defaults are a 600-rune
// chunk with a 100-rune overlap.
func New(opts ...Option) *Splitter {
	options := DefaultOptions()
	for _, o := range opts {
		o(&options)
	}

	return &Splitter{
		ChunkSize:    options.ChunkSize,
		ChunkOverlap: options.ChunkOverlap,
		BreakWindow:  options.BreakWindow,
	}
}

// SplitDocument splits the document's flattened text into chunks in sequence
// order, recording for each its rune span, starting page and overlap
// neighbors. A trailing chunk may be shorter than ChunkSize but is never
// empty.
func (s *Splitter) SplitDocument(doc *rag.Document) ([]*rag.Chunk, error) {
	if s.ChunkSize <= 0 {
		return nil, errors.Wrapf(rag.ErrInvalidConfig,
			"chunk size %d must be positive", s.ChunkSize)
	}
	if s.ChunkOverlap < 0 || s.ChunkOverlap >= s.ChunkSize {
		return nil, errors.Wrapf(rag.ErrInvalidConfig,
			"chunk overlap %d must be in [0, %d)", s.ChunkOverlap, s.ChunkSize)
	}
	content := doc.Content()
	if strings.TrimSpace(content) == "" {
		return nil, errors.Wrapf(rag.ErrInvalidConfig,
			"document %q has no text", doc.ID)
	}

	// A break may only move a cut back so far that the next window still
	// advances past the previous start.
	window := s.BreakWindow
	if max := s.ChunkSize - s.ChunkOverlap - 1; window > max {
		window = max
	}

	runes := []rune(content)
	chunks := make([]*rag.Chunk, 0, len(runes)/(s.ChunkSize-s.ChunkOverlap)+1)

	start := 0
	for seq := 0; start < len(runes); seq++ {
		end := start + s.ChunkSize
		if end >= len(runes) {
			end = len(runes)
		} else if window > 0 {
			end = breakBefore(runes, end, window)
		}

		chunks = append(chunks, &rag.Chunk{
			ID:         fmt.Sprintf("%s-%05d", doc.ID, seq),
			DocumentID: doc.ID,
			Seq:        seq,
			Text:       string(runes[start:end]),
			Span:       rag.Span{Start: start, End: end},
			Page:       doc.PageFor(start),
		})

		if end == len(runes) {
			break
		}
		start = end - s.ChunkOverlap
	}

	for i, chunk := range chunks {
		if i > 0 {
			chunk.PrevID = chunks[i-1].ID
		}
		if i < len(chunks)-1 {
			chunk.NextID = chunks[i+1].ID
		}
	}
	return chunks, nil
}

// breakBefore moves the cut at end back to just after the most desirable
// separator found within window runes, or keeps the hard cut when none is
// found.
func breakBefore(runes []rune, end, window int) int {
	for _, sep := range separators {
		s := []rune(sep)
		for p := end - len(s); p >= end-window; p-- {
			if p < 0 {
				break
			}
			if string(runes[p:p+len(s)]) == sep {
				return p + len(s)
			}
		}
	}
	return end
}
