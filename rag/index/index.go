// Package index holds the embedding index: every chunk of the corpus with
// its vector, searchable by cosine similarity.
package index

import (
	"math"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/thoas/go-funk"

	"github.com/dRAOUF1/RAG-Assistant/rag"
)

// Index owns all chunks and embedding records for one corpus version.
// Access follows a single-writer/multiple-reader discipline: Add and Remove
// take the write lock, Query and Snapshot run concurrently under read locks.
type Index struct {
	mu            sync.RWMutex
	dimension     int
	corpusVersion string
	records       map[string]*rag.Record
}

func New() *Index {
	return &Index{
		records: make(map[string]*rag.Record),
	}
}

// Add stores a chunk with its vector. The first vector establishes the index
// dimension; later vectors must match it or Add fails with a dimension
// mismatch.
func (x *Index) Add(chunk *rag.Chunk, vector []float32) error {
	if chunk == nil || chunk.ID == "" || chunk.Text == "" {
		return errors.Wrap(rag.ErrInvalidInput, "chunk must have an id and text")
	}
	if len(vector) == 0 {
		return errors.Wrapf(rag.ErrInvalidInput, "chunk %s has no vector", chunk.ID)
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	if x.dimension == 0 {
		x.dimension = len(vector)
	} else if len(vector) != x.dimension {
		return errors.Wrapf(rag.ErrDimensionMismatch,
			"chunk %s has dimension %d, index has %d",
			chunk.ID, len(vector), x.dimension)
	}
	x.records[chunk.ID] = &rag.Record{Chunk: chunk, Vector: vector}
	return nil
}

// Remove deletes every chunk and record belonging to the document and returns
// how many were removed. Used when a corpus document is re-ingested or
// deleted.
func (x *Index) Remove(documentID string) int {
	x.mu.Lock()
	defer x.mu.Unlock()

	removed := 0
	for id, record := range x.records {
		if record.Chunk.DocumentID == documentID {
			delete(x.records, id)
			removed++
		}
	}
	return removed
}

// Query scores every stored vector whose document is in allowed (all
// documents when allowed is empty) against the query vector by cosine
// similarity and returns the topK best, ranked descending, ties broken by
// lower chunk id. Fewer than topK results are returned when the filtered set
// is smaller; an index holding no chunks under the filter is an ErrEmptyIndex.
func (x *Index) Query(vector []float32, topK int, allowed []string) (rag.RetrievalResult, error) {
	if topK <= 0 {
		return nil, errors.Wrapf(rag.ErrInvalidConfig, "top k %d must be positive", topK)
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	if x.dimension > 0 && len(vector) != x.dimension {
		return nil, errors.Wrapf(rag.ErrDimensionMismatch,
			"query vector has dimension %d, index has %d", len(vector), x.dimension)
	}

	result := make(rag.RetrievalResult, 0, len(x.records))
	for _, record := range x.records {
		if len(allowed) > 0 &&
			!funk.ContainsString(allowed, record.Chunk.DocumentID) {
			continue
		}
		result = append(result, rag.ScoredChunk{
			Chunk: record.Chunk,
			Score: cosine(vector, record.Vector),
		})
	}
	if len(result) == 0 {
		return nil, errors.Wrap(rag.ErrEmptyIndex, "no chunks under the given filter")
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].Chunk.ID < result[j].Chunk.ID
	})
	if len(result) > topK {
		result = result[:topK]
	}
	return result, nil
}

// Len returns the number of indexed chunks.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.records)
}

// Dimension returns the established vector dimension, 0 before the first Add.
func (x *Index) Dimension() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.dimension
}

// CorpusVersion returns the marker set when the corpus was last indexed.
func (x *Index) CorpusVersion() string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.corpusVersion
}

func (x *Index) SetCorpusVersion(version string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.corpusVersion = version
}

// Snapshot copies the index into its persisted form, records ordered by
// chunk id.
func (x *Index) Snapshot() *rag.Snapshot {
	x.mu.RLock()
	defer x.mu.RUnlock()

	snap := &rag.Snapshot{
		CorpusVersion: x.corpusVersion,
		Dimension:     x.dimension,
		Records:       make([]*rag.Record, 0, len(x.records)),
	}
	for _, record := range x.records {
		snap.Records = append(snap.Records, record)
	}
	sort.Slice(snap.Records, func(i, j int) bool {
		return snap.Records[i].Chunk.ID < snap.Records[j].Chunk.ID
	})
	return snap
}

// Restore rebuilds an index from a snapshot. Query behaviour over the
// restored index is identical to the one the snapshot was taken from.
func Restore(snap *rag.Snapshot) (*Index, error) {
	x := New()
	x.dimension = snap.Dimension
	x.corpusVersion = snap.CorpusVersion
	for _, record := range snap.Records {
		if err := x.Add(record.Chunk, record.Vector); err != nil {
			return nil, err
		}
	}
	return x, nil
}

// cosine computes the cosine similarity between two vectors. Magnitudes carry
// no semantic meaning for embeddings, only the angle does.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
