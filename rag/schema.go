package rag

const (
	DefaultChunkSize     = 600
	DefaultChunkOverlap  = 100
	DefaultTopK          = 20
	DefaultContextBudget = 1024 * 12
)

// Document is one ingested source: an identifier plus the ordered raw text of
// its pages. Documents are immutable once created; re-ingesting a source
// replaces its chunks in the index wholesale.
type Document struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Pages []string `json:"pages"`
}

// PageSeparator joins page texts when a document is flattened for chunking.
const PageSeparator = "\n"

// Content returns the full document text with pages joined in order.
func (d *Document) Content() string {
	if len(d.Pages) == 1 {
		return d.Pages[0]
	}
	content := ""
	for i, page := range d.Pages {
		if i > 0 {
			content += PageSeparator
		}
		content += page
	}
	return content
}

// PageFor maps a rune offset in Content() back to a 1-based page number.
// Offsets past the end map to the last page.
func (d *Document) PageFor(offset int) int {
	start := 0
	for i, page := range d.Pages {
		end := start + len([]rune(page))
		if offset < end+len(PageSeparator) {
			return i + 1
		}
		start = end + len(PageSeparator)
	}
	return len(d.Pages)
}

// Span is a half-open rune-offset range in a document's flattened content.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Chunk is the unit of embedding and retrieval: a contiguous segment of one
// document's text. Chunks from the same document, ordered by Seq, cover the
// whole text with the configured overlap; no chunk is empty.
type Chunk struct {
	ID         string `json:"id"`
	DocumentID string `json:"document_id"`
	Seq        int    `json:"seq"`
	Text       string `json:"text"`
	Span       Span   `json:"span"`
	Page       int    `json:"page"`
	PrevID     string `json:"prev_id,omitempty"`
	NextID     string `json:"next_id,omitempty"`
}

// Record pairs a chunk with its embedding vector. Every chunk in a queryable
// index has exactly one record, and all vectors share one dimension.
type Record struct {
	Chunk  *Chunk    `json:"chunk"`
	Vector []float32 `json:"vector"`
}

// Snapshot is the persisted form of an index: all records plus the index
// dimension tag and a corpus-version marker. Reloading a snapshot must
// reproduce identical query behaviour.
type Snapshot struct {
	CorpusVersion string    `json:"corpus_version"`
	Dimension     int       `json:"dimension"`
	Records       []*Record `json:"records"`
}

// Query is one question against the corpus.
type Query struct {
	Question string
	// AllowedDocuments restricts retrieval to the given document ids.
	// Empty means all documents.
	AllowedDocuments []string
	TopK             int
	// SimilarityThreshold drops matches scoring below it. Zero keeps the
	// retriever's own default.
	SimilarityThreshold float64
	// ContextBudget caps the total rune count of chunk text placed in the
	// prompt.
	ContextBudget int
}

// ScoredChunk is a retrieved chunk with its cosine similarity to the query.
type ScoredChunk struct {
	Chunk *Chunk
	Score float64
}

// RetrievalResult is ranked descending by score, ties broken by lower chunk
// id. Length is at most the query's TopK; an empty result is a valid outcome,
// not an error.
type RetrievalResult []ScoredChunk

// Citation points a generated answer back at the chunk that justified it.
type Citation struct {
	Marker     string `json:"marker"`
	DocumentID string `json:"document_id"`
	Seq        int    `json:"seq"`
	Page       int    `json:"page"`
	Span       Span   `json:"span"`
}

// Answer is the generated text plus the citations resolved from it.
// DroppedMarkers records in-text markers that did not resolve to any chunk in
// the prompt context; they are dropped from Citations but kept for
// diagnostics.
type Answer struct {
	Text           string     `json:"text"`
	Citations      []Citation `json:"citations"`
	DroppedMarkers []string   `json:"dropped_markers,omitempty"`
}
