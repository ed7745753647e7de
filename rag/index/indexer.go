package index

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/dRAOUF1/RAG-Assistant/rag"
	"github.com/dRAOUF1/RAG-Assistant/rag/index/textsplitter"
	"github.com/dRAOUF1/RAG-Assistant/utils/counter"
	"github.com/dRAOUF1/RAG-Assistant/utils/parallel"
	"github.com/dRAOUF1/RAG-Assistant/utils/ratelimit"
)

var DefaultConcurrency = 4

// Indexer turns documents into an embedding index: each document is chunked
// and embedded independently, in parallel across documents, then merged into
// the index serially so writers never overlap.
type Indexer struct {
	embedder rag.Embedder
	config   *IndexerConfig
}

func NewIndexer(embedder rag.Embedder, opts ...IndexerOption) (*Indexer, error) {
	if embedder == nil {
		return nil, errors.New("embedder is required")
	}
	config := &IndexerConfig{}
	for _, opt := range opts {
		opt(config)
	}
	if config.Splitter == nil {
		config.Splitter = textsplitter.New()
	}
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultConcurrency
	}
	return &Indexer{embedder: embedder, config: config}, nil
}

// Index builds a fresh index over the documents and stamps it with a new
// corpus-version marker.
func (ix *Indexer) Index(ctx context.Context, docs []*rag.Document) (*Index, error) {
	batches := make([][]*rag.Record, len(docs))

	chunked := make([][]*rag.Chunk, len(docs))
	total := 0
	for i, doc := range docs {
		chunks, err := ix.config.Splitter.SplitDocument(doc)
		if err != nil {
			return nil, err
		}
		chunked[i] = chunks
		total += len(chunks)
	}

	var limiter *ratelimit.TokenBucket
	if ix.config.EmbedRate > 0 {
		limiter = ratelimit.NewTokenBucket(ix.config.EmbedRate,
			int64(ix.config.Concurrency))
	}
	progress := counter.NewCounter(
		counter.WithTotal(total), counter.WithDesc("embedding chunks"))

	errs := parallel.Run(func(i int) error {
		records, err := ix.embed(ctx, chunked[i], limiter, progress)
		if err != nil {
			return errors.Wrapf(err, "embedding document %s", docs[i].ID)
		}
		batches[i] = records
		return nil
	}, len(docs), ix.config.Concurrency)
	if err := parallel.First(errs); err != nil {
		return nil, err
	}

	x := New()
	for _, records := range batches {
		for _, record := range records {
			if err := x.Add(record.Chunk, record.Vector); err != nil {
				return nil, err
			}
		}
	}
	x.SetCorpusVersion(uuid.NewString())
	return x, nil
}

// Reindex replaces one document's chunks inside an existing index, bumping
// the corpus version.
func (ix *Indexer) Reindex(ctx context.Context, x *Index, doc *rag.Document) error {
	chunks, err := ix.config.Splitter.SplitDocument(doc)
	if err != nil {
		return err
	}
	progress := counter.NewCounter(
		counter.WithTotal(len(chunks)), counter.WithDesc("embedding chunks"))
	records, err := ix.embed(ctx, chunks, nil, progress)
	if err != nil {
		return errors.Wrapf(err, "embedding document %s", doc.ID)
	}

	x.Remove(doc.ID)
	for _, record := range records {
		if err := x.Add(record.Chunk, record.Vector); err != nil {
			return err
		}
	}
	x.SetCorpusVersion(uuid.NewString())
	return nil
}

func (ix *Indexer) embed(ctx context.Context, chunks []*rag.Chunk,
	limiter *ratelimit.TokenBucket, progress *counter.Counter) ([]*rag.Record, error) {
	records := make([]*rag.Record, 0, len(chunks))
	for _, chunk := range chunks {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		var vector []float32
		err := rag.Retry(ctx, func() error {
			var err error
			vector, err = ix.embedder.Embed(ctx, chunk.Text)
			return err
		})
		if err != nil {
			return nil, err
		}
		records = append(records, &rag.Record{Chunk: chunk, Vector: vector})
		progress.Add()
	}
	return records, nil
}
