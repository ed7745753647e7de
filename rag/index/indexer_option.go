package index

import (
	"github.com/dRAOUF1/RAG-Assistant/rag/index/textsplitter"
)

type IndexerConfig struct {
	Splitter    *textsplitter.Splitter
	Concurrency int
	// EmbedRate caps embedding-service calls per second; 0 means unthrottled.
	EmbedRate float64
}

type IndexerOption func(c *IndexerConfig)

func WithSplitter(splitter *textsplitter.Splitter) IndexerOption {
	return func(c *IndexerConfig) {
		c.Splitter = splitter
	}
}

func WithConcurrency(concurrency int) IndexerOption {
	return func(c *IndexerConfig) {
		c.Concurrency = concurrency
	}
}

func WithEmbedRate(rate float64) IndexerOption {
	return func(c *IndexerConfig) {
		c.EmbedRate = rate
	}
}
