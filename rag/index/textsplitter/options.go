package textsplitter

import (
	"github.com/dRAOUF1/RAG-Assistant/rag"
)

const _defaultBreakWindow = 80

// Options is a struct that contains options for the splitter.
type Options struct {
	ChunkSize    int
	ChunkOverlap int
	BreakWindow  int
}

// DefaultOptions returns the default options for the splitter.
func DefaultOptions() Options {
	return Options{
		ChunkSize:    rag.DefaultChunkSize,
		ChunkOverlap: rag.DefaultChunkOverlap,
		BreakWindow:  _defaultBreakWindow,
	}
}

// Option is a function that can be used to set options for the splitter.
type Option func(*Options)

// WithChunkSize sets the target chunk length in runes.
func WithChunkSize(chunkSize int) Option {
	return func(o *Options) {
		o.ChunkSize = chunkSize
	}
}

// WithChunkOverlap sets the number of runes consecutive chunks share.
func WithChunkOverlap(chunkOverlap int) Option {
	return func(o *Options) {
		o.ChunkOverlap = chunkOverlap
	}
}

// WithBreakWindow sets how far the splitter looks back from a hard cut for a
// natural text break.
func WithBreakWindow(window int) Option {
	return func(o *Options) {
		o.BreakWindow = window
	}
}
