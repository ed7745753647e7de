package retriever

type Options struct {
	SimilarityThreshold float64
}

type Option func(*Options)

// WithSimilarityThreshold sets the minimum cosine similarity a chunk must
// reach to be returned.
func WithSimilarityThreshold(threshold float64) Option {
	return func(o *Options) {
		o.SimilarityThreshold = threshold
	}
}
