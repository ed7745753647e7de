package rag

// QueryConfig enumerates the recognized query-time options.
type QueryConfig struct {
	TopK                int
	SimilarityThreshold float64
	ContextBudget       int
	AllowedDocuments    []string
	// AllowNoContext lets the pipeline ask the model anyway when retrieval
	// comes back empty or nothing fits the context budget.
	AllowNoContext bool
}

func DefaultQueryConfig() *QueryConfig {
	return &QueryConfig{
		TopK:          DefaultTopK,
		ContextBudget: DefaultContextBudget,
	}
}

// Query builds a Query for the given question from the config.
func (c *QueryConfig) Query(question string) *Query {
	return &Query{
		Question:            question,
		AllowedDocuments:    c.AllowedDocuments,
		TopK:                c.TopK,
		SimilarityThreshold: c.SimilarityThreshold,
		ContextBudget:       c.ContextBudget,
	}
}

type QueryOption func(c *QueryConfig)

func WithTopK(k int) QueryOption {
	return func(c *QueryConfig) {
		c.TopK = k
	}
}

func WithSimilarityThreshold(threshold float64) QueryOption {
	return func(c *QueryConfig) {
		c.SimilarityThreshold = threshold
	}
}

func WithContextBudget(budget int) QueryOption {
	return func(c *QueryConfig) {
		c.ContextBudget = budget
	}
}

func WithAllowedDocuments(ids []string) QueryOption {
	return func(c *QueryConfig) {
		c.AllowedDocuments = ids
	}
}

func WithAllowNoContext(allow bool) QueryOption {
	return func(c *QueryConfig) {
		c.AllowNoContext = allow
	}
}
