package query

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/dRAOUF1/RAG-Assistant/rag"
)

// Builder assembles a bounded-length prompt from retrieved chunks. Chunks go
// in ranked order, most relevant first, and are added greedily until one
// would overflow the query's context budget; that chunk is dropped whole, not
// truncated, so every included span stays citable exactly.
type Builder struct {
	allowNoContext bool
}

type BuilderOption func(*Builder)

// WithAllowNoContext lets Build produce a prompt even when no chunk fits,
// instead of failing with rag.ErrNoContext.
func WithAllowNoContext(allow bool) BuilderOption {
	return func(b *Builder) {
		b.allowNoContext = allow
	}
}

func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns the prompt text plus the marker-to-chunk mapping for the
// chunks actually included.
func (b *Builder) Build(query *rag.Query, result rag.RetrievalResult) (string, ContextMapping, error) {
	budget := query.ContextBudget
	if budget <= 0 {
		budget = rag.DefaultContextBudget
	}

	mapping := make(ContextMapping, len(result))
	included := make([]*rag.Chunk, 0, len(result))
	used := 0
	for _, sc := range result {
		cost := len([]rune(sc.Chunk.Text))
		if used+cost > budget {
			break
		}
		used += cost
		included = append(included, sc.Chunk)
	}

	if len(included) == 0 && !b.allowNoContext {
		return "", nil, errors.Wrap(rag.ErrNoContext,
			"no retrieved chunk fits the context budget")
	}

	var sources, context strings.Builder
	for i, chunk := range included {
		marker := fmt.Sprintf("S%d", i+1)
		mapping[marker] = chunk
		fmt.Fprintf(&sources, "[%s] %s, page %d\n",
			marker, chunk.DocumentID, chunk.Page)
		fmt.Fprintf(&context, "[%s] %s\n\n", marker, chunk.Text)
	}
	if len(included) == 0 {
		sources.WriteString(_emptyContext + "\n")
		context.WriteString(_emptyContext + "\n")
	}

	prompt := fmt.Sprintf(_promptTemplate,
		strings.TrimRight(sources.String(), "\n"),
		strings.TrimRight(context.String(), "\n"),
		query.Question)
	return prompt, mapping, nil
}
