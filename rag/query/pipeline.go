package query

import (
	"context"

	"github.com/pkg/errors"

	"github.com/dRAOUF1/RAG-Assistant/rag"
)

// Pipeline runs one question end to end: retrieve relevant chunks, build the
// prompt, call the generation service, resolve citations.
type Pipeline struct {
	retriever rag.Retriever
	generator rag.Generator
	config    *rag.QueryConfig
}

func NewPipeline(retriever rag.Retriever, generator rag.Generator,
	opts ...rag.QueryOption) (*Pipeline, error) {
	if retriever == nil {
		return nil, errors.New("retriever is required")
	}
	if generator == nil {
		return nil, errors.New("generator is required")
	}
	config := rag.DefaultQueryConfig()
	for _, opt := range opts {
		opt(config)
	}
	return &Pipeline{
		retriever: retriever,
		generator: generator,
		config:    config,
	}, nil
}

// Ask answers one question. Per-call options override the pipeline defaults,
// e.g. restricting the sources for a single query.
func (p *Pipeline) Ask(ctx context.Context, question string,
	opts ...rag.QueryOption) (*rag.Answer, error) {
	config := *p.config
	for _, opt := range opts {
		opt(&config)
	}
	query := config.Query(question)

	result, err := p.retriever.Retrieve(ctx, query)
	if err != nil {
		return nil, err
	}

	builder := NewBuilder(WithAllowNoContext(config.AllowNoContext))
	prompt, mapping, err := builder.Build(query, result)
	if err != nil {
		return nil, err
	}

	var raw string
	err = rag.Retry(ctx, func() error {
		var err error
		raw, err = p.generator.Generate(ctx, prompt)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "generating answer")
	}
	return Format(raw, mapping), nil
}
