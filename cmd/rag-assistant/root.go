package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dRAOUF1/RAG-Assistant/config"
	"github.com/dRAOUF1/RAG-Assistant/llm/openai"
	"github.com/dRAOUF1/RAG-Assistant/rag"
	"github.com/dRAOUF1/RAG-Assistant/rag/index"
	"github.com/dRAOUF1/RAG-Assistant/rag/query"
	"github.com/dRAOUF1/RAG-Assistant/rag/retriever"
	"github.com/dRAOUF1/RAG-Assistant/rag/storage/sqlite"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "rag-assistant",
	Short:         "Question answering over a corpus of books, with citations",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath,
		"config", "c", "config.yaml", "path to the configuration file")
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

func newClient(cfg *config.Config) (*openai.Client, error) {
	key, err := cfg.APIKey()
	if err != nil {
		return nil, err
	}
	opts := []openai.Option{openai.WithToken(key)}
	if cfg.Service.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.Service.BaseURL))
	}
	if cfg.Service.Model != "" {
		opts = append(opts, openai.WithModel(cfg.Service.Model))
	}
	if cfg.Service.EmbeddingModel != "" {
		opts = append(opts, openai.WithEmbeddingModel(cfg.Service.EmbeddingModel))
	}
	return openai.New(opts...)
}

// loadIndex restores the persisted index, pointing the user at the index
// command when nothing has been built yet.
func loadIndex(ctx context.Context, cfg *config.Config) (*index.Index, error) {
	storage, err := sqlite.NewStorage(cfg.IndexPath)
	if err != nil {
		return nil, err
	}
	defer storage.Close()

	snap, err := storage.Load(ctx)
	if errors.Is(err, rag.ErrEmptyIndex) {
		return nil, errors.Errorf(
			"no index found at %s, run 'rag-assistant index' first", cfg.IndexPath)
	}
	if err != nil {
		return nil, err
	}
	return index.Restore(snap)
}

// newPipeline wires retriever, generator and prompt building for query-time
// commands.
func newPipeline(ctx context.Context, cfg *config.Config,
	sources []string) (*query.Pipeline, error) {
	x, err := loadIndex(ctx, cfg)
	if err != nil {
		return nil, err
	}
	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	r, err := retriever.New(client, x,
		retriever.WithSimilarityThreshold(cfg.Retrieval.SimilarityThreshold))
	if err != nil {
		return nil, err
	}

	opts := []rag.QueryOption{
		rag.WithTopK(cfg.Retrieval.TopK),
		rag.WithContextBudget(cfg.Retrieval.ContextBudget),
		rag.WithAllowNoContext(cfg.Retrieval.AllowNoContext),
	}
	if len(sources) > 0 {
		ids, unknown := cfg.SourceIDs(sources)
		if len(unknown) > 0 {
			return nil, errors.Errorf("unknown sources: %v", unknown)
		}
		opts = append(opts, rag.WithAllowedDocuments(ids))
	}
	return query.NewPipeline(r, client, opts...)
}
