package main

import (
	"log"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dRAOUF1/RAG-Assistant/ingest"
	"github.com/dRAOUF1/RAG-Assistant/rag/index"
	"github.com/dRAOUF1/RAG-Assistant/rag/index/textsplitter"
	"github.com/dRAOUF1/RAG-Assistant/rag/storage/sqlite"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Chunk and embed the configured books into a persistent index",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		docs, err := ingest.LoadCorpus(cfg.Books)
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			return errors.New("no readable sources configured, nothing to index")
		}

		client, err := newClient(cfg)
		if err != nil {
			return err
		}
		indexer, err := index.NewIndexer(client,
			index.WithSplitter(textsplitter.New(
				textsplitter.WithChunkSize(cfg.Chunking.Size),
				textsplitter.WithChunkOverlap(cfg.Chunking.Overlap),
			)),
			index.WithConcurrency(cfg.Service.Concurrency),
			index.WithEmbedRate(cfg.Service.EmbedRate),
		)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		x, err := indexer.Index(ctx, docs)
		if err != nil {
			return err
		}

		storage, err := sqlite.NewStorage(cfg.IndexPath)
		if err != nil {
			return err
		}
		defer storage.Close()
		if err = storage.Save(ctx, x.Snapshot()); err != nil {
			return err
		}
		log.Printf("indexed %d chunks from %d documents into %s",
			x.Len(), len(docs), cfg.IndexPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
