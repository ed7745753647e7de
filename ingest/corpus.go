package ingest

import (
	"log"
	"os"
	"sort"

	"github.com/dRAOUF1/RAG-Assistant/rag"
)

// LoadCorpus loads the configured sources, titles mapped to file paths, in
// title order. A configured file that does not exist is logged and skipped so
// one missing book never blocks indexing the rest.
func LoadCorpus(books map[string]string) ([]*rag.Document, error) {
	titles := make([]string, 0, len(books))
	for title := range books {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	docs := make([]*rag.Document, 0, len(titles))
	for _, title := range titles {
		path := books[title]
		if _, err := os.Stat(path); err != nil {
			log.Printf("[WARN] source %q not found: %s", title, path)
			continue
		}
		doc, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		doc.Title = title
		docs = append(docs, doc)
		log.Printf("loaded %q: %d pages", title, len(doc.Pages))
	}
	return docs, nil
}
