// Package ingest turns source files into documents ready for chunking. PDF
// text extraction is delegated to the external pdf library; everything else
// is read as plain text.
package ingest

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"

	"github.com/dRAOUF1/RAG-Assistant/rag"
)

// LoadFile reads one source file into a document, dispatching on extension.
// The document id is the file's base name; title defaults to the id.
func LoadFile(path string) (*rag.Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return LoadPDF(path)
	default:
		return LoadText(path)
	}
}

// LoadPDF extracts a PDF page by page, preserving page boundaries so chunk
// citations can carry page numbers. A page that fails to extract is logged
// and kept empty to preserve the numbering of the pages after it.
func LoadPDF(path string) (*rag.Document, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening PDF %s", path)
	}
	defer file.Close()

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("[WARN] %s: failed to read page %d: %v", path, i, err)
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}

	name := filepath.Base(path)
	return &rag.Document{ID: name, Title: name, Pages: pages}, nil
}

// LoadText reads a plain-text file as a single-page document.
func LoadText(path string) (*rag.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	name := filepath.Base(path)
	return &rag.Document{ID: name, Title: name, Pages: []string{string(content)}}, nil
}
