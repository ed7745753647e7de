// Package sqlite persists index snapshots in a single SQLite file: one row
// per (chunk, vector) record plus the index dimension tag and corpus-version
// marker.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/dRAOUF1/RAG-Assistant/rag"
)

const schema = `
CREATE TABLE IF NOT EXISTS index_meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS chunks (
	chunk_id    TEXT PRIMARY KEY,
	document_id TEXT NOT NULL,
	seq         INTEGER NOT NULL,
	text        TEXT NOT NULL,
	span_start  INTEGER NOT NULL,
	span_end    INTEGER NOT NULL,
	page        INTEGER NOT NULL,
	prev_id     TEXT NOT NULL DEFAULT '',
	next_id     TEXT NOT NULL DEFAULT '',
	vector      BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chunks_document ON chunks(document_id);
`

const (
	metaDimension     = "dimension"
	metaCorpusVersion = "corpus_version"
)

var _ rag.Storage = (*Storage)(nil)

type Storage struct {
	db   *sql.DB
	path string
}

// NewStorage opens (creating if needed) the index database at path.
func NewStorage(path string) (*Storage, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "creating index directory")
		}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.Wrap(err, "opening index database")
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating index schema")
	}
	return &Storage{db: db, path: path}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) Path() string {
	return s.path
}

// Save replaces the stored snapshot with snap.
func (s *Storage) Save(ctx context.Context, snap *rag.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning save transaction")
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{"DELETE FROM chunks", "DELETE FROM index_meta"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "clearing previous snapshot")
		}
	}

	meta := map[string]string{
		metaDimension:     strconv.Itoa(snap.Dimension),
		metaCorpusVersion: snap.CorpusVersion,
	}
	for key, value := range meta {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO index_meta (key, value) VALUES (?, ?)", key, value); err != nil {
			return errors.Wrap(err, "writing index meta")
		}
	}

	insert, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (chunk_id, document_id, seq, text,
			span_start, span_end, page, prev_id, next_id, vector)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "preparing chunk insert")
	}
	defer insert.Close()

	for _, record := range snap.Records {
		c := record.Chunk
		if _, err := insert.ExecContext(ctx, c.ID, c.DocumentID, c.Seq, c.Text,
			c.Span.Start, c.Span.End, c.Page, c.PrevID, c.NextID,
			encodeVector(record.Vector)); err != nil {
			return errors.Wrapf(err, "inserting chunk %s", c.ID)
		}
	}
	return errors.Wrap(tx.Commit(), "committing snapshot")
}

// Load reads the stored snapshot, records ordered by chunk id. Returns
// rag.ErrEmptyIndex when nothing has been saved.
func (s *Storage) Load(ctx context.Context) (*rag.Snapshot, error) {
	snap := &rag.Snapshot{}

	var dimension string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM index_meta WHERE key = ?", metaDimension).Scan(&dimension)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(rag.ErrEmptyIndex, "no snapshot saved")
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading index meta")
	}
	snap.Dimension, err = strconv.Atoi(dimension)
	if err != nil {
		return nil, errors.Wrap(err, "parsing index dimension")
	}
	if err := s.db.QueryRowContext(ctx,
		"SELECT value FROM index_meta WHERE key = ?",
		metaCorpusVersion).Scan(&snap.CorpusVersion); err != nil {
		return nil, errors.Wrap(err, "reading corpus version")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT chunk_id, document_id, seq, text, span_start, span_end,
			page, prev_id, next_id, vector
		FROM chunks ORDER BY chunk_id`)
	if err != nil {
		return nil, errors.Wrap(err, "reading chunks")
	}
	defer rows.Close()

	for rows.Next() {
		chunk := &rag.Chunk{}
		var blob []byte
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Seq, &chunk.Text,
			&chunk.Span.Start, &chunk.Span.End, &chunk.Page,
			&chunk.PrevID, &chunk.NextID, &blob); err != nil {
			return nil, errors.Wrap(err, "scanning chunk row")
		}
		vector, err := decodeVector(blob)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding vector for chunk %s", chunk.ID)
		}
		snap.Records = append(snap.Records, &rag.Record{Chunk: chunk, Vector: vector})
	}
	return snap, errors.Wrap(rows.Err(), "iterating chunk rows")
}

// encodeVector packs a vector as little-endian float32 bits.
func encodeVector(vector []float32) []byte {
	blob := make([]byte, 4*len(vector))
	for i, v := range vector {
		binary.LittleEndian.PutUint32(blob[i*4:], math.Float32bits(v))
	}
	return blob
}

func decodeVector(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, errors.Errorf("vector blob length %d is not a multiple of 4", len(blob))
	}
	vector := make([]float32, len(blob)/4)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vector, nil
}
