// Package store persists built PDGs to a SQLite-backed table, the
// systems-level analogue of the source's one-pickle-file-per-PDG output
// directory. Uses database/sql with github.com/mattn/go-sqlite3, a teacher
// go.mod dependency that was present but unwired in the retrieved subset
// of the teacher tree.
package store

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/gob"
	"encoding/hex"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Aurore54F/jstap/pkg/pdg"
)

// Store wraps a SQLite database holding one row per analyzed file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and
// ensures its schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS pdgs (
		path_hash TEXT PRIMARY KEY,
		file_path TEXT NOT NULL,
		label TEXT,
		graph BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func pathHash(filePath string) string {
	sum := sha256.Sum256([]byte(filePath))
	return hex.EncodeToString(sum[:])
}

// Put stores g under filePath, gob-encoding the graph and writing inside a
// transaction so a crash mid-write cannot corrupt a neighboring file's row.
func (s *Store) Put(ctx context.Context, filePath, label string, g *pdg.Graph) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(g); err != nil {
		return fmt.Errorf("store: encode graph for %s: %w", filePath, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin transaction: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO pdgs (path_hash, file_path, label, graph) VALUES (?, ?, ?, ?)
		 ON CONFLICT(path_hash) DO UPDATE SET label = excluded.label, graph = excluded.graph`,
		pathHash(filePath), filePath, label, buf.Bytes(),
	); err != nil {
		tx.Rollback()
		return fmt.Errorf("store: write row for %s: %w", filePath, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit row for %s: %w", filePath, err)
	}
	return nil
}

// Get retrieves the graph previously stored for filePath, along with its
// label. Returns sql.ErrNoRows if no row exists.
func (s *Store) Get(ctx context.Context, filePath string) (*pdg.Graph, string, error) {
	var label string
	var payload []byte
	row := s.db.QueryRowContext(ctx,
		`SELECT label, graph FROM pdgs WHERE path_hash = ?`, pathHash(filePath))
	if err := row.Scan(&label, &payload); err != nil {
		return nil, "", err
	}
	var g pdg.Graph
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&g); err != nil {
		return nil, "", fmt.Errorf("store: decode graph for %s: %w", filePath, err)
	}
	return &g, label, nil
}
