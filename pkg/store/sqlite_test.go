package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"database/sql"

	"github.com/Aurore54F/jstap/pkg/pdg"
)

const sampleAST = `{
  "type": "Program",
  "body": [
    {
      "type": "VariableDeclaration",
      "kind": "var",
      "declarations": [
        {
          "type": "VariableDeclarator",
          "id": {"type": "Identifier", "name": "x"},
          "init": {"type": "Literal", "value": 1}
        }
      ]
    }
  ]
}`

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "pdgs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	g, err := pdg.IngestJSON([]byte(sampleAST))
	if err != nil {
		t.Fatalf("IngestJSON: %v", err)
	}
	pdg.BuildCFG(g, g.Root().ID)

	ctx := context.Background()
	if err := s.Put(ctx, "sample.js", "benign", g); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, label, err := s.Get(ctx, "sample.js")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if label != "benign" {
		t.Errorf("label = %q, want benign", label)
	}
	if got.Len() != g.Len() {
		t.Errorf("round-tripped graph has %d nodes, want %d", got.Len(), g.Len())
	}
	if got.Root().Name != "Program" {
		t.Errorf("round-tripped root = %q, want Program", got.Root().Name)
	}
}

func TestPutOverwritesExistingRow(t *testing.T) {
	s := openTestStore(t)
	g, _ := pdg.IngestJSON([]byte(sampleAST))
	ctx := context.Background()

	if err := s.Put(ctx, "sample.js", "benign", g); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, "sample.js", "malicious", g); err != nil {
		t.Fatalf("Put (overwrite): %v", err)
	}

	_, label, err := s.Get(ctx, "sample.js")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if label != "malicious" {
		t.Errorf("label after overwrite = %q, want malicious", label)
	}
}

func TestGetMissingRowReturnsErrNoRows(t *testing.T) {
	s := openTestStore(t)
	_, _, err := s.Get(context.Background(), "never-stored.js")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Get on missing row = %v, want sql.ErrNoRows", err)
	}
}

func TestPathHashIsStableAndDistinguishesPaths(t *testing.T) {
	h1 := pathHash("a.js")
	h2 := pathHash("a.js")
	h3 := pathHash("b.js")
	if h1 != h2 {
		t.Error("pathHash is not stable for the same input")
	}
	if h1 == h3 {
		t.Error("pathHash collided for two different paths")
	}
}
