package pdg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// ExternalParser invokes an external Esprima-flavored parser process over
// stdio: source goes in on stdin, Esprima-shaped AST JSON comes back on
// stdout. Mirrors the source's reliance on a separate Node.js/Esprima
// process to produce the AST this package's IngestJSON consumes; jstap
// itself never re-implements JS parsing, matching spec.md's explicit
// non-goal.
type ExternalParser struct {
	Command string
	Args    []string
}

// Parse runs the configured parser command against source and ingests its
// JSON output into a fresh Graph.
func (p *ExternalParser) Parse(ctx context.Context, path string, source []byte) (*Graph, error) {
	cmd := exec.CommandContext(ctx, p.Command, p.Args...)
	cmd.Stdin = bytes.NewReader(source)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("external parser: %w (stderr: %s)", err, stderr.String())}
	}

	g, err := IngestJSON(stdout.Bytes())
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Path = path
			return nil, pe
		}
		return nil, &ParseError{Path: path, Err: err}
	}
	return g, nil
}
