package pdg

import (
	"bytes"
	"encoding/gob"
)

// Attributes holds whatever concrete types IngestJSON's JSON decoder
// produced (float64, string, bool, []any, map[string]any); gob needs each
// concrete type appearing inside an `any` field registered up front so the
// decoder knows how to reconstitute it.
func init() {
	gob.Register(float64(0))
	gob.Register("")
	gob.Register(false)
	gob.Register([]any{})
	gob.Register(map[string]any{})
}

// gobNode mirrors Node with every field exported, so encoding/gob (which
// only sees exported fields) can round-trip bodyKey, which Node keeps
// unexported to stop callers outside the package from hand-editing a
// value that cfg.go/dfg.go treat as load-bearing AST structure.
type gobNode struct {
	ID     NodeID
	Name   string
	Clone  bool
	Parent NodeID

	Attributes map[string]any

	BodyKey  string
	BodyList bool

	Children []NodeID

	DataDepParents       []Dependence
	DataDepChildren      []Dependence
	ControlDepParents    []Dependence
	ControlDepChildren   []Dependence
	CommentDepParents    []Dependence
	CommentDepChildren   []Dependence
	StatementDepParents  []Dependence
	StatementDepChildren []Dependence
}

// GobEncode lets *Graph (which stores its node arena in an unexported
// field) be persisted directly with encoding/gob, the format pkg/store
// uses to write a built graph's full CFG/DFG edge set — MarshalJSON alone
// only round-trips the original Esprima AST shape, not the dependency
// edges layered on top of it.
func (g *Graph) GobEncode() ([]byte, error) {
	nodes := make([]gobNode, len(g.nodes))
	for i, n := range g.nodes {
		nodes[i] = gobNode{
			ID:                   n.ID,
			Name:                 n.Name,
			Clone:                n.Clone,
			Parent:               n.Parent,
			Attributes:           n.Attributes,
			BodyKey:              n.bodyKey,
			BodyList:             n.BodyList,
			Children:             n.Children,
			DataDepParents:       n.DataDepParents,
			DataDepChildren:      n.DataDepChildren,
			ControlDepParents:    n.ControlDepParents,
			ControlDepChildren:   n.ControlDepChildren,
			CommentDepParents:    n.CommentDepParents,
			CommentDepChildren:   n.CommentDepChildren,
			StatementDepParents:  n.StatementDepParents,
			StatementDepChildren: n.StatementDepChildren,
		}
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(nodes); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode is GobEncode's inverse.
func (g *Graph) GobDecode(data []byte) error {
	var nodes []gobNode
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&nodes); err != nil {
		return err
	}
	g.nodes = make([]*Node, len(nodes))
	for i, gn := range nodes {
		g.nodes[i] = &Node{
			ID:                   gn.ID,
			Name:                 gn.Name,
			Clone:                gn.Clone,
			Parent:               gn.Parent,
			Attributes:           gn.Attributes,
			bodyKey:              gn.BodyKey,
			BodyList:             gn.BodyList,
			Children:             gn.Children,
			DataDepParents:       gn.DataDepParents,
			DataDepChildren:      gn.DataDepChildren,
			ControlDepParents:    gn.ControlDepParents,
			ControlDepChildren:   gn.ControlDepChildren,
			CommentDepParents:    gn.CommentDepParents,
			CommentDepChildren:   gn.CommentDepChildren,
			StatementDepParents:  gn.StatementDepParents,
			StatementDepChildren: gn.StatementDepChildren,
		}
	}
	return nil
}
