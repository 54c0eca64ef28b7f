// Package pdg implements the program dependency graph: AST ingestion,
// control-flow edges, and data-flow edges over a single in-memory Node
// arena.
package pdg

// NodeID is a stable index into a Graph's node arena. Unlike the Python
// original's back-referencing object graph, nodes never hold pointers to
// each other directly: every edge and every parent/child link is expressed
// as a NodeID, so the whole graph can be serialized and walked without
// worrying about cycles or shared ownership.
type NodeID int

// NoNode is the sentinel NodeID (-1) meaning "no node"; it is never
// assigned to a real node.
const NoNode NodeID = -1

// DependenceKind distinguishes the four edge buckets a Node can carry.
type DependenceKind int

const (
	DataDependency DependenceKind = iota
	ControlDependency
	CommentDependency
	StatementDependency
)

func (k DependenceKind) String() string {
	switch k {
	case DataDependency:
		return "data dependency"
	case ControlDependency:
		return "control dependency"
	case CommentDependency:
		return "comment dependency"
	case StatementDependency:
		return "statement dependency"
	default:
		return "unknown dependency"
	}
}

// Dependence is one directed edge. Begin/End mirror the original's
// id_begin/id_end: for data dependencies they record which Identifier
// occurrence triggered the edge (definition site, use site), and are
// unset (NoNode) for control/comment/statement edges.
type Dependence struct {
	Kind      DependenceKind
	Extremity NodeID
	Label     string
	Begin     NodeID
	End       NodeID
}

// Node is one AST/PDG vertex. Attributes holds the raw, tagged-union bag of
// Esprima JSON fields the ingestor did not promote into a dedicated field
// (range, raw, regex, operator, and so on) per spec.md Design Note 2.
type Node struct {
	ID     NodeID
	Name   string // Esprima node type, e.g. "Identifier", "CallExpression"
	Clone  bool
	Parent NodeID

	Attributes map[string]any

	// bodyKey is the parent-object key this node was attached under in the
	// source JSON (e.g. "body", "consequent", "test") and BodyList marks
	// whether that key holds a list in the original syntax even when it
	// contains a single element. Both are needed to re-serialize the graph
	// back into Esprima-shaped JSON (mirrors Node.body / Node.body_list in
	// the source).
	bodyKey  string
	BodyList bool

	Children []NodeID

	DataDepParents    []Dependence
	DataDepChildren   []Dependence
	ControlDepParents []Dependence
	ControlDepChildren []Dependence
	CommentDepParents []Dependence
	CommentDepChildren []Dependence
	StatementDepParents []Dependence
	StatementDepChildren []Dependence
}

// Graph owns the node arena for one analyzed file.
type Graph struct {
	nodes []*Node
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// NewNode allocates a node named kind, with the given parent (NoNode for
// the root), and returns its stable ID.
func (g *Graph) NewNode(kind string, parent NodeID) NodeID {
	id := NodeID(len(g.nodes))
	n := &Node{
		ID:         id,
		Name:       kind,
		Parent:     parent,
		Attributes: make(map[string]any),
	}
	g.nodes = append(g.nodes, n)
	if parent != NoNode {
		p := g.Node(parent)
		p.Children = append(p.Children, id)
	}
	return id
}

// Node returns the node for id. Callers own the id space; an out-of-range
// id is a programmer error in the caller, not a runtime condition to guard.
func (g *Graph) Node(id NodeID) *Node {
	return g.nodes[id]
}

// Len returns the number of nodes allocated so far.
func (g *Graph) Len() int { return len(g.nodes) }

// Root returns the graph's first-allocated node, the Program node in an
// Esprima-style AST.
func (g *Graph) Root() *Node {
	if len(g.nodes) == 0 {
		return nil
	}
	return g.nodes[0]
}

func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

var statementKinds = map[string]bool{
	"BlockStatement": true, "BreakStatement": true, "ContinueStatement": true,
	"DoWhileStatement": true, "DebuggerStatement": true, "EmptyStatement": true,
	"ExpressionStatement": true, "ForStatement": true, "ForOfStatement": true,
	"ForInStatement": true, "IfStatement": true, "LabeledStatement": true,
	"ReturnStatement": true, "SwitchStatement": true, "ThrowStatement": true,
	"TryStatement": true, "WhileStatement": true, "WithStatement": true,
	"VariableDeclaration": true, "CatchClause": true, "SwitchCase": true,
	"ConditionalExpression": true, "FunctionDeclaration": true, "ClassDeclaration": true,
}

func (n *Node) IsStatement() bool { return statementKinds[n.Name] }

var commentKinds = map[string]bool{"Line": true, "Block": true}

func (n *Node) IsComment() bool { return commentKinds[n.Name] }

// Attr fetches an attribute, returning nil if absent.
func (n *Node) Attr(key string) any { return n.Attributes[key] }

func (n *Node) SetAttr(key string, v any) { n.Attributes[key] = v }

// Value returns the "name" attribute (an Identifier's textual name).
func (n *Node) Value() (string, bool) {
	v, ok := n.Attributes["name"]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// LiteralType classifies a Literal node's underlying Go value, mirroring
// Node.literal_type in the source: String/Int/Numeric/Bool/Null/RegExp.
func (n *Node) LiteralType() string {
	if v, ok := n.Attributes["value"]; ok {
		switch val := v.(type) {
		case string:
			return "String"
		case bool:
			return "Bool"
		case int, int64:
			return "Int"
		case float64:
			if val == float64(int64(val)) {
				return "Int"
			}
			return "Numeric"
		case nil:
			return "Null"
		}
	}
	if _, ok := n.Attributes["regex"]; ok {
		return "RegExp"
	}
	return ""
}

// AddDataDependency records a data-flow edge from n to extremity, with the
// defining/using Identifier occurrences begin/end (either may be NoNode).
func (g *Graph) AddDataDependency(from, extremity NodeID, label string, begin, end NodeID) {
	n, e := g.Node(from), g.Node(extremity)
	n.DataDepChildren = append(n.DataDepChildren, Dependence{DataDependency, extremity, label, begin, end})
	e.DataDepParents = append(e.DataDepParents, Dependence{DataDependency, from, label, begin, end})
}

// AddControlDependency records a control-flow edge from n to extremity.
func (g *Graph) AddControlDependency(from, extremity NodeID, label string) {
	n, e := g.Node(from), g.Node(extremity)
	n.ControlDepChildren = append(n.ControlDepChildren, Dependence{Kind: ControlDependency, Extremity: extremity, Label: label, Begin: NoNode, End: NoNode})
	e.ControlDepParents = append(e.ControlDepParents, Dependence{Kind: ControlDependency, Extremity: from, Label: label, Begin: NoNode, End: NoNode})
}

// AddCommentDependency links a comment node to the node it documents.
func (g *Graph) AddCommentDependency(from, extremity NodeID) {
	n, e := g.Node(from), g.Node(extremity)
	n.CommentDepChildren = append(n.CommentDepChildren, Dependence{Kind: CommentDependency, Extremity: extremity, Label: "c", Begin: NoNode, End: NoNode})
	e.CommentDepParents = append(e.CommentDepParents, Dependence{Kind: CommentDependency, Extremity: from, Label: "c", Begin: NoNode, End: NoNode})
}

// AddStatementDependency links a node to a non-statement child it
// evaluates (e.g. an ExpressionStatement to its expression).
func (g *Graph) AddStatementDependency(from, extremity NodeID) {
	n, e := g.Node(from), g.Node(extremity)
	n.StatementDepChildren = append(n.StatementDepChildren, Dependence{Kind: StatementDependency, Extremity: extremity, Label: "s", Begin: NoNode, End: NoNode})
	e.StatementDepParents = append(e.StatementDepParents, Dependence{Kind: StatementDependency, Extremity: from, Label: "s", Begin: NoNode, End: NoNode})
}

// RemoveControlDependency undoes a previously-added control edge, used by
// the CFG builder when a BreakStatement rewiring supersedes a provisional
// edge added to the enclosing block's fallthrough.
func (g *Graph) RemoveControlDependency(from, extremity NodeID) {
	n, e := g.Node(from), g.Node(extremity)
	for i, d := range n.ControlDepChildren {
		if d.Extremity == extremity {
			n.ControlDepChildren = append(n.ControlDepChildren[:i], n.ControlDepChildren[i+1:]...)
			break
		}
	}
	for i, d := range e.ControlDepParents {
		if d.Extremity == from {
			e.ControlDepParents = append(e.ControlDepParents[:i], e.ControlDepParents[i+1:]...)
			break
		}
	}
}
