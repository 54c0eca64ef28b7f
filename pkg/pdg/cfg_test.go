package pdg

import "testing"

const ifStatementAST = `{
  "type": "Program",
  "body": [
    {
      "type": "IfStatement",
      "test": {"type": "Identifier", "name": "cond"},
      "consequent": {"type": "BlockStatement", "body": []},
      "alternate": {"type": "BlockStatement", "body": []}
    }
  ]
}`

// TestIngestJSONPreservesKeyOrder guards the ordered-decoding fix: an
// IfStatement's children must come back as [test, consequent, alternate],
// the order BuildCFG's ifCF addresses positionally, not Go's randomized
// map iteration order.
func TestIngestJSONPreservesKeyOrder(t *testing.T) {
	g, err := IngestJSON([]byte(ifStatementAST))
	if err != nil {
		t.Fatalf("IngestJSON: %v", err)
	}
	ifStmt := g.Node(g.Root().Children[0])
	if len(ifStmt.Children) != 3 {
		t.Fatalf("IfStatement has %d children, want 3", len(ifStmt.Children))
	}
	if got := g.Node(ifStmt.Children[0]).Name; got != "Identifier" {
		t.Errorf("children[0] = %q, want Identifier (test)", got)
	}
	if got, ok := g.Node(ifStmt.Children[0]).Value(); !ok || got != "cond" {
		t.Errorf("children[0].Value() = %q, %v, want cond, true", got, ok)
	}
	if got := g.Node(ifStmt.Children[1]).bodyKey; got != "consequent" {
		t.Errorf("children[1].bodyKey = %q, want consequent", got)
	}
	if got := g.Node(ifStmt.Children[2]).bodyKey; got != "alternate" {
		t.Errorf("children[2].bodyKey = %q, want alternate", got)
	}
}

func TestBuildCFGIfStatementEdges(t *testing.T) {
	g, err := IngestJSON([]byte(ifStatementAST))
	if err != nil {
		t.Fatalf("IngestJSON: %v", err)
	}
	root := g.Root()
	BuildCFG(g, root.ID)

	ifStmt := g.Node(root.Children[0])
	consequent := ifStmt.Children[1]
	alternate := ifStmt.Children[2]

	foundTrue, foundFalse := false, false
	for _, d := range ifStmt.ControlDepChildren {
		switch {
		case d.Extremity == consequent && d.Label == "true":
			foundTrue = true
		case d.Extremity == alternate && d.Label == "false":
			foundFalse = true
		}
	}
	if !foundTrue {
		t.Error("expected a true-labeled control edge from IfStatement to its consequent")
	}
	if !foundFalse {
		t.Error("expected a false-labeled control edge from IfStatement to its alternate")
	}

	testNode := g.Node(ifStmt.Children[0])
	if len(testNode.StatementDepParents) == 0 {
		t.Error("expected the test expression to carry a statement dependency back to the IfStatement")
	}
}

const whileStatementAST = `{
  "type": "Program",
  "body": [
    {
      "type": "WhileStatement",
      "test": {"type": "Identifier", "name": "running"},
      "body": {"type": "BlockStatement", "body": []}
    }
  ]
}`

func TestBuildCFGWhileStatementEdge(t *testing.T) {
	g, err := IngestJSON([]byte(whileStatementAST))
	if err != nil {
		t.Fatalf("IngestJSON: %v", err)
	}
	root := g.Root()
	BuildCFG(g, root.ID)

	whileStmt := g.Node(root.Children[0])
	body := whileStmt.Children[1]

	found := false
	for _, d := range whileStmt.ControlDepChildren {
		if d.Extremity == body && d.Label == "true" {
			found = true
		}
	}
	if !found {
		t.Error("expected a true-labeled control edge from WhileStatement to its body")
	}
}
