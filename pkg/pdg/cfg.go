package pdg

// Statement-form tables driving the CFG builder, grounded on build_cfg.py's
// EPSILON/CONDITIONAL/UNSTRUCTURED tables. A form not in any table falls
// through to the generic "some grandchildren are statements" branch in
// BuildCFG, matching the Python else-branch.
var epsilonForms = map[string]bool{
	"BlockStatement": true, "DebuggerStatement": true, "EmptyStatement": true,
	"ExpressionStatement": true, "LabeledStatement": true, "ReturnStatement": true,
	"ThrowStatement": true, "WithStatement": true, "CatchClause": true,
	"VariableDeclaration": true, "FunctionDeclaration": true,
}

var conditionalForms = map[string]bool{
	"DoWhileStatement": true, "ForStatement": true, "ForOfStatement": true,
	"ForInStatement": true, "IfStatement": true, "SwitchCase": true,
	"SwitchStatement": true, "TryStatement": true, "WhileStatement": true,
	"ConditionalExpression": true,
}

var unstructuredForms = map[string]bool{
	"BreakStatement": true, "ContinueStatement": true,
}

// BuildCFG walks the AST rooted at ast and adds control/statement/comment
// dependency edges in place, mirroring build_cfg's recursive dispatch.
func BuildCFG(g *Graph, ast NodeID) {
	n := g.Node(ast)
	for _, childID := range n.Children {
		child := g.Node(childID)
		switch {
		case epsilonForms[child.Name]:
			epsilonStatementCF(g, childID)
		case unstructuredForms[child.Name]:
			epsilonStatementCF(g, childID)
			unstructuredStatementCF(g, childID)
		case conditionalForms[child.Name]:
			conditionalStatementCF(g, childID)
		default:
			for _, gcID := range child.Children {
				gc := g.Node(gcID)
				if !gc.IsStatement() {
					linkExpression(g, gcID, childID)
				} else {
					g.AddControlDependency(childID, gcID, "e")
				}
			}
		}
		BuildCFG(g, childID)
	}
}

// extraCommentNode links a trailing comment child (one past the last
// semantically-handled child) as a comment dependency rather than letting
// it float unattached.
func extraCommentNode(g *Graph, id NodeID, maxChildren int) {
	n := g.Node(id)
	if len(n.Children) > maxChildren {
		c := n.Children[maxChildren]
		if g.Node(c).IsComment() {
			g.AddCommentDependency(id, c)
		}
	}
}

// linkExpression attaches a non-statement node (an expression, or a
// comment) to its statement parent via a comment or statement dependency.
func linkExpression(g *Graph, id, parent NodeID) NodeID {
	if g.Node(id).IsComment() {
		g.AddCommentDependency(parent, id)
	} else {
		g.AddStatementDependency(parent, id)
	}
	return id
}

func epsilonStatementCF(g *Graph, id NodeID) {
	n := g.Node(id)
	for _, childID := range n.Children {
		child := g.Node(childID)
		if child.IsStatement() {
			g.AddControlDependency(id, childID, "e")
		} else {
			linkExpression(g, childID, id)
		}
	}
}

// breakStatementCF rewires the fragile BreakStatement edge per the source:
// walk up two control-dependency hops to find the nearest enclosing
// IfStatement-like conditional (if_cond) and its enclosing block, then add
// a False-labeled edge from if_cond to every sibling branch that follows it
// in the block, removing the block's direct edges to those siblings. This
// preserves the original's known over-approximation for nested/labeled
// breaks rather than modeling an explicit loop-exit edge (SPEC_FULL.md §4).
func breakStatementCF(g *Graph, id NodeID) {
	n := g.Node(id)
	if len(n.ControlDepParents) == 0 {
		return
	}
	ifCondHolder := g.Node(n.ControlDepParents[0].Extremity)
	if len(ifCondHolder.ControlDepParents) == 0 {
		return
	}
	ifCond := ifCondHolder.ControlDepParents[0].Extremity
	ifCondNode := g.Node(ifCond)
	if len(ifCondNode.ControlDepParents) == 0 {
		return
	}
	blockStmt := ifCondNode.ControlDepParents[0].Extremity
	blockNode := g.Node(blockStmt)

	ifAll := make([]NodeID, len(blockNode.ControlDepChildren))
	for i, d := range blockNode.ControlDepChildren {
		ifAll[i] = d.Extremity
	}

	idx := -1
	for i, elt := range ifAll {
		if elt == ifCond {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	for _, elt := range ifAll[idx+1:] {
		g.AddControlDependency(ifCond, elt, "false")
		g.RemoveControlDependency(blockStmt, elt)
	}
}

// continueStatementCF is a deliberate no-op: ContinueStatement needs no
// rewiring beyond the epsilon-style edge already added by its enclosing
// loop handler, matching the absence of any override in the source beyond
// dispatch.
func continueStatementCF(g *Graph, id NodeID) {}

func unstructuredStatementCF(g *Graph, id NodeID) {
	n := g.Node(id)
	switch n.Name {
	case "ContinueStatement":
		continueStatementCF(g, id)
	case "BreakStatement":
		breakStatementCF(g, id)
	}
}

func doWhileCF(g *Graph, id NodeID) {
	n := g.Node(id)
	g.AddControlDependency(id, n.Children[0], "true")
	linkExpression(g, n.Children[1], id)
	extraCommentNode(g, id, 2)
}

func forCF(g *Graph, id NodeID) {
	n := g.Node(id)
	i := 0
	for _, childID := range n.Children {
		child := g.Node(childID)
		if child.bodyKey != "body" {
			linkExpression(g, childID, id)
		} else if !child.IsComment() {
			g.AddControlDependency(id, childID, "true")
		}
		i++
	}
	extraCommentNode(g, id, i)
}

func ifCF(g *Graph, id NodeID) {
	n := g.Node(id)
	linkExpression(g, n.Children[0], id)
	g.AddControlDependency(id, n.Children[1], "true")
	if len(n.Children) > 2 {
		third := n.Children[2]
		if g.Node(third).IsComment() {
			g.AddCommentDependency(id, third)
		} else {
			g.AddControlDependency(id, third, "false")
			extraCommentNode(g, id, 3)
		}
	}
}

func tryCF(g *Graph, id NodeID) {
	n := g.Node(id)
	g.AddControlDependency(id, n.Children[0], "true")
	if g.Node(n.Children[1]).bodyKey == "handler" {
		g.AddControlDependency(id, n.Children[1], "false")
	} else {
		g.AddControlDependency(id, n.Children[1], "e")
	}
	if len(n.Children) > 2 {
		if g.Node(n.Children[2]).bodyKey == "finalizer" {
			g.AddControlDependency(id, n.Children[2], "e")
			extraCommentNode(g, id, 3)
		} else {
			extraCommentNode(g, id, 2)
		}
	}
}

func whileCF(g *Graph, id NodeID) {
	n := g.Node(id)
	linkExpression(g, n.Children[0], id)
	g.AddControlDependency(id, n.Children[1], "true")
	extraCommentNode(g, id, 2)
}

func switchCF(g *Graph, id NodeID) {
	n := g.Node(id)
	cases := n.Children
	linkExpression(g, cases[0], id)
	if len(cases) <= 1 {
		return
	}
	g.AddControlDependency(id, cases[1], "e")
	switchCaseCF(g, cases[1], false)
	for i := 2; i < len(cases); i++ {
		if g.Node(cases[i]).IsComment() {
			g.AddCommentDependency(id, cases[i])
			continue
		}
		g.AddControlDependency(cases[i-1], cases[i], "false")
		if i != len(cases)-1 {
			switchCaseCF(g, cases[i], false)
		} else {
			switchCaseCF(g, cases[i], true)
		}
	}
}

func switchCaseCF(g *Graph, id NodeID, last bool) {
	n := g.Node(id)
	nbChild := len(n.Children)
	switch {
	case nbChild > 1:
		j := 1
		if last {
			j = 0
		} else {
			linkExpression(g, n.Children[0], id)
		}
		for i := j; i < nbChild; i++ {
			if g.Node(n.Children[i]).IsComment() {
				g.AddCommentDependency(id, n.Children[i])
			} else {
				g.AddControlDependency(id, n.Children[i], "true")
			}
		}
	case nbChild == 1:
		g.AddControlDependency(id, n.Children[0], "true")
	}
}

func conditionalStatementCF(g *Graph, id NodeID) {
	n := g.Node(id)
	switch n.Name {
	case "DoWhileStatement":
		doWhileCF(g, id)
	case "ForStatement", "ForOfStatement", "ForInStatement":
		forCF(g, id)
	case "IfStatement", "ConditionalExpression":
		ifCF(g, id)
	case "WhileStatement":
		whileCF(g, id)
	case "TryStatement":
		tryCF(g, id)
	case "SwitchStatement":
		switchCF(g, id)
	case "SwitchCase":
		// Already handled from SwitchStatement.
	}
}
