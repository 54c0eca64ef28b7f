package pdg

// DFG construction threads a local scope, a global scope, and a deferred
// "unknown variable" list through a recursive AST walk, grounded on
// build_dfg.py. Unlike CFG construction (one pass, stateless per node), the
// DFG walk carries mutable scope state forward and backward between sibling
// calls, so it is implemented as methods on a small builder holding the
// pieces every helper needs: the graph, and the seen-set build_dfg.py calls
// id_list (here a set, since it is only ever tested for membership).
type dfgBuilder struct {
	g       *Graph
	handled map[NodeID]bool
	unknown *unknownList
}

// unknownList is the deferred-resolution queue for identifiers referenced
// before any declaration was seen (hoisting candidates), mirroring
// unknown_var. It is never copied, only mutated in place, matching the
// source threading a single shared list through every call.
type unknownList struct{ items []NodeID }

func (u *unknownList) add(id NodeID) { u.items = append(u.items, id) }

func (u *unknownList) remove(id NodeID) {
	for i, v := range u.items {
		if v == id {
			u.items = append(u.items[:i], u.items[i+1:]...)
			return
		}
	}
}

func (u *unknownList) snapshot() []NodeID {
	return append([]NodeID(nil), u.items...)
}

// BuildDFG runs data-flow construction over the whole AST rooted at ast,
// mirroring df_scoping: a fresh top-level Env is threaded through, global
// scope (entry=1) for the Program node's direct declarations.
func BuildDFG(g *Graph, ast NodeID) *Env {
	env := NewEnv()
	b := &dfgBuilder{g: g, handled: make(map[NodeID]bool), unknown: &unknownList{}}
	env.Local = b.buildDFG(ast, env.Local, env.Global, 1)
	env.Unknown = b.unknown.items
	return env
}

// getPosIdentifier finds name's most recent declared slot in v, by the
// slot's declaring node's "name" attribute, mirroring get_pos_identifier's
// scan of var.id_list.
func getPosIdentifier(g *Graph, v *VarList, name string) int {
	return v.IndexOf(g, name)
}

// getNearestStatement walks up the AST Parent chain from node until it
// finds a statement node, or returns answer directly if answer != NoNode
// (the DFG builder's override for "this variable's last definition is
// already known, don't recompute it").
func getNearestStatement(g *Graph, node, answer NodeID) NodeID {
	if answer != NoNode {
		return answer
	}
	n := g.Node(node)
	if n.IsStatement() {
		return node
	}
	return getNearestStatement(g, n.Parent, NoNode)
}

// setDF adds one data-dependency edge per reaching definition of the
// variable at slot idx in v, ending at identifierNode's using occurrence.
// When v.Refs[idx] holds two definers (a boolean-branch merge that could
// not resolve to one), one edge is added per definer — this is the "one
// edge per definer" behavior of the source's unmodified set_df, not an
// invented alternative to a single least-common-ancestor edge.
func setDF(g *Graph, v *VarList, idx int, identifierNode NodeID) {
	end := getNearestStatement(g, identifierNode, NoNode)
	if refs := v.Refs[idx]; len(refs) > 0 {
		for _, def := range refs {
			begin := getNearestStatement(g, def, NoNode)
			g.AddDataDependency(begin, end, "data", def, identifierNode)
		}
		return
	}
	begin := getNearestStatement(g, v.Vars[idx], NoNode)
	g.AddDataDependency(begin, end, "data", v.Vars[idx], identifierNode)
}

// assignmentDF records a use of identifierNode: if it resolves to a
// declared variable in local or global scope, a data-dependency edge is
// added from its reaching definition; otherwise, if not a reserved word,
// it is queued as an unknown (possibly hoisted) variable.
func (b *dfgBuilder) assignmentDF(identifierNode NodeID, varLoc, varGlob *VarList) {
	name, ok := b.g.Node(identifierNode).Value()
	if !ok {
		return
	}
	if i := getPosIdentifier(b.g, varLoc, name); i >= 0 {
		setDF(b.g, varLoc, i, identifierNode)
		return
	}
	if i := getPosIdentifier(b.g, varGlob, name); i >= 0 {
		setDF(b.g, varGlob, i, identifierNode)
		return
	}
	if !IsReservedJS(name) {
		b.unknown.add(identifierNode)
	}
}

// varDeclDF declares or redefines node (an Identifier) in the appropriate
// scope: global scope when entry==1, or when assignt and the variable is
// not already local (an undeclared assignment target is implicitly global,
// matching non-strict-mode JS semantics the source models); local
// otherwise. When assignt and obj, a data-dependency edge records the
// object's prior use being mutated before the slot is overwritten.
func (b *dfgBuilder) varDeclDF(node NodeID, varLoc, varGlob *VarList, entry int, assignt, obj bool) {
	name, ok := b.g.Node(node).Value()
	if !ok {
		return
	}
	target := varLoc
	if entry == 1 {
		target = varGlob
	} else if assignt && getPosIdentifier(b.g, varLoc, name) < 0 {
		target = varGlob
	}
	idx := getPosIdentifier(b.g, target, name)
	if idx < 0 {
		target.AddVar(node, false)
		return
	}
	if assignt && obj {
		setDF(b.g, target, idx, node)
	}
	target.UpdateVar(idx, node, false)
}

// varDeclarationDF handles a VariableDeclarator: children[0] is the
// (possibly destructuring) binding pattern, children[1] the optional
// initializer.
func (b *dfgBuilder) varDeclarationDF(node NodeID, varLoc, varGlob *VarList, entry int) *VarList {
	n := b.g.Node(node)
	idents := b.searchIdentifiers(n.Children[0], true, nil)
	for _, decl := range idents {
		b.handled[decl] = true
		b.varDeclDF(decl, varLoc, varGlob, entry, false, false)
	}
	if len(n.Children) > 1 {
		varLoc = b.buildDFG(n.Children[1], varLoc, varGlob, entry)
	}
	return varLoc
}

// searchIdentifiers collects the Identifier nodes search-relevant as
// assignment targets/uses starting at node, mirroring search_identifiers.
// ObjectExpression literals contribute nothing (object property keys are
// not variables); a MemberExpression's object slot is tracked unless it is
// this/window, in which case the property name is tracked instead; a
// computed member access's index expression is tracked as a use. When rec
// is false, non-Identifier/non-ObjectExpression nodes are not descended
// into (identifier_update calls searchIdentifiers this way on a node it
// already knows is an Identifier).
func (b *dfgBuilder) searchIdentifiers(node NodeID, rec bool, tab []NodeID) []NodeID {
	n := b.g.Node(node)
	switch n.Name {
	case "ObjectExpression":
		return tab
	case "Identifier":
		if n.Parent == NoNode {
			return append(tab, node)
		}
		parent := b.g.Node(n.Parent)
		if parent.Name != "MemberExpression" {
			return append(tab, node)
		}
		if len(parent.Children) > 0 && parent.Children[0] == node {
			value, _ := n.Value()
			if value == "this" || value == "window" {
				b.handled[node] = true
				if len(parent.Children) > 1 {
					prop := b.g.Node(parent.Children[1])
					if prop.Name == "Identifier" {
						tab = append(tab, parent.Children[1])
					}
				}
				return tab
			}
			return append(tab, node)
		}
		if len(parent.Children) > 0 && b.g.Node(parent.Children[0]).Name == "ThisExpression" {
			return append(tab, node)
		}
		if computed, _ := parent.Attr("computed").(bool); computed {
			return append(tab, node)
		}
		return tab
	default:
		if !rec {
			return tab
		}
		for _, c := range n.Children {
			tab = b.searchIdentifiers(c, rec, tab)
		}
		return tab
	}
}

// attrHasValue reports whether any attribute of node equals s, mirroring
// the source's "'window' not in node.attributes.values()" membership test.
func attrHasValue(n *Node, s string) bool {
	for _, v := range n.Attributes {
		if str, ok := v.(string); ok && str == s {
			return true
		}
	}
	return false
}

// assignmentExprDF handles AssignmentExpression: children[0] the assignee
// expression, children[1] the value expression. Compound operators
// (+=, -=, ...) additionally record a use of the assignee's prior value.
func (b *dfgBuilder) assignmentExprDF(node NodeID, varLoc, varGlob *VarList, entry int) *VarList {
	n := b.g.Node(node)
	assignees := b.searchIdentifiers(n.Children[0], true, nil)
	for _, assignee := range assignees {
		b.handled[assignee] = true
		an := b.g.Node(assignee)
		parent := b.g.Node(an.Parent)
		if op, ok := parent.Attr("operator").(string); ok && op != "=" {
			b.assignmentDF(assignee, varLoc, varGlob)
		}
		objMutation := false
		if parent.Name == "MemberExpression" {
			obj := b.g.Node(parent.Children[0])
			notThisWindow := obj.Name != "ThisExpression"
			if v, ok := obj.Value(); ok && v == "window" {
				notThisWindow = false
			}
			if notThisWindow {
				objMutation = true
			} else if gp := b.g.Node(parent.Parent); parent.Parent != NoNode && gp.Name == "MemberExpression" {
				objMutation = true
			}
		}
		if objMutation {
			if computed, _ := parent.Attr("computed").(bool); computed {
				b.assignmentDF(assignee, varLoc, varGlob)
			} else {
				b.varDeclDF(assignee, varLoc, varGlob, entry, true, true)
			}
		} else {
			b.varDeclDF(assignee, varLoc, varGlob, entry, true, false)
		}
	}
	for i := 1; i < len(n.Children); i++ {
		varLoc = b.buildDFG(n.Children[i], varLoc, varGlob, entry)
	}
	return varLoc
}

// updateExprDF handles UpdateExpression (++/--): the argument is used (old
// value), redefined (new value), then used again, mirroring update_expr_df.
func (b *dfgBuilder) updateExprDF(node NodeID, varLoc, varGlob *VarList, entry int) {
	n := b.g.Node(node)
	args := b.searchIdentifiers(n.Children[0], true, nil)
	for _, arg := range args {
		b.handled[arg] = true
		b.assignmentDF(arg, varLoc, varGlob)
		b.varDeclDF(arg, varLoc, varGlob, entry, true, false)
		b.assignmentDF(arg, varLoc, varGlob)
	}
}

// identifierUpdate handles a bare Identifier reference reached directly by
// build_dfg's dispatch (not via an assignment/update/declaration form): a
// CatchClause parameter is declared, everything else is a use.
func (b *dfgBuilder) identifierUpdate(node NodeID, varLoc, varGlob *VarList, entry int) {
	if b.handled[node] {
		return
	}
	idents := b.searchIdentifiers(node, false, nil)
	for _, ident := range idents {
		parent := b.g.Node(b.g.Node(ident).Parent)
		if parent.Name == "CatchClause" {
			b.varDeclDF(node, varLoc, varGlob, entry, false, false)
		} else {
			b.assignmentDF(ident, varLoc, varGlob)
		}
	}
}

// variableDeclarationDF handles a VariableDeclaration's own dispatch (one
// level above VariableDeclarator), mirroring build_dfg's
// "child.name == 'VariableDeclaration'" branch: a plain var declares into
// the target scope with no further bookkeeping, while let/const additionally
// opens (or extends) that scope's LimitedScope window so the declared
// name(s) can be popped back out by blockScope when the enclosing block
// exits, per var_list.py's before_limit_list/after_limit_list accounting.
func (b *dfgBuilder) variableDeclarationDF(node NodeID, varLoc, varGlob *VarList, entry int) *VarList {
	n := b.g.Node(node)
	if kind, _ := n.Attr("kind").(string); kind == "var" {
		for _, c := range n.Children {
			varLoc = b.buildDFG(c, varLoc, varGlob, entry)
		}
		return varLoc
	}

	target := varLoc
	if entry == 1 {
		target = varGlob
	}
	if !target.Scope.Limit {
		target.Scope.BeforeLimitList = append([]NodeID(nil), target.Vars...)
	}
	pre := append([]NodeID(nil), target.Vars...)
	for _, c := range n.Children {
		varLoc = b.buildDFG(c, varLoc, varGlob, entry)
	}
	target.Scope.Limit = true
	for _, v := range target.Vars {
		if containsNodeID(pre, v) || containsNodeID(target.Scope.AfterLimitList, v) {
			continue
		}
		target.Scope.AfterLimitList = append(target.Scope.AfterLimitList, v)
	}
	return varLoc
}

func containsNodeID(list []NodeID, id NodeID) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

// limitScope pops v's let/const declarations back out once the block that
// introduced them is exited, mirroring limit_scope in build_dfg.py. Unlike
// the source (which simply reverts var_list to before_limit_list, leaving
// ref_list/fun_list out of sync), slots shadowing an outer declaration are
// restored to that outer declaration rather than dropped, and Vars/Refs/Funs
// are kept parallel throughout. A var or function declared in the same
// block is never recorded in AfterLimitList, so it still leaks out on block
// exit; only bindings that existed before the block are restored.
func limitScope(v *VarList) {
	if !v.Scope.Limit {
		return
	}
	remove := make(map[NodeID]bool, len(v.Scope.AfterLimitList))
	for _, id := range v.Scope.AfterLimitList {
		remove[id] = true
	}
	before := v.Scope.BeforeLimitList
	var vars []NodeID
	var refs [][]NodeID
	var funs []bool
	for i, id := range v.Vars {
		switch {
		case i < len(before) && id != before[i] && remove[id]:
			vars = append(vars, before[i])
			refs = append(refs, nil)
			funs = append(funs, false)
		case i >= len(before) && remove[id]:
			// a let/const slot with no outer counterpart: drop entirely
		default:
			vars = append(vars, id)
			refs = append(refs, v.Refs[i])
			funs = append(funs, v.Funs[i])
		}
	}
	v.Vars, v.Refs, v.Funs = vars, refs, funs
}

// blockScope processes a BlockStatement, isolating whatever LimitedScope
// window is already open on varLoc/varGlob (an enclosing block's own
// in-progress let/const tracking) so this block's let/const declarations
// are snapshotted from its own entry point, then pops its own window on
// exit and restores the enclosing one. This is the block-scoping boundary
// var_list.py's LimitedScope models but, left to the source's own call
// sites (only inside function/object scope), never actually closes at
// plain nested blocks; routing BlockStatement here is what makes
// testable property 7 (and scenario E4) hold.
func (b *dfgBuilder) blockScope(node NodeID, varLoc, varGlob *VarList, entry int) (*VarList, *VarList) {
	savedLoc, savedGlob := varLoc.Scope, varGlob.Scope
	varLoc.ResetLimitedScope()
	varGlob.ResetLimitedScope()

	varLoc, varGlob = b.statementScope(node, varLoc, varGlob, entry)

	limitScope(varLoc)
	limitScope(varGlob)
	varLoc.Scope, varGlob.Scope = savedLoc, savedGlob
	return varLoc, varGlob
}

// hoisting resolves deferred unknown-variable uses against a newly-seen
// function declaration name, mirroring hoisting: an unknown identifier
// sharing declNode's name is wired with a direct data edge and removed
// from the unknown queue (the function's later declaration explains it).
func (b *dfgBuilder) hoisting(declNode NodeID) {
	name, ok := b.g.Node(declNode).Value()
	if !ok {
		return
	}
	for _, u := range b.unknown.snapshot() {
		uname, ok := b.g.Node(u).Value()
		if ok && uname == name {
			begin := getNearestStatement(b.g, declNode, NoNode)
			end := getNearestStatement(b.g, u, NoNode)
			b.g.AddDataDependency(begin, end, "data", declNode, u)
			b.unknown.remove(u)
		}
	}
}

// functionScope processes a FunctionDeclaration/FunctionExpression: the
// function's own local scope (params, id, body) is built from a copy of
// the caller's varLoc, then discarded on return — out_var_list, the
// pre-entry snapshot with the function's own name added when it is a
// declaration (so the name is visible both in the enclosing scope and,
// via a second copy, recursively inside the function body) is what the
// caller's varLoc continues from. This mirrors function_scope exactly.
func (b *dfgBuilder) functionScope(node NodeID, varLoc, varGlob *VarList, funExpr bool) *VarList {
	n := b.g.Node(node)
	outVarList := varLoc.Copy()
	localVarList := varLoc.Copy()
	for _, c := range n.Children {
		cn := b.g.Node(c)
		if cn.bodyKey == "id" || cn.bodyKey == "params" {
			idents := b.searchIdentifiers(c, true, nil)
			for _, param := range idents {
				b.handled[param] = true
				if cn.bodyKey == "id" && !funExpr {
					b.varDeclDF(param, outVarList, varGlob, 0, false, false)
					localVarList = outVarList.Copy()
					b.hoisting(param)
				} else {
					b.varDeclDF(param, localVarList, varGlob, 0, false, false)
				}
			}
		} else {
			localVarList = b.buildDFG(c, localVarList, varGlob, 0)
		}
	}
	return outVarList
}

// objExprScope processes an ObjectExpression against a copy of varLoc, which
// the caller then continues from, mirroring obj_expr_scope. A non-computed
// property key is a name, not a variable, so it is neither declared nor
// recorded as a use; computed keys and property values are walked as
// ordinary expressions.
func (b *dfgBuilder) objExprScope(node NodeID, varLoc, varGlob *VarList) *VarList {
	n := b.g.Node(node)
	outVarList := varLoc.Copy()
	for _, c := range n.Children {
		cn := b.g.Node(c)
		if cn.Name != "Property" {
			outVarList = b.buildDFG(c, outVarList, varGlob, 0)
			continue
		}
		computed, _ := cn.Attr("computed").(bool)
		for _, pc := range cn.Children {
			if b.g.Node(pc).bodyKey == "key" && !computed {
				continue
			}
			outVarList = b.buildDFG(pc, outVarList, varGlob, 0)
		}
	}
	return outVarList
}

// booleanCfDep walks a conditional branch's control-dependency child,
// threading varLoc/varGlob through its statements, mirroring
// boolean_cf_dep.
func (b *dfgBuilder) booleanCfDep(branch NodeID, varLoc, varGlob *VarList) (*VarList, *VarList) {
	return b.buildDFG(branch, varLoc, varGlob, 0), varGlob
}

// mergeVarBooleanCf merges the true/false outcomes of a conditional: any
// slot whose declaring node differs between the two branches AND differs
// from the pre-branch state is given a two-definer override (both
// branches' definitions reach the join point), otherwise the true branch's
// outcome (arbitrarily, since they agree) is kept. Mirrors
// merge_var_boolean_cf (its commented-out least-common-ancestor collapse is
// deliberately not ported: the active code path is exactly this
// two-definer override).
func mergeVarBooleanCf(before, vTrue, vFalse *VarList) *VarList {
	merged := vTrue.Copy()
	for i := range merged.Vars {
		if vTrue.Vars[i] == vFalse.Vars[i] {
			continue
		}
		if i < len(before.Vars) && (vTrue.Vars[i] == before.Vars[i] || vFalse.Vars[i] == before.Vars[i]) {
			continue
		}
		merged.UpdateElRef(i, []NodeID{vTrue.Vars[i], vFalse.Vars[i]})
	}
	return merged
}

// statementScope processes a conditional's direct statement children,
// first linking the unconditional statement-dependency children, then
// walking control-dependency children split by true/false label: the true
// branch is processed first against the current varLoc/varGlob (the
// pre-condition state is snapshotted the first time a boolean-labeled
// branch is seen), the false branch against that SAME pre-condition
// snapshot (not the true branch's outcome), and the two outcomes are then
// merged. This exact sequencing mirrors statement_scope; threading the
// false branch from the true branch's result instead of the snapshot would
// silently over-approximate what each branch can observe from the other.
func (b *dfgBuilder) statementScope(node NodeID, varLoc, varGlob *VarList, entry int) (*VarList, *VarList) {
	n := b.g.Node(node)
	for _, d := range n.StatementDepChildren {
		varLoc = b.buildDFG(d.Extremity, varLoc, varGlob, entry)
	}

	var beforeLoc, beforeGlob *VarList
	var postTrueLoc, postTrueGlob *VarList
	haveTrue := false

	for _, d := range n.ControlDepChildren {
		switch d.Label {
		case "true":
			if beforeLoc == nil {
				beforeLoc = varLoc.Copy()
				beforeGlob = varGlob.Copy()
			}
			postTrueLoc, postTrueGlob = b.booleanCfDep(d.Extremity, varLoc, varGlob)
			haveTrue = true
		case "false":
			if beforeLoc == nil {
				beforeLoc = varLoc.Copy()
				beforeGlob = varGlob.Copy()
			}
			postFalseLoc, postFalseGlob := b.booleanCfDep(d.Extremity, beforeLoc, beforeGlob)
			if haveTrue {
				if !postTrueLoc.Equal(postFalseLoc) {
					varLoc = mergeVarBooleanCf(beforeLoc, postTrueLoc, postFalseLoc)
				} else {
					varLoc = postTrueLoc
				}
				if !postTrueGlob.Equal(postFalseGlob) {
					varGlob = mergeVarBooleanCf(beforeGlob, postTrueGlob, postFalseGlob)
				} else {
					varGlob = postTrueGlob
				}
			} else {
				varLoc, varGlob = postFalseLoc, postFalseGlob
			}
		default:
			varLoc = b.buildDFG(d.Extremity, varLoc, varGlob, entry)
		}
	}
	if haveTrue && beforeLoc != nil {
		// A true branch with no matching false branch (e.g. `if` with no
		// else) still reaches the join point with its own outcome.
		foundFalse := false
		for _, d := range n.ControlDepChildren {
			if d.Label == "false" {
				foundFalse = true
			}
		}
		if !foundFalse {
			varLoc, varGlob = postTrueLoc, postTrueGlob
		}
	}
	return varLoc, varGlob
}

// buildDFG is the master per-node dispatcher, mirroring build_dfg's chain
// of elif branches on node type.
func (b *dfgBuilder) buildDFG(node NodeID, varLoc, varGlob *VarList, entry int) *VarList {
	n := b.g.Node(node)
	switch n.Name {
	case "VariableDeclaration":
		return b.variableDeclarationDF(node, varLoc, varGlob, entry)
	case "VariableDeclarator":
		return b.varDeclarationDF(node, varLoc, varGlob, entry)
	case "BlockStatement":
		varLoc, varGlob = b.blockScope(node, varLoc, varGlob, entry)
	case "AssignmentExpression":
		return b.assignmentExprDF(node, varLoc, varGlob, entry)
	case "UpdateExpression":
		b.updateExprDF(node, varLoc, varGlob, entry)
	case "FunctionDeclaration":
		return b.functionScope(node, varLoc, varGlob, false)
	case "FunctionExpression", "ArrowFunctionExpression":
		b.functionScope(node, varLoc, varGlob, true)
	case "ObjectExpression":
		return b.objExprScope(node, varLoc, varGlob)
	case "Identifier":
		b.identifierUpdate(node, varLoc, varGlob, entry)
	case "IfStatement", "ConditionalExpression", "DoWhileStatement", "WhileStatement",
		"ForStatement", "ForOfStatement", "ForInStatement", "TryStatement",
		"SwitchStatement", "SwitchCase":
		varLoc, varGlob = b.statementScope(node, varLoc, varGlob, entry)
	default:
		for _, c := range n.Children {
			varLoc = b.buildDFG(c, varLoc, varGlob, entry)
		}
	}
	return varLoc
}
