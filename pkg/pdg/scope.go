package pdg

// LimitedScope tracks a block-scoped (let/const) limitation window:
// BeforeLimitList snapshots the scope's slots when the first let/const of
// the block is seen, and AfterLimitList collects the slots let/const
// declarations add or replace, so they can be popped when the block exits,
// mirroring LimitedScope in var_list.py. Opened/extended by
// variableDeclarationDF, closed by limitScope/blockScope in dfg.go.
type LimitedScope struct {
	Limit           bool
	BeforeLimitList []NodeID
	AfterLimitList  []NodeID
}

// VarList is the two-level (local/global) scoping environment DFG
// construction threads through the AST: one VarList per lexical scope,
// tracking declared identifiers (Vars), their current reaching definition
// (Refs, parallel-indexed), whether each is itself a function declaration
// (Funs), and a LimitedScope for let/const hoisting limits. Grounded on
// VarList in var_list.py. A VarList has no parent link: lookups search one
// VarList only (see IndexOf), and the DFG builder checks the local scope
// before the global one. Copy below mirrors copy_var_list's value semantics
// for branch snapshotting.
type VarList struct {
	Vars []NodeID   // declaring/most-recent-use Identifier node per slot
	Refs [][]NodeID // reaching-definition override per slot; nil/empty means
	// "use Vars[i] itself" — only set to a non-empty (possibly two-element)
	// list by a boolean-branch merge, mirroring ref_list in var_list.py,
	// whose only non-None writer is merge_var_boolean_cf's update_el_ref.
	Funs  []bool // whether slot's declarator is a function declaration
	Scope LimitedScope
}

// NewVarList returns an empty scope.
func NewVarList() *VarList {
	return &VarList{}
}

// AddVar appends a new declared-variable slot with no reaching-definition
// override.
func (v *VarList) AddVar(id NodeID, fun bool) {
	v.Vars = append(v.Vars, id)
	v.Refs = append(v.Refs, nil)
	v.Funs = append(v.Funs, fun)
}

// UpdateVar overwrites the slot's declaring node in place and clears any
// reaching-definition override, mirroring update_var's default answer=None.
func (v *VarList) UpdateVar(i int, id NodeID, fun bool) {
	v.Vars[i] = id
	v.Refs[i] = nil
	v.Funs[i] = fun
}

// UpdateElRef sets an explicit reaching-definition override for slot i,
// mirroring update_el_ref — used only by the boolean-branch merge to record
// two competing definers instead of collapsing to one.
func (v *VarList) UpdateElRef(i int, refs []NodeID) {
	v.Refs[i] = refs
}

// Copy returns an independent snapshot of v, mirroring copy_var_list — used
// before entering a branch so the branch's mutations do not leak back into
// the pre-branch environment until explicitly merged.
func (v *VarList) Copy() *VarList {
	refs := make([][]NodeID, len(v.Refs))
	for i, r := range v.Refs {
		refs[i] = append([]NodeID(nil), r...)
	}
	cp := &VarList{
		Vars: append([]NodeID(nil), v.Vars...),
		Refs: refs,
		Funs: append([]bool(nil), v.Funs...),
	}
	return cp
}

// Equal reports whether v and o hold the same declaring nodes in the same
// order, the value-equality comparison statement_scope uses to decide
// whether a branch actually changed anything worth merging.
func (v *VarList) Equal(o *VarList) bool {
	if len(v.Vars) != len(o.Vars) {
		return false
	}
	for i := range v.Vars {
		if v.Vars[i] != o.Vars[i] {
			return false
		}
	}
	return true
}

// ResetLimitedScope clears the let/const limitation window, called by
// blockScope when entering a nested block so an enclosing block's
// in-progress window is isolated from the one the nested block opens.
func (v *VarList) ResetLimitedScope() {
	v.Scope = LimitedScope{}
}

// IndexOf returns the slot index of name's most specific declaration in
// this scope only (no parent walk), or -1 if not declared here.
func (v *VarList) IndexOf(g *Graph, name string) int {
	for i := len(v.Vars) - 1; i >= 0; i-- {
		if n, ok := g.Node(v.Vars[i]).Value(); ok && n == name {
			return i
		}
	}
	return -1
}

// Env bundles the local and global VarLists plus the deferred "unknown
// variable" list DFG construction threads through the whole AST walk,
// mirroring the (local_env, global_env, unknown_var) triple build_dfg.py
// passes between its functions.
type Env struct {
	Local   *VarList
	Global  *VarList
	Unknown []NodeID // Identifier nodes whose declaration could not yet be resolved (hoisting)
}

// NewEnv returns a fresh top-level environment with one global scope.
func NewEnv() *Env {
	return &Env{Local: NewVarList(), Global: NewVarList()}
}

// Lookup searches local then global scope for name, returning the VarList
// that declares it and the slot index there, or (nil, -1, false) if it is
// undeclared in either.
func (e *Env) Lookup(g *Graph, name string) (scope *VarList, index int, found bool) {
	if i := e.Local.IndexOf(g, name); i >= 0 {
		return e.Local, i, true
	}
	if i := e.Global.IndexOf(g, name); i >= 0 {
		return e.Global, i, true
	}
	return nil, -1, false
}
