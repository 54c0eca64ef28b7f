// Package features implements the PDG-traversal feature extraction levels:
// ast, cfg, pdg-dfg, pdg, pdg-cfg-ast, pdg-ast (token-level extraction lives
// in pkg/tokenizer). Grounded on features_ngrams.py's traversal functions,
// which this file ports as the "bare syntactic unit name" extraction mode.
// pkg/features/value.go ports the same six traversals in features_value.py's
// (context, value) mode.
package features

import "github.com/Aurore54F/jstap/pkg/pdg"

// Level names the PDG traversal strategy used to collect syntactic units,
// mirroring extract_syntactic_features's level parameter.
type Level string

const (
	LevelAST       Level = "ast"
	LevelCFG       Level = "cfg"
	LevelPDGDFG    Level = "pdg-dfg"
	LevelPDG       Level = "pdg"
	LevelPDGCFGAST Level = "pdg-cfg-ast"
	LevelPDGAST    Level = "pdg-ast"
)

// Codes converts unit names (as returned by ExtractUnits) into their fixed
// pkg/pdg.ASTKinds integers, the representation CountNGrams operates on.
// Mirrors the dictionary lookup features_ngrams.py's traversals perform
// against AST_UNITS_DICO before n-gram counting.
func Codes(units []string) []int {
	codes := make([]int, len(units))
	for i, u := range units {
		codes[i] = pdg.ASTKindOf(u)
	}
	return codes
}

// ExtractUnits walks g under level and returns the node-kind names
// encountered in the same order the Python traversal would, mirroring
// extract_syntactic_features's ast/cfg/pdg-dfg/pdg/pdg-cfg-ast/pdg-ast
// dispatch (level "tokens" is handled by pkg/tokenizer, not here).
func ExtractUnits(g *pdg.Graph, level Level) []string {
	root := g.Root()
	if root == nil {
		return nil
	}
	var out []string
	switch level {
	case LevelAST:
		if len(root.Children) == 0 {
			return nil
		}
		getASTFeatures(g, root.ID, make(map[pdg.NodeID]bool), &out)
	case LevelCFG:
		getCFGFeatures(g, root.ID, make(map[pdg.NodeID]bool), make(map[pdg.NodeID]bool), &out)
	case LevelPDGDFG:
		getPDGFeatures(g, root.ID, make(map[pdg.NodeID]bool), make(map[pdg.NodeID]bool), &out)
	case LevelPDG:
		getPDGFeaturesWithCFG(g, root.ID, &out)
	case LevelPDGCFGAST:
		getPDGFeaturesWithCFGAST(g, root.ID, &out)
	case LevelPDGAST:
		getPDGFeaturesWithAST(g, root.ID, &out)
	}
	return out
}

// getASTFeatures appends node's not-yet-handled descendants' kind names in
// depth-first pre-order, mirroring get_ast_features's plain (non-value)
// branch.
func getASTFeatures(g *pdg.Graph, node pdg.NodeID, handled map[pdg.NodeID]bool, out *[]string) {
	n := g.Node(node)
	for _, c := range n.Children {
		if handled[c] {
			continue
		}
		handled[c] = true
		*out = append(*out, g.Node(c).Name)
		getASTFeatures(g, c, handled, out)
	}
}

// getCFGFeatures drives traverseCFG over every not-yet-control-flow-visited
// child, then recurses into all children regardless (mirroring the
// source's unconditional recursive call after the conditional traversal).
func getCFGFeatures(g *pdg.Graph, node pdg.NodeID, handled, handledFeatures map[pdg.NodeID]bool, out *[]string) {
	n := g.Node(node)
	for _, c := range n.Children {
		if !handled[c] {
			traverseCFG(g, c, handled, handledFeatures, out)
		}
		getCFGFeatures(g, c, handled, handledFeatures, out)
	}
}

func traverseCFG(g *pdg.Graph, node pdg.NodeID, handled, handledFeatures map[pdg.NodeID]bool, out *[]string) {
	n := g.Node(node)
	if len(n.ControlDepChildren) > 0 {
		*out = append(*out, n.Name)
		handledFeatures[node] = true
		getASTFeatures(g, node, handledFeatures, out)
	}
	for _, d := range n.ControlDepChildren {
		cf := g.Node(d.Extremity)
		if len(cf.ControlDepChildren) == 0 || handled[d.Extremity] {
			*out = append(*out, cf.Name)
		}
		if !handled[d.Extremity] {
			handled[d.Extremity] = true
			handledFeatures[d.Extremity] = true
			getASTFeatures(g, d.Extremity, handledFeatures, out)
			traverseCFG(g, d.Extremity, handled, handledFeatures, out)
		}
	}
}

func getPDGFeatures(g *pdg.Graph, node pdg.NodeID, handled, handledFeatures map[pdg.NodeID]bool, out *[]string) {
	n := g.Node(node)
	for _, c := range n.Children {
		if !handled[c] {
			traversePDG(g, c, handled, handledFeatures, out)
		}
		getPDGFeatures(g, c, handled, handledFeatures, out)
	}
}

func traversePDG(g *pdg.Graph, node pdg.NodeID, handled, handledFeatures map[pdg.NodeID]bool, out *[]string) {
	n := g.Node(node)
	if len(n.DataDepChildren) > 0 {
		*out = append(*out, n.Name)
		handledFeatures[node] = true
		getASTFeatures(g, node, handledFeatures, out)
	}
	for _, d := range n.DataDepChildren {
		df := g.Node(d.Extremity)
		if len(df.DataDepChildren) == 0 || handled[d.Extremity] {
			*out = append(*out, df.Name)
		}
		if !handled[d.Extremity] {
			handled[d.Extremity] = true
			handledFeatures[d.Extremity] = true
			getASTFeatures(g, d.Extremity, handledFeatures, out)
			traversePDG(g, d.Extremity, handled, handledFeatures, out)
		}
	}
}

func getPDGFeaturesWithCFG(g *pdg.Graph, node pdg.NodeID, out *[]string) {
	getPDGFeatures(g, node, make(map[pdg.NodeID]bool), make(map[pdg.NodeID]bool), out)
	getCFGFeatures(g, node, make(map[pdg.NodeID]bool), make(map[pdg.NodeID]bool), out)
}

func getPDGFeaturesWithCFGAST(g *pdg.Graph, node pdg.NodeID, out *[]string) {
	handledPDG := make(map[pdg.NodeID]bool)
	handledCFG := make(map[pdg.NodeID]bool)
	getPDGFeatures(g, node, make(map[pdg.NodeID]bool), handledPDG, out)
	getCFGFeatures(g, node, make(map[pdg.NodeID]bool), handledCFG, out)
	handled := make(map[pdg.NodeID]bool, len(handledPDG)+len(handledCFG))
	for id := range handledPDG {
		handled[id] = true
	}
	for id := range handledCFG {
		handled[id] = true
	}
	getASTFeatures(g, node, handled, out)
}

func getPDGFeaturesWithAST(g *pdg.Graph, node pdg.NodeID, out *[]string) {
	handled := make(map[pdg.NodeID]bool)
	getPDGFeatures(g, node, make(map[pdg.NodeID]bool), handled, out)
	getASTFeatures(g, node, handled, out)
}
