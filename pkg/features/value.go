package features

import (
	"fmt"

	"github.com/Aurore54F/jstap/pkg/pdg"
)

// ValueUnit is a (context, value) syntactic unit, mirroring the tuples
// features_value.py's traversals produce: context is a node kind name (or
// a Literal's literal_type), value is either the literal's own value or
// the name of the first Identifier found in its subtree.
type ValueUnit struct {
	Context string
	Value   string
}

// ExtractValueUnits walks g under level using the (context, value) unit
// extraction mode, mirroring features_value.py's six traversal functions.
func ExtractValueUnits(g *pdg.Graph, level Level) []ValueUnit {
	root := g.Root()
	if root == nil {
		return nil
	}
	var out []ValueUnit
	switch level {
	case LevelAST:
		getASTFeaturesValue(g, root.ID, make(map[pdg.NodeID]bool), &out)
	case LevelCFG:
		getCFGFeaturesValue(g, root.ID, make(map[pdg.NodeID]bool), make(map[pdg.NodeID]bool), &out)
	case LevelPDGDFG:
		getPDGFeaturesValue(g, root.ID, make(map[pdg.NodeID]bool), make(map[pdg.NodeID]bool), &out)
	case LevelPDG:
		getPDGFeaturesValueWithCFG(g, root.ID, &out)
	case LevelPDGCFGAST:
		getPDGFeaturesValueWithCFGAST(g, root.ID, &out)
	case LevelPDGAST:
		getPDGFeaturesValueWithAST(g, root.ID, &out)
	}
	return out
}

// firstIdentifierValue returns the "name" attribute of the first Identifier
// node found in a pre-order walk of node's subtree (node included),
// mirroring search_identifier's DFS collection (only index 0 is ever used).
func firstIdentifierValue(g *pdg.Graph, node pdg.NodeID) (string, bool) {
	n := g.Node(node)
	if n.Name == "Identifier" {
		if v, ok := n.Value(); ok {
			return v, true
		}
	}
	for _, c := range n.Children {
		if v, ok := firstIdentifierValue(g, c); ok {
			return v, true
		}
	}
	return "", false
}

// getContextValue mirrors get_context_value: a unit pairing node's own kind
// with the value of the first Identifier found in its subtree, or false if
// none exists.
func getContextValue(g *pdg.Graph, node pdg.NodeID) (ValueUnit, bool) {
	n := g.Node(node)
	if v, ok := firstIdentifierValue(g, node); ok {
		return ValueUnit{Context: n.Name, Value: v}, true
	}
	return ValueUnit{}, false
}

// leafAttr mirrors get_leaf_attr: prefer a "value" attribute (stringified),
// fall back to "name".
func leafAttr(n *pdg.Node) (string, bool) {
	if v, ok := n.Attributes["value"]; ok {
		return fmt.Sprintf("%v", v), true
	}
	if v, ok := n.Attributes["name"]; ok {
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}

func getASTFeaturesValue(g *pdg.Graph, node pdg.NodeID, handled map[pdg.NodeID]bool, out *[]ValueUnit) {
	n := g.Node(node)
	for _, c := range n.Children {
		if handled[c] {
			continue
		}
		handled[c] = true
		cn := g.Node(c)
		if cn.Name == "Literal" {
			if v, ok := cn.Attributes["value"]; ok {
				*out = append(*out, ValueUnit{Context: cn.LiteralType(), Value: fmt.Sprintf("%v", v)})
			}
		} else if unit, ok := getContextValue(g, c); ok {
			*out = append(*out, unit)
		}
		getASTFeaturesValue(g, c, handled, out)
	}
}

func getCFGFeaturesValue(g *pdg.Graph, node pdg.NodeID, handled, handledFeatures map[pdg.NodeID]bool, out *[]ValueUnit) {
	n := g.Node(node)
	for _, c := range n.Children {
		if !handled[c] {
			traverseCFGValue(g, c, handled, handledFeatures, out)
		}
		getCFGFeaturesValue(g, c, handled, handledFeatures, out)
	}
}

func traverseCFGValue(g *pdg.Graph, node pdg.NodeID, handled, handledFeatures map[pdg.NodeID]bool, out *[]ValueUnit) {
	n := g.Node(node)
	if len(n.ControlDepChildren) > 0 {
		if unit, ok := getContextValue(g, node); ok {
			*out = append(*out, unit)
			handledFeatures[node] = true
			getASTFeaturesValue(g, node, handledFeatures, out)
		}
	}
	for _, d := range n.ControlDepChildren {
		cf := d.Extremity
		cfn := g.Node(cf)
		if unit, ok := getContextValue(g, cf); ok && (len(cfn.ControlDepChildren) == 0 || handled[cf]) {
			*out = append(*out, unit)
		}
		if !handled[cf] {
			handled[cf] = true
			handledFeatures[cf] = true
			getASTFeaturesValue(g, cf, handledFeatures, out)
			traverseCFGValue(g, cf, handled, handledFeatures, out)
		}
	}
}

func getPDGFeaturesValue(g *pdg.Graph, node pdg.NodeID, handled, handledFeatures map[pdg.NodeID]bool, out *[]ValueUnit) {
	n := g.Node(node)
	for _, c := range n.Children {
		if !handled[c] {
			traversePDGValue(g, c, handled, handledFeatures, out)
		}
		getPDGFeaturesValue(g, c, handled, handledFeatures, out)
	}
}

func traversePDGValue(g *pdg.Graph, node pdg.NodeID, handled, handledFeatures map[pdg.NodeID]bool, out *[]ValueUnit) {
	n := g.Node(node)
	if len(n.DataDepChildren) > 0 {
		beginNode := g.Node(n.DataDepChildren[0].Begin)
		value, _ := leafAttr(beginNode)
		*out = append(*out, ValueUnit{Context: n.Name, Value: value})
		handledFeatures[node] = true
		getASTFeaturesValue(g, node, handledFeatures, out)
	}
	for _, d := range n.DataDepChildren {
		df := d.Extremity
		dfn := g.Node(df)
		if len(dfn.DataDepChildren) == 0 || handled[df] {
			endNode := g.Node(d.End)
			value, _ := leafAttr(endNode)
			*out = append(*out, ValueUnit{Context: dfn.Name, Value: value})
		}
		if !handled[df] {
			handled[df] = true
			handledFeatures[df] = true
			getASTFeaturesValue(g, df, handledFeatures, out)
			traversePDGValue(g, df, handled, handledFeatures, out)
		}
	}
}

func getPDGFeaturesValueWithCFG(g *pdg.Graph, node pdg.NodeID, out *[]ValueUnit) {
	getPDGFeaturesValue(g, node, make(map[pdg.NodeID]bool), make(map[pdg.NodeID]bool), out)
	getCFGFeaturesValue(g, node, make(map[pdg.NodeID]bool), make(map[pdg.NodeID]bool), out)
}

func getPDGFeaturesValueWithCFGAST(g *pdg.Graph, node pdg.NodeID, out *[]ValueUnit) {
	handledPDG := make(map[pdg.NodeID]bool)
	handledCFG := make(map[pdg.NodeID]bool)
	getPDGFeaturesValue(g, node, make(map[pdg.NodeID]bool), handledPDG, out)
	getCFGFeaturesValue(g, node, make(map[pdg.NodeID]bool), handledCFG, out)
	handled := make(map[pdg.NodeID]bool, len(handledPDG)+len(handledCFG))
	for id := range handledPDG {
		handled[id] = true
	}
	for id := range handledCFG {
		handled[id] = true
	}
	getASTFeaturesValue(g, node, handled, out)
}

func getPDGFeaturesValueWithAST(g *pdg.Graph, node pdg.NodeID, out *[]ValueUnit) {
	handled := make(map[pdg.NodeID]bool)
	getPDGFeaturesValue(g, node, make(map[pdg.NodeID]bool), handled, out)
	getASTFeaturesValue(g, node, handled, out)
}
