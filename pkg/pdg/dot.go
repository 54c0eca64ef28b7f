package pdg

import (
	"fmt"
	"io"
)

// WriteDOT emits a Graphviz DOT rendering of the PDG rooted at root,
// showing control, statement, and (if dataFlow) data dependency edges,
// mirroring produce_cfg_one_child/draw_pdg's three-edge-class walk.
// Attribute labels and graph rendering/export are dropped in favor of
// direct textual DOT output: the source renders through the graphviz
// Python binding, which has no equivalent in the teacher's or the pack's
// dependency set, so this writes the DOT language directly instead of
// shelling out to a third-party graph-layout binding.
func WriteDOT(w io.Writer, g *Graph, root NodeID, dataFlow bool) error {
	fmt.Fprintln(w, "digraph pdg {")
	visited := make(map[NodeID]bool)
	if err := writeDOTNode(w, g, root, dataFlow, visited); err != nil {
		return err
	}
	fmt.Fprintln(w, "}")
	return nil
}

func writeDOTNode(w io.Writer, g *Graph, id NodeID, dataFlow bool, visited map[NodeID]bool) error {
	if visited[id] {
		return nil
	}
	visited[id] = true
	n := g.Node(id)
	shape := "ellipse"
	color := "black"
	if n.IsStatement() || n.IsComment() {
		shape, color = "box", "red"
	}
	label := n.Name
	if n.IsLeaf() {
		if v, ok := leafAttr(n); ok {
			label = fmt.Sprintf("%s: %s", n.Name, v)
		}
	}
	if _, err := fmt.Fprintf(w, "  n%d [label=%q shape=%s color=%s];\n", id, label, shape, color); err != nil {
		return err
	}

	for _, d := range n.StatementDepChildren {
		fmt.Fprintf(w, "  n%d -> n%d [label=%q];\n", id, d.Extremity, d.Label)
		if err := writeDOTNode(w, g, d.Extremity, dataFlow, visited); err != nil {
			return err
		}
	}
	for _, d := range n.ControlDepChildren {
		fmt.Fprintf(w, "  n%d -> n%d [label=%q color=red];\n", id, d.Extremity, d.Label)
		if err := writeDOTNode(w, g, d.Extremity, dataFlow, visited); err != nil {
			return err
		}
	}
	if dataFlow {
		for _, d := range n.DataDepChildren {
			fmt.Fprintf(w, "  n%d -> n%d [label=%q color=blue style=dashed];\n", d.Begin, d.End, d.Label)
		}
	}
	return nil
}

// leafAttr returns the value to show for a leaf node's label, mirroring
// get_leaf_attr: prefer the "value" attribute, fall back to "name".
func leafAttr(n *Node) (string, bool) {
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
