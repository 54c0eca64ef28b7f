package pdg

import (
	"encoding/json"
	"fmt"
)

// ParseError wraps a failure to decode or structurally validate an
// external AST JSON document (spec.md §7 error taxonomy).
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IngestJSON decodes an Esprima-style AST JSON document into a fresh Graph.
// Every object-valued key becomes a single child node, visited in the key
// order Esprima itself wrote them (test, then consequent, then alternate,
// and so on) so BuildCFG's positional children[0]/children[1]/... addressing
// lines up with the right AST slot; every key whose value is a non-empty
// array of objects becomes a list of child nodes sharing the same "body"
// attachment point (BodyList=true); every scalar key (plus the range array
// and a regex literal's regex object, which are data, not structure) is
// stored verbatim as a node attribute. This mirrors ast_to_ast_nodes so the
// resulting graph can be re-serialized to equivalent JSON (object key order
// is not preserved by MarshalJSON).
func IngestJSON(data []byte) (*Graph, error) {
	top, err := decodeOrdered(data)
	if err != nil {
		return nil, &ParseError{Path: "<input>", Err: err}
	}
	raw, ok := top.(*onode)
	if !ok {
		return nil, &ParseError{Path: "<input>", Err: fmt.Errorf("top-level AST JSON must be an object")}
	}
	g := NewGraph()
	root := g.NewNode(typeOf(raw), NoNode)
	populateNode(g, raw, root)
	return g, nil
}

func typeOf(dico *onode) string {
	if t, ok := dico.vals["type"].(string); ok {
		return t
	}
	return "Unknown"
}

// populateNode fills in n's attributes and recursively creates child nodes
// for every object/array-of-object valued key in dico, in dico's original
// key order.
func populateNode(g *Graph, dico *onode, id NodeID) {
	n := g.Node(id)
	for _, k := range dico.keys {
		switch val := dico.vals[k].(type) {
		case *onode:
			if k == "range" || k == "regex" {
				// Leading-comment range objects ({0: begin, 1: end}) and a
				// regex literal's {pattern, flags} are data, never a nested node.
				n.SetAttr(k, toPlain(val))
				continue
			}
			createChild(g, val, k, id, false)
		case []any:
			if len(val) == 0 || k == "range" {
				n.SetAttr(k, toPlainSlice(val))
				continue
			}
			for _, el := range val {
				if obj, ok := el.(*onode); ok {
					createChild(g, obj, k, id, true)
				}
			}
		default:
			n.SetAttr(k, val)
		}
	}
}

func createChild(g *Graph, dico *onode, body string, parent NodeID, bodyList bool) {
	if _, ok := dico.vals["type"]; !ok {
		return
	}
	child := g.NewNode(typeOf(dico), parent)
	cn := g.Node(child)
	cn.BodyList = bodyList
	cn.bodyKey = body
	populateNode(g, dico, child)
}

// MarshalJSON reverses IngestJSON: it rebuilds the Esprima-shaped JSON
// object from the node graph, mirroring build_json. Kept for round-trip
// tests; the classification path never needs to re-emit source JSON.
func (g *Graph) MarshalJSON() ([]byte, error) {
	root := g.Root()
	if root == nil {
		return []byte("null"), nil
	}
	dico := buildJSON(g, root.ID)
	return json.Marshal(dico)
}

func buildJSON(g *Graph, id NodeID) map[string]any {
	n := g.Node(id)
	dico := map[string]any{"type": n.Name}
	for _, childID := range n.Children {
		child := g.Node(childID)
		key := child.bodyKey
		if key == "" {
			continue
		}
		childDico := buildJSON(g, childID)
		if child.BodyList {
			list, _ := dico[key].([]any)
			dico[key] = append(list, childDico)
		} else {
			dico[key] = childDico
		}
	}
	for k, v := range n.Attributes {
		dico[k] = v
	}
	return dico
}
