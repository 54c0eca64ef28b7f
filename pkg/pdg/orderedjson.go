package pdg

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// onode is an order-preserving decoded JSON object. Esprima's AST JSON
// encodes each node's fields in a fixed, meaningful order (an IfStatement's
// "test" key always precedes "consequent", which precedes "alternate"), and
// BuildCFG's per-form handlers (ifCF, forCF, tryCF, ...) address a node's
// Children positionally assuming that order survived ingestion.
// encoding/json's ordinary map[string]any decoding loses key order (Go map
// iteration is randomized), so IngestJSON decodes through this ordered
// representation instead of a plain map.
type onode struct {
	keys []string
	vals map[string]any
}

// decodeOrdered decodes a single JSON value, preserving object key order by
// returning *onode for objects (and plain scalars/[]any for everything
// else, matching encoding/json's usual dynamic types).
func decodeOrdered(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	return decodeValue(dec)
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		return decodeObject(dec)
	case '[':
		return decodeArray(dec)
	default:
		return nil, fmt.Errorf("unexpected JSON delimiter %q", delim)
	}
}

func decodeObject(dec *json.Decoder) (*onode, error) {
	o := &onode{vals: make(map[string]any)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected a JSON object key, got %v", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		o.keys = append(o.keys, key)
		o.vals[key] = val
	}
	if _, err := dec.Token(); err != nil { // consume closing '}'
		return nil, err
	}
	return o, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	var arr []any
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	if _, err := dec.Token(); err != nil { // consume closing ']'
		return nil, err
	}
	return arr, nil
}

// toPlain converts an onode/[]any tree (possibly containing nested onodes)
// back into plain map[string]any/[]any/scalar values, the representation
// Node.Attributes and encoding/gob expect. Used for values that end up
// stored as an attribute (e.g. "range") rather than becoming a child node,
// where key order no longer matters.
func toPlain(v any) any {
	switch val := v.(type) {
	case *onode:
		m := make(map[string]any, len(val.keys))
		for _, k := range val.keys {
			m[k] = toPlain(val.vals[k])
		}
		return m
	case []any:
		return toPlainSlice(val)
	default:
		return val
	}
}

func toPlainSlice(arr []any) []any {
	out := make([]any, len(arr))
	for i, el := range arr {
		out[i] = toPlain(el)
	}
	return out
}
