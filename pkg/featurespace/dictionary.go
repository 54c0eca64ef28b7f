// Package featurespace assembles the fixed-size sparse feature-vector space
// a trained model expects: a feature<->integer dictionary, probability-
// normalized vector construction, and chi-square feature selection.
// Grounded on features_space.py and features_preselection.py/
// features_selection.py.
package featurespace

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
)

// Dictionary is the bidirectional feature<->position map every trained
// model is tied to, mirroring features2int_dict/int2features_dict. Features
// are pre-serialized to strings by pkg/features/counting.go (an n-gram's
// joined codes, or a (context, value) unit's packed key), so the dictionary
// itself stays a flat string<->int map regardless of feature mode.
type Dictionary struct {
	Features2Int map[string]int
	Int2Features map[int]string
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{Features2Int: make(map[string]int), Int2Features: make(map[int]string)}
}

// Add assigns feature a new position if it doesn't already have one, and
// returns its position either way. Building a dictionary over a training
// corpus is just Add calls over every observed feature.
func (d *Dictionary) Add(feature string) int {
	if i, ok := d.Features2Int[feature]; ok {
		return i
	}
	i := len(d.Features2Int)
	d.Features2Int[feature] = i
	d.Int2Features[i] = feature
	return i
}

// Lookup converts feature into its vector-space position, mirroring
// features2int: missing features are not an error, just "not in the
// trained dictionary".
func (d *Dictionary) Lookup(feature string) (int, bool) {
	i, ok := d.Features2Int[feature]
	return i, ok
}

// Feature converts a vector-space position back into its feature,
// mirroring int2features.
func (d *Dictionary) Feature(i int) (string, bool) {
	f, ok := d.Int2Features[i]
	return f, ok
}

// Len returns the number of distinct features in the dictionary (the
// vector space's width, not counting the sentinel column).
func (d *Dictionary) Len() int { return len(d.Features2Int) }

// Save persists the dictionary, mirroring pickle.dump(features2int_dict, ...)
// with encoding/gob instead of pickle — the teacher persists nothing
// comparably, so no pack library choice existed; gob is Go's own
// self-describing binary format, the idiomatic analogue.
func (d *Dictionary) Save(path string) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(d.Features2Int); err != nil {
		return fmt.Errorf("featurespace: encode dictionary: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("featurespace: write dictionary %s: %w", path, err)
	}
	return nil
}

// LoadDictionary reads a dictionary previously written by Save.
func LoadDictionary(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("featurespace: read dictionary %s: %w", path, err)
	}
	f2i := make(map[string]int)
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&f2i); err != nil {
		return nil, fmt.Errorf("featurespace: decode dictionary %s: %w", path, err)
	}
	d := &Dictionary{Features2Int: f2i, Int2Features: make(map[int]string, len(f2i))}
	for f, i := range f2i {
		d.Int2Features[i] = f
	}
	return d, nil
}
