package featurespace

import (
	"github.com/Aurore54F/jstap/pkg/features"
	"github.com/Aurore54F/jstap/pkg/sparse"
)

// AddAll registers every counted feature with the dictionary, mirroring the
// dictionary-building pass of features2int over a training corpus. Feature
// order follows map iteration, which is fine: the dictionary only needs a
// stable mapping for the lifetime of one trained model, not a reproducible
// one across runs.
func (d *Dictionary) AddAll(counts map[string]int) {
	for feat := range counts {
		d.Add(feat)
	}
}

// NGramCounts flattens an n-gram count map into the plain feature->count
// form Vector consumes, keying each gram by its own comma-joined code string.
func NGramCounts(counts map[string]*features.NGramCount) map[string]int {
	out := make(map[string]int, len(counts))
	for k, c := range counts {
		out[k] = c.Count
	}
	return out
}

// ValueCounts flattens a (context, value) unit count map into plain
// feature->count form, mirroring the flat key unique_features_dict uses
// internally before features2int assigns it a position.
func ValueCounts(counts map[features.ValueUnit]*features.ValueCount) map[string]int {
	out := make(map[string]int, len(counts))
	for u, c := range counts {
		out[u.Context+"\x00"+u.Value] = c.Count
	}
	return out
}

// ValueNGramCounts flattens a value-unit n-gram count map into plain
// feature->count form.
func ValueNGramCounts(counts map[string]*features.ValueNGramCount) map[string]int {
	out := make(map[string]int, len(counts))
	for k, c := range counts {
		out[k] = c.Count
	}
	return out
}

// Vector builds one file's sparse feature row against dict, mirroring
// features_vector: each counted feature that exists in dict lands at its
// position, normalized to count/total (a relative frequency, not a raw
// count); features absent from dict are silently dropped, since a trained
// model has no column for them. When every position is zero (either
// counts is empty or none of its features are in dict), the dedicated
// sentinel column (index dict.Len()) is set to 1 instead, since a CSR
// matrix with an all-zero row cannot be vstacked with the rest the way
// scipy requires.
func Vector(dict *Dictionary, counts map[string]int, total int) *sparse.Matrix {
	vec := make([]float64, dict.Len()+1)
	nonZero := false
	if total > 0 {
		for feat, count := range counts {
			idx, ok := dict.Lookup(feat)
			if !ok {
				continue
			}
			vec[idx] = float64(count) / float64(total)
			nonZero = true
		}
	}
	if !nonZero {
		vec[len(vec)-1] = 1
	}
	return sparse.NewRowFromDense(vec)
}
