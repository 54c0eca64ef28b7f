package features

import (
	"fmt"
	"strconv"
	"strings"
)

// NGrams slides a length-n window over codes and returns every window,
// mirroring n_grams_list. A file shorter than n still yields one n-gram,
// right-padded with NoCode (Go has no None; the source's equivalent pads
// with Python's None, which compares equal only to itself, so NoCode must
// never collide with a real dictionary code — every code in pkg/pdg's
// ASTKinds and TokenKinds tables is non-negative).
const NoCode = -1

func NGrams(codes []int, n int) ([][]int, error) {
	if n < 1 {
		return nil, fmt.Errorf("features: n-gram length must be > 0, got %d", n)
	}
	if len(codes) == 0 {
		return nil, nil
	}
	if n > len(codes) {
		gram := make([]int, n)
		for i := range gram {
			gram[i] = NoCode
		}
		copy(gram, codes)
		return [][]int{gram}, nil
	}
	grams := make([][]int, 0, len(codes)-n+1)
	for j := 0; j <= len(codes)-n; j++ {
		gram := make([]int, n)
		copy(gram, codes[j:j+n])
		grams = append(grams, gram)
	}
	return grams, nil
}

func ngramKey(gram []int) string {
	parts := make([]string, len(gram))
	for i, c := range gram {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ",")
}

// NGramCount pairs a distinct n-gram with its occurrence count within one
// file, mirroring count_ngrams' dico_of_n_grams entries.
type NGramCount struct {
	Gram  []int
	Count int
}

// CountNGrams counts occurrences of each distinct n-gram of codes,
// mirroring count_ngrams (the features_list -> n_grams_list -> frequency
// dictionary pipeline, minus the file-loading step already performed by
// whatever produced codes).
func CountNGrams(codes []int, n int) (map[string]*NGramCount, int, error) {
	grams, err := NGrams(codes, n)
	if err != nil {
		return nil, 0, err
	}
	if grams == nil {
		return nil, 0, nil
	}
	counts := make(map[string]*NGramCount)
	for _, g := range grams {
		key := ngramKey(g)
		if c, ok := counts[key]; ok {
			c.Count++
		} else {
			counts[key] = &NGramCount{Gram: g, Count: 1}
		}
	}
	return counts, len(grams), nil
}

// ValueCount pairs a distinct (context, value) unit with its occurrence
// count within one file, mirroring count_value's unique_features_dict.
type ValueCount struct {
	Unit  ValueUnit
	Count int
}

// CountValue counts occurrences of each distinct (context, value) unit,
// mirroring count_value.
func CountValue(units []ValueUnit) (map[ValueUnit]*ValueCount, int) {
	if len(units) == 0 {
		return nil, 0
	}
	counts := make(map[ValueUnit]*ValueCount)
	for _, u := range units {
		if c, ok := counts[u]; ok {
			c.Count++
		} else {
			counts[u] = &ValueCount{Unit: u, Count: 1}
		}
	}
	return counts, len(units)
}

// ValueNGramCount pairs a distinct n-gram of (context, value) units with
// its occurrence count, mirroring count_ngram_value.
type ValueNGramCount struct {
	Gram  []ValueUnit
	Count int
}

func valueNgramKey(gram []ValueUnit) string {
	parts := make([]string, len(gram))
	for i, u := range gram {
		parts[i] = u.Context + "\x00" + u.Value
	}
	return strings.Join(parts, "\x01")
}

// CountValueNGrams slides a length-n window over units and counts
// occurrences of each distinct window, mirroring count_ngram_value.
func CountValueNGrams(units []ValueUnit, n int) (map[string]*ValueNGramCount, int, error) {
	if n < 1 {
		return nil, 0, fmt.Errorf("features: n-gram length must be > 0, got %d", n)
	}
	if len(units) == 0 {
		return nil, 0, nil
	}
	var grams [][]ValueUnit
	if n > len(units) {
		gram := make([]ValueUnit, n)
		copy(gram, units)
		grams = [][]ValueUnit{gram}
	} else {
		for j := 0; j <= len(units)-n; j++ {
			gram := make([]ValueUnit, n)
			copy(gram, units[j:j+n])
			grams = append(grams, gram)
		}
	}
	counts := make(map[string]*ValueNGramCount)
	for _, g := range grams {
		key := valueNgramKey(g)
		if c, ok := counts[key]; ok {
			c.Count++
		} else {
			counts[key] = &ValueNGramCount{Gram: g, Count: 1}
		}
	}
	return counts, len(grams), nil
}
