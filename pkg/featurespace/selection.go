package featurespace

import (
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// PopularityThreshold is the minimum corpus-wide occurrence count a feature
// needs to even be considered for selection, mirroring
// features_preselection.py's hardcoded "> 10" filter: a feature seen once or
// twice in a whole training corpus can't produce a meaningful chi-square
// statistic.
const PopularityThreshold = 10

// CountPopularFeatures aggregates per-file feature counts across a corpus
// and keeps only those clearing PopularityThreshold, mirroring
// get_popular_features.
func CountPopularFeatures(perFile []map[string]int) map[string]int {
	totals := make(map[string]int)
	for _, counts := range perFile {
		for feat, c := range counts {
			totals[feat] += c
		}
	}
	popular := make(map[string]int)
	for feat, c := range totals {
		if c > PopularityThreshold {
			popular[feat] = c
		}
	}
	return popular
}

// ContingencyTable holds the four cells of a feature's 2x2 table against a
// binary malicious/benign label: A is malicious-and-present, B is
// benign-and-present, C is malicious-and-absent, D is benign-and-absent.
// Mirrors the per-feature entries initialize_analyzed_features_dict/
// analyze_features build and accumulate.
type ContingencyTable struct {
	A, B, C, D int
}

// N is the table's total observation count.
func (t *ContingencyTable) N() int { return t.A + t.B + t.C + t.D }

// InitializeAnalyzedFeatures seeds a zeroed contingency table for every
// popular feature, mirroring initialize_analyzed_features_dict.
func InitializeAnalyzedFeatures(popular map[string]int) map[string]*ContingencyTable {
	tables := make(map[string]*ContingencyTable, len(popular))
	for feat := range popular {
		tables[feat] = &ContingencyTable{}
	}
	return tables
}

// AnalyzeFile folds one file's feature counts and label into tables,
// mirroring analyze_features: malicious is label != 0. Every feature present
// in tables increments either the malicious or benign "present" cell if
// counts holds it, otherwise the matching "absent" cell; features in counts
// but not in tables (unpopular) are ignored, as the source never tracks
// them.
func AnalyzeFile(tables map[string]*ContingencyTable, counts map[string]int, malicious bool) {
	for feat, t := range tables {
		_, present := counts[feat]
		switch {
		case present && malicious:
			t.A++
		case present && !malicious:
			t.B++
		case !present && malicious:
			t.C++
		default:
			t.D++
		}
	}
}

// AnalyzeFileCorpus folds every file's counts and label into tables in one
// call, mirroring analyze_features_all's loop over a file list. Matching
// the worker-pool aggregation get_features_all_files_multiproc performs
// across processes, callers running this concurrently across files should
// merge per-worker ContingencyTable maps with MergeTables rather than share
// one tables map across goroutines.
func AnalyzeFileCorpus(tables map[string]*ContingencyTable, perFile []map[string]int, labels []bool) {
	for i, counts := range perFile {
		AnalyzeFile(tables, counts, labels[i])
	}
}

// MergeTables adds src's counts into dst in place, combining partial
// per-worker contingency tables the way the main process reduces
// get_features_all_files_multiproc's per-worker results.
func MergeTables(dst, src map[string]*ContingencyTable) {
	for feat, t := range src {
		if d, ok := dst[feat]; ok {
			d.A += t.A
			d.B += t.B
			d.C += t.C
			d.D += t.D
		} else {
			cp := *t
			dst[feat] = &cp
		}
	}
}

// ChiSquare computes the Yates-continuity-corrected chi-square statistic for
// a 2x2 contingency table, matching scipy.stats.chi2_contingency's default
// behavior for 2x2 tables (used by get_chi). Returns 0 if any marginal total
// is zero, since the statistic is undefined there and such a feature can
// never be significant.
func ChiSquare(t *ContingencyTable) float64 {
	a, b, c, d := float64(t.A), float64(t.B), float64(t.C), float64(t.D)
	n := a + b + c + d
	rowMal := a + c
	rowBen := b + d
	colPresent := a + b
	colAbsent := c + d
	if rowMal == 0 || rowBen == 0 || colPresent == 0 || colAbsent == 0 {
		return 0
	}
	diff := a*d - b*c
	if diff < 0 {
		diff = -diff
	}
	num := n * (diff - n/2) * (diff - n/2)
	if diff < n/2 {
		return 0
	}
	den := colPresent * colAbsent * rowMal * rowBen
	return num / den
}

// CriticalValue computes the chi-square critical value at the given
// confidence percentage (e.g. 95 for 95%) for one degree of freedom,
// mirroring get_chi's chi2.isf(q=1-confidence/100, df=1) via gonum's
// ChiSquared quantile function (gonum has no sparse-matrix type the pack
// uses elsewhere, but its stat/distuv package is exactly the ecosystem
// analogue of scipy.stats used here, so it's adopted rather than hand-
// rolling a chi-square quantile).
func CriticalValue(confidencePercent float64) float64 {
	dist := distuv.ChiSquared{K: 1}
	return dist.Quantile(confidencePercent / 100)
}

// Selected pairs a feature with its chi-square statistic, mirroring one
// entry of select_features' retained output before store_features persists
// it as a dictionary.
type Selected struct {
	Feature string
	Chi     float64
}

// SelectFeatures keeps every feature whose chi-square statistic meets or
// exceeds critical, mirroring select_features. Results are sorted by
// descending chi-square (ties broken by feature name) purely for
// deterministic dictionary-position assignment; the source's own ordering
// comes from Python dict iteration order and carries no semantic meaning
// beyond "some fixed order for this trained model".
func SelectFeatures(tables map[string]*ContingencyTable, critical float64) []Selected {
	var out []Selected
	for feat, t := range tables {
		chi := ChiSquare(t)
		if chi >= critical {
			out = append(out, Selected{Feature: feat, Chi: chi})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Chi != out[j].Chi {
			return out[i].Chi > out[j].Chi
		}
		return out[i].Feature < out[j].Feature
	})
	return out
}

// BuildDictionary assigns sequential vector-space positions to a selection,
// mirroring store_features turning select_features' output into the
// features2int dictionary a model is trained against.
func BuildDictionary(selected []Selected) *Dictionary {
	d := NewDictionary()
	for _, s := range selected {
		d.Add(s.Feature)
	}
	return d
}
