package featurespace

import "testing"

func TestCountPopularFeatures(t *testing.T) {
	perFile := []map[string]int{
		{"common": 6, "rare": 1},
		{"common": 6, "rare": 1},
	}
	popular := CountPopularFeatures(perFile)
	if _, ok := popular["common"]; !ok {
		t.Fatalf("expected common (total 12) to clear PopularityThreshold")
	}
	if _, ok := popular["rare"]; ok {
		t.Fatalf("expected rare (total 2) to be filtered out")
	}
}

func TestAnalyzeFileFillsContingencyTable(t *testing.T) {
	tables := InitializeAnalyzedFeatures(map[string]int{"f": 20})
	AnalyzeFile(tables, map[string]int{"f": 1}, true)
	AnalyzeFile(tables, map[string]int{}, false)
	AnalyzeFile(tables, map[string]int{"f": 1}, false)

	tbl := tables["f"]
	if tbl.A != 1 || tbl.B != 1 || tbl.C != 0 || tbl.D != 1 {
		t.Fatalf("got A=%d B=%d C=%d D=%d, want A=1 B=1 C=0 D=1", tbl.A, tbl.B, tbl.C, tbl.D)
	}
}

func TestAnalyzeFileIgnoresUnpopularFeatures(t *testing.T) {
	tables := InitializeAnalyzedFeatures(map[string]int{"popular": 20})
	AnalyzeFile(tables, map[string]int{"popular": 1, "not-tracked": 1}, true)
	if _, ok := tables["not-tracked"]; ok {
		t.Fatalf("AnalyzeFile should not create entries for features outside tables")
	}
}

func TestMergeTables(t *testing.T) {
	dst := map[string]*ContingencyTable{"f": {A: 1, B: 2, C: 3, D: 4}}
	src := map[string]*ContingencyTable{
		"f": {A: 1, B: 1, C: 1, D: 1},
		"g": {A: 5, B: 5, C: 5, D: 5},
	}
	MergeTables(dst, src)

	if dst["f"].A != 2 || dst["f"].B != 3 || dst["f"].C != 4 || dst["f"].D != 5 {
		t.Fatalf("merge of existing feature wrong: %+v", dst["f"])
	}
	if dst["g"] == nil || dst["g"].A != 5 {
		t.Fatalf("merge did not copy new feature g: %+v", dst["g"])
	}
	// Mutating the copy must not alias src's table.
	dst["g"].A = 99
	if src["g"].A != 5 {
		t.Fatalf("MergeTables aliased src's table instead of copying it")
	}
}

func TestChiSquareZeroOnDegenerateMarginals(t *testing.T) {
	// All malicious, none benign: rowBen == 0.
	tbl := &ContingencyTable{A: 10, B: 0, C: 5, D: 0}
	if got := ChiSquare(tbl); got != 0 {
		t.Fatalf("ChiSquare = %v, want 0 for a degenerate marginal", got)
	}
}

func TestChiSquareLargerForStrongerAssociation(t *testing.T) {
	weak := &ContingencyTable{A: 11, B: 9, C: 9, D: 11}
	strong := &ContingencyTable{A: 18, B: 2, C: 2, D: 18}
	if ChiSquare(strong) <= ChiSquare(weak) {
		t.Fatalf("expected a more skewed table to produce a larger chi-square: strong=%v weak=%v",
			ChiSquare(strong), ChiSquare(weak))
	}
}

func TestSelectFeaturesOrdersByDescendingChi(t *testing.T) {
	tables := map[string]*ContingencyTable{
		"weak":   {A: 11, B: 9, C: 9, D: 11},
		"strong": {A: 18, B: 2, C: 2, D: 18},
		"none":   {A: 10, B: 10, C: 10, D: 10},
	}
	selected := SelectFeatures(tables, 0.1)
	if len(selected) < 2 {
		t.Fatalf("expected at least 2 selected features, got %d", len(selected))
	}
	if selected[0].Feature != "strong" {
		t.Fatalf("selected[0] = %q, want %q (highest chi-square first)", selected[0].Feature, "strong")
	}
}

func TestBuildDictionaryAssignsSequentialPositions(t *testing.T) {
	selected := []Selected{{Feature: "a", Chi: 5}, {Feature: "b", Chi: 3}}
	dict := BuildDictionary(selected)
	if dict.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", dict.Len())
	}
	ia, _ := dict.Lookup("a")
	ib, _ := dict.Lookup("b")
	if ia != 0 || ib != 1 {
		t.Fatalf("got a=%d b=%d, want a=0 b=1 (selection order)", ia, ib)
	}
}

func TestCriticalValueIncreasesWithConfidence(t *testing.T) {
	low := CriticalValue(90)
	high := CriticalValue(99)
	if high <= low {
		t.Fatalf("CriticalValue(99) = %v should exceed CriticalValue(90) = %v", high, low)
	}
}
