package features

import (
	"reflect"
	"testing"

	"github.com/Aurore54F/jstap/pkg/pdg"
)

// var x = 1;
const varDeclAST = `{
  "type": "Program",
  "body": [
    {
      "type": "VariableDeclaration",
      "kind": "var",
      "declarations": [
        {
          "type": "VariableDeclarator",
          "id": {"type": "Identifier", "name": "x"},
          "init": {"type": "Literal", "value": 1}
        }
      ]
    }
  ]
}`

func mustIngest(t *testing.T, src string) *pdg.Graph {
	t.Helper()
	g, err := pdg.IngestJSON([]byte(src))
	if err != nil {
		t.Fatalf("IngestJSON: %v", err)
	}
	return g
}

func TestExtractUnitsASTLevel(t *testing.T) {
	g := mustIngest(t, varDeclAST)
	got := ExtractUnits(g, LevelAST)
	want := []string{"VariableDeclaration", "VariableDeclarator", "Identifier", "Literal"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractUnits(LevelAST) = %v, want %v", got, want)
	}
}

func TestExtractUnitsASTLevelEmptyProgramYieldsNil(t *testing.T) {
	g := mustIngest(t, `{"type": "Program", "body": []}`)
	if got := ExtractUnits(g, LevelAST); got != nil {
		t.Errorf("ExtractUnits(LevelAST) on empty program = %v, want nil", got)
	}
}

func TestCodesMapsUnitsToASTKinds(t *testing.T) {
	units := []string{"VariableDeclaration", "Identifier", "Literal"}
	got := Codes(units)
	want := []int{pdg.ASTKinds["VariableDeclaration"], pdg.ASTKinds["Identifier"], pdg.ASTKinds["Literal"]}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Codes(%v) = %v, want %v", units, got, want)
	}
}

func TestCodesFallsBackToUnknown(t *testing.T) {
	got := Codes([]string{"NotARealKind"})
	if got[0] != pdg.ASTKinds["Unknown"] {
		t.Errorf("Codes(unrecognized) = %d, want Unknown bucket %d", got[0], pdg.ASTKinds["Unknown"])
	}
}

func TestExtractValueUnitsASTLevel(t *testing.T) {
	g := mustIngest(t, varDeclAST)
	got := ExtractValueUnits(g, LevelAST)
	want := []ValueUnit{
		{Context: "VariableDeclaration", Value: "x"},
		{Context: "VariableDeclarator", Value: "x"},
		{Context: "Identifier", Value: "x"},
		{Context: "Int", Value: "1"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractValueUnits(LevelAST) = %+v, want %+v", got, want)
	}
}

func TestExtractUnitsCFGLevelSurfacesControlFlowNode(t *testing.T) {
	const ifAST = `{
	  "type": "Program",
	  "body": [
	    {
	      "type": "IfStatement",
	      "test": {"type": "Identifier", "name": "cond"},
	      "consequent": {"type": "BlockStatement", "body": []},
	      "alternate": {"type": "BlockStatement", "body": []}
	    }
	  ]
	}`
	g := mustIngest(t, ifAST)
	pdg.BuildCFG(g, g.Root().ID)

	got := ExtractUnits(g, LevelCFG)
	if len(got) == 0 {
		t.Fatal("expected non-empty CFG-level feature list")
	}
	if got[0] != "IfStatement" {
		t.Errorf("first CFG-level unit = %q, want IfStatement", got[0])
	}
	found := false
	for _, u := range got {
		if u == "Identifier" {
			found = true
		}
	}
	if !found {
		t.Error("expected the test expression's Identifier to appear in the CFG-level feature list")
	}
}

func TestExtractUnitsPDGLevelDoesNotPanicOnGraphWithNoDataEdges(t *testing.T) {
	g := mustIngest(t, varDeclAST)
	pdg.BuildCFG(g, g.Root().ID)
	pdg.BuildDFG(g, g.Root().ID)
	// Exercise every level at least once; none should panic.
	for _, level := range []Level{LevelAST, LevelCFG, LevelPDGDFG, LevelPDG, LevelPDGCFGAST, LevelPDGAST} {
		ExtractUnits(g, level)
	}
}

func TestNGramsPadsShortSequences(t *testing.T) {
	grams, err := NGrams([]int{1, 2}, 3)
	if err != nil {
		t.Fatalf("NGrams: %v", err)
	}
	if len(grams) != 1 {
		t.Fatalf("NGrams on short input returned %d grams, want 1", len(grams))
	}
	want := []int{1, 2, NoCode}
	if !reflect.DeepEqual(grams[0], want) {
		t.Errorf("NGrams padded gram = %v, want %v", grams[0], want)
	}
}

func TestNGramsSlidesWindow(t *testing.T) {
	grams, err := NGrams([]int{1, 2, 3, 4}, 2)
	if err != nil {
		t.Fatalf("NGrams: %v", err)
	}
	want := [][]int{{1, 2}, {2, 3}, {3, 4}}
	if !reflect.DeepEqual(grams, want) {
		t.Errorf("NGrams = %v, want %v", grams, want)
	}
}

func TestNGramsRejectsNonPositiveN(t *testing.T) {
	if _, err := NGrams([]int{1, 2}, 0); err == nil {
		t.Error("expected an error for n=0")
	}
}

func TestNGramsEmptyInput(t *testing.T) {
	grams, err := NGrams(nil, 2)
	if err != nil {
		t.Fatalf("NGrams: %v", err)
	}
	if grams != nil {
		t.Errorf("NGrams(nil, 2) = %v, want nil", grams)
	}
}

func TestCountNGramsCountsDistinctGrams(t *testing.T) {
	counts, total, err := CountNGrams([]int{1, 2, 1, 2, 1, 2}, 2)
	if err != nil {
		t.Fatalf("CountNGrams: %v", err)
	}
	if total != 5 {
		t.Fatalf("total grams = %d, want 5", total)
	}
	c12, ok := counts[ngramKey([]int{1, 2})]
	if !ok || c12.Count != 3 {
		t.Errorf("count of [1,2] = %+v, want Count 3", c12)
	}
	c21, ok := counts[ngramKey([]int{2, 1})]
	if !ok || c21.Count != 2 {
		t.Errorf("count of [2,1] = %+v, want Count 2", c21)
	}
}

func TestCountValueCountsDistinctUnits(t *testing.T) {
	units := []ValueUnit{{Context: "Identifier", Value: "x"}, {Context: "Identifier", Value: "x"}, {Context: "Int", Value: "1"}}
	counts, total := CountValue(units)
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
	if c := counts[ValueUnit{Context: "Identifier", Value: "x"}]; c == nil || c.Count != 2 {
		t.Errorf("count of (Identifier,x) = %+v, want Count 2", c)
	}
}

func TestCountValueNGramsSlidesWindow(t *testing.T) {
	units := []ValueUnit{{Context: "A", Value: "1"}, {Context: "B", Value: "2"}, {Context: "A", Value: "1"}, {Context: "B", Value: "2"}}
	counts, total, err := CountValueNGrams(units, 2)
	if err != nil {
		t.Fatalf("CountValueNGrams: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
	key := valueNgramKey([]ValueUnit{{Context: "A", Value: "1"}, {Context: "B", Value: "2"}})
	if c, ok := counts[key]; !ok || c.Count != 2 {
		t.Errorf("count of (A,1)(B,2) = %+v, want Count 2", c)
	}
}
