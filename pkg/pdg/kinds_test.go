package pdg

import "testing"

func TestASTKindOfKnownAndUnknown(t *testing.T) {
	if got := ASTKindOf("Identifier"); got != ASTKinds["Identifier"] {
		t.Errorf("ASTKindOf(Identifier) = %d, want %d", got, ASTKinds["Identifier"])
	}
	if got := ASTKindOf("NotARealNodeType"); got != ASTKinds["Unknown"] {
		t.Errorf("ASTKindOf(unrecognized) = %d, want Unknown bucket %d", got, ASTKinds["Unknown"])
	}
}

func TestASTKindsAreStable(t *testing.T) {
	if ASTKinds["Program"] != 0 {
		t.Error("Program must stay at index 0: renumbering invalidates trained dictionaries")
	}
	seen := make(map[int]string)
	for name, idx := range ASTKinds {
		if other, ok := seen[idx]; ok {
			t.Errorf("index %d used by both %q and %q", idx, name, other)
		}
		seen[idx] = name
	}
}

func TestTokenKindOfKnownAndUnknown(t *testing.T) {
	if got := TokenKindOf("Numeric"); got != TokenKinds["Numeric"] {
		t.Errorf("TokenKindOf(Numeric) = %d, want %d", got, TokenKinds["Numeric"])
	}
	if got := TokenKindOf("tree_sitter_mystery_token"); got != TokenKinds["Unknown"] {
		t.Errorf("TokenKindOf(unrecognized) = %d, want Unknown bucket %d", got, TokenKinds["Unknown"])
	}
}
