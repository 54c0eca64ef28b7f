package tokenizer

import (
	"strings"
	"testing"
)

func TestKindOfClassifiesLexicalForms(t *testing.T) {
	cases := []struct {
		nodeType, text, want string
	}{
		{"identifier", "x", "Identifier"},
		{"number", "42", "Numeric"},
		{"string", "hello", "String"},
		{"template_string", "`hi`", "Template"},
		{"regex", "/a/g", "RegularExpression"},
		{"true", "true", "Boolean"},
		{"null", "null", "Null"},
		{"var", "var", "Keyword"},
		{"comment", "// hi", "LineComment"},
		{"comment", "/* hi */", "BlockComment"},
	}
	for _, c := range cases {
		if got := kindOf(c.nodeType, c.text); got != c.want {
			t.Errorf("kindOf(%q, %q) = %q, want %q", c.nodeType, c.text, got, c.want)
		}
	}
}

func TestKindOfFallsBackToPunctuatorThenUnknown(t *testing.T) {
	if got := kindOf("anonymous_operator", "=>"); got != "Punctuator" {
		t.Errorf("kindOf(anonymous_operator, =>) = %q, want Punctuator", got)
	}
	if got := kindOf("anonymous_operator", "abc"); got != "Unknown" {
		t.Errorf("kindOf(anonymous_operator, abc) = %q, want Unknown", got)
	}
}

func TestIsPunctuatorText(t *testing.T) {
	if !isPunctuatorText("=>") {
		t.Error("=> should be classified as punctuator text")
	}
	if !isPunctuatorText("{") {
		t.Error("{ should be classified as punctuator text")
	}
	if isPunctuatorText("abc") {
		t.Error("abc should not be classified as punctuator text")
	}
	if isPunctuatorText("") {
		t.Error("empty text should not be classified as punctuator text")
	}
}

func TestTokenizeProducesLeafTokensInSourceOrder(t *testing.T) {
	tok := New()
	toks, err := tok.Tokenize([]byte("var x = 1;"))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(toks) == 0 {
		t.Fatal("expected at least one token")
	}
	if toks[0].Kind != "Keyword" || toks[0].Value != "var" {
		t.Errorf("first token = %+v, want {Keyword var}", toks[0])
	}

	found := false
	for _, tk := range toks {
		if tk.Kind == "Identifier" && tk.Value == "x" {
			found = true
		}
	}
	if !found {
		t.Error("expected an Identifier token for x")
	}
}

func TestWireFormatJoinsTokensWithSeparator(t *testing.T) {
	toks := []Token{{Kind: "Keyword", Value: "var"}, {Kind: "Identifier", Value: "x"}}
	out := WireFormat(toks)
	parts := strings.Split(out, Separator)
	// Each token contributes kind and value, plus a trailing separator
	// produces one final empty element, mirroring split(...)[:-1] callers.
	if len(parts) != 5 {
		t.Fatalf("WireFormat produced %d separator-delimited parts, want 5: %q", len(parts), out)
	}
	if parts[0] != "Keyword" || parts[1] != "var" || parts[2] != "Identifier" || parts[3] != "x" || parts[4] != "" {
		t.Errorf("WireFormat parts = %v, want [Keyword var Identifier x \"\"]", parts)
	}
}
