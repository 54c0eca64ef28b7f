// Package tokenizer extracts Esprima-lexical-unit-shaped tokens from
// JavaScript source, grounded on tokens2int/tokenizer_esprima.py's
// TOKENS_DICO classification. The source shells out to a Node.js process
// running Esprima's tokenizer; this port runs go-tree-sitter's javascript
// grammar in-process instead (the teacher's own dependency, already used
// for exactly this purpose in pkg/parser), so no second runtime is spawned
// per file.
package tokenizer

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/Aurore54F/jstap/pkg/parser"
)

// Token is one lexical unit: its Esprima-equivalent kind and literal value.
type Token struct {
	Kind  string
	Value string
}

// Separator joins (kind, value) pairs into the flat wire stream
// get_tokens_features/extract_syntactic_features expect, including a
// trailing separator after the last value (mirroring the source's
// split(...)[:-1] discarding a final empty element).
const Separator = "###aaa@@@###qqq"

// Tokenizer wraps a pooled tree-sitter parser service restricted to
// JavaScript, adapting the teacher's multi-language parser.Service down to
// the single grammar this analyzer needs.
type Tokenizer struct {
	svc *parser.Service
}

// New returns a Tokenizer with its own parser pool.
func New() *Tokenizer {
	svc := parser.NewService()
	svc.RegisterLanguage("javascript", javascript.GetLanguage())
	return &Tokenizer{svc: svc}
}

// Tokenize parses source and returns its flat token stream in source
// order, leaves only (tree-sitter's grammar already discards the internal
// nodes that matter for parsing but carry no lexical identity of their
// own).
func (t *Tokenizer) Tokenize(source []byte) ([]Token, error) {
	tree, root, err := t.svc.ParseWithTree(source, "javascript")
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	if root == nil {
		return nil, fmt.Errorf("tokenize: tree-sitter produced no root node")
	}
	defer tree.Close()

	var toks []Token
	collectLeaves(root, source, &toks)
	return toks, nil
}

// WireFormat renders toks into the flat (kind, value, kind, value, ...)
// stream separated by Separator, matching the subprocess tokenizer's
// stdout shape byte-for-byte other than the trailing-separator handling,
// which callers strip the same way (split on Separator, drop the last
// empty element).
func WireFormat(toks []Token) string {
	var b strings.Builder
	for _, tok := range toks {
		b.WriteString(tok.Kind)
		b.WriteString(Separator)
		b.WriteString(tok.Value)
		b.WriteString(Separator)
	}
	return b.String()
}

func collectLeaves(n *sitter.Node, source []byte, out *[]Token) {
	if n.ChildCount() == 0 {
		if tok, ok := classify(n, source); ok {
			*out = append(*out, tok)
		}
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		collectLeaves(n.Child(i), source, out)
	}
}

// classify maps a tree-sitter leaf node to its Esprima-lexical-unit kind
// name; pkg/pdg.TokenKindOf resolves that name to its fixed dictionary
// integer at vectorization time, so the (kind, value) pair stays symbolic
// until then.
func classify(n *sitter.Node, source []byte) (Token, bool) {
	text := n.Content(source)
	if text == "" {
		return Token{}, false
	}
	kind := kindOf(n.Type(), text)
	return Token{Kind: kind, Value: text}, true
}

func kindOf(nodeType, text string) string {
	switch nodeType {
	case "identifier", "property_identifier", "shorthand_property_identifier",
		"statement_identifier", "private_property_identifier":
		return "Identifier"
	case "number":
		return "Numeric"
	case "string", "string_fragment":
		return "String"
	case "template_string":
		return "Template"
	case "regex", "regex_pattern":
		return "RegularExpression"
	case "true", "false":
		return "Boolean"
	case "null", "undefined":
		return "Null"
	case "comment":
		if strings.HasPrefix(text, "//") {
			return "LineComment"
		}
		return "BlockComment"
	}
	if jsKeywords[nodeType] {
		return "Keyword"
	}
	if isPunctuatorText(text) {
		return "Punctuator"
	}
	return "Unknown"
}

// jsKeywords lists tree-sitter's anonymous keyword-literal node types,
// which carry the keyword text itself as their Type().
var jsKeywords = map[string]bool{
	"var": true, "let": true, "const": true, "function": true, "return": true,
	"if": true, "else": true, "for": true, "while": true, "do": true,
	"break": true, "continue": true, "switch": true, "case": true, "default": true,
	"throw": true, "try": true, "catch": true, "finally": true, "new": true,
	"delete": true, "typeof": true, "instanceof": true, "in": true, "of": true,
	"this": true, "class": true, "extends": true, "super": true, "import": true,
	"export": true, "from": true, "as": true, "async": true, "await": true,
	"yield": true, "static": true, "get": true, "set": true, "void": true,
	"with": true, "debugger": true,
}

// isPunctuatorText reports whether text is made up entirely of JS operator
// and punctuation characters, the catch-all for tree-sitter's many
// anonymous single-character/multi-character operator node types.
func isPunctuatorText(text string) bool {
	for _, r := range text {
		switch r {
		case '(', ')', '{', '}', '[', ']', ';', ',', '.', '<', '>', '=', '+',
			'-', '*', '/', '%', '&', '|', '^', '!', '~', '?', ':', '#':
			continue
		default:
			return false
		}
	}
	return true
}
