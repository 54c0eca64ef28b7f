package pdg

// ASTKinds is the fixed dictionary mapping every Esprima/ESTree node type
// this analyzer understands to a stable integer, used to convert AST-level
// syntactic units into the feature-space integers pkg/featurespace expects.
// The table is fixed, not learned: adding a JS syntax form means adding a
// line here, never renumbering existing entries (renumbering would
// invalidate every previously-trained feature dictionary).
var ASTKinds = map[string]int{
	"Program":                  0,
	"Identifier":               1,
	"Literal":                  2,
	"ArrayExpression":          3,
	"ObjectExpression":         4,
	"Property":                 5,
	"FunctionExpression":       6,
	"ArrowFunctionExpression":  7,
	"FunctionDeclaration":      8,
	"SequenceExpression":       9,
	"UnaryExpression":          10,
	"BinaryExpression":         11,
	"AssignmentExpression":     12,
	"UpdateExpression":         13,
	"LogicalExpression":        14,
	"ConditionalExpression":    15,
	"NewExpression":            16,
	"CallExpression":           17,
	"MemberExpression":         18,
	"ExpressionStatement":      19,
	"BlockStatement":           20,
	"EmptyStatement":           21,
	"DebuggerStatement":        22,
	"WithStatement":            23,
	"ReturnStatement":          24,
	"LabeledStatement":         25,
	"BreakStatement":           26,
	"ContinueStatement":        27,
	"IfStatement":              28,
	"SwitchStatement":          29,
	"SwitchCase":               30,
	"ThrowStatement":           31,
	"TryStatement":             32,
	"CatchClause":              33,
	"WhileStatement":           34,
	"DoWhileStatement":         35,
	"ForStatement":             36,
	"ForInStatement":           37,
	"ForOfStatement":           38,
	"VariableDeclaration":      39,
	"VariableDeclarator":       40,
	"ClassDeclaration":         41,
	"ClassExpression":          42,
	"ClassBody":                43,
	"MethodDefinition":         44,
	"RestElement":              45,
	"SpreadElement":            46,
	"TemplateLiteral":          47,
	"TemplateElement":          48,
	"TaggedTemplateExpression": 49,
	"Super":                    50,
	"ThisExpression":           51,
	"YieldExpression":          52,
	"AwaitExpression":          53,
	"ArrayPattern":             54,
	"ObjectPattern":            55,
	"AssignmentPattern":        56,
	"ImportDeclaration":        57,
	"ImportSpecifier":          58,
	"ImportDefaultSpecifier":   59,
	"ImportNamespaceSpecifier": 60,
	"ExportNamedDeclaration":   61,
	"ExportDefaultDeclaration": 62,
	"ExportAllDeclaration":     63,
	"ExportSpecifier":          64,
	"MetaProperty":             65,
	"ChainExpression":          66,
	"OptionalMemberExpression": 67,
	"OptionalCallExpression":   68,
	"PrivateIdentifier":        69,
	"PropertyDefinition":       70,
	"StaticBlock":              71,
	"Line":                     72,
	"Block":                    73,
	"Unknown":                  74,
}

// TokenKinds is the fixed dictionary of lexical unit kinds emitted by the
// tokenizer, mirroring tokenizer_esprima's TOKENS_DICO exactly (Boolean
// through BlockComment) plus an "Unknown" bucket for tree-sitter token
// types that have no Esprima-lexical-unit equivalent (tree-sitter's lexer
// splits/names tokens differently from Esprima's, so some translation
// slack is unavoidable switching backends).
var TokenKinds = map[string]int{
	"Boolean":           0,
	"<end>":             1,
	"Identifier":        2,
	"Keyword":           3,
	"Null":              4,
	"Numeric":           5,
	"Punctuator":        6,
	"String":            7,
	"RegularExpression": 8,
	"Template":          9,
	"LineComment":       10,
	"BlockComment":      11,
	"Unknown":           12,
}

// ASTKindOf resolves an unknown AST node name to its fixed dictionary
// index, falling back to the catch-all "Unknown" bucket rather than
// growing the dictionary at classification time.
func ASTKindOf(name string) int {
	if v, ok := ASTKinds[name]; ok {
		return v
	}
	return ASTKinds["Unknown"]
}

// TokenKindOf resolves a tree-sitter token type to the fixed token
// dictionary, falling back to "Unknown".
func TokenKindOf(name string) int {
	if v, ok := TokenKinds[name]; ok {
		return v
	}
	return TokenKinds["Unknown"]
}
