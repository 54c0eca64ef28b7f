package pdg

// ReservedWordsJS is the fixed set of ECMAScript reserved words the DFG
// builder must never treat as a user-defined Identifier when resolving
// hoisted/unknown variables (spec.md §6 fixed dictionaries).
var ReservedWordsJS = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "export": true, "extends": true, "finally": true,
	"for": true, "function": true, "if": true, "import": true, "in": true,
	"instanceof": true, "new": true, "return": true, "super": true,
	"switch": true, "this": true, "throw": true, "try": true, "typeof": true,
	"var": true, "void": true, "while": true, "with": true, "yield": true,
	"let": true, "static": true, "enum": true, "await": true,
	"implements": true, "package": true, "protected": true, "interface": true,
	"private": true, "public": true, "null": true, "true": true, "false": true,
	"undefined": true, "NaN": true, "Infinity": true, "arguments": true,
	"eval": true, "of": true, "async": true, "get": true, "set": true,
}

// IsReservedJS reports whether name is a reserved word the scope builder
// must not register as a declared variable.
func IsReservedJS(name string) bool { return ReservedWordsJS[name] }
