package assembly

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// AssemblyLexer defines the lexical structure for .otl assembly files.
// The format is line-oriented with VHDL-style comments.
var AssemblyLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments (-- to end of line)
	{Name: "Comment", Pattern: `--[^\n]*`},

	// Whitespace
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	// Keywords (case-insensitive)
	{Name: "KwBoard", Pattern: `(?i)\bBOARD\b`},
	{Name: "KwRect", Pattern: `(?i)\bRECT\b`},
	{Name: "KwThickness", Pattern: `(?i)\bTHICKNESS\b`},
	{Name: "KwHole", Pattern: `(?i)\bHOLE\b`},
	{Name: "KwUse", Pattern: `(?i)\bUSE\b`},
	{Name: "KwAs", Pattern: `(?i)\bAS\b`},
	{Name: "KwConnect", Pattern: `(?i)\bCONNECT\b`},
	{Name: "KwTo", Pattern: `(?i)\bTO\b`},
	{Name: "KwNet", Pattern: `(?i)\bNET\b`},

	// Literals
	{Name: "Float", Pattern: `\d+\.\d+`},
	{Name: "Integer", Pattern: `\d+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},

	// Punctuation
	{Name: "LBracket", Pattern: `\[`},
	{Name: "RBracket", Pattern: `\]`},
	{Name: "Dot", Pattern: `\.`},
	{Name: "At", Pattern: `@`},
})
