// Package grammar implements C13: an optional textual surface for the
// Decision-Tree-Learning DSL, so a program can be written as source instead
// of built programmatically (package program). Grounded on the teacher's
// grammar package (lexer.go/parser.go/grammar.go), reusing the same
// participle-based stateful lexer and caret-style error reporting, with a
// grammar for this DSL's seven node shapes instead of kanso's.
package grammar

import "github.com/alecthomas/participle/v2/lexer"

// Lexer tokenizes DSL source: identifiers/keywords, the filter-polarity
// punctuation, statement terminators, and braces.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Number", `[0-9]+`, nil},
		{"Punctuation", `[{}();=+\-]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
