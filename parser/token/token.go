package token

import (
	"fmt"
	"regexp"
)

// Token is a lexical unit of source text.
type Token struct {
	Type   Type
	Text   string
	Source *Location
}

func (tok *Token) String() string {
	if tok.Type == EOF {
		return tok.Type.String()
	}
	return fmt.Sprintf("%s %q", tok.Type, tok.Text)
}

type Type uint

// Type constants used for the lexer/parser.
const (
	INVALID Type = iota
	ERROR
	EOF

	// Atomic expressions & literals
	SYMBOL
	SYMBOL_ESCAPED
	KEYWORD
	NUMBER
	CHAR
	STRING

	COMMENT

	// Operators
	QUOTE
	QUASIQUOTE
	UNQUOTE
	UNQUOTE_SPLICE
	DOT

	// Delimiters
	PAREN_L
	PAREN_R

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID:        "invalid",
		ERROR:          "error",
		EOF:            "EOF",
		SYMBOL:         "symbol",
		SYMBOL_ESCAPED: "escaped-symbol",
		KEYWORD:        "keyword",
		NUMBER:         "number",
		CHAR:           "char",
		STRING:         "string",
		COMMENT:        ";",
		QUOTE:          "'",
		QUASIQUOTE:     "`",
		UNQUOTE:        ",",
		UNQUOTE_SPLICE: ",@",
		DOT:            ".",
		PAREN_L:        "(",
		PAREN_R:        ")",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// Location identifies a position in a named source stream.
type Location struct {
	File string
	Pos  int
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	if loc == nil {
		return "<unknown>"
	}
	switch {
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}

var numberPattern = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?$`)

// IsNumber reports whether text is a NUMBER token rather than a SYMBOL.
func IsNumber(text string) bool {
	return numberPattern.MatchString(text)
}
