// Package parser provides a lisp parser.
//
//	expr    := '(' <expr>* ')' | '(' <expr>+ '.' <expr> ')' | <atom> | <sugar>
//	sugar   := "'" <expr> | '`' <expr> | ',' <expr> | ',@' <expr>
//	atom    := <number> | <string> | <char> | <keyword> | <symbol>
//	number  := /[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?/
//	string  := '"' <strcontent> '"'
//	char    := '\' /./ | '\space' | '\newline' | '\tab' | '\return'
//	keyword := ':' <symbol>
//	symbol  := /[^[:space:]()'`,";]+/ | '|' /([^|\\]|\\.)*/ '|'
//
// The symbol nil is read as the empty list.  Comments begin with a semicolon
// and extend to the end of the line.
package parser

import (
	"strings"

	"github.com/programble/lispy/lisp"
	"github.com/programble/lispy/parser/rdparser"
)

// NewReader returns a lisp.Reader that can be used with lisp.WithReader.
func NewReader() lisp.Reader {
	return rdparser.NewReader()
}

// ParseString parses the expressions in src.  Source locations refer to name.
func ParseString(name, src string) ([]*lisp.LVal, error) {
	return NewReader().Read(name, strings.NewReader(src))
}

// ParseExpression parses src, which must contain exactly one expression.
func ParseExpression(src string) (*lisp.LVal, error) {
	exprs, err := ParseString("<string>", src)
	if err != nil {
		return nil, err
	}
	if len(exprs) != 1 {
		return nil, &rdparser.ParseError{
			Msg: "expected exactly one expression",
		}
	}
	return exprs[0], nil
}
