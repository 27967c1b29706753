package rdparser

import (
	"strings"

	"github.com/programble/lispy/lisp"
	"github.com/programble/lispy/parser/token"
)

// Interactive accumulates lines of input until they form complete
// expressions.  A REPL feeds each line it reads to Interactive and evaluates
// the expressions that are returned.
type Interactive struct {
	Name string
	buf  strings.Builder
}

// NewInteractive initializes and returns a new Interactive parser.  Source
// locations in parsed expressions refer to name.
func NewInteractive(name string) *Interactive {
	return &Interactive{Name: name}
}

// Prompt returns a simple prompt that can be used by a REPL.
func (p *Interactive) Prompt() string {
	if p.IsParsing() {
		return "  "
	}
	return "> "
}

// IsParsing returns true if p holds the beginning of an incomplete
// expression.
func (p *Interactive) IsParsing() bool {
	return p.buf.Len() > 0
}

// Feed appends line to the buffered input and parses it.  While the input is
// incomplete Feed returns no expressions and a nil error.  Otherwise the
// buffer is reset and the parsed expressions, or the parse error, are
// returned.
func (p *Interactive) Feed(line string) ([]*lisp.LVal, error) {
	p.buf.WriteString(line)
	p.buf.WriteString("\n")
	src := p.buf.String()
	exprs, err := New(token.NewScanner(p.Name, strings.NewReader(src))).ParseProgram()
	if err != nil && Incomplete(err) {
		return nil, nil
	}
	p.Reset()
	return exprs, err
}

// Reset discards any buffered input.
func (p *Interactive) Reset() {
	p.buf.Reset()
}
