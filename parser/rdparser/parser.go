package rdparser

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/programble/lispy/lisp"
	"github.com/programble/lispy/parser/lexer"
	"github.com/programble/lispy/parser/token"
)

// ErrUnexpectedToken is wrapped by errors for tokens that cannot appear where
// they were found.
var ErrUnexpectedToken = errors.New("unexpected token")

// ParseError is an error reading source text.  Errors caused by input that
// ends in the middle of an expression wrap io.ErrUnexpectedEOF.
type ParseError struct {
	Source *token.Location
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Source, e.Msg)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Incomplete returns true if err was caused by input that ended in the middle
// of an expression.
func Incomplete(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF)
}

type reader struct {
}

// NewReader returns a lisp.Reader to use in a lisp.Runtime.
func NewReader() lisp.Reader {
	return &reader{}
}

// Read implements lisp.Reader.
func (*reader) Read(name string, r io.Reader) ([]*lisp.LVal, error) {
	p := New(token.NewScanner(name, r))
	return p.ParseProgram()
}

// Parser is a lisp parser.
type Parser struct {
	src *TokenSource
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(scanner *token.Scanner) *Parser {
	return &Parser{src: NewTokenSource(scanner)}
}

// ParseProgram parses expressions until the input is exhausted.
func (p *Parser) ParseProgram() ([]*lisp.LVal, error) {
	var exprs []*lisp.LVal
	for !p.src.IsEOF() {
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// ParseExpression parses a single expression.
func (p *Parser) ParseExpression() (*lisp.LVal, error) {
	switch p.PeekType() {
	case token.NUMBER:
		return p.ParseLiteralNumber()
	case token.STRING:
		return p.ParseLiteralString()
	case token.CHAR:
		return p.ParseLiteralChar()
	case token.SYMBOL:
		return p.ParseSymbol()
	case token.SYMBOL_ESCAPED:
		return p.ParseEscapedSymbol()
	case token.KEYWORD:
		return p.ParseKeyword()
	case token.QUOTE, token.QUASIQUOTE, token.UNQUOTE, token.UNQUOTE_SPLICE:
		return p.ParseQuote()
	case token.PAREN_L:
		return p.ParseConsExpression()
	case token.EOF:
		p.src.Scan()
		return nil, p.errorf(io.ErrUnexpectedEOF, "unexpected EOF")
	case token.ERROR:
		p.src.Scan()
		if p.Token().Text == lexer.UnexpectedEOF {
			return nil, p.errorf(io.ErrUnexpectedEOF, "%s", p.Token().Text)
		}
		return nil, p.errorf(nil, "scan error: %s", p.Token().Text)
	default:
		p.src.Scan()
		return nil, p.errorf(ErrUnexpectedToken, "unexpected %s", p.Token().Type)
	}
}

func (p *Parser) ParseLiteralNumber() (*lisp.LVal, error) {
	p.src.Scan()
	text := p.Token().Text
	x, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, p.errorf(err, "invalid number literal: %v", text)
	}
	return p.tokenLVal(lisp.Number(x)), nil
}

func (p *Parser) ParseLiteralString() (*lisp.LVal, error) {
	p.src.Scan()
	text := p.Token().Text
	s, err := strconv.Unquote(text)
	if err != nil {
		return nil, p.errorf(err, "invalid string literal: %v", text)
	}
	return p.tokenLVal(lisp.String(s)), nil
}

// ParseLiteralChar parses a character literal such as \a or \newline.
func (p *Parser) ParseLiteralChar() (*lisp.LVal, error) {
	p.src.Scan()
	text := strings.TrimPrefix(p.Token().Text, `\`)
	if utf8.RuneCountInString(text) == 1 {
		c, _ := utf8.DecodeRuneInString(text)
		return p.tokenLVal(lisp.Char(c)), nil
	}
	c, ok := lisp.CharByName(text)
	if !ok {
		return nil, p.errorf(nil, "unknown character name: %v", text)
	}
	return p.tokenLVal(lisp.Char(c)), nil
}

// ParseSymbol parses a symbol.  The symbol nil is read as the empty list.
func (p *Parser) ParseSymbol() (*lisp.LVal, error) {
	p.src.Scan()
	text := p.Token().Text
	if text == lisp.NilSymbol {
		return p.tokenLVal(lisp.Nil()), nil
	}
	return p.tokenLVal(lisp.Symbol(text)), nil
}

// ParseEscapedSymbol parses a symbol delimited by vertical bars.  Within the
// bars a backslash escapes the following character.
func (p *Parser) ParseEscapedSymbol() (*lisp.LVal, error) {
	p.src.Scan()
	text := p.Token().Text
	text = text[1 : len(text)-1]
	var buf strings.Builder
	escape := false
	for _, c := range text {
		if !escape && c == '\\' {
			escape = true
			continue
		}
		escape = false
		buf.WriteRune(c)
	}
	return p.tokenLVal(lisp.Symbol(buf.String())), nil
}

func (p *Parser) ParseKeyword() (*lisp.LVal, error) {
	p.src.Scan()
	return p.tokenLVal(lisp.Keyword(strings.TrimPrefix(p.Token().Text, ":"))), nil
}

var quoteSymbols = map[token.Type]string{
	token.QUOTE:          lisp.QuoteSymbol,
	token.QUASIQUOTE:     lisp.QuasiquoteSymbol,
	token.UNQUOTE:        lisp.UnquoteSymbol,
	token.UNQUOTE_SPLICE: lisp.UnquoteSpliceSymbol,
}

// ParseQuote parses reader shorthand: 'x, `x, ,x and ,@x.
func (p *Parser) ParseQuote() (*lisp.LVal, error) {
	p.src.Scan()
	tok := p.Token()
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	sym := lisp.Symbol(quoteSymbols[tok.Type])
	sym.Source = tok.Source
	v := lisp.List(sym, expr)
	v.Source = tok.Source
	return v, nil
}

// ParseConsExpression parses a parenthesized list.  A dot before the final
// expression makes the list improper.
func (p *Parser) ParseConsExpression() (*lisp.LVal, error) {
	p.src.Scan()
	open := p.Token()
	var cells []*lisp.LVal
	for {
		switch p.PeekType() {
		case token.EOF:
			return nil, &ParseError{
				Source: open.Source,
				Msg:    "unmatched " + open.Text,
				Err:    io.ErrUnexpectedEOF,
			}
		case token.PAREN_R:
			p.src.Scan()
			v := lisp.SExpr(cells)
			v.Source = open.Source
			return v, nil
		case token.DOT:
			p.src.Scan()
			if len(cells) == 0 {
				return nil, p.errorf(ErrUnexpectedToken, "unexpected %s at beginning of list", p.Token().Type)
			}
			tail, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			if !p.src.AcceptType(token.PAREN_R) {
				if p.src.IsEOF() {
					return nil, &ParseError{
						Source: open.Source,
						Msg:    "unmatched " + open.Text,
						Err:    io.ErrUnexpectedEOF,
					}
				}
				p.src.Scan()
				return nil, p.errorf(ErrUnexpectedToken, "unexpected %s after dotted tail", p.Token().Type)
			}
			v := lisp.Dotted(cells, tail)
			v.Source = open.Source
			return v, nil
		default:
			x, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			cells = append(cells, x)
		}
	}
}

// Token returns the last token scanned.
func (p *Parser) Token() *token.Token {
	return p.src.Token
}

// PeekType returns the type of the next token.
func (p *Parser) PeekType() token.Type {
	return p.src.Peek.Type
}

func (p *Parser) tokenLVal(v *lisp.LVal) *lisp.LVal {
	v.Source = p.Token().Source
	return v
}

func (p *Parser) errorf(err error, format string, v ...interface{}) error {
	return &ParseError{
		Source: p.Token().Source,
		Msg:    fmt.Sprintf(format, v...),
		Err:    err,
	}
}
