package lexer

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/programble/lispy/parser/token"
)

// UnexpectedEOF is the text of the ERROR token emitted when input ends in the
// middle of a token.
const UnexpectedEOF = "unexpected EOF"

// delimiters terminate symbols and numbers in addition to whitespace.
const delimiters = "()'`,\";"

// Lexer produces tokens from a token.Scanner.
type Lexer struct {
	scanner *token.Scanner
	ch      rune // current unicode rune

	readErr error
}

// New initializes and returns a Lexer reading from s.
func New(s *token.Scanner) *Lexer {
	return &Lexer{scanner: s}
}

// NextToken scans and returns the next token.  Once input is exhausted
// NextToken returns EOF tokens indefinitely.
func (lex *Lexer) NextToken() *token.Token {
	if lex.readErr != nil {
		return lex.emitError(lex.readErr, true)
	}
	lex.readErr = lex.skipWhitespace()
	if lex.readErr != nil {
		return lex.emitError(lex.readErr, true)
	}
	lex.readChar()
	if lex.readErr != nil {
		return lex.emitError(lex.readErr, true)
	}
	switch lex.ch {
	case '(':
		return lex.charToken(token.PAREN_L)
	case ')':
		return lex.charToken(token.PAREN_R)
	case '\'':
		return lex.charToken(token.QUOTE)
	case '`':
		return lex.charToken(token.QUASIQUOTE)
	case ',':
		if lex.peekRune() == '@' {
			if err := lex.readChar(); err != nil {
				return lex.emitError(err, false)
			}
			return lex.charToken(token.UNQUOTE_SPLICE)
		}
		return lex.charToken(token.UNQUOTE)
	case ';':
		for lex.peekRune() != '\n' {
			err := lex.readChar()
			if err == io.EOF {
				return lex.scanner.EmitToken(token.COMMENT)
			}
			if err != nil {
				return lex.emitError(err, false)
			}
		}
		return lex.scanner.EmitToken(token.COMMENT)
	case '"':
		return lex.readString()
	case '\\':
		return lex.readCharLiteral()
	case '|':
		return lex.readEscapedSymbol()
	case ':':
		if !isWord(lex.peekRune()) {
			return lex.errorf("invalid keyword: missing name after ':'")
		}
		if err := lex.readWord(); err != nil {
			return lex.emitError(err, false)
		}
		return lex.scanner.EmitToken(token.KEYWORD)
	default:
		if err := lex.readWord(); err != nil {
			return lex.emitError(err, false)
		}
		text := lex.scanner.Text()
		switch {
		case text == ".":
			return lex.scanner.EmitToken(token.DOT)
		case token.IsNumber(text):
			return lex.scanner.EmitToken(token.NUMBER)
		default:
			return lex.scanner.EmitToken(token.SYMBOL)
		}
	}
}

func (lex *Lexer) readString() *token.Token {
	for {
		err := lex.readChar()
		if err != nil {
			return lex.emitError(err, false)
		}
		switch lex.ch {
		case '"':
			return lex.scanner.EmitToken(token.STRING)
		case '\\':
			// Wait until parsing to check the escaped character
			err := lex.readChar()
			if err != nil {
				return lex.emitError(err, false)
			}
		}
	}
}

// readCharLiteral reads a character literal.  The backslash has already been
// scanned.  Named characters like \space continue while letters follow.
func (lex *Lexer) readCharLiteral() *token.Token {
	err := lex.readChar()
	if err != nil {
		return lex.emitError(err, false)
	}
	if unicode.IsLetter(lex.ch) {
		for unicode.IsLetter(lex.peekRune()) {
			if err := lex.readChar(); err != nil {
				return lex.emitError(err, false)
			}
		}
	}
	return lex.scanner.EmitToken(token.CHAR)
}

func (lex *Lexer) readEscapedSymbol() *token.Token {
	for {
		err := lex.readChar()
		if err != nil {
			return lex.emitError(err, false)
		}
		switch lex.ch {
		case '|':
			return lex.scanner.EmitToken(token.SYMBOL_ESCAPED)
		case '\\':
			err := lex.readChar()
			if err != nil {
				return lex.emitError(err, false)
			}
		}
	}
}

func (lex *Lexer) readWord() error {
	for isWord(lex.peekRune()) {
		err := lex.readChar()
		if err != nil {
			return err
		}
	}
	return nil
}

func (lex *Lexer) emit(typ token.Type, text string) *token.Token {
	tok := &token.Token{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) emitError(err error, expectEOF bool) *token.Token {
	if err == io.EOF {
		if expectEOF {
			return lex.emit(token.EOF, "")
		}
		return lex.emit(token.ERROR, UnexpectedEOF)
	}
	return lex.emit(token.ERROR, err.Error())
}

func (lex *Lexer) errorf(format string, v ...interface{}) *token.Token {
	return lex.emitError(fmt.Errorf(format, v...), false)
}

func (lex *Lexer) charToken(typ token.Type) *token.Token {
	return lex.scanner.EmitToken(typ)
}

func (lex *Lexer) skipWhitespace() error {
	for {
		c, ok := lex.scanner.Peek()
		if !ok || !unicode.IsSpace(c) {
			break
		}
		err := lex.readChar()
		if err != nil {
			return err
		}
	}
	lex.scanner.Ignore()
	// Surface EOF (or a read error) now rather than emitting an empty token.
	if _, ok := lex.scanner.Peek(); !ok {
		return lex.scanner.ScanRune()
	}
	return nil
}

// peekRune returns the next rune or 0 at the end of input.
func (lex *Lexer) peekRune() rune {
	r, _ := lex.scanner.Peek()
	return r
}

func (lex *Lexer) readChar() error {
	lex.readErr = lex.scanner.ScanRune()
	if lex.readErr != nil {
		return lex.readErr
	}
	lex.ch = lex.scanner.Rune()
	return nil
}

func isWord(c rune) bool {
	if c == 0 || unicode.IsSpace(c) {
		return false
	}
	return !strings.ContainsRune(delimiters, c)
}
