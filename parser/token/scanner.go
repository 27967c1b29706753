package token

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Scanner facilitates construction of tokens from a byte stream (io.Reader).
// Scanner tracks line and column numbers so every token can be given an
// accurate Location.
type Scanner struct {
	file string
	r    *bufio.Reader

	// position of the next rune to be scanned
	pos  int
	line int
	col  int

	// start of the current token
	start    Location
	hasStart bool

	text strings.Builder
	c    rune

	peeked  bool
	peek    rune
	peekN   int
	peekErr error
}

// NewScanner initializes and returns a new Scanner.
func NewScanner(file string, r io.Reader) *Scanner {
	return &Scanner{
		file: file,
		r:    bufio.NewReader(r),
		line: 1,
		col:  1,
	}
}

// EmitToken returns a token containing the text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.text.Reset()
	s.hasStart = false
}

// Text returns a string containing text scanned since the last call to either
// EmitToken or Ignore.
func (s *Scanner) Text() string {
	return s.text.String()
}

// Rune returns the current unicode rune that is being scanned.  The rune
// returned by Rune is the last rune in a token returned by EmitToken.
func (s *Scanner) Rune() rune {
	return s.c
}

// Peek returns the next rune to be scanned, if there are any.  If an invalid
// utf-8 sequence or EOF prevents futher runes from being scanned Peek returns
// a false second value.  If Peek returns a false value the next call to
// s.ScanRune will return an error that reflects of the cause.
func (s *Scanner) Peek() (rune, bool) {
	if !s.peeked {
		s.peek, s.peekN, s.peekErr = s.readRune()
		s.peeked = true
	}
	if s.peekErr != nil {
		return 0, false
	}
	return s.peek, true
}

// ScanRune attempts to scan a utf-8 rune from the input for inclusion in the
// current token.  If an error prevents a valid unicode rune from being scanned
// then an error will be returned.
func (s *Scanner) ScanRune() error {
	c, n, err := s.next()
	if err != nil {
		return err
	}
	if !s.hasStart {
		s.start = Location{File: s.file, Pos: s.pos, Line: s.line, Col: s.col}
		s.hasStart = true
	}
	s.c = c
	s.text.WriteRune(c)
	s.pos += n
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return nil
}

func (s *Scanner) next() (rune, int, error) {
	if s.peeked {
		s.peeked = false
		return s.peek, s.peekN, s.peekErr
	}
	return s.readRune()
}

func (s *Scanner) readRune() (rune, int, error) {
	c, n, err := s.r.ReadRune()
	if err != nil {
		return 0, 0, err
	}
	if c == utf8.RuneError && n == 1 {
		return 0, 0, fmt.Errorf("%s: invalid utf-8 sequence in source text", s.Loc())
	}
	return c, n, nil
}

// LocStart returns a Location referencing the beginning of the current token.
// If no text has been scanned for the token LocStart returns the location of
// the next rune.
func (s *Scanner) LocStart() *Location {
	if !s.hasStart {
		return s.Loc()
	}
	loc := s.start
	return &loc
}

// Loc returns a Location referencing the next rune to be scanned.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Pos:  s.pos,
		Line: s.line,
		Col:  s.col,
	}
}
