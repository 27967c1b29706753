package rdparser

import (
	"github.com/programble/lispy/parser/lexer"
	"github.com/programble/lispy/parser/token"
)

// TokenSource buffers one token of lookahead over a lexer.  Comments are
// skipped.
type TokenSource struct {
	lex   *lexer.Lexer
	Token *token.Token
	Peek  *token.Token
}

// NewTokenSource initializes and returns a new TokenSource that scans tokens
// from scanner.
func NewTokenSource(scanner *token.Scanner) *TokenSource {
	s := &TokenSource{
		lex: lexer.New(scanner),
	}
	s.scan()
	return s
}

// AcceptType scans the next token if it has one of the given types.
func (s *TokenSource) AcceptType(typ ...token.Type) bool {
	for _, typ := range typ {
		if s.Peek.Type == typ {
			s.scan()
			return true
		}
	}
	return false
}

// Scan advances to the next token.  Scan returns false without advancing once
// the source is exhausted.
func (s *TokenSource) Scan() bool {
	if s.IsEOF() {
		s.Token = s.Peek
		return false
	}
	s.scan()
	return true
}

// IsEOF returns true when no tokens remain.
func (s *TokenSource) IsEOF() bool {
	return s.Peek.Type == token.EOF
}

func (s *TokenSource) scan() {
	s.Token = s.Peek
	s.Peek = s.lex.NextToken()
	for s.Peek.Type == token.COMMENT {
		s.Peek = s.lex.NextToken()
	}
}
