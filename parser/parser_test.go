package parser_test

import (
	goparser "go/parser"
	gotoken "go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/programble/lispy/lisp"
	"github.com/programble/lispy/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpression(t *testing.T) {
	tests := []struct {
		src     string
		printed string
	}{
		{"1", "1"},
		{"-2.5", "-2.5"},
		{"1e3", "1000"},
		{`"a\tb"`, `"a\tb"`},
		{`\a`, `\a`},
		{`\space`, `\space`},
		{":key", ":key"},
		{"sym", "sym"},
		{"nil", "nil"},
		{"()", "nil"},
		{"(1 2 3)", "(1 2 3)"},
		{"(1 . 2)", "(1 . 2)"},
		{"(1 2 . (3 4))", "(1 2 3 4)"},
		{"(1 . nil)", "(1)"},
		{"'x", "(quote x)"},
		{"`(a ,b ,@c)", "(quasiquote (a (unquote b) (unquote-splice c)))"},
		{"|a b|", "|a b|"},
		{"|1|", "|1|"},
		{"(a ; comment\n b)", "(a b)"},
	}
	for _, test := range tests {
		v, err := parser.ParseExpression(test.src)
		if assert.NoError(t, err, test.src) {
			assert.Equal(t, test.printed, v.String(), test.src)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	srcs := []string{
		"(lambda (x ? (y 2) & rest) (list x y rest))",
		"(a (b . c) . d)",
		`("str" \newline :kw |odd sym| -3)`,
		"(quasiquote (x (unquote y)))",
	}
	for _, src := range srcs {
		v, err := parser.ParseExpression(src)
		require.NoError(t, err, src)
		again, err := parser.ParseExpression(v.String())
		require.NoError(t, err, v.String())
		assert.True(t, lisp.Equal(v, again), src)
	}
}

func TestParseSourceLocations(t *testing.T) {
	exprs, err := parser.ParseString("test", "(a\n  (b c))")
	require.NoError(t, err)
	require.Len(t, exprs, 1)
	assert.Equal(t, "test:1:1", exprs[0].Source.String())
	inner := exprs[0].Cells[1]
	assert.Equal(t, "test:2:3", inner.Source.String())
	assert.Equal(t, "test:2:6", inner.Cells[1].Source.String())
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"(1 2",
		")",
		"(. 1)",
		"(1 . 2 3)",
		`"unterminated`,
		`\bogus`,
		"1 2",
	}
	for _, src := range tests {
		_, err := parser.ParseExpression(src)
		assert.Error(t, err, src)
	}
}

func TestParseFixtures(t *testing.T) {
	files, err := filepath.Glob(filepath.Join(fixtureDir, "*.lisp"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, path := range files {
		src, err := os.ReadFile(path)
		require.NoError(t, err)
		exprs, err := parser.ParseString(path, string(src))
		if assert.NoError(t, err, path) {
			assert.NotEmpty(t, exprs, path)
		}
	}
}

// The grammar in the package documentation contains regular expressions.
// Keep it parseable Go and attached to the package clause.
func TestPackageDocGrammar(t *testing.T) {
	f, err := goparser.ParseFile(gotoken.NewFileSet(), "parser.go", nil, goparser.ParseComments)
	require.NoError(t, err)
	require.NotNil(t, f.Doc)
	doc := f.Doc.Text()
	assert.True(t, strings.HasPrefix(doc, "Package parser "), doc)
	assert.Contains(t, doc, `symbol  := /[^[:space:]()'`+"`"+`,";]+/ | '|' /([^|\\]|\\.)*/ '|'`)
	assert.Contains(t, doc, "The symbol nil is read as the empty list.")
}
