// Package lispytest runs table driven tests of lisp source evaluated against
// an environment with the standard library loaded.
package lispytest

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/programble/lispy/lisp"
	"github.com/programble/lispy/lisp/lisplib"
	"github.com/programble/lispy/parser"
)

// SourceName is the source name given to expressions in a TestSequence.
// Error messages in expected results refer to it.
const SourceName = "test"

// TestSequence is a sequence of lisp expressions which are evaluated sequentially
// by a lisp.LEnv.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the evaluated result, or the error message
	Output string // output written to the environment's stdout
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// NewEnv returns a root environment with the standard library loaded.  Output
// from print functions is written to stdout and debugging output is
// discarded.
func NewEnv(stdout io.Writer, config ...lisp.Config) (*lisp.LEnv, error) {
	env := lisp.NewEnv(nil)
	config = append([]lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(stdout),
		lisp.WithStderr(io.Discard),
	}, config...)
	err := lisp.InitializeUserEnv(env, config...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize lisp environment: %w", err)
	}
	err = lisplib.LoadLibrary(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load library: %w", err)
	}
	return env, nil
}

// EvalString parses src, which must contain exactly one expression, and
// evaluates it in env.  The printed value or the error message is returned.
func EvalString(env *lisp.LEnv, src string) (string, error) {
	v, err := parser.ParseString(SourceName, src)
	if err != nil {
		return "", fmt.Errorf("parse error: %w", err)
	}
	if len(v) != 1 {
		return "", fmt.Errorf("expected one expression (got %d)", len(v))
	}
	result, err := env.Eval(v[0])
	if err != nil {
		return err.Error(), nil
	}
	return result.String(), nil
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.LEnvs.
func RunTestSuite(t *testing.T, tests TestSuite, config ...lisp.Config) {
	for i, test := range tests {
		var out bytes.Buffer
		env, err := NewEnv(&out, config...)
		if err != nil {
			t.Fatalf("test %d %q: %v", i, test.Name, err)
		}
		for j, expr := range test.TestSequence {
			out.Reset()
			result, err := EvalString(env, expr.Expr)
			if err != nil {
				t.Errorf("test %d %q: expr %d: %v", i, test.Name, j, err)
				continue
			}
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
			if out.String() != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, out.String())
			}
		}
	}
}
