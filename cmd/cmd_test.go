package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRunExpression(t *testing.T) {
	stdout, _, err := execute(t, "run", "-e", "-p", "(+ 1 2)", "(map inc '(1 2))")
	require.NoError(t, err)
	assert.Equal(t, "3\n(2 3)\n", stdout)

	stdout, _, err = execute(t, "run", "-e", "-p=false", `(println "side effect")`)
	require.NoError(t, err)
	assert.Equal(t, "side effect\n", stdout)
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.lisp")
	src := "(defn square (x) (* x x))\n(println (square 4))\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	stdout, _, err := execute(t, "run", "--expression=false", "--print=false", path)
	require.NoError(t, err)
	assert.Equal(t, "16\n", stdout)
}

func TestRunError(t *testing.T) {
	_, stderr, err := execute(t, "run", "-e", "(defn f () (car 1))", "(f)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type-error")
	assert.Contains(t, stderr, "Stack Trace")
	assert.Contains(t, stderr, "height 0: f")
}

func TestRunMaxDepth(t *testing.T) {
	_, _, err := execute(t, "run", "--max-depth", "50", "-e", "(defn f (n) (f n))", "(f 1)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stack-exhausted")
	rootCmd.PersistentFlags().Set("max-depth", "20000")
}

func TestBadLogLevel(t *testing.T) {
	_, _, err := execute(t, "run", "--log-level", "loud", "-e", "1")
	assert.Error(t, err)
	rootCmd.PersistentFlags().Set("log-level", "warn")
}
