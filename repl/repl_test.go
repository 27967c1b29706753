package repl

import (
	"bytes"
	"io"
	"testing"

	"github.com/chzyer/readline"
	"github.com/programble/lispy/lispytest"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type input struct {
	line string
	err  error
}

type fakeReader struct {
	inputs  []input
	prompts []string
}

func (r *fakeReader) Readline() (string, error) {
	if len(r.inputs) == 0 {
		return "", io.EOF
	}
	in := r.inputs[0]
	r.inputs = r.inputs[1:]
	return in.line, in.err
}

func (r *fakeReader) SetPrompt(prompt string) {
	r.prompts = append(r.prompts, prompt)
}

func TestRun(t *testing.T) {
	var stdout, stderr bytes.Buffer
	env, err := lispytest.NewEnv(&stdout)
	require.NoError(t, err)
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	rl := &fakeReader{inputs: []input{
		{line: "(def x 2)"},
		{line: "(+ x"},
		{line: "  1)"},
		{line: "(car 1) x"},
		{line: "(unfinished"},
		{err: readline.ErrInterrupt},
		{line: ")"},
		{line: `(println "hi")`},
	}}
	c := &config{stdout: &stdout, stderr: &stderr, logger: logger}
	require.NoError(t, run(env, rl, c))

	assert.Equal(t, "2\n3\nhi\nnil\n", stdout.String())
	assert.Contains(t, stderr.String(), "car: type-error: argument is not a list: 1")
	assert.Contains(t, stderr.String(), "unexpected )")
	assert.Equal(t, []string{"> ", "> ", "  ", "> ", "> ", "  ", "> ", "> ", "> "}, rl.prompts)
	assert.Equal(t, 0, env.Runtime.Stack.Height())

	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, "evaluation failed", hook.LastEntry().Message)
	assert.Equal(t, "type-error", hook.LastEntry().Data["condition"])
}

func TestRunRecurOutsideLoop(t *testing.T) {
	var stdout, stderr bytes.Buffer
	env, err := lispytest.NewEnv(&stdout)
	require.NoError(t, err)
	logger, _ := logtest.NewNullLogger()

	rl := &fakeReader{inputs: []input{
		{line: "(def r (loop ((i 0)) (if (= i 0) recur 1)))"},
		{line: "(r 5)"},
		{line: "(+ 1 1)"},
	}}
	c := &config{stdout: &stdout, stderr: &stderr, logger: logger}
	require.NoError(t, run(env, rl, c))

	assert.Equal(t, "<builtin recur>\n2\n", stdout.String())
	assert.Contains(t, stderr.String(), "recur used outside of tail position")
}
