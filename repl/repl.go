package repl

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/programble/lispy/lisp"
	"github.com/programble/lispy/parser/rdparser"
	"github.com/sirupsen/logrus"
)

// Option configures Run.
type Option func(*config)

type config struct {
	stdout      io.Writer
	stderr      io.Writer
	logger      logrus.FieldLogger
	historyFile string
}

// WithStdout makes the repl print results to w instead of os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(c *config) { c.stdout = w }
}

// WithStderr makes the repl print errors to w instead of os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(c *config) { c.stderr = w }
}

// WithLogger sets the logger used to report evaluation errors.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *config) { c.logger = logger }
}

// WithHistoryFile makes the repl persist input history in path.
func WithHistoryFile(path string) Option {
	return func(c *config) { c.historyFile = path }
}

// lineReader is the subset of *readline.Instance used by the repl loop.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// Run runs a simple repl that evaluates expressions in env until the input
// is closed.  Input may span several lines; a continuation prompt is shown
// while an expression is incomplete.  Interrupting discards the incomplete
// expression.
func Run(env *lisp.LEnv, opts ...Option) error {
	c := &config{
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "> ",
		HistoryFile: c.historyFile,
		Stdout:      c.stdout,
		Stderr:      c.stderr,
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	return run(env, rl, c)
}

func run(env *lisp.LEnv, rl lineReader, c *config) error {
	p := rdparser.NewInteractive("stdin")
	for {
		rl.SetPrompt(p.Prompt())
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			p.Reset()
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		exprs, err := p.Feed(line)
		if err != nil {
			fmt.Fprintln(c.stderr, err)
			continue
		}
		for _, expr := range exprs {
			v, err := env.Eval(expr)
			if err != nil {
				reportError(c, err)
				break
			}
			fmt.Fprintln(c.stdout, v)
		}
	}
}

func reportError(c *config, err error) {
	fmt.Fprintln(c.stderr, err)
	var lerr *lisp.ErrorVal
	if errors.As(err, &lerr) && lerr.Stack != nil {
		c.logger.WithFields(logrus.Fields{
			"condition": lerr.Condition,
			"height":    lerr.Stack.Height(),
		}).Debug("evaluation failed")
	}
}
