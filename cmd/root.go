package cmd

import (
	"fmt"
	"os"

	"github.com/programble/lispy/lisp"
	"github.com/programble/lispy/lisp/lisplib"
	"github.com/programble/lispy/parser"
	"github.com/programble/lispy/repl"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	maxDepth int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lispy",
	Short: "A small homoiconic lisp",
	Long: `Lispy is a tree-walking lisp interpreter.  Every callable receives its
arguments unevaluated and decides for itself what to evaluate.

Without a subcommand lispy starts an interactive session.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().  It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", envString("LISPY_LOG_LEVEL", "warn"),
		"Interpreter log level (env LISPY_LOG_LEVEL)")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-depth", envInt("LISPY_MAX_DEPTH", lisp.DefaultMaxHeight),
		"Maximum call stack height (env LISPY_MAX_DEPTH)")
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	var n int
	if _, err := fmt.Sscan(v, &n); err != nil {
		return def
	}
	return n
}

// newLogger returns the logger configured by the --log-level flag.
func newLogger(cmd *cobra.Command) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(level)
	return logger, nil
}

// newEnv returns a root environment with the standard library loaded.
func newEnv(cmd *cobra.Command) (*lisp.LEnv, *logrus.Logger, error) {
	logger, err := newLogger(cmd)
	if err != nil {
		return nil, nil, err
	}
	env := lisp.NewEnv(nil)
	err = lisp.InitializeUserEnv(env,
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(cmd.OutOrStdout()),
		lisp.WithStderr(cmd.ErrOrStderr()),
		lisp.WithMaximumStackHeight(maxDepth),
		lisp.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}
	if err := lisplib.LoadLibrary(env); err != nil {
		return nil, nil, err
	}
	return env, logger, nil
}

func runRepl(cmd *cobra.Command) error {
	env, logger, err := newEnv(cmd)
	if err != nil {
		return err
	}
	return repl.Run(env,
		repl.WithStdout(cmd.OutOrStdout()),
		repl.WithStderr(cmd.ErrOrStderr()),
		repl.WithLogger(logger),
	)
}
