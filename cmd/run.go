package cmd

import (
	"errors"
	"fmt"

	"github.com/programble/lispy/lisp"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] FILE...",
	Short: "Run lisp code",
	Long:  `Run lisp code provided supplied via the command line or a file.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, _, err := newEnv(cmd)
		if err != nil {
			return err
		}
		for i, src := range args {
			name := src
			var v *lisp.LVal
			if runExpression {
				name = fmt.Sprintf("expr%d", i)
				v, err = env.LoadString(name, src)
			} else {
				v, err = env.LoadFile(src)
			}
			if err != nil {
				return runError(cmd, err)
			}
			if runPrint {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
		}
		return nil
	},
}

// runError writes the call stack of a lisp error to stderr before returning
// it.
func runError(cmd *cobra.Command, err error) error {
	var lerr *lisp.ErrorVal
	if errors.As(err, &lerr) && lerr.Stack != nil {
		lerr.Stack.DebugPrint(cmd.ErrOrStderr())
	}
	return err
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
