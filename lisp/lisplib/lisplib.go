// Package lisplib is used to conveniently load the standard library for the
// lispy environment
package lisplib

import (
	_ "embed"
	"fmt"

	"github.com/programble/lispy/lisp"
	"github.com/programble/lispy/lisp/lisplib/libmath"
	"github.com/programble/lispy/lisp/lisplib/libstring"
)

//go:embed prelude.lisp
var prelude string

// PreludeName is the source name used for locations within the prelude.
const PreludeName = "prelude.lisp"

// LoadLibrary loads the standard library into the root environment of env.
// The environment must have been initialized with lisp.InitializeUserEnv and
// a Reader.
func LoadLibrary(env *lisp.LEnv) error {
	root := env.Root()
	if err := libmath.LoadPackage(root); err != nil {
		return fmt.Errorf("math: %w", err)
	}
	if err := libstring.LoadPackage(root); err != nil {
		return fmt.Errorf("string: %w", err)
	}
	if _, err := root.LoadString(PreludeName, prelude); err != nil {
		return fmt.Errorf("prelude: %w", err)
	}
	return nil
}
