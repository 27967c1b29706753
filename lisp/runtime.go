package lisp

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Runtime is the state shared by every environment descending from a root
// environment.
type Runtime struct {
	Stack  *CallStack
	Reader Reader
	Stderr io.Writer
	Stdout io.Writer
	Logger logrus.FieldLogger

	envCount uint64
}

// StandardRuntime returns a new Runtime with an empty call stack limited to
// DefaultMaxHeight frames.  Output goes to the process's standard streams and
// nothing is logged.
func StandardRuntime() *Runtime {
	return &Runtime{
		Stack:  &CallStack{MaxHeight: DefaultMaxHeight},
		Stderr: os.Stderr,
		Stdout: os.Stdout,
		Logger: discardLogger(),
	}
}

// GenEnvID returns a new environment identifier.
func (rt *Runtime) GenEnvID() uint {
	return uint(atomic.AddUint64(&rt.envCount, 1))
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.WarnLevel)
	return logger
}
