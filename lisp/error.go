package lisp

import (
	"bytes"
	"fmt"

	"github.com/programble/lispy/parser/token"
)

// Error conditions raised by the evaluator.
const (
	CondUnboundName          = "unbound-name"
	CondNotInvocable         = "not-invocable"
	CondArity                = "arity-error"
	CondMalformedBindingSpec = "malformed-binding-spec"
	CondStackExhausted       = "stack-exhausted"
	CondTypeError            = "type-error"
	CondQuasiquote           = "quasiquote-error"
	// CondError is the condition of errors raised without a more specific
	// condition.
	CondError = "error"
)

// Sentinel errors for use with errors.Is.  Any *ErrorVal with a matching
// Condition is considered equivalent.
var (
	ErrUnboundName          error = condition(CondUnboundName)
	ErrNotInvocable         error = condition(CondNotInvocable)
	ErrArity                error = condition(CondArity)
	ErrMalformedBindingSpec error = condition(CondMalformedBindingSpec)
	ErrStackExhausted       error = condition(CondStackExhausted)
	ErrType                 error = condition(CondTypeError)
)

type condition string

func (c condition) Error() string {
	return string(c)
}

// ErrorVal is a runtime error.  The evaluator attaches the source location
// and call stack of the innermost expression being evaluated when the error
// was raised.
type ErrorVal struct {
	Condition string
	Msg       string
	FunName   string
	Source    *token.Location
	Stack     *CallStack
	// Err is an underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *ErrorVal) Error() string {
	var buf bytes.Buffer
	if e.Source != nil {
		buf.WriteString(e.Source.String())
		buf.WriteString(": ")
	}
	if e.FunName != "" {
		buf.WriteString(e.FunName)
		buf.WriteString(": ")
	}
	if e.Condition != CondError && e.Condition != "" {
		buf.WriteString(e.Condition)
		buf.WriteString(": ")
	}
	buf.WriteString(e.Msg)
	return buf.String()
}

// Unwrap returns the underlying error.
func (e *ErrorVal) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel error for e's condition.
func (e *ErrorVal) Is(target error) bool {
	c, ok := target.(condition)
	return ok && string(c) == e.Condition
}

// ArityError describes an invocation with an unacceptable number of
// arguments.  Max is negative when the callable accepts any number of
// trailing arguments.
type ArityError struct {
	Fun string
	Min int
	Max int
	Got int
}

func (e *ArityError) Error() string {
	var expected string
	switch {
	case e.Max < 0:
		expected = fmt.Sprintf("at least %d %s", e.Min, plural(e.Min, "argument"))
	case e.Min == e.Max:
		expected = fmt.Sprintf("%d %s", e.Min, plural(e.Min, "argument"))
	default:
		expected = fmt.Sprintf("%d to %d arguments", e.Min, e.Max)
	}
	return fmt.Sprintf("invalid number of arguments: expected %s (got %d)", expected, e.Got)
}

// Is makes ArityError match ErrArity.
func (e *ArityError) Is(target error) bool {
	return target == ErrArity
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}

// Errorf returns an error with the generic condition.
func (env *LEnv) Errorf(format string, v ...interface{}) error {
	return env.ErrorConditionf(CondError, format, v...)
}

// ErrorConditionf returns an error with the given condition.
func (env *LEnv) ErrorConditionf(cond string, format string, v ...interface{}) error {
	return &ErrorVal{
		Condition: cond,
		Msg:       fmt.Sprintf(format, v...),
	}
}

// errorAssociate attaches the location and stack of the expression being
// evaluated to err.  The innermost location wins.  Errors that are not
// *ErrorVal are wrapped.
func (env *LEnv) errorAssociate(err error, expr *LVal) error {
	e, ok := err.(*ErrorVal)
	if !ok {
		e = &ErrorVal{Condition: CondError, Msg: err.Error(), Err: err}
	}
	if e.Source == nil {
		e.Source = expr.Source
	}
	if e.Stack == nil {
		e.Stack = env.Runtime.Stack.Copy()
	}
	if e.FunName == "" {
		if top := env.Runtime.Stack.Top(); top != nil {
			e.FunName = top.Name
		}
	}
	return e
}
