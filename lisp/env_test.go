package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalSelfEvaluating(t *testing.T) {
	env := NewEnv(nil)
	require.NoError(t, InitializeUserEnv(env))
	lambda, err := env.Lambda(Formals("x"), []*LVal{Symbol("x")})
	require.NoError(t, err)
	mac, err := env.Macro(Formals("x"), []*LVal{Symbol("x")})
	require.NoError(t, err)
	car, ok := env.Lookup("car")
	require.True(t, ok)

	for _, v := range []*LVal{
		Number(1.5),
		Int(0),
		Char('a'),
		Keyword("k"),
		String("abc"),
		String(""),
		Nil(),
		SExpr(nil),
		lambda,
		mac,
		car,
	} {
		r, err := env.Eval(v)
		if assert.NoError(t, err, v.String()) {
			assert.Same(t, v, r, v.String())
		}
	}

	// A closure produced by evaluation is itself self-evaluating.
	fn, err := env.Eval(List(Symbol("lambda"), Formals("y"), Symbol("y")))
	require.NoError(t, err)
	r, err := env.Eval(fn)
	require.NoError(t, err)
	assert.Same(t, fn, r)
}
