package libmath

import (
	"math"

	"github.com/programble/lispy/lisp"
)

// LoadPackage adds the math functions and constants to env
func LoadPackage(env *lisp.LEnv) error {
	env.Put(lisp.Symbol("inf"), lisp.Number(math.Inf(1)))
	env.Put(lisp.Symbol("-inf"), lisp.Number(math.Inf(-1)))
	env.Put(lisp.Symbol("pi"), lisp.Number(math.Pi))
	env.AddBuiltins(builtins...)
	return nil
}

var builtins = []lisp.LBuiltinDef{
	lisp.Function("ceil", lisp.Formals("number"), unary(math.Ceil)),
	lisp.Function("floor", lisp.Formals("number"), unary(math.Floor)),
	lisp.Function("abs", lisp.Formals("number"), unary(math.Abs)),
	lisp.Function("sqrt", lisp.Formals("number"), unary(math.Sqrt)),
	lisp.Function("exp", lisp.Formals("number"), unary(math.Exp)),
	lisp.Function("ln", lisp.Formals("number"), unary(math.Log)),
	lisp.Function("log", lisp.Formals("base", "number"), builtinLog),
	lisp.Function("pow", lisp.Formals("base", "exponent"), builtinPow),
	lisp.Function("max", lisp.Formals("number", lisp.VarArgSymbol, "rest"), builtinMax),
	lisp.Function("min", lisp.Formals("number", lisp.VarArgSymbol, "rest"), builtinMin),
}

func unary(fn func(float64) float64) lisp.LBuiltin {
	return func(env *lisp.LEnv, args []*lisp.LVal) (*lisp.LVal, error) {
		x := args[0]
		if x.Type != lisp.LNumber {
			return nil, env.Errorf("argument is not a number: %v", x.Type)
		}
		return lisp.Number(fn(x.Num)), nil
	}
}

func builtinLog(env *lisp.LEnv, args []*lisp.LVal) (*lisp.LVal, error) {
	b, x := args[0], args[1]
	if err := checkNumbers(env, b, x); err != nil {
		return nil, err
	}
	return lisp.Number(math.Log(x.Num) / math.Log(b.Num)), nil
}

func builtinPow(env *lisp.LEnv, args []*lisp.LVal) (*lisp.LVal, error) {
	b, x := args[0], args[1]
	if err := checkNumbers(env, b, x); err != nil {
		return nil, err
	}
	return lisp.Number(math.Pow(b.Num, x.Num)), nil
}

func builtinMax(env *lisp.LEnv, args []*lisp.LVal) (*lisp.LVal, error) {
	if err := checkNumbers(env, args...); err != nil {
		return nil, err
	}
	max := args[0]
	for _, x := range args[1:] {
		if x.Num > max.Num {
			max = x
		}
	}
	return max, nil
}

func builtinMin(env *lisp.LEnv, args []*lisp.LVal) (*lisp.LVal, error) {
	if err := checkNumbers(env, args...); err != nil {
		return nil, err
	}
	min := args[0]
	for _, x := range args[1:] {
		if x.Num < min.Num {
			min = x
		}
	}
	return min, nil
}

func checkNumbers(env *lisp.LEnv, xs ...*lisp.LVal) error {
	for _, x := range xs {
		if x.Type != lisp.LNumber {
			return env.Errorf("argument is not a number: %v", x.Type)
		}
	}
	return nil
}
