package lispytest

import (
	"testing"
)

func TestEval(t *testing.T) {
	tests := TestSuite{
		{"self-evaluating", TestSequence{
			{"3", "3", ""},
			{"-0.25", "-0.25", ""},
			{`"abc"`, `"abc"`, ""},
			{":kw", ":kw", ""},
			{`\a`, `\a`, ""},
			{"()", "nil", ""},
			{"nil", "nil", ""},
			{"t", "t", ""},
		}},
		{"quotes", TestSequence{
			{"'a", "a", ""},
			{"''a", "(quote a)", ""},
			{"'(1 . 2)", "(1 . 2)", ""},
			{"(quote (1 2 3))", "(1 2 3)", ""},
			{"(quote . x)", "x", ""},
		}},
		{"unbound symbols", TestSequence{
			{"x", "test:1:1: unbound-name: unbound symbol: x", ""},
			{"(undefined 1)", "test:1:2: unbound-name: unbound symbol: undefined", ""},
		}},
		{"function basics", TestSequence{
			{"(lambda (x) (+ x 1))", "(lambda (x) (+ x 1))", ""},
			{"(lambda () 1)", "(lambda () 1)", ""},
			{"((lambda (x) x) 1)", "1", ""},
			{"((lambda () (+ 1 1)))", "2", ""},
			{"((lambda (x y) (+ x y)) 1 2)", "3", ""},
			{"((lambda (x) x (+ x 1)) 1)", "2", ""},
			{"((lambda ()))", "nil", ""},
			{"((fn (x) x))", "test:1:1: arity-error: invalid number of arguments: expected 1 argument (got 0)", ""},
		}},
		{"binding specifications", TestSequence{
			{"((fn (x ? (y 10)) (+ x y)) 1)", "11", ""},
			{"((fn (x ? (y 10)) (+ x y)) 1 2)", "3", ""},
			{"((fn (x ? (y (* x 2))) y) 4)", "8", ""},
			{"((fn (x ? y) y) 1)", "nil", ""},
			{"((fn (a ? b & c) (list a b c)) 1)", "(1 nil nil)", ""},
			{"((fn (a ? b & c) (list a b c)) 1 2)", "(1 2 nil)", ""},
			{"((fn (a ? b & c) (list a b c)) 1 2 3 4)", "(1 2 (3 4))", ""},
			{"((fn (a . rest) rest) 1 2 3)", "(2 3)", ""},
			{"((fn (& xs) xs))", "nil", ""},
			{"(lambda (&) x)", "test:1:10: lambda: malformed-binding-spec: & is not followed by a symbol", ""},
			{"(lambda (a 1) a)", "test:1:12: lambda: malformed-binding-spec: invalid binding: 1", ""},
		}},
		{"def", TestSequence{
			{"(def x 10)", "10", ""},
			{"x", "10", ""},
			{"(def t 1)", "test:1:1: def: cannot rebind constant: t", ""},
			{"(def 1 2)", "test:1:1: def: type-error: first argument is not a symbol: 1", ""},
			{"(def f (lambda (n) (* n 2)))", "(lambda (n) (* n 2))", ""},
			{"(f 4)", "8", ""},
			{"(def g (lambda () (def inner 1) inner))", "(lambda () (def inner 1) inner)", ""},
			{"(g)", "1", ""},
			{"inner", "test:1:1: unbound-name: unbound symbol: inner", ""},
		}},
		{"conditionals", TestSequence{
			{"(if t 1 2)", "1", ""},
			{"(if nil 1 2)", "2", ""},
			{"(if () 1 2)", "2", ""},
			{"(if 0 1 2)", "1", ""},
			{"(if nil 1)", "nil", ""},
			{"(cond (nil 1) ((= 1 1) 2) (t 3))", "2", ""},
			{"(cond (nil 1))", "nil", ""},
			{"(cond ((car '(5))))", "5", ""},
			{"(cond (nil) (t 1 2))", "2", ""},
			{"(and)", "t", ""},
			{"(and 1 2)", "2", ""},
			{"(and 1 nil 2)", "nil", ""},
			{"(or)", "nil", ""},
			{"(or nil 3)", "3", ""},
			{"(or 1 undefined)", "1", ""},
			{"(not nil)", "t", ""},
		}},
		{"let", TestSequence{
			{"(let ((a 1) (b 2)) (+ a b))", "3", ""},
			{"(let ((a 1)) (let ((a 2) (b a)) b))", "1", ""},
			{"(let* ((a 1) (b (+ a 1))) b)", "2", ""},
			{"(let (a (b)) (list a b))", "(nil nil)", ""},
			{"(let () 1)", "1", ""},
			{"(let ((1 2)) 3)", "test:1:1: let: invalid binding: (1 2)", ""},
			{"(progn 1 2 3)", "3", ""},
			{"(do)", "nil", ""},
		}},
		{"operator resolution", TestSequence{
			{"(def alias 'car)", "car", ""},
			{"(alias '(1 2))", "1", ""},
			{"((car (list car)) '(9))", "9", ""},
			{"(1 2)", "test:1:2: not-invocable: not invocable: 1", ""},
			{`("abc")`, `test:1:2: not-invocable: not invocable: "abc"`, ""},
			{"(() 1)", "test:1:2: not-invocable: not invocable: nil", ""},
		}},
		{"eval and apply", TestSequence{
			{"(eval '(+ 1 2))", "3", ""},
			{"(eval (list 'car ''(7 8)))", "7", ""},
			{"(apply + 1 '(2 3))", "6", ""},
			{"(apply list '(a b))", "(a b)", ""},
			{"(apply (fn (x y) (list y x)) '((1) 2))", "(2 (1))", ""},
			{"(apply 1 '())", "test:1:1: apply: type-error: first argument is not callable: 1", ""},
			{`(load-string "(def loaded 5) (+ loaded 1)")`, "6", ""},
			{"loaded", "5", ""},
		}},
		{"output", TestSequence{
			{`(println "hi" 1)`, "nil", "hi 1\n"},
			{`(print 'a \b)`, "nil", "a b"},
			{`(print '("x"))`, "nil", `("x")`},
			{`(debug-print "not captured")`, "nil", ""},
		}},
	}
	RunTestSuite(t, tests)
}
