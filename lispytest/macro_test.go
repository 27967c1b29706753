package lispytest

import "testing"

func TestMacros(t *testing.T) {
	tests := TestSuite{
		{"macro basics", TestSequence{
			{"(def m (macro (a b) (list '+ a b)))", "(macro (a b) (list (quote +) a b))", ""},
			{"(m 1 2)", "3", ""},
			{"(macroexpand '(m 1 2))", "(+ 1 2)", ""},
			{"(macroexpand-1 '(m 1 2))", "(+ 1 2)", ""},
			{"(macroexpand '(car '(1)))", "(car (quote (1)))", ""},
			{"(macroexpand '(undefined-fn 1))", "(undefined-fn 1)", ""},
			{"(macroexpand 3)", "3", ""},
			{"(m 1)", "test:1:1: m: arity-error: invalid number of arguments: expected 2 arguments (got 1)", ""},
		}},
		{"unevaluated arguments", TestSequence{
			{"(def quote-it (macro (x) (list 'quote x)))", "(macro (x) (list (quote quote) x))", ""},
			{"(quote-it (a b c))", "(a b c)", ""},
			{"(quote-it undefined)", "undefined", ""},
			{"(def get-z (macro () 'z))", "(macro () (quote z))", ""},
			{"(let ((z 7)) (get-z))", "7", ""},
			{"(def opt (macro (a ? (b (+ 1 1))) (list 'quote (list a b))))", "(macro (a ? (b (+ 1 1))) (list (quote quote) (list a b)))", ""},
			{"(opt x)", "(x (+ 1 1))", ""},
		}},
		{"defmacro", TestSequence{
			{"(do (defmacro my-unless (c & body) `(if ,c nil (do ,@body))) 'ok)", "ok", ""},
			{"(my-unless nil 1 2)", "2", ""},
			{"(my-unless t 1 2)", "nil", ""},
			{"(macroexpand '(my-unless x 1))", "(if x nil (do 1))", ""},
			{"(when t 1 2)", "2", ""},
			{"(when nil 1)", "nil", ""},
			{"(unless nil 3)", "3", ""},
		}},
		{"repeated expansion", TestSequence{
			{"(do (defmacro mlen (& xs) (if (nil? xs) 0 `(+ 1 (mlen ,@(cdr xs))))) 'ok)", "ok", ""},
			{"(macroexpand '(mlen))", "0", ""},
			{"(mlen)", "0", ""},
			{"(macroexpand-1 '(mlen a b))", "(+ 1 (mlen b))", ""},
			{"(macroexpand '(mlen a b))", "(+ 1 (mlen b))", ""},
			{"(mlen a b c)", "3", ""},
		}},
		{"dotted invocation", TestSequence{
			{"(def dm (macro (x) (list 'quote x)))", "(macro (x) (list (quote quote) x))", ""},
			{"(dm . z)", "z", ""},
			{"(macroexpand '(dm . z))", "(quote z)", ""},
			{"(dm a . z)", "(a . z)", ""},
			{"(macroexpand-1 '(dm a . z))", "(quote (a . z))", ""},
		}},
		{"macro producing macro call", TestSequence{
			{"(do (defmacro m1 (x) `(m2 ,x)) (defmacro m2 (x) `(list ,x ,x)) 'ok)", "ok", ""},
			{"(macroexpand-1 '(m1 3))", "(m2 3)", ""},
			{"(macroexpand '(m1 3))", "(list 3 3)", ""},
			{"(m1 3)", "(3 3)", ""},
		}},
	}
	RunTestSuite(t, tests)
}

func TestQuasiquote(t *testing.T) {
	tests := TestSuite{
		{"quasiquote", TestSequence{
			{"`(1 ,(+ 1 1) ,@(list 3 4))", "(1 2 3 4)", ""},
			{"(def x 1)", "1", ""},
			{"(def lst '(2 3))", "(2 3)", ""},
			{"`x", "x", ""},
			{"`,x", "1", ""},
			{"`(a ,x ,@lst b)", "(a 1 2 3 b)", ""},
			{"`(a (b ,x))", "(a (b 1))", ""},
			{"`(,@lst)", "(2 3)", ""},
			{"`(1 ,@'() 2)", "(1 2)", ""},
			{"`(a . ,x)", "(a . 1)", ""},
			{"`(1 ,x . 3)", "(1 1 . 3)", ""},
			{"(quasiquote (1 (unquote-splicing '(2 3))))", "(1 2 3)", ""},
			{"(backquote (,x))", "(1)", ""},
		}},
		{"quasiquote errors", TestSequence{
			{"(def x 1)", "1", ""},
			{"`,@x", "test:1:1: quasiquote: quasiquote-error: unquote-splice used outside of a list", ""},
			{"`(a ,@x)", "test:1:1: quasiquote: quasiquote-error: unquote-splice: not a proper list: 1", ""},
			{"`(a ,y)", "test:1:6: quasiquote: unbound-name: unbound symbol: y", ""},
		}},
	}
	RunTestSuite(t, tests)
}
