package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListKind(t *testing.T) {
	for _, test := range []struct {
		v    *LVal
		kind ListKind
	}{
		{Nil(), ListEmpty},
		{SExpr(nil), ListEmpty},
		{List(Int(1)), ListProper},
		{Dotted([]*LVal{Int(1)}, Int(2)), ListImproper},
		{String(""), ListEmpty},
		{String("ab"), ListProper},
		{Symbol("a"), NotList},
		{Int(1), NotList},
	} {
		assert.Equal(t, test.kind, test.v.ListKind(), test.v.String())
	}
}

func TestDotted(t *testing.T) {
	one, two, three := Int(1), Int(2), Int(3)
	assert.Equal(t, "(1 . 2)", Dotted([]*LVal{one}, two).String())
	assert.Equal(t, "(1 2 3)", Dotted([]*LVal{one}, List(two, three)).String())
	assert.Equal(t, "(1 2 . 3)", Dotted([]*LVal{one}, Dotted([]*LVal{two}, three)).String())
	assert.Equal(t, "(1)", Dotted([]*LVal{one}, Nil()).String())
	assert.Equal(t, "(1)", Dotted([]*LVal{one}, nil).String())
	assert.Same(t, two, Dotted(nil, two))

	v := Dotted([]*LVal{one}, List(two))
	assert.Nil(t, v.DottedTail)
	assert.True(t, v.IsProper())
}

func TestConsHeadTail(t *testing.T) {
	tails := []*LVal{
		Nil(),
		List(Int(2), Int(3)),
		Dotted([]*LVal{Int(2)}, Int(3)),
		Int(3),
		String("bc"),
	}
	heads := []*LVal{Int(1), Char('a'), Symbol("x")}
	for _, tail := range tails {
		for _, head := range heads {
			if tail.Type == LString && head.Type != LChar {
				continue
			}
			c := Cons(head, tail)
			assert.True(t, Equal(head, c.Head()), "head of (cons %v %v)", head, tail)
			assert.True(t, Equal(tail, c.Tail()), "tail of (cons %v %v) = %v", head, tail, c.Tail())
		}
	}
}

func TestCons(t *testing.T) {
	assert.Equal(t, `"abc"`, Cons(Char('a'), String("bc")).String())
	assert.Equal(t, LString, Cons(Char('a'), String("")).Type)
	assert.Equal(t, `(1 \b \c)`, Cons(Int(1), String("bc")).String())
	assert.Equal(t, "(1 . 2)", Cons(Int(1), Int(2)).String())
	assert.Equal(t, "(1 2 . 3)", Cons(Int(1), Cons(Int(2), Int(3))).String())
	assert.Equal(t, "(1)", Cons(Int(1), Nil()).String())
}

func TestHeadTailEmpty(t *testing.T) {
	assert.True(t, Nil().Head().IsNil())
	assert.True(t, Nil().Tail().IsNil())
	assert.Equal(t, `""`, String("").Tail().String())
	assert.True(t, String("").Head().IsNil())
	assert.Equal(t, `\a`, String("ab").Head().String())
	assert.Equal(t, `"b"`, String("ab").Tail().String())
	assert.Equal(t, "2", Dotted([]*LVal{Int(1)}, Int(2)).Tail().String())
}

func TestLen(t *testing.T) {
	assert.Equal(t, 0, Nil().Len())
	assert.Equal(t, 2, List(Int(1), Int(2)).Len())
	assert.Equal(t, 1, Dotted([]*LVal{Int(1)}, Int(2)).Len())
	assert.Equal(t, 3, String("a€b").Len())
	assert.Equal(t, 0, Int(1).Len())
}

func TestNamed(t *testing.T) {
	env := NewEnv(nil)
	fun, err := env.Lambda(Formals("x"), []*LVal{Symbol("x")})
	assert.NoError(t, err)
	named := Named(fun, "id")
	assert.Equal(t, "id", named.FunName())
	assert.Equal(t, "", fun.FunName())
	assert.Same(t, fun.Fun.Env, named.Fun.Env)
	assert.Same(t, named, Named(named, "other"))

	num := Int(1)
	assert.Same(t, num, Named(num, "one"))
}

func TestPrint(t *testing.T) {
	env := NewEnv(nil)
	lambda, err := env.Lambda(Formals("x", OptArgSymbol, "y"), []*LVal{List(Symbol("+"), Symbol("x"), Symbol("y"))})
	assert.NoError(t, err)
	mac, err := env.Macro(Dotted([]*LVal{Symbol("a")}, Symbol("rest")), []*LVal{Symbol("a")})
	assert.NoError(t, err)
	for _, test := range []struct {
		v       *LVal
		printed string
	}{
		{Int(3), "3"},
		{Number(0.5), "0.5"},
		{Number(-1e21), "-1e+21"},
		{Number(1e6), "1000000"},
		{Char('x'), `\x`},
		{Char(' '), `\space`},
		{Char('\n'), `\newline`},
		{Keyword("k"), ":k"},
		{Symbol("abc"), "abc"},
		{Symbol(""), "||"},
		{Symbol("nil"), "|nil|"},
		{Symbol("a b"), "|a b|"},
		{Symbol("12"), "|12|"},
		{Symbol("-1.5e3"), "|-1.5e3|"},
		{Symbol("inf"), "inf"},
		{Symbol("-inf"), "-inf"},
		{Symbol("nan"), "nan"},
		{Symbol("1e"), "1e"},
		{Symbol(":x"), "|:x|"},
		{Symbol("a|b"), "|a\\|b|"},
		{String("a\"b\n"), `"a\"b\n"`},
		{Nil(), "nil"},
		{List(Int(1), List(Int(2)), Nil()), "(1 (2) nil)"},
		{Dotted([]*LVal{Int(1), Int(2)}, Int(3)), "(1 2 . 3)"},
		{Quote(Symbol("x")), "(quote x)"},
		{lambda, "(lambda (x ? y) (+ x y))"},
		{mac, "(macro (a . rest) a)"},
		{Fun("car", Formals("lis"), nil), "<builtin car>"},
		{Bool(true), "t"},
		{Bool(false), "nil"},
	} {
		assert.Equal(t, test.printed, test.v.String())
	}
}

func TestEqual(t *testing.T) {
	env := NewEnv(nil)
	body := []*LVal{Symbol("x")}
	f1, _ := env.Lambda(Formals("x"), body)
	f2, _ := env.Lambda(Formals("x"), body)
	f3, _ := NewEnv(env).Lambda(Formals("x"), body)
	m1, _ := env.Macro(Formals("x"), body)
	car := Fun("car", Formals("lis"), nil)

	for _, test := range []struct {
		a, b  *LVal
		equal bool
	}{
		{Int(1), Number(1), true},
		{Int(1), Int(2), false},
		{Int(1), String("1"), false},
		{Symbol("a"), Symbol("a"), true},
		{Symbol("a"), String("a"), false},
		{Symbol("a"), Keyword("a"), false},
		{String("abc"), String("abc"), true},
		{Char('a'), Char('a'), true},
		{Nil(), Nil(), true},
		{Nil(), List(Nil()), false},
		{List(Int(1), List(Int(2))), List(Int(1), List(Int(2))), true},
		{List(Int(1), Int(2)), List(Int(1)), false},
		{Dotted([]*LVal{Int(1)}, Int(2)), Dotted([]*LVal{Int(1)}, Int(2)), true},
		{Dotted([]*LVal{Int(1)}, Int(2)), List(Int(1), Int(2)), false},
		{f1, f2, true},
		{f1, f3, false},
		{f1, m1, false},
		{car, car, true},
		{car, Fun("car", Formals("lis"), nil), false},
	} {
		assert.Equal(t, test.equal, Equal(test.a, test.b), "(equal %v %v)", test.a, test.b)
		assert.Equal(t, test.equal, Equal(test.b, test.a), "(equal %v %v)", test.b, test.a)
	}
}
