package lisp

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// LBuiltinDef is a built-in function
type LBuiltinDef interface {
	Name() string
	// Formals is used to check the number of arguments before Eval is
	// called.  A nil Formals accepts any number of arguments.
	Formals() *LVal
	// Eval receives unevaluated argument expressions.
	Eval(env *LEnv, args []*LVal) (*LVal, error)
}

// langBuiltin is a function whose arguments are evaluated in the calling
// environment, in order, before fun is called.
type langBuiltin struct {
	name    string
	formals *LVal
	fun     LBuiltin
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Formals() *LVal {
	return fun.formals
}

func (fun *langBuiltin) Eval(env *LEnv, args []*LVal) (*LVal, error) {
	vals, err := env.EvalArgs(args)
	if err != nil {
		return nil, err
	}
	return fun.fun(env, vals)
}

var userBuiltins []*langBuiltin
var langBuiltins = []*langBuiltin{
	{"load-string", Formals("source-code"), builtinLoadString},
	{"eval", Formals("expr"), builtinEval},
	{"apply", Formals("fun", VarArgSymbol, "args"), builtinApply},
	{"macroexpand-1", Formals("form"), builtinMacroExpand1},
	{"macroexpand", Formals("form"), builtinMacroExpand},
	{"error", Formals(VarArgSymbol, "args"), builtinError},
	{"gensym", Formals(OptArgSymbol, "prefix"), builtinGensym},
	{"atom", Formals("x"), builtinAtom},
	{"car", Formals("lis"), builtinCAR},
	{"head", Formals("lis"), builtinCAR},
	{"cdr", Formals("lis"), builtinCDR},
	{"tail", Formals("lis"), builtinCDR},
	{"cons", Formals("head", "tail"), builtinCons},
	{"list", Formals(VarArgSymbol, "args"), builtinList},
	{"length", Formals("lis"), builtinLength},
	{"reverse", Formals("lis"), builtinReverse},
	{"append", Formals(VarArgSymbol, "lists"), builtinAppend},
	{"eq", Formals("a", "b"), builtinEqual},
	{"=", Formals("a", "b"), builtinEqual},
	{"equal?", Formals("a", "b"), builtinEqual},
	{"not", Formals("expr"), builtinNot},
	{"nil?", Formals("x"), builtinNilP},
	{"list?", Formals("x"), builtinListP},
	{"symbol?", Formals("x"), builtinTypeP(LSymbol)},
	{"string?", Formals("x"), builtinTypeP(LString)},
	{"number?", Formals("x"), builtinTypeP(LNumber)},
	{"callable?", Formals("x"), builtinCallableP},
	{"string->list", Formals("str"), builtinStringToList},
	{"symbol->string", Formals("sym"), builtinSymbolToString},
	{"string->symbol", Formals("str"), builtinStringToSymbol},
	{">=", Formals("a", "b"), builtinCompare(func(a, b float64) bool { return a >= b })},
	{">", Formals("a", "b"), builtinCompare(func(a, b float64) bool { return a > b })},
	{"<=", Formals("a", "b"), builtinCompare(func(a, b float64) bool { return a <= b })},
	{"<", Formals("a", "b"), builtinCompare(func(a, b float64) bool { return a < b })},
	{"%", Formals("a", "b"), builtinMod},
	{"+", Formals(VarArgSymbol, "x"), builtinAdd},
	{"-", Formals(VarArgSymbol, "x"), builtinSub},
	{"/", Formals(VarArgSymbol, "x"), builtinDiv},
	{"*", Formals(VarArgSymbol, "x"), builtinMul},
	{"print", Formals(VarArgSymbol, "args"), builtinPrint},
	{"println", Formals(VarArgSymbol, "args"), builtinPrintln},
	{"debug-print", Formals(VarArgSymbol, "args"), builtinDebugPrint},
	{"debug-stack", Formals(), builtinDebugStack},
}

// RegisterDefaultBuiltin adds the given function to the list returned by
// DefaultBuiltins.  The arguments of fn are evaluated before it is called.
func RegisterDefaultBuiltin(name string, formals *LVal, fn LBuiltin) {
	userBuiltins = append(userBuiltins, &langBuiltin{name, formals, fn})
}

// DefaultBuiltins returns the default set of LBuiltinDefs added to LEnv
// objects when LEnv.AddBuiltins is called without arguments.
func DefaultBuiltins() []LBuiltinDef {
	ops := make([]LBuiltinDef, 0, len(langBuiltins)+len(userBuiltins))
	for _, b := range langBuiltins {
		ops = append(ops, b)
	}
	for _, b := range userBuiltins {
		ops = append(ops, b)
	}
	return ops
}

// Function returns an LBuiltinDef whose arguments are evaluated in the calling
// environment before fn is called.
func Function(name string, formals *LVal, fn LBuiltin) LBuiltinDef {
	return &langBuiltin{name, formals, fn}
}

// Fun returns a builtin function value.  The binding specification formals
// is only used to check the number of arguments before fn is called.  Fun
// panics if formals is malformed.
func Fun(name string, formals *LVal, fn LBuiltin) *LVal {
	var sig *Signature
	if formals != nil {
		var err error
		sig, err = ParseSignature(formals)
		if err != nil {
			panic(fmt.Sprintf("builtin %s: %v", name, err))
		}
	}
	return &LVal{
		Type: LFun,
		Fun: &LFunData{
			Name:      name,
			Spec:      formals,
			Signature: sig,
			Builtin:   fn,
		},
	}
}

func builtinLoadString(env *LEnv, args []*LVal) (*LVal, error) {
	if args[0].Type != LString {
		return nil, typeError(env, "first argument is not a string", args[0])
	}
	return env.Root().LoadString("load-string", args[0].Str)
}

func builtinEval(env *LEnv, args []*LVal) (*LVal, error) {
	return env.Eval(args[0])
}

func builtinApply(env *LEnv, args []*LVal) (*LVal, error) {
	fun := args[0]
	if !fun.IsCallable() {
		return nil, typeError(env, "first argument is not callable", fun)
	}
	vals := args[1:]
	if len(vals) > 0 {
		last := vals[len(vals)-1]
		if !last.IsProper() {
			return nil, typeError(env, "last argument is not a list", last)
		}
		spread := make([]*LVal, 0, len(vals)-1+last.Len())
		spread = append(spread, vals[:len(vals)-1]...)
		spread = append(spread, last.Cells...)
		vals = spread
	}
	return env.Call(fun, vals)
}

func builtinMacroExpand1(env *LEnv, args []*LVal) (*LVal, error) {
	v, _, err := env.MacroExpand1(args[0])
	return v, err
}

func builtinMacroExpand(env *LEnv, args []*LVal) (*LVal, error) {
	return env.MacroExpand(args[0])
}

// builtinError raises an error.  A leading symbol argument names the error's
// condition.
func builtinError(env *LEnv, args []*LVal) (*LVal, error) {
	cond := CondError
	if len(args) > 0 && args[0].Type == LSymbol {
		cond = args[0].Str
		args = args[1:]
	}
	msg := make([]string, len(args))
	for i, arg := range args {
		msg[i] = display(arg)
	}
	return nil, env.ErrorConditionf(cond, "%s", strings.Join(msg, " "))
}

func builtinGensym(env *LEnv, args []*LVal) (*LVal, error) {
	prefix := "gensym"
	switch {
	case len(args) == 0 || args[0].IsNil():
	case args[0].Type == LSymbol, args[0].Type == LString:
		prefix = args[0].Str
	default:
		return nil, typeError(env, "prefix is not a symbol or string", args[0])
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return Symbol(prefix + "-" + id), nil
}

func builtinAtom(env *LEnv, args []*LVal) (*LVal, error) {
	v := args[0]
	return Bool(v.Type != LSExpr || v.IsNil()), nil
}

func builtinCAR(env *LEnv, args []*LVal) (*LVal, error) {
	if !args[0].IsSeq() {
		return nil, typeError(env, "argument is not a list", args[0])
	}
	return args[0].Head(), nil
}

func builtinCDR(env *LEnv, args []*LVal) (*LVal, error) {
	if !args[0].IsSeq() {
		return nil, typeError(env, "argument is not a list", args[0])
	}
	return args[0].Tail(), nil
}

func builtinCons(env *LEnv, args []*LVal) (*LVal, error) {
	return Cons(args[0], args[1]), nil
}

func builtinList(env *LEnv, args []*LVal) (*LVal, error) {
	return SExpr(args), nil
}

func builtinLength(env *LEnv, args []*LVal) (*LVal, error) {
	if !args[0].IsSeq() {
		return nil, typeError(env, "argument is not a list", args[0])
	}
	return Int(args[0].Len()), nil
}

func builtinReverse(env *LEnv, args []*LVal) (*LVal, error) {
	lis := args[0]
	switch {
	case lis.Type == LString:
		runes := []rune(lis.Str)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return String(string(runes)), nil
	case lis.IsProper():
		cells := make([]*LVal, len(lis.Cells))
		for i, c := range lis.Cells {
			cells[len(cells)-1-i] = c
		}
		return SExpr(cells), nil
	}
	return nil, typeError(env, "argument is not a proper list", lis)
}

// builtinAppend concatenates lists.  The last argument may be any value and
// becomes the tail of the result.
func builtinAppend(env *LEnv, args []*LVal) (*LVal, error) {
	if len(args) == 0 {
		return Nil(), nil
	}
	var cells []*LVal
	for _, lis := range args[:len(args)-1] {
		if !lis.IsProper() && lis.Type != LString {
			return nil, typeError(env, "argument is not a proper list", lis)
		}
		cells = append(cells, lis.Items()...)
	}
	last := args[len(args)-1]
	if len(cells) == 0 {
		return last, nil
	}
	if last.Type == LString {
		return SExpr(append(cells, last.Items()...)), nil
	}
	return Dotted(cells, last), nil
}

func builtinEqual(env *LEnv, args []*LVal) (*LVal, error) {
	return Bool(Equal(args[0], args[1])), nil
}

func builtinNot(env *LEnv, args []*LVal) (*LVal, error) {
	return Bool(args[0].IsNil()), nil
}

func builtinNilP(env *LEnv, args []*LVal) (*LVal, error) {
	return Bool(args[0].IsNil()), nil
}

func builtinListP(env *LEnv, args []*LVal) (*LVal, error) {
	return Bool(args[0].Type == LSExpr), nil
}

func builtinTypeP(typ LType) LBuiltin {
	return func(env *LEnv, args []*LVal) (*LVal, error) {
		return Bool(args[0].Type == typ), nil
	}
}

func builtinCallableP(env *LEnv, args []*LVal) (*LVal, error) {
	return Bool(args[0].IsCallable()), nil
}

func builtinStringToList(env *LEnv, args []*LVal) (*LVal, error) {
	if args[0].Type != LString {
		return nil, typeError(env, "argument is not a string", args[0])
	}
	return SExpr(args[0].Items()), nil
}

func builtinSymbolToString(env *LEnv, args []*LVal) (*LVal, error) {
	if args[0].Type != LSymbol {
		return nil, typeError(env, "argument is not a symbol", args[0])
	}
	return String(args[0].Str), nil
}

func builtinStringToSymbol(env *LEnv, args []*LVal) (*LVal, error) {
	if args[0].Type != LString {
		return nil, typeError(env, "argument is not a string", args[0])
	}
	return Symbol(args[0].Str), nil
}

func builtinCompare(cmp func(a, b float64) bool) LBuiltin {
	return func(env *LEnv, args []*LVal) (*LVal, error) {
		if err := checkNumbers(env, args); err != nil {
			return nil, err
		}
		return Bool(cmp(args[0].Num, args[1].Num)), nil
	}
}

func builtinMod(env *LEnv, args []*LVal) (*LVal, error) {
	if err := checkNumbers(env, args); err != nil {
		return nil, err
	}
	if args[1].Num == 0 {
		return nil, env.Errorf("division by zero")
	}
	return Number(math.Mod(args[0].Num, args[1].Num)), nil
}

func builtinAdd(env *LEnv, args []*LVal) (*LVal, error) {
	if err := checkNumbers(env, args); err != nil {
		return nil, err
	}
	sum := 0.0
	for _, c := range args {
		sum += c.Num
	}
	return Number(sum), nil
}

func builtinSub(env *LEnv, args []*LVal) (*LVal, error) {
	if err := checkNumbers(env, args); err != nil {
		return nil, err
	}
	switch len(args) {
	case 0:
		return Number(0), nil
	case 1:
		return Number(-args[0].Num), nil
	}
	diff := args[0].Num
	for _, c := range args[1:] {
		diff -= c.Num
	}
	return Number(diff), nil
}

func builtinMul(env *LEnv, args []*LVal) (*LVal, error) {
	if err := checkNumbers(env, args); err != nil {
		return nil, err
	}
	prod := 1.0
	for _, c := range args {
		prod *= c.Num
	}
	return Number(prod), nil
}

func builtinDiv(env *LEnv, args []*LVal) (*LVal, error) {
	if err := checkNumbers(env, args); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return Number(1), nil
	}
	quo := args[0].Num
	rest := args[1:]
	if len(args) == 1 {
		quo = 1
		rest = args
	}
	for _, c := range rest {
		if c.Num == 0 {
			return nil, env.Errorf("division by zero")
		}
		quo /= c.Num
	}
	return Number(quo), nil
}

func builtinPrint(env *LEnv, args []*LVal) (*LVal, error) {
	_, err := fmt.Fprint(env.Runtime.Stdout, displayList(args))
	if err != nil {
		return nil, err
	}
	return Nil(), nil
}

func builtinPrintln(env *LEnv, args []*LVal) (*LVal, error) {
	_, err := fmt.Fprintln(env.Runtime.Stdout, displayList(args))
	if err != nil {
		return nil, err
	}
	return Nil(), nil
}

func builtinDebugPrint(env *LEnv, args []*LVal) (*LVal, error) {
	var buf bytes.Buffer
	for i, arg := range args {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(arg.String())
	}
	buf.WriteString("\n")
	if _, err := env.Runtime.Stderr.Write(buf.Bytes()); err != nil {
		return nil, err
	}
	return Nil(), nil
}

func builtinDebugStack(env *LEnv, args []*LVal) (*LVal, error) {
	if _, err := env.Runtime.Stack.DebugPrint(env.Runtime.Stderr); err != nil {
		return nil, err
	}
	return Nil(), nil
}

func checkNumbers(env *LEnv, args []*LVal) error {
	for _, c := range args {
		if c.Type != LNumber {
			return typeError(env, "argument is not a number", c)
		}
	}
	return nil
}

func typeError(env *LEnv, msg string, v *LVal) error {
	return env.ErrorConditionf(CondTypeError, "%s: %v", msg, v)
}

// display returns the text of strings and characters and the printed form of
// any other value.
func display(v *LVal) string {
	switch v.Type {
	case LString:
		return v.Str
	case LChar:
		return string(v.Char)
	}
	return v.String()
}

func displayList(args []*LVal) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = display(arg)
	}
	return strings.Join(parts, " ")
}
