package lisp

// specialOp is a function that receives its arguments unevaluated.  Control
// constructs and binding forms are special operators.
type specialOp struct {
	name    string
	formals *LVal
	fun     LBuiltin
}

func (op *specialOp) Name() string {
	return op.name
}

func (op *specialOp) Formals() *LVal {
	return op.formals
}

func (op *specialOp) Eval(env *LEnv, args []*LVal) (*LVal, error) {
	return op.fun(env, args)
}

var userSpecialOps []*specialOp
var langSpecialOps = []*specialOp{
	{"quote", Formals("expr"), opQuote},
	{"quasiquote", Formals("expr"), opQuasiquote},
	{"backquote", Formals("expr"), opQuasiquote},
	{"lambda", Formals("formals", VarArgSymbol, "expr"), opLambda},
	{"fn", Formals("formals", VarArgSymbol, "expr"), opLambda},
	{"macro", Formals("formals", VarArgSymbol, "expr"), opMacro},
	{"def", Formals("sym", "value"), opDef},
	{"let*", Formals("bindings", VarArgSymbol, "expr"), opLetSeq},
	{"let", Formals("bindings", VarArgSymbol, "expr"), opLet},
	{"loop", Formals("bindings", VarArgSymbol, "expr"), opLoop},
	{"progn", Formals(VarArgSymbol, "expr"), opProgn},
	{"do", Formals(VarArgSymbol, "expr"), opProgn},
	{"cond", Formals(VarArgSymbol, "branch"), opCond},
	{"if", Formals("condition", "then", OptArgSymbol, "else"), opIf},
	{"or", Formals(VarArgSymbol, "expr"), opOr},
	{"and", Formals(VarArgSymbol, "expr"), opAnd},
}

// RegisterDefaultSpecialOp adds the given function to the list returned by
// DefaultSpecialOps.  The arguments of fn are not evaluated.
func RegisterDefaultSpecialOp(name string, formals *LVal, fn LBuiltin) {
	userSpecialOps = append(userSpecialOps, &specialOp{name, formals, fn})
}

// DefaultSpecialOps returns the default set of LBuiltinDef added to LEnv
// objects when LEnv.AddSpecialOps is called without arguments.
func DefaultSpecialOps() []LBuiltinDef {
	ops := make([]LBuiltinDef, 0, len(langSpecialOps)+len(userSpecialOps))
	for _, op := range langSpecialOps {
		ops = append(ops, op)
	}
	for _, op := range userSpecialOps {
		ops = append(ops, op)
	}
	return ops
}

// SpecialOp returns an LBuiltinDef whose arguments are passed to fn
// unevaluated.
func SpecialOp(name string, formals *LVal, fn LBuiltin) LBuiltinDef {
	return &specialOp{name, formals, fn}
}

func opQuote(env *LEnv, args []*LVal) (*LVal, error) {
	return args[0], nil
}

func opQuasiquote(env *LEnv, args []*LVal) (*LVal, error) {
	return env.ExpandTemplate(args[0])
}

func opLambda(env *LEnv, args []*LVal) (*LVal, error) {
	return env.Lambda(args[0], args[1:])
}

func opMacro(env *LEnv, args []*LVal) (*LVal, error) {
	return env.Macro(args[0], args[1:])
}

func opDef(env *LEnv, args []*LVal) (*LVal, error) {
	sym := args[0]
	if sym.Type != LSymbol {
		return nil, typeError(env, "first argument is not a symbol", sym)
	}
	if sym.Str == TrueSymbol {
		return nil, env.Errorf("cannot rebind constant: %v", sym)
	}
	v, err := env.EvalArg(args[1])
	if err != nil {
		return nil, err
	}
	v = Named(v, sym.Str)
	env.Put(sym, v)
	return v, nil
}

type binding struct {
	sym  *LVal
	init *LVal
}

// parseBindings parses a list of (symbol expr) pairs.  A bare symbol binds
// nil.
func parseBindings(env *LEnv, bindlist *LVal) ([]binding, error) {
	if !bindlist.IsProper() {
		return nil, typeError(env, "first argument is not a list", bindlist)
	}
	binds := make([]binding, len(bindlist.Cells))
	for i, bind := range bindlist.Cells {
		switch {
		case isBindingName(bind):
			binds[i] = binding{sym: bind, init: Nil()}
		case bind.IsProper() && bind.Len() == 1 && isBindingName(bind.Cells[0]):
			binds[i] = binding{sym: bind.Cells[0], init: Nil()}
		case bind.IsProper() && bind.Len() == 2 && isBindingName(bind.Cells[0]):
			binds[i] = binding{sym: bind.Cells[0], init: bind.Cells[1]}
		default:
			return nil, env.Errorf("invalid binding: %v", bind)
		}
	}
	return binds, nil
}

func opLet(env *LEnv, args []*LVal) (*LVal, error) {
	binds, err := parseBindings(env, args[0])
	if err != nil {
		return nil, err
	}
	vals := make([]*LVal, len(binds))
	for i, bind := range binds {
		vals[i], err = env.EvalArg(bind.init)
		if err != nil {
			return nil, err
		}
	}
	letenv := NewEnv(env)
	for i, bind := range binds {
		letenv.Put(bind.sym, vals[i])
	}
	return letenv.Progn(args[1:])
}

func opLetSeq(env *LEnv, args []*LVal) (*LVal, error) {
	binds, err := parseBindings(env, args[0])
	if err != nil {
		return nil, err
	}
	letenv := NewEnv(env)
	for _, bind := range binds {
		val, err := letenv.EvalArg(bind.init)
		if err != nil {
			return nil, err
		}
		letenv.Put(bind.sym, val)
	}
	return letenv.Progn(args[1:])
}

// opLoop binds its variables like let* and evaluates its body.  Within the
// body recur evaluates its arguments and restarts the loop with the
// variables bound to them.  Iteration grows neither the Go stack nor the
// environment chain.
func opLoop(env *LEnv, args []*LVal) (*LVal, error) {
	binds, err := parseBindings(env, args[0])
	if err != nil {
		return nil, err
	}
	body := args[1:]
	names := make([]string, len(binds))
	frame := NewEnv(env)
	for i, bind := range binds {
		names[i] = bind.sym.Str
		val, err := frame.EvalArg(bind.init)
		if err != nil {
			return nil, err
		}
		frame.Put(bind.sym, val)
	}
	var recur *LVal
	recur = Fun(RecurSymbol, Formals(names...), func(env *LEnv, args []*LVal) (*LVal, error) {
		vals, err := env.EvalArgs(args)
		if err != nil {
			return nil, err
		}
		return &LVal{Type: LMarkTailRec, Cells: vals, Fun: recur.Fun}, nil
	})
	for {
		frame.Put(Symbol(RecurSymbol), recur)
		v, err := frame.Progn(body)
		if err != nil {
			return nil, err
		}
		if v.Type != LMarkTailRec || v.Fun != recur.Fun {
			return v, nil
		}
		frame = NewEnv(env)
		for i, bind := range binds {
			frame.Put(bind.sym, v.Cells[i])
		}
	}
}

func opProgn(env *LEnv, args []*LVal) (*LVal, error) {
	return env.Progn(args)
}

func opCond(env *LEnv, args []*LVal) (*LVal, error) {
	for _, branch := range args {
		if !branch.IsProper() || branch.IsNil() {
			return nil, env.Errorf("argument is not a non-empty list: %v", branch)
		}
		test, err := env.EvalArg(branch.Cells[0])
		if err != nil {
			return nil, err
		}
		if test.IsNil() {
			continue
		}
		if len(branch.Cells) == 1 {
			return test, nil
		}
		return env.Progn(branch.Cells[1:])
	}
	return Nil(), nil
}

func opIf(env *LEnv, args []*LVal) (*LVal, error) {
	test, err := env.EvalArg(args[0])
	if err != nil {
		return nil, err
	}
	if test.IsTrue() {
		return env.evalTail(args[1])
	}
	if len(args) > 2 {
		return env.evalTail(args[2])
	}
	return Nil(), nil
}

func opOr(env *LEnv, args []*LVal) (*LVal, error) {
	if len(args) == 0 {
		return Nil(), nil
	}
	for _, expr := range args[:len(args)-1] {
		v, err := env.EvalArg(expr)
		if err != nil {
			return nil, err
		}
		if v.IsTrue() {
			return v, nil
		}
	}
	return env.evalTail(args[len(args)-1])
}

func opAnd(env *LEnv, args []*LVal) (*LVal, error) {
	if len(args) == 0 {
		return Symbol(TrueSymbol), nil
	}
	for _, expr := range args[:len(args)-1] {
		v, err := env.EvalArg(expr)
		if err != nil {
			return nil, err
		}
		if v.IsNil() {
			return v, nil
		}
	}
	return env.evalTail(args[len(args)-1])
}
