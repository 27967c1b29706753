package lisp

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LEnv is a lisp environment.
type LEnv struct {
	ID      uint
	Scope   map[string]*LVal
	Parent  *LEnv
	Runtime *Runtime

	// captured marks the read-only frame that exposes a callable's creation
	// environment during an invocation.  It shares its Scope with the
	// creation environment.
	captured bool
}

// NewEnv returns initializes and returns a new LEnv.  A nil parent creates a
// root environment with a new StandardRuntime.
func NewEnv(parent *LEnv) *LEnv {
	var rt *Runtime
	if parent != nil {
		rt = parent.Runtime
	} else {
		rt = StandardRuntime()
	}
	return &LEnv{
		ID:      rt.GenEnvID(),
		Scope:   make(map[string]*LVal),
		Parent:  parent,
		Runtime: rt,
	}
}

// InitializeUserEnv applies config to env and binds the default special
// operators and builtins.
func InitializeUserEnv(env *LEnv, config ...Config) error {
	for _, fn := range config {
		if err := fn(env); err != nil {
			return err
		}
	}
	env.AddSpecialOps()
	env.AddBuiltins()
	env.Put(Symbol(TrueSymbol), Symbol(TrueSymbol))
	return nil
}

// Get takes an LSymbol k and returns the LVal it is bound to in env.
func (env *LEnv) Get(k *LVal) (*LVal, error) {
	if k.Type != LSymbol {
		return nil, env.ErrorConditionf(CondTypeError, "not a symbol: %v", k)
	}
	if v, ok := env.Lookup(k.Str); ok {
		return v, nil
	}
	return nil, &ErrorVal{
		Condition: CondUnboundName,
		Msg:       fmt.Sprintf("unbound symbol: %v", k),
		Source:    k.Source,
	}
}

// Lookup returns the value bound to name in the nearest frame that binds it.
func (env *LEnv) Lookup(name string) (*LVal, bool) {
	for e := env; e != nil; e = e.Parent {
		if v, ok := e.Scope[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Put takes an LSymbol k and binds it to v in env.  Put never modifies an
// enclosing environment.
func (env *LEnv) Put(k, v *LVal) {
	if k.Type != LSymbol {
		panic("binding a non-symbol: " + k.String())
	}
	if v == nil {
		panic("nil value")
	}
	if env.captured {
		panic("binding in a captured environment")
	}
	env.Scope[k.Str] = v
}

// Root returns the root environment of env.
func (env *LEnv) Root() *LEnv {
	for env.Parent != nil {
		env = env.Parent
	}
	return env
}

// Depth returns the number of frames between env and the root environment,
// counting both.
func (env *LEnv) Depth() int {
	n := 0
	for e := env; e != nil; e = e.Parent {
		n++
	}
	return n
}

// AddSpecialOps binds the given special operators to their names in env.  When
// called with no arguments AddSpecialOps adds the DefaultSpecialOps to env.
func (env *LEnv) AddSpecialOps(ops ...LBuiltinDef) {
	if len(ops) == 0 {
		ops = DefaultSpecialOps()
	}
	env.addBuiltinDefs(ops)
}

// AddBuiltins binds the given funs to their names in env.  When called with
// no arguments AddBuiltins adds the DefaultBuiltins to env.
func (env *LEnv) AddBuiltins(funs ...LBuiltinDef) {
	if len(funs) == 0 {
		funs = DefaultBuiltins()
	}
	env.addBuiltinDefs(funs)
}

func (env *LEnv) addBuiltinDefs(defs []LBuiltinDef) {
	for _, def := range defs {
		if exist, ok := env.Scope[def.Name()]; ok {
			panic(fmt.Sprintf("function already defined: %s (= %v)", def.Name(), exist))
		}
		env.Put(Symbol(def.Name()), Fun(def.Name(), def.Formals(), def.Eval))
	}
}

// Lambda returns a new closure created in env.
func (env *LEnv) Lambda(spec *LVal, body []*LVal) (*LVal, error) {
	return env.callable(LClosure, spec, body)
}

// Macro returns a new macro created in env.
func (env *LEnv) Macro(spec *LVal, body []*LVal) (*LVal, error) {
	return env.callable(LMacro, spec, body)
}

func (env *LEnv) callable(typ LType, spec *LVal, body []*LVal) (*LVal, error) {
	sig, err := ParseSignature(spec)
	if err != nil {
		return nil, err
	}
	return &LVal{
		Type:   typ,
		Source: spec.Source,
		Fun: &LFunData{
			Spec:      spec,
			Signature: sig,
			Body:      body,
			Env:       env,
		},
	}, nil
}

// Load reads LVals from r and evaluates them as if in a progn.  The value
// returned by the last evaluated LVal will be returned.
func (env *LEnv) Load(name string, r io.Reader) (*LVal, error) {
	if env.Runtime.Reader == nil {
		return nil, errors.New("no reader for environment runtime")
	}
	exprs, err := env.Runtime.Reader.Read(name, r)
	if err != nil {
		return nil, err
	}
	ret := Nil()
	for _, expr := range exprs {
		ret, err = env.EvalArg(expr)
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// LoadString evaluates the source text src as if in a progn.
func (env *LEnv) LoadString(name, src string) (*LVal, error) {
	return env.Load(name, strings.NewReader(src))
}

// LoadFile evaluates the contents of the file at loc as if in a progn.
func (env *LEnv) LoadFile(loc string) (*LVal, error) {
	f, err := os.Open(loc)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return env.Load(loc, f)
}

// Eval evaluates v in the context (scope) of env and returns the resulting
// LVal.  Symbols are resolved and non-empty lists are invoked.  Every other
// value evaluates to itself.  The expansion of a macro invocation is
// evaluated in env.  Calling a loop's recur function outside of the loop
// body is an error.
func (env *LEnv) Eval(v *LVal) (*LVal, error) {
	r, err := env.evalTail(v)
	if err != nil {
		return nil, err
	}
	if r.Type == LMarkTailRec {
		return nil, &ErrorVal{
			Condition: CondError,
			Msg:       "recur used outside of tail position",
			Source:    v.Source,
		}
	}
	return r, nil
}

// evalTail evaluates v in tail position.  The result may be the marker
// returned by a loop's recur function.
func (env *LEnv) evalTail(v *LVal) (*LVal, error) {
	expansions := 0
eval:
	switch v.Type {
	case LSymbol:
		return env.Get(v)
	case LSExpr:
		if v.IsNil() {
			return v, nil
		}
		res, expanded, err := env.EvalSExpr(v)
		if err != nil {
			return nil, err
		}
		if expanded {
			expansions++
			if max := env.Runtime.Stack.MaxHeight; max > 0 && expansions > max {
				return nil, &ErrorVal{
					Condition: CondStackExhausted,
					Msg:       fmt.Sprintf("macro expansion limit exceeded (%d)", max),
					Source:    v.Source,
				}
			}
			v = res
			goto eval
		}
		return res, nil
	}
	return v, nil
}

// EvalArg evaluates v for its value.  Builtins use EvalArg for every
// evaluation that is not in tail position.
func (env *LEnv) EvalArg(v *LVal) (*LVal, error) {
	return env.Eval(v)
}

// EvalArgs evaluates each of args in order with EvalArg.
func (env *LEnv) EvalArgs(args []*LVal) ([]*LVal, error) {
	vals := make([]*LVal, len(args))
	for i, arg := range args {
		v, err := env.EvalArg(arg)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// Progn evaluates body in order and returns the value of the last
// expression.  The last expression is evaluated in tail position.  An empty
// body evaluates to nil.
func (env *LEnv) Progn(body []*LVal) (*LVal, error) {
	if len(body) == 0 {
		return Nil(), nil
	}
	for _, expr := range body[:len(body)-1] {
		if _, err := env.EvalArg(expr); err != nil {
			return nil, err
		}
	}
	return env.evalTail(body[len(body)-1])
}

// EvalSExpr invokes the non-empty list s.  When the invoked callable is a
// macro EvalSExpr returns the unevaluated expansion and a true second value.
func (env *LEnv) EvalSExpr(s *LVal) (*LVal, bool, error) {
	head := s.Cells[0]
	fun, err := env.resolveOperator(head)
	if err != nil {
		return nil, false, env.errorAssociate(err, s)
	}
	args := callArgs(s)
	reuse := fun.Type != LFun && head.Type == LSymbol && head.Str == RecurSymbol && env.Scope[RecurSymbol] == fun

	name := fun.FunName()
	if name == "" && head.Type == LSymbol {
		name = head.Str
	}
	stack := env.Runtime.Stack
	if err := stack.Push(name, s.Source); err != nil {
		return nil, false, err
	}
	stack.Top().Reused = reuse
	res, expanded, err := env.invoke(fun, args, reuse)
	if err != nil {
		err = env.errorAssociate(err, s)
	}
	stack.Pop()
	return res, expanded, err
}

// callArgs returns the unevaluated argument expressions of the invocation s.
// The tail of an improper list is passed whole as a single argument.
func callArgs(s *LVal) []*LVal {
	if s.DottedTail != nil {
		return []*LVal{s.Tail()}
	}
	return s.Cells[1:]
}

// resolveOperator evaluates the operator expression head until it produces
// something invocable.
func (env *LEnv) resolveOperator(head *LVal) (*LVal, error) {
	f := head
	for i := 0; i < maxOperatorResolution; i++ {
		v, err := env.EvalArg(f)
		if err != nil {
			return nil, err
		}
		if v.IsCallable() {
			return v, nil
		}
		if v.Type != LSymbol && (v.Type != LSExpr || v.IsNil()) {
			return nil, notInvocable(head, v)
		}
		f = v
	}
	return nil, notInvocable(head, f)
}

func notInvocable(expr, v *LVal) error {
	return &ErrorVal{
		Condition: CondNotInvocable,
		Msg:       fmt.Sprintf("not invocable: %v", v),
		Source:    expr.Source,
	}
}

func (env *LEnv) invoke(fun *LVal, args []*LVal, reuse bool) (*LVal, bool, error) {
	switch fun.Type {
	case LFun:
		if sig := fun.Fun.Signature; sig != nil {
			if err := sig.CheckArity(fun.Fun.Name, len(args)); err != nil {
				return nil, false, err
			}
		}
		v, err := fun.Fun.Builtin(env, args)
		return v, false, err
	case LClosure:
		local, err := env.bind(fun, args, reuse)
		if err != nil {
			return nil, false, err
		}
		v, err := local.Progn(fun.Fun.Body)
		if err != nil {
			return nil, false, err
		}
		if v.Type == LMarkTailRec {
			return nil, false, env.Errorf("recur used outside of tail position")
		}
		return v, false, nil
	case LMacro:
		v, err := env.expand(fun, args, reuse)
		return v, true, err
	}
	return nil, false, notInvocable(fun, fun)
}

// expand computes the expansion of the macro fun invoked with args.
func (env *LEnv) expand(fun *LVal, args []*LVal, reuse bool) (*LVal, error) {
	local, err := env.bind(fun, args, reuse)
	if err != nil {
		return nil, err
	}
	v, err := local.Progn(fun.Fun.Body)
	if err != nil {
		return nil, err
	}
	if env.debugEnabled() {
		env.Runtime.Logger.WithFields(logrus.Fields{
			"fun":   fun.FunName(),
			"depth": env.Depth(),
			"env":   env.ID,
		}).Debugf("macro expanded to %v", v)
	}
	return v, nil
}

// bind selects the local frame for an invocation of the closure or macro fun
// and binds args in it.  Arity is checked before anything is evaluated and
// closure arguments are all evaluated in env before any binding is made.
func (env *LEnv) bind(fun *LVal, args []*LVal, reuse bool) (*LEnv, error) {
	fd := fun.Fun
	slots, ok := fd.Signature.slots(len(args))
	if !ok {
		return nil, fd.Signature.arityError(fd.Name, len(args))
	}
	evaluate := fun.Type == LClosure
	vals := make([]*LVal, len(fd.Signature.Params))
	for i, p := range fd.Signature.Params {
		slot := slots[i]
		if p.Kind == ParamRest {
			rest := args[slot.lo:slot.hi]
			if evaluate {
				var err error
				rest, err = env.EvalArgs(rest)
				if err != nil {
					return nil, err
				}
			}
			vals[i] = SExpr(rest)
			continue
		}
		if slot.lo == slot.hi {
			continue
		}
		v := args[slot.lo]
		if evaluate {
			var err error
			v, err = env.EvalArg(v)
			if err != nil {
				return nil, err
			}
		}
		vals[i] = v
	}

	var local *LEnv
	if reuse {
		local = env
		if env.debugEnabled() {
			env.Runtime.Logger.WithFields(logrus.Fields{
				"fun":   fd.Name,
				"depth": env.Depth(),
				"env":   env.ID,
			}).Debug("reusing call frame")
		}
	} else {
		local = env.callFrame(fun)
	}
	for i, p := range fd.Signature.Params {
		v := vals[i]
		if v == nil {
			switch {
			case p.Default == nil:
				v = Nil()
			case evaluate:
				var err error
				v, err = local.EvalArg(p.Default)
				if err != nil {
					return nil, err
				}
			default:
				v = p.Default
			}
		}
		local.Scope[p.Name] = v
	}
	local.Scope[RecurSymbol] = fun
	return local, nil
}

// callFrame returns a new local frame for an invocation of fun from env.  The
// frame's parent is a read-only view of the bindings in fun's creation
// environment, whose parent in turn is env.
func (env *LEnv) callFrame(fun *LVal) *LEnv {
	rt := env.Runtime
	captured := &LEnv{
		ID:       rt.GenEnvID(),
		Scope:    fun.Fun.Env.Scope,
		Parent:   env,
		Runtime:  rt,
		captured: true,
	}
	return &LEnv{
		ID:      rt.GenEnvID(),
		Scope:   make(map[string]*LVal),
		Parent:  captured,
		Runtime: rt,
	}
}

// MacroExpand1 expands form once if it is the invocation of a macro.  The
// second value reports whether an expansion took place.
func (env *LEnv) MacroExpand1(form *LVal) (*LVal, bool, error) {
	if form.Type != LSExpr || form.IsNil() {
		return form, false, nil
	}
	fun, err := env.resolveOperator(form.Cells[0])
	if err != nil {
		if errors.Is(err, ErrUnboundName) || errors.Is(err, ErrNotInvocable) {
			return form, false, nil
		}
		return nil, false, err
	}
	if fun.Type != LMacro {
		return form, false, nil
	}
	stack := env.Runtime.Stack
	if err := stack.Push(fun.FunName(), form.Source); err != nil {
		return nil, false, err
	}
	v, err := env.expand(fun, callArgs(form), false)
	if err != nil {
		err = env.errorAssociate(err, form)
	}
	stack.Pop()
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// MacroExpand expands form repeatedly until it is no longer the invocation
// of a macro.
func (env *LEnv) MacroExpand(form *LVal) (*LVal, error) {
	max := env.Runtime.Stack.MaxHeight
	for n := 0; ; n++ {
		if max > 0 && n > max {
			return nil, &ErrorVal{
				Condition: CondStackExhausted,
				Msg:       fmt.Sprintf("macro expansion limit exceeded (%d)", max),
				Source:    form.Source,
			}
		}
		v, expanded, err := env.MacroExpand1(form)
		if err != nil {
			return nil, err
		}
		if !expanded {
			return v, nil
		}
		form = v
	}
}

// Call invokes fun with argument values that have already been evaluated.
func (env *LEnv) Call(fun *LVal, vals []*LVal) (*LVal, error) {
	cells := make([]*LVal, 0, len(vals)+1)
	cells = append(cells, fun)
	for _, v := range vals {
		cells = append(cells, quoteValue(v))
	}
	return env.Eval(SExpr(cells))
}

// quoteValue returns an expression that evaluates to v.
func quoteValue(v *LVal) *LVal {
	switch v.Type {
	case LSymbol:
		return Quote(v)
	case LSExpr:
		if !v.IsNil() {
			return Quote(v)
		}
	}
	return v
}

func (env *LEnv) debugEnabled() bool {
	switch logger := env.Runtime.Logger.(type) {
	case *logrus.Logger:
		return logger.IsLevelEnabled(logrus.DebugLevel)
	case *logrus.Entry:
		return logger.Logger.IsLevelEnabled(logrus.DebugLevel)
	case nil:
		return false
	}
	return true
}
