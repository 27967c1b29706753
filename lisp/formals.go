package lisp

import "fmt"

// ParamKind distinguishes the kinds of parameters in a binding
// specification.
type ParamKind uint8

// Possible ParamKind values
const (
	ParamRequired ParamKind = iota
	ParamOptional
	ParamRest
)

// Param is a single parameter of a binding specification.
type Param struct {
	Kind ParamKind
	Name string
	// Default is the expression bound to an absent optional parameter.  A nil
	// Default binds the empty list.
	Default *LVal
}

// Signature is a parsed binding specification.  Signatures are immutable once
// parsed and may be shared by any number of concurrent invocations.
type Signature struct {
	Params []Param
}

// ParseSignature parses the binding specification spec.  Recognized forms
// are a bare symbol (required), ? followed by a symbol or a (symbol default)
// pair (optional), & followed by a symbol (rest), and a dotted tail symbol
// (rest).
func ParseSignature(spec *LVal) (*Signature, error) {
	if spec.Type != LSExpr {
		return nil, malformedSpec(spec, "binding specification is not a list: %v", spec)
	}
	sig := &Signature{}
	cells := spec.Cells
	for i := 0; i < len(cells); i++ {
		item := cells[i]
		if item.Type != LSymbol {
			return nil, malformedSpec(item, "invalid binding: %v", item)
		}
		switch item.Str {
		case OptArgSymbol:
			i++
			if i >= len(cells) {
				return nil, malformedSpec(item, "%s is not followed by a binding", OptArgSymbol)
			}
			p, err := parseOptional(cells[i])
			if err != nil {
				return nil, err
			}
			sig.Params = append(sig.Params, p)
		case VarArgSymbol:
			i++
			if i >= len(cells) || !isBindingName(cells[i]) {
				return nil, malformedSpec(item, "%s is not followed by a symbol", VarArgSymbol)
			}
			if i != len(cells)-1 || spec.DottedTail != nil {
				return nil, malformedSpec(item, "%s binding must be last", VarArgSymbol)
			}
			sig.Params = append(sig.Params, Param{Kind: ParamRest, Name: cells[i].Str})
		default:
			sig.Params = append(sig.Params, Param{Kind: ParamRequired, Name: item.Str})
		}
	}
	if spec.DottedTail != nil {
		if !isBindingName(spec.DottedTail) {
			return nil, malformedSpec(spec.DottedTail, "invalid rest binding: %v", spec.DottedTail)
		}
		sig.Params = append(sig.Params, Param{Kind: ParamRest, Name: spec.DottedTail.Str})
	}
	return sig, nil
}

func parseOptional(v *LVal) (Param, error) {
	if isBindingName(v) {
		return Param{Kind: ParamOptional, Name: v.Str}, nil
	}
	if v.IsProper() && v.Len() == 2 && isBindingName(v.Cells[0]) {
		return Param{Kind: ParamOptional, Name: v.Cells[0].Str, Default: v.Cells[1]}, nil
	}
	return Param{}, malformedSpec(v, "invalid optional binding: %v", v)
}

func isBindingName(v *LVal) bool {
	return v.Type == LSymbol && v.Str != OptArgSymbol && v.Str != VarArgSymbol
}

func malformedSpec(v *LVal, format string, args ...interface{}) error {
	return &ErrorVal{
		Condition: CondMalformedBindingSpec,
		Msg:       fmt.Sprintf(format, args...),
		Source:    v.Source,
	}
}

// MinArgs returns the smallest number of arguments that binds every required
// parameter.  Parameters are filled in order, so an optional parameter
// preceding a required one also needs an argument.
func (sig *Signature) MinArgs() int {
	n := 0
	for i, p := range sig.Params {
		if p.Kind == ParamRequired {
			n = i + 1
		}
	}
	return n
}

// MaxArgs returns the maximum number of arguments accepted or -1 when there
// is a rest parameter.
func (sig *Signature) MaxArgs() int {
	n := 0
	for _, p := range sig.Params {
		if p.Kind == ParamRest {
			return -1
		}
		n++
	}
	return n
}

// argSlot is the range of arguments args[lo:hi] consumed by one parameter.
// An empty optional slot means the argument is absent.
type argSlot struct {
	lo, hi int
}

// slots walks the parameters in lockstep with nargs arguments and returns the
// arguments consumed by each parameter.  Slots never evaluates anything, so
// an arity violation is detected before any argument has been evaluated.
func (sig *Signature) slots(nargs int) ([]argSlot, bool) {
	slots := make([]argSlot, len(sig.Params))
	i := 0
	for k, p := range sig.Params {
		switch p.Kind {
		case ParamRequired:
			if i >= nargs {
				return nil, false
			}
			slots[k] = argSlot{i, i + 1}
			i++
		case ParamOptional:
			if i < nargs {
				slots[k] = argSlot{i, i + 1}
				i++
			} else {
				slots[k] = argSlot{i, i}
			}
		case ParamRest:
			slots[k] = argSlot{i, nargs}
			i = nargs
		}
	}
	if i < nargs {
		return nil, false
	}
	return slots, true
}

// CheckArity returns an *ArityError when nargs arguments cannot be bound by
// sig.
func (sig *Signature) CheckArity(name string, nargs int) error {
	if _, ok := sig.slots(nargs); ok {
		return nil
	}
	return sig.arityError(name, nargs)
}

func (sig *Signature) arityError(name string, nargs int) error {
	arity := &ArityError{Fun: name, Min: sig.MinArgs(), Max: sig.MaxArgs(), Got: nargs}
	return &ErrorVal{
		Condition: CondArity,
		Msg:       arity.Error(),
		FunName:   name,
		Err:       arity,
	}
}
