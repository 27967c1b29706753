package lisp

// ExpandTemplate expands the quasiquote template v.  Within a list template
// (unquote x) is replaced by the value of x and (unquote-splice x) by the
// items of the list x evaluates to.  Nested lists are expanded recursively
// and every other item is copied.  A template that is itself (unquote x)
// evaluates to the value of x.
func (env *LEnv) ExpandTemplate(v *LVal) (*LVal, error) {
	switch {
	case isUnquote(v):
		return env.EvalArg(v.Cells[1])
	case isUnquoteSplice(v):
		return nil, env.ErrorConditionf(CondQuasiquote, "%v used outside of a list", v.Cells[0])
	}
	return env.expandTemplate(v)
}

func (env *LEnv) expandTemplate(v *LVal) (*LVal, error) {
	if v.Type != LSExpr || v.IsNil() {
		return v, nil
	}
	cells := make([]*LVal, 0, len(v.Cells))
	tail := v.DottedTail
	for i, item := range v.Cells {
		switch {
		case isUnquote(item):
			val, err := env.EvalArg(item.Cells[1])
			if err != nil {
				return nil, err
			}
			cells = append(cells, val)
		case isUnquoteSplice(item):
			val, err := env.EvalArg(item.Cells[1])
			if err != nil {
				return nil, err
			}
			if !val.IsProper() {
				return nil, env.ErrorConditionf(CondQuasiquote, "%v: not a proper list: %v", item.Cells[0], val)
			}
			cells = append(cells, val.Cells...)
		case isUnquoteTail(v, i):
			// The template (a . ,b) reads as (a unquote b).
			val, err := env.EvalArg(v.Cells[i+1])
			if err != nil {
				return nil, err
			}
			return Dotted(cells, val), nil
		case item.Type == LSExpr:
			exp, err := env.expandTemplate(item)
			if err != nil {
				return nil, err
			}
			cells = append(cells, exp)
		default:
			cells = append(cells, item)
		}
	}
	if len(cells) == 0 {
		if tail != nil {
			return tail, nil
		}
		return Nil(), nil
	}
	res := Dotted(cells, tail)
	res.Source = v.Source
	return res, nil
}

func isUnquote(v *LVal) bool {
	return isForm(v, UnquoteSymbol)
}

func isUnquoteSplice(v *LVal) bool {
	return isForm(v, UnquoteSpliceSymbol) || isForm(v, UnquoteSplicingSymbol)
}

// isUnquoteTail reports whether the item at index i of the template v is an
// unquote symbol in the position of a dotted tail.
func isUnquoteTail(v *LVal, i int) bool {
	item := v.Cells[i]
	return i > 0 &&
		i == len(v.Cells)-2 &&
		v.DottedTail == nil &&
		item.Type == LSymbol &&
		item.Str == UnquoteSymbol
}

// isForm reports whether v is a two item list headed by the symbol name.
func isForm(v *LVal, name string) bool {
	return v.Type == LSExpr &&
		v.DottedTail == nil &&
		len(v.Cells) == 2 &&
		v.Cells[0].Type == LSymbol &&
		v.Cells[0].Str == name
}
