package lisp

// Equal reports whether a and b are structurally equal.  Values of different
// types are never equal.  Lists are compared item by item, including any
// dotted tail.  Closures and macros are equal when they were created in the
// same environment from equal binding specifications and bodies.  Builtins
// are only equal to themselves.  Source locations and names are ignored.
func Equal(a, b *LVal) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Type != b.Type {
		return false
	}
	switch a.Type {
	case LNumber:
		return a.Num == b.Num
	case LChar:
		return a.Char == b.Char
	case LKeyword, LSymbol, LString:
		return a.Str == b.Str
	case LSExpr:
		if len(a.Cells) != len(b.Cells) {
			return false
		}
		for i := range a.Cells {
			if !Equal(a.Cells[i], b.Cells[i]) {
				return false
			}
		}
		if a.DottedTail == nil || b.DottedTail == nil {
			return a.DottedTail == nil && b.DottedTail == nil
		}
		return Equal(a.DottedTail, b.DottedTail)
	case LFun:
		return a.Fun == b.Fun
	case LClosure, LMacro:
		if a.Fun.Env != b.Fun.Env || len(a.Fun.Body) != len(b.Fun.Body) {
			return false
		}
		if !Equal(a.Fun.Spec, b.Fun.Spec) {
			return false
		}
		for i := range a.Fun.Body {
			if !Equal(a.Fun.Body[i], b.Fun.Body[i]) {
				return false
			}
		}
		return true
	}
	return false
}
