package lisp

import (
	"unicode/utf8"

	"github.com/programble/lispy/parser/token"
)

// LType is the type of an LVal
type LType uint

// Possible LType values
const (
	LInvalid LType = iota
	LNumber
	LChar
	LKeyword
	LSymbol
	LSExpr
	LString
	LFun
	LClosure
	LMacro
	// LMarkTailRec is returned by a loop's recur function.  It never escapes
	// the loop that created it.
	LMarkTailRec
)

var ltypeStrings = []string{
	LInvalid:     "INVALID",
	LNumber:      "number",
	LChar:        "char",
	LKeyword:     "keyword",
	LSymbol:      "symbol",
	LSExpr:       "list",
	LString:      "string",
	LFun:         "builtin",
	LClosure:     "closure",
	LMacro:       "macro",
	LMarkTailRec: "MARK_TAIL_REC",
}

func (t LType) String() string {
	if int(t) >= len(ltypeStrings) {
		return ltypeStrings[LInvalid]
	}
	return ltypeStrings[t]
}

// ListKind classifies compound values.
type ListKind uint

// Possible ListKind values
const (
	NotList ListKind = iota
	ListEmpty
	ListProper
	ListImproper
)

var listKindStrings = []string{
	NotList:      "not-list",
	ListEmpty:    "empty",
	ListProper:   "proper",
	ListImproper: "improper",
}

func (k ListKind) String() string {
	if int(k) >= len(listKindStrings) {
		return listKindStrings[NotList]
	}
	return listKindStrings[k]
}

// LBuiltin is a function implemented in Go.  Like every callable it receives
// its argument expressions unevaluated and decides for itself what to
// evaluate, and in which environment.
type LBuiltin func(env *LEnv, args []*LVal) (*LVal, error)

// LVal is a lisp value
type LVal struct {
	Type LType

	// Source is the location the value was read from, if known.
	Source *token.Location

	Num  float64
	Char rune
	// Str holds the name of a symbol or keyword and the contents of a string.
	Str string

	// Cells holds the items of an LSExpr.  For an improper list DottedTail is
	// the final cdr.  DottedTail is never an LSExpr itself.
	Cells      []*LVal
	DottedTail *LVal

	// Fun is set for callable values.
	Fun *LFunData
}

// LFunData holds the state of a builtin, closure or macro.
type LFunData struct {
	// Name is the name a callable was defined under.  It is used in
	// diagnostics only.
	Name string

	// Spec is the binding specification as written and Signature its parsed
	// form.
	Spec      *LVal
	Signature *Signature

	Body []*LVal
	// Env is the environment a closure or macro was created in.
	Env *LEnv

	Builtin LBuiltin
}

// Number returns an LVal representing the number x.
func Number(x float64) *LVal {
	return &LVal{Type: LNumber, Num: x}
}

// Int returns an LVal representing the integer x.
func Int(x int) *LVal {
	return Number(float64(x))
}

// Char returns an LVal representing the character c.
func Char(c rune) *LVal {
	return &LVal{Type: LChar, Char: c}
}

// Keyword returns an LVal representing the keyword :name.
func Keyword(name string) *LVal {
	return &LVal{Type: LKeyword, Str: name}
}

// Symbol returns an LVal representing the symbol s
func Symbol(s string) *LVal {
	return &LVal{Type: LSymbol, Str: s}
}

// String returns an LVal representing the string s.
func String(s string) *LVal {
	return &LVal{Type: LString, Str: s}
}

// Nil returns an LVal representing nil, the empty list.
func Nil() *LVal {
	return &LVal{Type: LSExpr}
}

// Bool returns the symbol t when b is true and nil otherwise.
func Bool(b bool) *LVal {
	if b {
		return Symbol(TrueSymbol)
	}
	return Nil()
}

// SExpr returns a proper list containing cells.  The slice is retained.
func SExpr(cells []*LVal) *LVal {
	if len(cells) == 0 {
		return Nil()
	}
	return &LVal{Type: LSExpr, Cells: cells}
}

// List returns a proper list of its arguments.
func List(items ...*LVal) *LVal {
	return SExpr(items)
}

// Dotted returns the list of cells whose final cdr is tail.  A proper list
// tail is spliced in, so the result of Dotted is proper whenever tail is.
// Dotted with no cells returns tail.
func Dotted(cells []*LVal, tail *LVal) *LVal {
	if tail == nil {
		return SExpr(cells)
	}
	if len(cells) == 0 {
		return tail
	}
	if tail.Type != LSExpr {
		return &LVal{Type: LSExpr, Cells: cells, DottedTail: tail}
	}
	if tail.IsNil() {
		return SExpr(cells)
	}
	joined := make([]*LVal, 0, len(cells)+len(tail.Cells))
	joined = append(joined, cells...)
	joined = append(joined, tail.Cells...)
	return &LVal{Type: LSExpr, Cells: joined, DottedTail: tail.DottedTail}
}

// Quote returns the expression (quote v).
func Quote(v *LVal) *LVal {
	return List(Symbol(QuoteSymbol), v)
}

// Formals returns a binding specification for the given argument symbols.
// Use OptArgSymbol and VarArgSymbol as markers.
func Formals(argSymbols ...string) *LVal {
	cells := make([]*LVal, len(argSymbols))
	for i, sym := range argSymbols {
		cells[i] = Symbol(sym)
	}
	return SExpr(cells)
}

// IsNil returns true if v is the empty list.
func (v *LVal) IsNil() bool {
	return v.Type == LSExpr && len(v.Cells) == 0 && v.DottedTail == nil
}

// IsList returns true if v is a list of any kind, including nil.
func (v *LVal) IsList() bool {
	return v.Type == LSExpr
}

// IsProper returns true if v is nil or a proper list.
func (v *LVal) IsProper() bool {
	return v.Type == LSExpr && v.DottedTail == nil
}

// IsSeq returns true if v is a list or a string.
func (v *LVal) IsSeq() bool {
	return v.Type == LSExpr || v.Type == LString
}

// IsCallable returns true if v can be invoked.
func (v *LVal) IsCallable() bool {
	switch v.Type {
	case LFun, LClosure, LMacro:
		return true
	}
	return false
}

// IsTrue returns true unless v is nil.
func (v *LVal) IsTrue() bool {
	return !v.IsNil()
}

// ListKind classifies v as an empty, proper or improper list.  Strings are
// proper lists of characters.
func (v *LVal) ListKind() ListKind {
	switch v.Type {
	case LString:
		if v.Str == "" {
			return ListEmpty
		}
		return ListProper
	case LSExpr:
		switch {
		case v.IsNil():
			return ListEmpty
		case v.DottedTail != nil:
			return ListImproper
		default:
			return ListProper
		}
	}
	return NotList
}

// FunName returns the name a callable was defined under, or the empty string.
func (v *LVal) FunName() string {
	if v.Fun == nil {
		return ""
	}
	return v.Fun.Name
}

// Len returns the number of items in a list or characters in a string.  The
// dotted tail of an improper list is not counted.
func (v *LVal) Len() int {
	switch v.Type {
	case LString:
		return utf8.RuneCountInString(v.Str)
	case LSExpr:
		return len(v.Cells)
	}
	return 0
}

// Items returns the items of a list or the characters of a string.
func (v *LVal) Items() []*LVal {
	if v.Type != LString {
		return v.Cells
	}
	items := make([]*LVal, 0, len(v.Str))
	for _, c := range v.Str {
		items = append(items, Char(c))
	}
	return items
}

// Head returns the first item of a list or string.  Head returns the empty
// list when v has no first item.
func (v *LVal) Head() *LVal {
	switch v.Type {
	case LString:
		c, n := utf8.DecodeRuneInString(v.Str)
		if n > 0 {
			return Char(c)
		}
	case LSExpr:
		if len(v.Cells) > 0 {
			return v.Cells[0]
		}
	}
	return Nil()
}

// Tail returns everything after the first item of a list or string.  The
// tail of a one item improper list is its dotted tail.  The tail of an empty
// list is the empty list and the tail of an empty string is the empty string.
func (v *LVal) Tail() *LVal {
	switch v.Type {
	case LString:
		_, n := utf8.DecodeRuneInString(v.Str)
		return String(v.Str[n:])
	case LSExpr:
		if len(v.Cells) == 0 {
			return Nil()
		}
		return Dotted(v.Cells[1:], v.DottedTail)
	}
	return Nil()
}

// Cons returns the list with head as its first item followed by tail.  When
// tail is a string and head a character the result is a string.  When tail is
// not a list the result is improper.
func Cons(head, tail *LVal) *LVal {
	switch tail.Type {
	case LString:
		if head.Type == LChar {
			return String(string(head.Char) + tail.Str)
		}
		cells := make([]*LVal, 0, tail.Len()+1)
		cells = append(cells, head)
		cells = append(cells, tail.Items()...)
		return SExpr(cells)
	case LSExpr:
		cells := make([]*LVal, 0, len(tail.Cells)+1)
		cells = append(cells, head)
		cells = append(cells, tail.Cells...)
		return &LVal{Type: LSExpr, Cells: cells, DottedTail: tail.DottedTail}
	}
	return &LVal{Type: LSExpr, Cells: []*LVal{head}, DottedTail: tail}
}

// Named returns a shallow copy of the callable v that reports name in
// diagnostics.  The copy shares its closure environment with v.  Named
// returns v when it already has a name.
func Named(v *LVal, name string) *LVal {
	if !v.IsCallable() || v.Fun.Name != "" {
		return v
	}
	fd := *v.Fun
	fd.Name = name
	cp := *v
	cp.Fun = &fd
	return &cp
}
