package lisp

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/programble/lispy/parser/token"
)

var charNames = map[rune]string{
	' ':  "space",
	'\n': "newline",
	'\t': "tab",
	'\r': "return",
}

// CharByName returns the character with the given name, as printed after a
// backslash.
func CharByName(name string) (rune, bool) {
	for c, n := range charNames {
		if n == name {
			return c, true
		}
	}
	return 0, false
}

func (v *LVal) String() string {
	var buf strings.Builder
	writeVal(&buf, v)
	return buf.String()
}

func writeVal(buf *strings.Builder, v *LVal) {
	switch v.Type {
	case LNumber:
		buf.WriteString(formatNumber(v.Num))
	case LChar:
		buf.WriteString(`\`)
		if name, ok := charNames[v.Char]; ok {
			buf.WriteString(name)
		} else {
			buf.WriteRune(v.Char)
		}
	case LKeyword:
		buf.WriteString(":")
		buf.WriteString(v.Str)
	case LSymbol:
		writeSymbol(buf, v.Str)
	case LString:
		buf.WriteString(strconv.Quote(v.Str))
	case LSExpr:
		writeList(buf, v.Cells, v.DottedTail)
	case LFun:
		buf.WriteString("<builtin ")
		buf.WriteString(v.Fun.Name)
		buf.WriteString(">")
	case LClosure:
		writeCallable(buf, "lambda", v)
	case LMacro:
		writeCallable(buf, "macro", v)
	case LMarkTailRec:
		buf.WriteString("<recur>")
	default:
		buf.WriteString("<invalid>")
	}
}

// formatNumber prints integral values without an exponent up to the
// magnitude where float64 formatting would switch to one anyway.
func formatNumber(x float64) string {
	if x == math.Trunc(x) && math.Abs(x) < 1e21 {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func writeList(buf *strings.Builder, cells []*LVal, tail *LVal) {
	if len(cells) == 0 && tail == nil {
		buf.WriteString(NilSymbol)
		return
	}
	buf.WriteString("(")
	for i, c := range cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		writeVal(buf, c)
	}
	if tail != nil {
		buf.WriteString(" . ")
		writeVal(buf, tail)
	}
	buf.WriteString(")")
}

func writeCallable(buf *strings.Builder, op string, v *LVal) {
	buf.WriteString("(")
	buf.WriteString(op)
	buf.WriteString(" ")
	if v.Fun.Spec.IsNil() {
		buf.WriteString("()")
	} else {
		writeVal(buf, v.Fun.Spec)
	}
	for _, expr := range v.Fun.Body {
		buf.WriteString(" ")
		writeVal(buf, expr)
	}
	buf.WriteString(")")
}

func writeSymbol(buf *strings.Builder, sym string) {
	if !symbolNeedsEscape(sym) {
		buf.WriteString(sym)
		return
	}
	buf.WriteString("|")
	for _, c := range sym {
		if c == '|' || c == '\\' {
			buf.WriteString(`\`)
		}
		buf.WriteRune(c)
	}
	buf.WriteString("|")
}

// symbolNeedsEscape reports whether sym would not read back as the same
// symbol when written bare.
func symbolNeedsEscape(sym string) bool {
	switch sym {
	case "", ".", NilSymbol:
		return true
	}
	switch sym[0] {
	case ':', '\\', '|':
		return true
	}
	if token.IsNumber(sym) {
		return true
	}
	for _, c := range sym {
		if unicode.IsSpace(c) || strings.ContainsRune("()'`,\";|\\", c) {
			return true
		}
	}
	return false
}
