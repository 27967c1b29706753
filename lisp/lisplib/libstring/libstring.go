package libstring

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/programble/lispy/lisp"
)

// LoadPackage adds the string functions to env
func LoadPackage(env *lisp.LEnv) error {
	env.AddBuiltins(builtins...)
	return nil
}

var builtins = []lisp.LBuiltinDef{
	lisp.Function("format-string", lisp.Formals("format-string", lisp.VarArgSymbol, "values"), builtinFormat),
	lisp.Function("string-join", lisp.Formals("list", "separator"), builtinJoin),
	lisp.Function("string-split", lisp.Formals("str", "separator"), builtinSplit),
	lisp.Function("string-upcase", lisp.Formals("str"), stringFunc(strings.ToUpper)),
	lisp.Function("string-downcase", lisp.Formals("str"), stringFunc(strings.ToLower)),
}

// builtinFormat replaces each {} directive in the format string with the next
// value.  A doubled brace is a literal brace.
func builtinFormat(env *lisp.LEnv, args []*lisp.LVal) (*lisp.LVal, error) {
	format := args[0]
	fvals := args[1:]
	if format.Type != lisp.LString {
		return nil, env.Errorf("first argument is not a string")
	}
	parts, err := parseFormatString(format.Str)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	anonIndex := 0
	for _, p := range parts {
		if strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}") && len(p) > 1 {
			p = strings.Join(strings.Fields(p), "")
			if p != "{}" {
				return nil, env.Errorf("formatting directives must be empty")
			}
			if anonIndex >= len(fvals) {
				return nil, env.Errorf("too many formatting directives for supplied values")
			}
			val := fvals[anonIndex]
			if val.Type == lisp.LString {
				buf.WriteString(val.Str)
			} else {
				buf.WriteString(val.String())
			}
			anonIndex++
		} else {
			buf.WriteString(p)
		}
	}
	return lisp.String(buf.String()), nil
}

func builtinJoin(env *lisp.LEnv, args []*lisp.LVal) (*lisp.LVal, error) {
	lis, sep := args[0], args[1]
	if !lis.IsProper() {
		return nil, env.Errorf("first argument is not a list: %v", lis.Type)
	}
	if sep.Type != lisp.LString {
		return nil, env.Errorf("second argument is not a string: %v", sep.Type)
	}
	strs := make([]string, len(lis.Cells))
	for i, s := range lis.Cells {
		if s.Type != lisp.LString {
			return nil, env.Errorf("list item is not a string: %v", s.Type)
		}
		strs[i] = s.Str
	}
	return lisp.String(strings.Join(strs, sep.Str)), nil
}

func builtinSplit(env *lisp.LEnv, args []*lisp.LVal) (*lisp.LVal, error) {
	str, sep := args[0], args[1]
	if str.Type != lisp.LString {
		return nil, env.Errorf("first argument is not a string: %v", str.Type)
	}
	if sep.Type != lisp.LString {
		return nil, env.Errorf("second argument is not a string: %v", sep.Type)
	}
	parts := strings.Split(str.Str, sep.Str)
	cells := make([]*lisp.LVal, len(parts))
	for i, p := range parts {
		cells[i] = lisp.String(p)
	}
	return lisp.SExpr(cells), nil
}

func stringFunc(fn func(string) string) lisp.LBuiltin {
	return func(env *lisp.LEnv, args []*lisp.LVal) (*lisp.LVal, error) {
		if args[0].Type != lisp.LString {
			return nil, env.Errorf("argument is not a string: %v", args[0].Type)
		}
		return lisp.String(fn(args[0].Str)), nil
	}
}

// parseFormatString splits f into literal text and {...} directives.  The
// sequences {{ and }} produce literal braces.
func parseFormatString(f string) ([]string, error) {
	var s []string
	tokens := tokenizeFormatString(f)
	for len(tokens) > 0 {
		tok := tokens[0]
		switch tok.typ {
		case formatText:
			s = append(s, tok.text)
			tokens = tokens[1:]
		case formatClose:
			if len(tokens) < 2 || tokens[1].typ != formatClose {
				return nil, fmt.Errorf("unexpected closing brace '}' outside of formatting directive")
			}
			s = append(s, "}")
			tokens = tokens[2:]
		case formatOpen:
			if len(tokens) < 2 {
				return nil, fmt.Errorf("unclosed formatting directive")
			}
			switch tokens[1].typ {
			case formatOpen:
				s = append(s, "{")
				tokens = tokens[2:]
			case formatClose:
				s = append(s, "{}")
				tokens = tokens[2:]
			default:
				if len(tokens) < 3 || tokens[2].typ != formatClose {
					return nil, fmt.Errorf("invalid formatting directive")
				}
				s = append(s, "{"+tokens[1].text+"}")
				tokens = tokens[3:]
			}
		}
	}
	return s, nil
}

func tokenizeFormatString(f string) []formatToken {
	var tokens []formatToken
	for {
		i := strings.IndexAny(f, "{}")
		if i < 0 {
			tokens = append(tokens, formatToken{formatText, f})
			return tokens
		}
		if i > 0 {
			tokens = append(tokens, formatToken{formatText, f[:i]})
			f = f[i:]
		}
		if f[0] == '{' {
			tokens = append(tokens, formatToken{formatOpen, "{"})
			f = f[1:]
		} else {
			tokens = append(tokens, formatToken{formatClose, "}"})
			f = f[1:]
		}
	}
}

type formatTokenType uint

const (
	formatText formatTokenType = iota
	formatOpen
	formatClose
)

type formatToken struct {
	typ  formatTokenType
	text string
}
