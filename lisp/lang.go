package lisp

// OptArgSymbol is the symbol that marks the following binding specification
// item as optional.
const OptArgSymbol = "?"

// VarArgSymbol is the symbol that indicates a variadic function argument in a
// function's list of formal arguments.
const VarArgSymbol = "&"

// RecurSymbol is bound in every closure and macro call frame to the callable
// itself.  Inside a loop body it is bound to the loop's trampoline.
const RecurSymbol = "recur"

// TrueSymbol is the canonical true value returned by predicates.
const TrueSymbol = "t"

// NilSymbol is read as the empty list.
const NilSymbol = "nil"

// Symbols recognized by the quasiquote expander.
const (
	QuoteSymbol         = "quote"
	QuasiquoteSymbol    = "quasiquote"
	UnquoteSymbol       = "unquote"
	UnquoteSpliceSymbol = "unquote-splice"
	// UnquoteSplicingSymbol is accepted as an alias of UnquoteSpliceSymbol.
	UnquoteSplicingSymbol = "unquote-splicing"
)

// DefaultMaxHeight is the default limit on the height of a runtime's call
// stack.
const DefaultMaxHeight = 20000

// maxOperatorResolution bounds the number of evaluations performed when
// resolving the operator of an expression to something invocable.
const maxOperatorResolution = 64
