package pythonast

import (
	"go/token"
	"reflect"
)

// Node is a node in the syntax tree handed to the type engine. Positions are
// byte offsets into the source file.
type Node interface {
	Begin() token.Pos
	End() token.Pos
	node()
}

// Expr is an expression node
type Expr interface {
	Node
	expr()
}

// Stmt is a statement node
type Stmt interface {
	Node
	stmt()
}

// Span is embedded in every node and records its extent in the source
type Span struct {
	From token.Pos
	To   token.Pos
}

// Begin gets the offset of the first byte of the node
func (s Span) Begin() token.Pos { return s.From }

// End gets the offset one past the last byte of the node
func (s Span) End() token.Pos { return s.To }

func (Span) node() {}

// Ident is an identifier token
type Ident struct {
	Span
	Literal string
}

// NewIdent creates an identifier spanning [begin, begin+len(lit))
func NewIdent(lit string, begin token.Pos) *Ident {
	return &Ident{Span: Span{begin, begin + token.Pos(len(lit))}, Literal: lit}
}

// IsNil checks whether a node is nil, including typed nil pointers stored in
// the Node interface
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// ---

// Module is the root of the syntax tree for one file
type Module struct {
	Span
	Body []Stmt
}

// ClassDefStmt is a class definition
type ClassDefStmt struct {
	Span
	Name  *NameExpr
	Bases []Expr
	Body  []Stmt
}

// FunctionDefStmt is a function or method definition
type FunctionDefStmt struct {
	Span
	Name       *NameExpr
	Decorators []Expr
	Parameters []*Parameter
	Async      bool
	Body       []Stmt
}

// Parameter is a single parameter in a function definition
type Parameter struct {
	Span
	Name       Expr
	Default    Expr
	Annotation Expr
}

// AssignStmt is `targets... = value`
type AssignStmt struct {
	Span
	Targets []Expr
	Value   Expr
}

// ForStmt is `for target in iterable: body`
type ForStmt struct {
	Span
	Target   []Expr
	Iterable Expr
	Body     []Stmt
}

// GlobalStmt is `global a, b`
type GlobalStmt struct {
	Span
	Names []*NameExpr
}

// ExprStmt is an expression evaluated for its side effects
type ExprStmt struct {
	Span
	Value Expr
}

func (*ClassDefStmt) stmt() {}
func (*FunctionDefStmt) stmt() {}
func (*AssignStmt) stmt() {}
func (*ForStmt) stmt() {}
func (*GlobalStmt) stmt() {}
func (*ExprStmt) stmt() {}

// ---

// NameExpr is a reference to a name
type NameExpr struct {
	Ident *Ident
}

// NewName creates a NameExpr at the given offset
func NewName(lit string, begin token.Pos) *NameExpr {
	return &NameExpr{Ident: NewIdent(lit, begin)}
}

// Begin implements Node
func (n *NameExpr) Begin() token.Pos { return n.Ident.Begin() }

// End implements Node
func (n *NameExpr) End() token.Pos { return n.Ident.End() }

func (*NameExpr) node() {}

// AttributeExpr is `value.attribute`
type AttributeExpr struct {
	Span
	Value     Expr
	Attribute *Ident
}

// IndexExpr is `value[subscripts]`
type IndexExpr struct {
	Span
	Value      Expr
	Subscripts []Expr
}

// TupleExpr is a parenthesized or bare tuple, including tuple targets
type TupleExpr struct {
	Span
	Elts []Expr
}

// ListExpr is a list display `[a, b]`, including list targets
type ListExpr struct {
	Span
	Values []Expr
}

// SetExpr is a set display `{a, b}`
type SetExpr struct {
	Span
	Values []Expr
}

// KeyValuePair is one `key: value` item of a dict display
type KeyValuePair struct {
	Key   Expr
	Value Expr
}

// DictExpr is a dict display `{k: v}`
type DictExpr struct {
	Span
	Items []*KeyValuePair
}

// NumberKind distinguishes numeric literals
type NumberKind int

const (
	// IntNumber is an integer literal
	IntNumber NumberKind = iota
	// FloatNumber is a floating point literal
	FloatNumber
	// ImagNumber is an imaginary literal
	ImagNumber
)

// NumberExpr is a numeric literal
type NumberExpr struct {
	Span
	Kind    NumberKind
	Literal string
}

// StringExpr is a string literal; Value holds the decoded contents
type StringExpr struct {
	Span
	Value string
}

// Argument is one argument at a call site
type Argument struct {
	Name  *NameExpr
	Value Expr
}

// CallExpr is `func(args...)`
type CallExpr struct {
	Span
	Func Expr
	Args []*Argument
}

// AwaitExpr is `await value`
type AwaitExpr struct {
	Span
	Value Expr
}

func (*NameExpr) expr() {}
func (*AttributeExpr) expr() {}
func (*IndexExpr) expr() {}
func (*TupleExpr) expr() {}
func (*ListExpr) expr() {}
func (*SetExpr) expr() {}
func (*DictExpr) expr() {}
func (*NumberExpr) expr() {}
func (*StringExpr) expr() {}
func (*CallExpr) expr() {}
func (*AwaitExpr) expr() {}
