package pythontype

import (
	"bytes"
	"fmt"
	"go/token"

	"github.com/kiteco/pytranslate/kite-go/lang/python/pythonast"
)

// BindingKind describes the declaration shape of a binding
type BindingKind int

const (
	// ModuleBinding binds an imported module
	ModuleBinding BindingKind = iota
	// ClassBinding binds a class definition
	ClassBinding
	// ConstructorBinding binds an __init__ method
	ConstructorBinding
	// FunctionBinding binds a free function
	FunctionBinding
	// MethodBinding binds a function defined in a class body
	MethodBinding
	// ParameterBinding binds a function parameter
	ParameterBinding
	// ScopeBinding binds a module or class level name
	ScopeBinding
	// VariableBinding binds a local variable
	VariableBinding
	// AttributeBinding binds an attribute set on an object
	AttributeBinding
)

var bindingKindNames = [...]string{
	ModuleBinding:      "module",
	ClassBinding:       "class",
	ConstructorBinding: "constructor",
	FunctionBinding:    "function",
	MethodBinding:      "method",
	ParameterBinding:   "parameter",
	ScopeBinding:       "scope",
	VariableBinding:    "variable",
	AttributeBinding:   "attribute",
}

func (k BindingKind) String() string {
	if k >= 0 && int(k) < len(bindingKindNames) {
		return bindingKindNames[k]
	}
	return fmt.Sprintf("invalid(%d)", int(k))
}

// maxPrintedRefs bounds the references listed by Binding.String
const maxPrintedRefs = 10

// Binding ties a declared name to its inferred type and to the places in the
// source where it is defined and used
type Binding struct {
	Name  string
	QName string
	Kind  BindingKind
	Node  pythonast.Node
	File  string

	// Begin and End delimit the defining name
	Begin, End token.Pos
	// BodyBegin and BodyEnd delimit the whole definition
	BodyBegin, BodyEnd token.Pos

	IsStatic    bool
	IsSynthetic bool
	IsBuiltin   bool

	typ  DataType
	refs []pythonast.Node
}

// NewBinding creates a binding. It panics if t is nil; callers must use
// Unknown for types they cannot infer.
func NewBinding(name string, node pythonast.Node, t DataType, kind BindingKind) *Binding {
	if t == nil {
		panic(fmt.Sprintf("nil type for binding %q", name))
	}
	b := &Binding{
		Name: name,
		Kind: kind,
		Node: node,
		typ:  t,
	}
	b.setLocation(node)
	return b
}

func (b *Binding) setLocation(node pythonast.Node) {
	if pythonast.IsNil(node) {
		return
	}
	switch n := node.(type) {
	case *pythonast.FunctionDefStmt:
		if n.Name != nil {
			b.Begin, b.End = n.Name.Begin(), n.Name.End()
		}
		b.BodyBegin, b.BodyEnd = n.Begin(), n.End()
	case *pythonast.ClassDefStmt:
		if n.Name != nil {
			b.Begin, b.End = n.Name.Begin(), n.Name.End()
		}
		b.BodyBegin, b.BodyEnd = n.Begin(), n.End()
	case *pythonast.Module:
		b.BodyBegin, b.BodyEnd = n.Begin(), n.End()
	default:
		b.Begin, b.End = n.Begin(), n.End()
		b.BodyBegin, b.BodyEnd = b.Begin, b.End
	}
}

// Type gets the current type of the binding
func (b *Binding) Type() DataType {
	return b.typ
}

// AddType widens the type of the binding. The previous type value is left
// untouched, so readers holding it do not observe the change.
func (b *Binding) AddType(t DataType) {
	b.typ = Union(b.typ, t)
}

// SetType replaces the type of the binding
func (b *Binding) SetType(t DataType) {
	if t == nil {
		t = Unknown
	}
	b.typ = t
}

// AddReference records a use of the binding
func (b *Binding) AddReference(node pythonast.Node) {
	b.refs = append(b.refs, node)
}

// References gets the recorded uses of the binding, in order
func (b *Binding) References() []pythonast.Node {
	return append([]pythonast.Node(nil), b.refs...)
}

// Less orders bindings by the position of their definition, then by
// qualified name
func (b *Binding) Less(other *Binding) bool {
	if b.Begin != other.Begin {
		return b.Begin < other.Begin
	}
	return b.QName < other.QName
}

// String gets a debug representation of the binding
func (b *Binding) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "(binding:kind=%s:node=%s:type=%s:qname=%s:refs=",
		b.Kind, pythonast.String(b.Node), b.typ, b.QName)
	if len(b.refs) > maxPrintedRefs {
		buf.WriteString("[...]")
	} else {
		buf.WriteString("[")
		for i, r := range b.refs {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(pythonast.String(r))
		}
		buf.WriteString("]")
	}
	buf.WriteString(")")
	return buf.String()
}

// BindingSet is an ordered set of bindings for a single name
type BindingSet []*Binding

// Contains checks whether b is in the set
func (bs BindingSet) Contains(b *Binding) bool {
	for _, x := range bs {
		if x == b {
			return true
		}
	}
	return false
}

// Union gets a set with the bindings of bs followed by those of other that
// are not already present
func (bs BindingSet) Union(other BindingSet) BindingSet {
	out := append(BindingSet(nil), bs...)
	for _, b := range other {
		if !out.Contains(b) {
			out = append(out, b)
		}
	}
	return out
}

// Type gets the union of the types of the bindings, or nil for an empty set
func (bs BindingSet) Type() DataType {
	if len(bs) == 0 {
		return nil
	}
	var t DataType = Unknown
	for _, b := range bs {
		t = Union(t, b.Type())
	}
	return t
}
