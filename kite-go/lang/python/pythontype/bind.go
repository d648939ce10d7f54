package pythontype

import (
	"fmt"

	"github.com/kiteco/pytranslate/kite-go/lang/python/pythonast"
)

// Delegate is implemented by the analyzer that drives binding. Scopes call
// back into it to create and register bindings, to record references and
// problems, and to type sub-expressions of assignment targets.
type Delegate interface {
	CreateBinding(name string, node pythonast.Node, t DataType, kind BindingKind) *Binding
	AddReference(node pythonast.Node, bs BindingSet)
	AddProblem(node pythonast.Node, msg string)
	TypeOf(s *Scope, expr pythonast.Expr) DataType
}

// BindByScopeKind binds target with the default binding kind of this scope
func (s *Scope) BindByScopeKind(d Delegate, target pythonast.Expr, rvalue DataType) {
	s.Bind(d, target, rvalue, s.DefaultBindingKind())
}

// DefaultBindingKind is the kind of binding an assignment creates in this scope
func (s *Scope) DefaultBindingKind() BindingKind {
	switch s.Kind {
	case FunctionScope:
		return VariableBinding
	case ClassScope, InstanceScope:
		return AttributeBinding
	default:
		return ScopeBinding
	}
}

// Bind assigns rvalue to an assignment target, destructuring tuple and list
// targets. Problems with the assignment are reported to the delegate and the
// affected names are bound to Unknown.
func (s *Scope) Bind(d Delegate, target pythonast.Expr, rvalue DataType, kind BindingKind) {
	rvalue = orUnknown(rvalue)
	switch t := target.(type) {
	case *pythonast.NameExpr:
		s.bindName(d, t, rvalue, kind)
	case *pythonast.TupleExpr:
		s.bindElems(d, t, t.Elts, rvalue, kind)
	case *pythonast.ListExpr:
		s.bindElems(d, t, t.Values, rvalue, kind)
	case *pythonast.AttributeExpr:
		s.setAttr(d, t, rvalue)
	case *pythonast.IndexExpr:
		s.setItem(d, t, rvalue)
	default:
		d.AddProblem(target, "invalid location for assignment")
	}
}

func (s *Scope) bindName(d Delegate, n *pythonast.NameExpr, rvalue DataType, kind BindingKind) {
	name := n.Ident.Literal
	if !s.IsGlobalName(name) {
		if s.Frozen() {
			d.AddProblem(n, fmt.Sprintf("cannot bind %s in a builtin scope", name))
			return
		}
		s.Insert(d, name, n, rvalue, kind)
		return
	}

	mod := s.ModuleScope()
	bs := mod.LookupLocal(name)
	if len(bs) == 0 {
		mod.Insert(d, name, n, rvalue, ScopeBinding)
		return
	}
	for _, b := range bs {
		b.AddType(rvalue)
	}
	d.AddReference(n, bs)
}

func (s *Scope) bindElems(d Delegate, target pythonast.Expr, elts []pythonast.Expr, rvalue DataType, kind BindingKind) {
	if IsUnknown(rvalue) {
		s.bindAllUnknown(d, elts, kind)
		return
	}

	// each member of a union is unpacked on its own and the elements merged
	elems := make([]DataType, len(elts))
	for _, member := range Disjuncts(rvalue) {
		view := unpackView(member, len(elts))
		if view == nil {
			d.AddProblem(target, "unpacking non-iterable: "+member.String())
			s.bindAllUnknown(d, elts, kind)
			return
		}
		if view.Len() != len(elts) {
			reportUnpackMismatch(d, target, view.Len(), len(elts))
			s.bindAllUnknown(d, elts, kind)
			return
		}
		for i := range elems {
			elems[i] = Union(elems[i], view.Elems[i])
		}
	}
	for i, elt := range elts {
		s.Bind(d, elt, elems[i], kind)
	}
}

// unpackView gets the types produced by unpacking t into n targets, or nil if
// t cannot be unpacked. Only tuples may produce a view of a different length.
func unpackView(t DataType, n int) *TupleType {
	switch v := t.(type) {
	case *TupleType:
		return v
	case *ListType:
		return v.ToTupleN(n)
	case *DictType:
		return v.ToTupleN(n)
	case *SetType:
		return repeatTuple(v.Elem, n)
	case *IterableType:
		return repeatTuple(v.Elem, n)
	case *StrType:
		return repeatTuple(Str, n)
	case *UnknownType:
		return repeatTuple(Unknown, n)
	}
	return nil
}

func (s *Scope) bindAllUnknown(d Delegate, elts []pythonast.Expr, kind BindingKind) {
	for _, elt := range elts {
		s.Bind(d, elt, Unknown, kind)
	}
}

func reportUnpackMismatch(d Delegate, node pythonast.Node, have, want int) {
	if have < want {
		d.AddProblem(node, fmt.Sprintf("ValueError: need more than %d values to unpack", have))
	} else {
		d.AddProblem(node, "ValueError: too many values to unpack")
	}
}

// setAttr binds an attribute in the scope of each possible type of the object
// being assigned to
func (s *Scope) setAttr(d Delegate, t *pythonast.AttributeExpr, rvalue DataType) {
	name := t.Attribute.Literal
	for _, obj := range Disjuncts(d.TypeOf(s, t.Value)) {
		if IsUnknown(obj) {
			d.AddProblem(t, "can't set attribute on unknown type")
			continue
		}
		scope := obj.Scope()
		if scope.Frozen() {
			d.AddProblem(t, fmt.Sprintf("can't set attribute %s on builtin type %s", name, obj))
			continue
		}
		if bs := scope.LookupAttr(name); len(bs) > 0 {
			d.AddReference(t, bs)
		}
		scope.Insert(d, name, t, rvalue, AttributeBinding)
	}
}

// setItem widens the element type of the container being assigned into
func (s *Scope) setItem(d Delegate, t *pythonast.IndexExpr, rvalue DataType) {
	var key DataType = Unknown
	for _, sub := range t.Subscripts {
		key = Union(key, d.TypeOf(s, sub))
	}
	for _, c := range Disjuncts(d.TypeOf(s, t.Value)) {
		if c.Scope().Frozen() {
			continue
		}
		switch c := c.(type) {
		case *ListType:
			c.Elem = Union(c.Elem, rvalue)
		case *DictType:
			c.Put(key, rvalue)
		}
	}
}

// BindIterator binds target to the type produced by iterating over a value of
// type iterType, as in a for loop. iter is the iterated expression and is used
// to report problems.
func (s *Scope) BindIterator(d Delegate, target pythonast.Expr, iter pythonast.Expr, iterType DataType, kind BindingKind) {
	s.Bind(d, target, s.iterElem(d, iter, iterType), kind)
}

func (s *Scope) iterElem(d Delegate, iter pythonast.Expr, iterType DataType) DataType {
	switch t := iterType.(type) {
	case nil, *UnknownType:
		return Unknown
	case *ListType:
		return t.Elem
	case *TupleType:
		return CreateUnion(t.Elems)
	case *SetType:
		return t.Elem
	case *IterableType:
		return t.Elem
	case *DictType:
		return t.Key
	case *StrType:
		return Str
	case *UnionType:
		var elem DataType = Unknown
		for _, m := range t.types {
			elem = Union(elem, s.iterElem(d, iter, m))
		}
		return elem
	}

	if f, ok := iterType.Scope().LookupAttrType("__iter__").(*FunType); ok {
		return f.ReturnType()
	}
	d.AddProblem(iter, "not an iterable type: "+iterType.String())
	return Unknown
}
