package pythonstatic

import (
	"strconv"

	"github.com/kiteco/pytranslate/kite-go/lang/python/pythonast"
	"github.com/kiteco/pytranslate/kite-go/lang/python/pythontype"
	"go.uber.org/zap"
)

// typeOf computes a type for an expression evaluated in scope s
func (a *Analyzer) typeOf(s *pythontype.Scope, expr pythonast.Expr) pythontype.DataType {
	switch e := expr.(type) {
	case *pythonast.NameExpr:
		return a.typeOfName(s, e)
	case *pythonast.AttributeExpr:
		return a.typeOfAttr(s, e)
	case *pythonast.IndexExpr:
		return a.typeOfIndex(s, e)
	case *pythonast.CallExpr:
		return a.typeOfCall(s, e)
	case *pythonast.AwaitExpr:
		if aw, ok := a.TypeOf(s, e.Value).(*pythontype.AwaitableType); ok {
			return aw.Result
		}
		return pythontype.Unknown
	case *pythonast.TupleExpr:
		elems := make([]pythontype.DataType, len(e.Elts))
		for i, elt := range e.Elts {
			elems[i] = a.TypeOf(s, elt)
		}
		return pythontype.NewTuple(elems...)
	case *pythonast.ListExpr:
		l := pythontype.NewList(pythontype.Unknown)
		for _, v := range e.Values {
			l.Add(a.TypeOf(s, v))
		}
		return l
	case *pythonast.SetExpr:
		var elem pythontype.DataType = pythontype.Unknown
		for _, v := range e.Values {
			elem = pythontype.Union(elem, a.TypeOf(s, v))
		}
		return pythontype.NewSet(elem)
	case *pythonast.DictExpr:
		d := pythontype.NewDict(pythontype.Unknown, pythontype.Unknown)
		for _, item := range e.Items {
			d.Put(a.TypeOf(s, item.Key), a.TypeOf(s, item.Value))
		}
		return d
	case *pythonast.NumberExpr:
		switch e.Kind {
		case pythonast.FloatNumber:
			return pythontype.Float
		case pythonast.ImagNumber:
			return pythontype.Complex
		default:
			return pythontype.Int
		}
	case *pythonast.StringExpr:
		return pythontype.NewStr(e.Value)
	}
	return pythontype.Unknown
}

func (a *Analyzer) typeOfName(s *pythontype.Scope, e *pythonast.NameExpr) pythontype.DataType {
	bs := s.Lookup(e.Ident.Literal)
	a.markResolved(e, len(bs) > 0)
	if len(bs) == 0 {
		return pythontype.Unknown
	}
	a.AddReference(e, bs)
	return bs.Type()
}

func (a *Analyzer) typeOfAttr(s *pythontype.Scope, e *pythonast.AttributeExpr) pythontype.DataType {
	obj := a.TypeOf(s, e.Value)
	var t pythontype.DataType = pythontype.Unknown
	for _, d := range pythontype.Disjuncts(obj) {
		if pythontype.IsUnknown(d) || d.Scope() == nil {
			continue
		}
		bs := d.Scope().LookupAttr(e.Attribute.Literal)
		if len(bs) == 0 {
			continue
		}
		a.AddReference(e, bs)
		t = pythontype.Union(t, bs.Type())
	}
	return t
}

func (a *Analyzer) typeOfIndex(s *pythontype.Scope, e *pythonast.IndexExpr) pythontype.DataType {
	container := a.TypeOf(s, e.Value)
	for _, sub := range e.Subscripts {
		a.TypeOf(s, sub)
	}

	var t pythontype.DataType = pythontype.Unknown
	for _, d := range pythontype.Disjuncts(container) {
		switch c := d.(type) {
		case *pythontype.ListType:
			t = pythontype.Union(t, c.Elem)
		case *pythontype.DictType:
			t = pythontype.Union(t, c.Value)
		case *pythontype.StrType:
			t = pythontype.Union(t, pythontype.Str)
		case *pythontype.TupleType:
			t = pythontype.Union(t, tupleItem(c, e.Subscripts))
		}
	}
	return t
}

// tupleItem gets the element selected by a constant integer subscript, or the
// union of all elements
func tupleItem(t *pythontype.TupleType, subs []pythonast.Expr) pythontype.DataType {
	if len(subs) == 1 {
		if n, ok := subs[0].(*pythonast.NumberExpr); ok && n.Kind == pythonast.IntNumber {
			if i, err := strconv.Atoi(n.Literal); err == nil && i >= 0 && i < t.Len() && !t.Variant {
				return t.Elems[i]
			}
		}
	}
	return pythontype.CreateUnion(t.Elems)
}

func (a *Analyzer) typeOfCall(s *pythontype.Scope, e *pythonast.CallExpr) pythontype.DataType {
	callee := a.TypeOf(s, e.Func)
	args := make([]pythontype.DataType, len(e.Args))
	for i, arg := range e.Args {
		args[i] = a.TypeOf(s, arg.Value)
	}

	var t pythontype.DataType = pythontype.Unknown
	for _, d := range pythontype.Disjuncts(callee) {
		switch f := d.(type) {
		case *pythontype.FunType:
			a.RemoveUncalled(f)
			ret := f.Mapping(pythontype.NewTuple(args...))
			if ret == nil {
				ret = f.ReturnType()
			}
			// builtin results are shared, so each call site gets its own container
			ret = pythontype.Fresh(ret)
			if def, ok := f.Node.(*pythonast.FunctionDefStmt); ok && def.Async {
				ret = pythontype.NewAwaitable(ret)
			}
			t = pythontype.Union(t, ret)
		case *pythontype.ClassType:
			if ctor, ok := f.Scope().LookupAttrType("__init__").(*pythontype.FunType); ok {
				a.RemoveUncalled(ctor)
			}
			t = pythontype.Union(t, pythontype.InstanceOf(f))
		}
	}
	return t
}

// TranslateAnnotation translates a type annotation evaluated in scope s.
// Names are looked up among the types defined in s and its parents, and
// subscripted annotations close a generic type over their arguments.
// Annotations that cannot be translated are reported and typed Unknown.
func (a *Analyzer) TranslateAnnotation(s *pythontype.Scope, expr pythonast.Expr) pythontype.DataType {
	t, ok := a.translateAnnotation(s, expr)
	if !ok {
		a.AddProblem(expr, "unknown type in type annotation")
		return pythontype.Unknown
	}
	if a.opts.RecordExprTypes {
		a.AddExprType(expr, t)
	}
	return t
}

func (a *Analyzer) translateAnnotation(s *pythontype.Scope, expr pythonast.Expr) (pythontype.DataType, bool) {
	switch e := expr.(type) {
	case *pythonast.NameExpr:
		return lookupTypeName(s, e.Ident.Literal)
	case *pythonast.StringExpr:
		return lookupTypeName(s, e.Value)
	case *pythonast.AttributeExpr:
		return lookupTypeName(s, e.Attribute.Literal)
	case *pythonast.IndexExpr:
		base, ok := a.translateAnnotation(s, e.Value)
		if !ok {
			return nil, false
		}
		subs := e.Subscripts
		if len(subs) == 1 {
			if tuple, ok := subs[0].(*pythonast.TupleExpr); ok {
				subs = tuple.Elts
			}
		}
		args := make([]pythontype.DataType, 0, len(subs))
		for _, sub := range subs {
			arg, ok := a.translateAnnotation(s, sub)
			if !ok {
				return nil, false
			}
			args = append(args, arg)
		}
		t, err := base.MakeGeneric(args...)
		if err != nil {
			a.logger.Debug("cannot close annotation type", zap.String("type", base.String()), zap.Error(err))
			return nil, false
		}
		return t, true
	}
	return nil, false
}

func lookupTypeName(s *pythontype.Scope, name string) (pythontype.DataType, bool) {
	t := s.LookupTypeByName(name)
	return t, t != nil
}
