package pythonstatic

import (
	"fmt"

	"github.com/kiteco/pytranslate/kite-go/lang/python/pythonast"
	"github.com/kiteco/pytranslate/kite-go/lang/python/pythontype"
)

// Propagate makes a single pass over the statements of a module created with
// NewModule, binding assignment targets, loop variables, functions, classes
// and parameters in the scopes they belong to.
func (a *Analyzer) Propagate(m *pythontype.ModuleType) {
	if m.Node == nil {
		return
	}
	a.propagate(m.Scope(), m.Node.Body)
}

func (a *Analyzer) propagate(s *pythontype.Scope, stmts []pythonast.Stmt) {
	for _, stmt := range stmts {
		a.stmt(s, stmt)
	}
}

func (a *Analyzer) stmt(s *pythontype.Scope, stmt pythonast.Stmt) {
	switch st := stmt.(type) {
	case *pythonast.AssignStmt:
		t := a.TypeOf(s, st.Value)
		for _, target := range st.Targets {
			s.BindByScopeKind(a, target, t)
		}
	case *pythonast.ForStmt:
		iter := a.TypeOf(s, st.Iterable)
		s.BindIterator(a, loopTarget(st), st.Iterable, iter, s.DefaultBindingKind())
		a.propagate(s, st.Body)
	case *pythonast.GlobalStmt:
		for _, name := range st.Names {
			s.AddGlobalName(name.Ident.Literal)
		}
	case *pythonast.ExprStmt:
		a.TypeOf(s, st.Value)
	case *pythonast.FunctionDefStmt:
		a.functionDef(s, st)
	case *pythonast.ClassDefStmt:
		a.classDef(s, st)
	}
}

// loopTarget gets the target of a for loop; several targets form a tuple
func loopTarget(st *pythonast.ForStmt) pythonast.Expr {
	if len(st.Target) == 1 {
		return st.Target[0]
	}
	tuple := &pythonast.TupleExpr{Elts: st.Target}
	if len(st.Target) > 0 {
		tuple.From, tuple.To = st.Target[0].Begin(), st.Target[len(st.Target)-1].End()
	}
	return tuple
}

func (a *Analyzer) functionDef(s *pythontype.Scope, st *pythonast.FunctionDefStmt) {
	var static, classMethod bool
	for _, dec := range st.Decorators {
		a.TypeOf(s, dec)
		switch decoratorName(dec) {
		case "staticmethod":
			static = true
		case "classmethod":
			classMethod = true
		}
	}

	name := st.Name.Ident.Literal
	// names in a class body are not visible from the bodies of its methods
	f := pythontype.NewFun(st, s.Forwarding)
	f.QName = s.ExtendPath(name)
	f.Scope().Path = f.QName

	kind := pythontype.FunctionBinding
	if cls, ok := s.Type.(*pythontype.ClassType); ok && s.Kind == pythontype.ClassScope {
		f.Class = cls
		kind = pythontype.MethodBinding
		if name == "__init__" {
			kind = pythontype.ConstructorBinding
		}
	}

	for i, p := range st.Parameters {
		var t pythontype.DataType = pythontype.Unknown
		switch {
		case p.Annotation != nil:
			t = a.TranslateAnnotation(s, p.Annotation)
		case i == 0 && f.Class != nil && !static:
			f.SelfType = receiverType(f.Class, classMethod)
			t = f.SelfType
		}
		if p.Default != nil {
			def := a.TypeOf(s, p.Default)
			f.DefaultTypes = append(f.DefaultTypes, def)
			if p.Annotation == nil {
				t = pythontype.Union(t, def)
			}
		}
		f.Scope().Bind(a, p.Name, t, pythontype.ParameterBinding)
	}

	b := s.Insert(a, name, st, f, kind)
	b.IsStatic = static && f.Class != nil
	a.AddUncalled(f)
	a.propagate(f.Scope(), st.Body)
}

// receiverType gets the type of the first parameter of a method: the class
// itself for a classmethod, an instance otherwise
func receiverType(c *pythontype.ClassType, classMethod bool) pythontype.DataType {
	if classMethod {
		return c
	}
	return c.Instance()
}

// decoratorName gets the name a decorator refers to, as in `@staticmethod` or
// `@abc.abstractmethod`
func decoratorName(dec pythonast.Expr) string {
	switch dec := dec.(type) {
	case *pythonast.NameExpr:
		return dec.Ident.Literal
	case *pythonast.AttributeExpr:
		return dec.Attribute.Literal
	}
	return ""
}

func (a *Analyzer) classDef(s *pythontype.Scope, st *pythonast.ClassDefStmt) {
	name := st.Name.Ident.Literal
	c := pythontype.NewClass(name, s, s.ExtendPath(name))
	c.Node = st
	var bases []pythontype.DataType
	for _, b := range st.Bases {
		for _, d := range pythontype.Disjuncts(a.TypeOf(s, b)) {
			if base, ok := d.(*pythontype.ClassType); ok {
				c.AddBase(base)
				bases = append(bases, base)
			} else if !pythontype.IsUnknown(d) {
				a.AddProblem(b, fmt.Sprintf("%s is not a class", a.Print(d)))
			}
		}
	}

	for _, attr := range []struct {
		name string
		t    pythontype.DataType
	}{
		{"__bases__", pythontype.NewTuple(bases...)},
		{"__name__", pythontype.NewStr(name)},
		{"__dict__", pythontype.NewDict(pythontype.Str, pythontype.Unknown)},
		{"__module__", pythontype.Str},
		{"__doc__", pythontype.Str},
	} {
		b := a.CreateBinding(attr.name, st, attr.t, pythontype.AttributeBinding)
		b.QName = c.Scope().ExtendPath(attr.name)
		b.IsSynthetic = true
		b.IsStatic = true
		c.Scope().Put(attr.name, b)
	}

	s.Insert(a, name, st, c, pythontype.ClassBinding)
	s.DefineType(name, c.Instance())
	a.propagate(c.Scope(), st.Body)
}
