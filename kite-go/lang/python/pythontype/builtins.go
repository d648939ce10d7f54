package pythontype

// Builtins is the scope of builtin names. Module scopes are nested in it. It
// is seeded once when the package is initialized and frozen afterwards, so it
// can be shared by analyses running on separate goroutines.
var Builtins *Scope

var builtinClasses map[Kind]*ClassType

// BuiltinClass gets the builtin class for values of the given kind, or nil
func BuiltinClass(k Kind) *ClassType {
	return builtinClasses[k]
}

// InstanceOf gets the type of the values created by calling class c. Builtin
// classes create their builtin value types.
func InstanceOf(c *ClassType) DataType {
	for k, bc := range builtinClasses {
		if bc != c {
			continue
		}
		switch k {
		case NoneKind:
			return None
		case BoolKind:
			return Bool
		case IntKind:
			return Int
		case FloatKind:
			return Float
		case ComplexKind:
			return Complex
		case StrKind:
			return Str
		case ListKind:
			return NewList(Unknown)
		case TupleKind:
			return NewTuple()
		case DictKind:
			return NewDict(Unknown, Unknown)
		case SetKind:
			return NewSet(Unknown)
		}
	}
	return c.Instance()
}

// instanceBase creates the base for a new instance of a builtin kind, with its
// scope inheriting from the builtin class
func instanceBase(k Kind) base {
	b := newBase(InstanceScope)
	if c := builtinClasses[k]; c != nil {
		b.scope.Path = c.scope.Path
		b.scope.AddSuper(c.scope)
	}
	return b
}

type seeder struct {
	frozen []*Scope
}

func (s *seeder) freezeLater(scopes ...*Scope) {
	s.frozen = append(s.frozen, scopes...)
}

func (s *seeder) put(scope *Scope, name string, t DataType, kind BindingKind) {
	b := NewBinding(name, nil, t, kind)
	b.QName = scope.ExtendPath(name)
	b.IsBuiltin = true
	scope.Put(name, b)
}

func (s *seeder) class(name string, bases ...*ClassType) *ClassType {
	c := NewClass(name, Builtins, name)
	for _, b := range bases {
		c.AddBase(b)
	}
	s.put(Builtins, name, c, ClassBinding)
	s.freezeLater(c.scope)
	return c
}

func (s *seeder) method(c *ClassType, name string, ret DataType) {
	f := NewFunReturning(c.scope.ExtendPath(name), NewTuple(c.Instance()), ret)
	s.put(c.scope, name, f, MethodBinding)
	s.freezeLater(f.scope)
	s.freezeType(ret)
}

func (s *seeder) function(name string, arity int, ret DataType) {
	f := NewFunReturning(name, repeatTuple(Unknown, arity), ret)
	s.put(Builtins, name, f, FunctionBinding)
	s.freezeLater(f.scope)
	s.freezeType(ret)
}

func (s *seeder) defineType(name string, t DataType) {
	Builtins.DefineType(name, t)
	s.freezeType(t)
}

// freezeType freezes t and every type it contains
func (s *seeder) freezeType(t DataType) {
	s.freezeLater(t.Scope())
	switch t := t.(type) {
	case *ListType:
		s.freezeType(t.Elem)
	case *DictType:
		s.freezeType(t.Key)
		s.freezeType(t.Value)
	case *SetType:
		s.freezeType(t.Elem)
	case *IterableType:
		s.freezeType(t.Elem)
	case *AwaitableType:
		s.freezeType(t.Result)
	case *TupleType:
		for _, e := range t.Elems {
			s.freezeType(e)
		}
	}
}

// Fresh gets a copy of a frozen builtin container that an analysis may widen.
// Any other type is returned unchanged.
func Fresh(t DataType) DataType {
	if t == nil || t.Scope() == nil || !t.Scope().Frozen() {
		return t
	}
	switch t := t.(type) {
	case *ListType:
		l := NewList(t.Elem)
		l.Positional = append([]DataType(nil), t.Positional...)
		l.Values = append([]interface{}(nil), t.Values...)
		return l
	case *DictType:
		return NewDict(t.Key, t.Value)
	case *SetType:
		return NewSet(t.Elem)
	}
	return t
}

func init() {
	Builtins = NewScope(nil, GlobalScope)
	var s seeder

	// classes
	object := s.class("object")
	none := s.class("NoneType", object)
	integer := s.class("int", object)
	builtinClasses = map[Kind]*ClassType{
		NoneKind:    none,
		IntKind:     integer,
		BoolKind:    s.class("bool", integer),
		FloatKind:   s.class("float", object),
		ComplexKind: s.class("complex", object),
		StrKind:     s.class("str", object),
		ListKind:    s.class("list", object),
		TupleKind:   s.class("tuple", object),
		DictKind:    s.class("dict", object),
		SetKind:     s.class("set", object),
	}
	for _, c := range builtinClasses {
		s.freezeLater(c.Instance().scope)
	}
	s.freezeLater(object.Instance().scope)

	// singletons
	Unknown.scope.Type = Unknown
	s.freezeLater(Unknown.scope)
	for _, t := range []DataType{None, Bool, Int, Float, Complex, Str} {
		c := builtinClasses[t.Kind()]
		t.Scope().Path = c.scope.Path
		t.Scope().AddSuper(c.scope)
		t.Scope().Type = t
		s.freezeLater(t.Scope())
	}

	// members
	s.method(builtinClasses[IntKind], "bit_length", Int)
	s.method(builtinClasses[FloatKind], "is_integer", Bool)
	s.method(builtinClasses[ComplexKind], "conjugate", Complex)

	str := builtinClasses[StrKind]
	s.method(str, "__iter__", Str)
	s.method(str, "__len__", Int)
	for _, name := range []string{"upper", "lower", "strip", "format", "join", "replace"} {
		s.method(str, name, Str)
	}
	s.method(str, "split", NewList(Str))
	s.method(str, "startswith", Bool)
	s.method(str, "endswith", Bool)
	s.method(str, "find", Int)

	list := builtinClasses[ListKind]
	s.method(list, "__len__", Int)
	s.method(list, "append", None)
	s.method(list, "extend", None)
	s.method(list, "pop", Unknown)
	s.method(list, "index", Int)
	s.method(list, "count", Int)

	tuple := builtinClasses[TupleKind]
	s.method(tuple, "__len__", Int)
	s.method(tuple, "index", Int)
	s.method(tuple, "count", Int)

	dict := builtinClasses[DictKind]
	s.method(dict, "__len__", Int)
	s.method(dict, "get", Unknown)
	s.method(dict, "keys", NewIterable(Unknown))
	s.method(dict, "values", NewIterable(Unknown))
	s.method(dict, "items", NewIterable(NewTuple(Unknown, Unknown)))

	set := builtinClasses[SetKind]
	s.method(set, "__len__", Int)
	s.method(set, "add", None)

	// functions and constants
	s.function("len", 1, Int)
	s.function("print", 1, None)
	s.function("repr", 1, Str)
	s.function("input", 1, Str)
	s.function("isinstance", 2, Bool)
	s.function("range", 1, NewList(Int))
	s.function("abs", 1, Unknown)
	s.put(Builtins, "None", None, VariableBinding)
	for name, v := range map[string]BoolValue{"True": True, "False": False} {
		b := NewBool(v)
		s.put(Builtins, name, b, VariableBinding)
		s.freezeLater(b.scope)
	}

	// types that annotations may name
	s.defineType("object", object.Instance())
	s.defineType("None", None)
	s.defineType("bool", Bool)
	s.defineType("int", Int)
	s.defineType("float", Float)
	s.defineType("complex", Complex)
	s.defineType("str", Str)
	for _, name := range []string{"list", "List"} {
		s.defineType(name, NewList(Unknown))
	}
	for _, name := range []string{"tuple", "Tuple"} {
		s.defineType(name, NewTuple())
	}
	for _, name := range []string{"dict", "Dict"} {
		s.defineType(name, NewDict(Unknown, Unknown))
	}
	for _, name := range []string{"set", "Set"} {
		s.defineType(name, NewSet(Unknown))
	}
	s.defineType("Iterable", NewIterable(Unknown))
	s.defineType("Awaitable", NewAwaitable(Unknown))
	s.defineType("Any", Unknown)

	for _, scope := range s.frozen {
		scope.Freeze()
	}
	Builtins.Freeze()
}
