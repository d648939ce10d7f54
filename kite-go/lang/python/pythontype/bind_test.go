package pythontype

import (
	"testing"

	"github.com/kiteco/pytranslate/kite-go/lang/python/pythonast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func name(lit string) *pythonast.NameExpr {
	return pythonast.NewName(lit, 0)
}

func tuple(elts ...pythonast.Expr) *pythonast.TupleExpr {
	return &pythonast.TupleExpr{Elts: elts}
}

func TestBindName(t *testing.T) {
	d := NewMockDelegate(t)
	mod := newTestModule()
	f := NewFun(nil, mod.Scope())

	f.Scope().BindByScopeKind(d, name("x"), Int)
	require.Len(t, f.Scope().LookupLocal("x"), 1)
	assert.Equal(t, VariableBinding, f.Scope().LookupLocal("x")[0].Kind)

	mod.Scope().BindByScopeKind(d, name("y"), Str)
	assert.Equal(t, ScopeBinding, mod.Scope().LookupLocal("y")[0].Kind)

	c := NewClass("C", mod.Scope(), "mod.C")
	c.Scope().BindByScopeKind(d, name("z"), Str)
	assert.Equal(t, AttributeBinding, c.Scope().LookupLocal("z")[0].Kind)
	assert.Equal(t, "mod.C.z", c.Scope().LookupLocal("z")[0].QName)

	assert.Empty(t, d.Problems)
}

func TestBindNonGlobalAndGlobal(t *testing.T) {
	// x = 'default'
	// def f(): x = 3
	d := NewMockDelegate(t)
	mod := newTestModule()
	mod.Scope().Bind(d, name("x"), NewStr("default"), ScopeBinding)
	f := NewFun(nil, mod.Scope())
	f.Scope().Bind(d, name("x"), Int, VariableBinding)

	assertEqual(t, mod.Scope().LookupType("x"), Str)
	assertEqual(t, f.Scope().LookupType("x"), Int)

	// x = 'default'
	// def g():
	//     global x
	//     x = 3
	g := NewFun(nil, mod.Scope())
	g.Scope().AddGlobalName("x")
	g.Scope().Bind(d, name("x"), Int, VariableBinding)

	assert.Nil(t, g.Scope().LookupLocal("x"))
	assertEqual(t, mod.Scope().LookupType("x"), NewUnion(Str, Int))
	assertEqual(t, g.Scope().LookupType("x"), NewUnion(Str, Int))
	assert.Len(t, d.Refs, 1)
}

func TestBindGlobalWithoutModuleBinding(t *testing.T) {
	d := NewMockDelegate(t)
	mod := newTestModule()
	f := NewFun(nil, mod.Scope())
	f.Scope().AddGlobalName("counter")
	f.Scope().Bind(d, name("counter"), Int, VariableBinding)

	bs := mod.Scope().LookupLocal("counter")
	require.Len(t, bs, 1)
	assert.Equal(t, "mod.counter", bs[0].QName)
	assert.True(t, bs[0].Type() == Int)
}

func TestBindWideningDoesNotMutateSnapshot(t *testing.T) {
	d := NewMockDelegate(t)
	mod := newTestModule()
	mod.Scope().Bind(d, name("x"), Str, ScopeBinding)
	b := mod.Scope().LookupLocal("x")[0]
	before := b.Type()
	b.AddType(Int)
	assert.True(t, before == Str)
	assertEqual(t, b.Type(), NewUnion(Str, Int))
}

func TestBindTuple(t *testing.T) {
	d := NewMockDelegate(t)
	mod := newTestModule()
	s := mod.Scope()

	s.Bind(d, tuple(name("a"), name("b")), NewTuple(Int, Str), ScopeBinding)
	assert.True(t, s.LookupType("a") == Int)
	assert.True(t, s.LookupType("b") == Str)

	s.Bind(d, &pythonast.ListExpr{Values: []pythonast.Expr{name("c"), name("d")}}, NewList(Float), ScopeBinding)
	assert.True(t, s.LookupType("c") == Float)
	assert.True(t, s.LookupType("d") == Float)

	s.Bind(d, tuple(name("k1"), name("k2")), NewDict(Str, Int), ScopeBinding)
	assert.True(t, s.LookupType("k1") == Str)

	s.Bind(d, tuple(name("e"), tuple(name("f"), name("g"))), NewTuple(Int, NewTuple(Str, Bool)), ScopeBinding)
	assert.True(t, s.LookupType("g") == Bool)

	s.Bind(d, tuple(name("u"), name("v")), Unknown, ScopeBinding)
	assert.True(t, IsUnknown(s.LookupType("u")))

	assert.Empty(t, d.Problems)
}

func TestBindUnpackMismatch(t *testing.T) {
	d := NewMockDelegate(t)
	mod := newTestModule()
	s := mod.Scope()

	// (a, b) = f() where f returns a 3-tuple
	s.Bind(d, tuple(name("a"), name("b")), NewTuple(Int, Str, Bool), ScopeBinding)
	assert.Equal(t, []string{"ValueError: too many values to unpack"}, d.Problems)
	assert.True(t, IsUnknown(s.LookupType("a")))
	assert.True(t, IsUnknown(s.LookupType("b")))

	s.Bind(d, tuple(name("x"), name("y"), name("z")), NewTuple(Int, Str), ScopeBinding)
	assert.Equal(t, "ValueError: need more than 2 values to unpack", d.Problems[1])
	assert.True(t, IsUnknown(s.LookupType("z")))
}

func TestBindNonIterable(t *testing.T) {
	d := NewMockDelegate(t)
	mod := newTestModule()
	s := mod.Scope()

	s.Bind(d, tuple(name("a"), name("b")), Int, ScopeBinding)
	assert.Equal(t, []string{"unpacking non-iterable: int"}, d.Problems)
	assert.True(t, IsUnknown(s.LookupType("a")))
}

func TestBindInvalidTarget(t *testing.T) {
	d := NewMockDelegate(t)
	mod := newTestModule()
	mod.Scope().Bind(d, &pythonast.NumberExpr{Kind: pythonast.IntNumber, Literal: "1"}, Int, ScopeBinding)
	assert.Equal(t, []string{"invalid location for assignment"}, d.Problems)
}

func TestBindAttribute(t *testing.T) {
	d := NewMockDelegate(t)
	mod := newTestModule()
	c := NewClass("C", mod.Scope(), "mod.C")
	base := NewClass("B", mod.Scope(), "mod.B")
	c.AddBase(base)
	put(base.Scope(), "x", Str)

	obj := name("obj")
	d.Types[obj] = c.Instance()
	target := &pythonast.AttributeExpr{Value: obj, Attribute: pythonast.NewIdent("x", 4)}
	mod.Scope().Bind(d, target, Int, ScopeBinding)

	bs := c.Instance().Scope().LookupLocal("x")
	require.Len(t, bs, 1)
	assert.Equal(t, AttributeBinding, bs[0].Kind)
	assert.Equal(t, "mod.C.x", bs[0].QName)
	assert.True(t, bs[0].Type() == Int)
	assert.Len(t, d.Refs[target], 1)
	assert.Nil(t, mod.Scope().LookupLocal("x"))
	assert.Empty(t, d.Problems)
}

func TestBindAttributeOnUnion(t *testing.T) {
	d := NewMockDelegate(t)
	mod := newTestModule()
	a := NewClass("A", mod.Scope(), "mod.A")
	b := NewClass("B", mod.Scope(), "mod.B")

	obj := name("obj")
	d.Types[obj] = NewUnion(a.Instance(), b.Instance(), Unknown)
	target := &pythonast.AttributeExpr{Value: obj, Attribute: pythonast.NewIdent("y", 4)}
	mod.Scope().Bind(d, target, Str, ScopeBinding)

	assert.Len(t, a.Instance().Scope().LookupLocal("y"), 1)
	assert.Len(t, b.Instance().Scope().LookupLocal("y"), 1)
	assert.Equal(t, []string{"can't set attribute on unknown type"}, d.Problems)
}

func TestBindAttributeOnBuiltin(t *testing.T) {
	d := NewMockDelegate(t)
	mod := newTestModule()
	obj := name("obj")
	d.Types[obj] = Int
	target := &pythonast.AttributeExpr{Value: obj, Attribute: pythonast.NewIdent("y", 4)}
	mod.Scope().Bind(d, target, Str, ScopeBinding)
	require.Len(t, d.Problems, 1)
	assert.Contains(t, d.Problems[0], "builtin type int")
}

func TestBindIndex(t *testing.T) {
	d := NewMockDelegate(t)
	mod := newTestModule()
	l := NewList(Int)
	dict := NewDict(Str, Int)
	mod.Scope().Put("l", NewBinding("l", nil, l, ScopeBinding))
	mod.Scope().Put("d", NewBinding("d", nil, dict, ScopeBinding))

	mod.Scope().Bind(d, &pythonast.IndexExpr{Value: name("l"), Subscripts: []pythonast.Expr{name("i")}}, Str, ScopeBinding)
	assertEqual(t, l.Elem, NewUnion(Int, Str))

	key := &pythonast.StringExpr{Value: "k"}
	d.Types[key] = Str
	mod.Scope().Bind(d, &pythonast.IndexExpr{Value: name("d"), Subscripts: []pythonast.Expr{key}}, Float, ScopeBinding)
	assert.True(t, dict.Key == Str)
	assert.True(t, dict.Value == Float)

	assert.Nil(t, mod.Scope().LookupLocal("i"))
	assert.Empty(t, d.Problems)
}

func TestBindIterator(t *testing.T) {
	mod := newTestModule()
	s := mod.Scope()
	iter := name("it")

	c := NewClass("Seq", s, "mod.Seq")
	iterFun := NewFun(nil, c.Scope())
	iterFun.AddMapping(NewTuple(Unknown), Float)
	put(c.Scope(), "__iter__", iterFun)

	notFun := NewClass("NotIter", s, "mod.NotIter")
	put(notFun.Scope(), "__iter__", Int)

	cases := []struct {
		iterable DataType
		expected DataType
		problem  bool
	}{
		{NewList(Str), Str, false},
		{NewTuple(Int, Str), NewUnion(Int, Str), false},
		{NewSet(Bool), Bool, false},
		{NewIterable(Float), Float, false},
		{NewDict(Str, Int), Str, false},
		{NewStr("abc"), Str, false},
		{Unknown, Unknown, false},
		{c.Instance(), Float, false},
		{Union(NewList(Int), NewList(Str)), NewUnion(Int, Str), false},
		{notFun.Instance(), Unknown, true},
		{Int, Unknown, true},
	}

	for _, tc := range cases {
		d := NewMockDelegate(t)
		s.BindIterator(d, name("x"), iter, tc.iterable, ScopeBinding)
		assertEqual(t, s.LookupType("x"), tc.expected)
		if tc.problem {
			require.Len(t, d.Problems, 1, "iterating %v", tc.iterable)
			assert.Contains(t, d.Problems[0], "not an iterable type")
		} else {
			assert.Empty(t, d.Problems, "iterating %v", tc.iterable)
		}
	}
}

func TestBindingLocation(t *testing.T) {
	fn := &pythonast.FunctionDefStmt{
		Span: pythonast.Span{From: 10, To: 50},
		Name: pythonast.NewName("f", 14),
	}
	b := NewBinding("f", fn, NewFun(fn, nil), FunctionBinding)
	assert.EqualValues(t, 14, b.Begin)
	assert.EqualValues(t, 15, b.End)
	assert.EqualValues(t, 10, b.BodyBegin)
	assert.EqualValues(t, 50, b.BodyEnd)

	m := &pythonast.Module{Span: pythonast.Span{From: 0, To: 100}}
	b = NewBinding("mod", m, Unknown, ModuleBinding)
	assert.EqualValues(t, 0, b.End)
	assert.EqualValues(t, 100, b.BodyEnd)

	n := pythonast.NewName("abc", 7)
	b = NewBinding("abc", n, Int, VariableBinding)
	assert.EqualValues(t, 7, b.BodyBegin)
	assert.EqualValues(t, 10, b.End)

	assert.Panics(t, func() { NewBinding("x", n, nil, VariableBinding) })
}

func TestBindingString(t *testing.T) {
	b := NewBinding("x", pythonast.NewName("x", 3), Int, VariableBinding)
	b.QName = "mod.x"
	for i := 0; i < 3; i++ {
		b.AddReference(pythonast.NewName("x", 20))
	}
	assert.Equal(t, "(binding:kind=variable:node=NameExpr[x]@3:type=int:qname=mod.x:refs=[NameExpr[x]@20, NameExpr[x]@20, NameExpr[x]@20])", b.String())

	for i := 0; i < 10; i++ {
		b.AddReference(pythonast.NewName("x", 20))
	}
	assert.Contains(t, b.String(), "refs=[...]")

	other := NewBinding("y", pythonast.NewName("y", 1), Int, VariableBinding)
	assert.True(t, other.Less(b))
	assert.False(t, b.Less(other))
}

func TestBindUnpackUnion(t *testing.T) {
	d := NewMockDelegate(t)
	mod := newTestModule()
	s := mod.Scope()

	// a, b = (1, 2) if c else ['x']
	s.Bind(d, tuple(name("a"), name("b")), NewUnion(NewTuple(Int, Int), NewList(Str)), ScopeBinding)
	assert.Empty(t, d.Problems)
	assertEqual(t, s.LookupType("a"), NewUnion(Int, Str))
	assertEqual(t, s.LookupType("b"), NewUnion(Int, Str))

	s.Bind(d, tuple(name("p"), name("q")), NewUnion(NewTuple(Int, Int), Int), ScopeBinding)
	assert.Equal(t, []string{"unpacking non-iterable: int"}, d.Problems)
	assert.True(t, IsUnknown(s.LookupType("p")))

	s.Bind(d, tuple(name("m"), name("n")), NewUnion(NewTuple(Int, Int), NewTuple(Int, Str, Str)), ScopeBinding)
	assert.Equal(t, "ValueError: too many values to unpack", d.Problems[1])
	assert.True(t, IsUnknown(s.LookupType("n")))
}
