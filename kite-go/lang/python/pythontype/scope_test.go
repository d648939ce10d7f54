package pythontype

import (
	"testing"

	"github.com/kiteco/pytranslate/kite-go/lang/python/pythonast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModule() *ModuleType {
	return NewModule("mod", "mod", "mod.py", Builtins)
}

func put(s *Scope, name string, t DataType) *Binding {
	b := NewBinding(name, nil, t, ScopeBinding)
	b.QName = s.ExtendPath(name)
	s.Put(name, b)
	return b
}

func TestInsert(t *testing.T) {
	d := NewMockDelegate(t)
	mod := newTestModule()
	c := NewClass("C", mod.Scope(), mod.Scope().ExtendPath("C"))

	b := c.Scope().Insert(d, "x", pythonast.NewName("x", 4), Int, AttributeBinding)
	assert.Equal(t, "mod.C.x", b.QName)
	assert.Equal(t, []*Binding{b}, d.Bindings)

	// inserting again replaces the previous binding
	b2 := c.Scope().Insert(d, "x", pythonast.NewName("x", 20), Str, AttributeBinding)
	assert.Equal(t, BindingSet{b2}, c.Scope().LookupLocal("x"))

	// a module binding takes the module's qualified name
	other := NewModule("other", "pkg.other", "pkg/other.py", Builtins)
	mb := mod.Scope().Insert(d, "o", pythonast.NewName("o", 0), other, ModuleBinding)
	assert.Equal(t, "pkg.other", mb.QName)
}

func TestLookup(t *testing.T) {
	mod := newTestModule()
	f := NewFun(nil, mod.Scope())
	put(mod.Scope(), "x", Str)
	put(f.Scope(), "y", Int)

	assert.Nil(t, f.Scope().LookupLocal("x"))
	require.Len(t, f.Scope().Lookup("x"), 1)
	assert.True(t, f.Scope().LookupType("x") == Str)
	assert.True(t, f.Scope().LookupType("y") == Int)
	assert.Nil(t, mod.Scope().LookupType("y"))
	assert.Nil(t, f.Scope().Lookup("nope"))

	// builtins are visible from any module
	require.NotNil(t, f.Scope().LookupType("len"))
	assert.Equal(t, FunctionKind, f.Scope().LookupType("len").Kind())
}

func TestLookupGlobalRedirection(t *testing.T) {
	mod := newTestModule()
	outer := NewFun(nil, mod.Scope())
	inner := NewFun(nil, outer.Scope())
	put(mod.Scope(), "x", Str)
	put(outer.Scope(), "x", Int)

	assert.True(t, inner.Scope().LookupType("x") == Int)

	outer.Scope().AddGlobalName("x")
	assert.True(t, outer.Scope().IsGlobalName("x"))
	assert.True(t, inner.Scope().IsGlobalName("x"))
	assert.False(t, mod.Scope().IsGlobalName("x"))
	assert.True(t, inner.Scope().LookupType("x") == Str)
	assert.True(t, outer.Scope().LookupScope("x").Type() == Str)
	assert.Nil(t, inner.Scope().LookupScope("y"))
}

func TestLookupAttrInheritanceOrder(t *testing.T) {
	mod := newTestModule()
	b1 := NewClass("B1", mod.Scope(), "mod.B1")
	b2 := NewClass("B2", mod.Scope(), "mod.B2")
	c1 := NewClass("C1", mod.Scope(), "mod.C1")
	c1.AddBase(b1)
	c1.AddBase(b2)

	x1 := put(b1.Scope(), "x", Int)
	put(b2.Scope(), "x", Str)
	y2 := put(b2.Scope(), "y", Float)

	assert.Equal(t, BindingSet{x1}, c1.Scope().LookupAttr("x"))
	assert.Equal(t, BindingSet{y2}, c1.Scope().LookupAttr("y"))
	assert.True(t, c1.Scope().LookupAttrType("x") == Int)
	assert.Nil(t, c1.Scope().LookupAttrType("z"))

	// instances see class attributes
	assert.Equal(t, BindingSet{x1}, c1.Instance().Scope().LookupAttr("x"))
}

func TestLookupAttrDepthFirst(t *testing.T) {
	mod := newTestModule()
	a := NewClass("A", mod.Scope(), "mod.A")
	b1 := NewClass("B1", mod.Scope(), "mod.B1")
	b2 := NewClass("B2", mod.Scope(), "mod.B2")
	c := NewClass("C", mod.Scope(), "mod.C")
	b1.AddBase(a)
	c.AddBase(b1)
	c.AddBase(b2)

	xa := put(a.Scope(), "x", Int)
	put(b2.Scope(), "x", Str)
	assert.Equal(t, BindingSet{xa}, c.Scope().LookupAttr("x"))
}

func TestLookupAttrCycle(t *testing.T) {
	mod := newTestModule()
	a := NewClass("A", mod.Scope(), "mod.A")
	b := NewClass("B", mod.Scope(), "mod.B")
	a.AddBase(b)
	b.AddBase(a)
	put(b.Scope(), "x", Int)

	assert.Nil(t, a.Scope().LookupAttr("missing"))
	assert.True(t, a.Scope().LookupAttrType("x") == Int)
}

func TestClosestOfKind(t *testing.T) {
	mod := newTestModule()
	c := NewClass("C", mod.Scope(), "mod.C")
	f := NewFun(nil, c.Scope())

	assert.Equal(t, c.Scope(), f.Scope().ClosestOfKind(ClassScope))
	assert.Equal(t, mod.Scope(), f.Scope().ModuleScope())
	assert.Equal(t, Builtins, f.Scope().ClosestOfKind(GlobalScope))
	assert.Nil(t, mod.Scope().ClosestOfKind(InstanceScope))

	// class scopes forward to the enclosing non-class scope
	assert.Equal(t, mod.Scope(), c.Scope().Forwarding)
	assert.Equal(t, f.Scope(), f.Scope().Forwarding)
}

func TestScopeTypes(t *testing.T) {
	mod := newTestModule()
	f := NewFun(nil, mod.Scope())
	c := NewClass("C", mod.Scope(), "mod.C")
	mod.Scope().DefineType("C", c.Instance())

	assert.True(t, f.Scope().LookupTypeByName("C") == c.Instance())
	assert.True(t, f.Scope().LookupTypeByName("int") == Int)
	assert.Nil(t, f.Scope().LookupTypeByName("D"))
}

func TestCloneMergeOverwrite(t *testing.T) {
	mod := newTestModule()
	s := mod.Scope()
	x := put(s, "x", Int)

	c := s.Clone()
	assert.Equal(t, c, c.Forwarding)
	y := put(c, "y", Str)
	x2 := put(c, "x", Float)
	assert.Nil(t, s.LookupLocal("y"))

	s.Merge(c)
	assert.Equal(t, BindingSet{x, x2}, s.LookupLocal("x"))
	assert.Equal(t, BindingSet{y}, s.LookupLocal("y"))
	assertEqual(t, s.LookupType("x"), Float)

	s2 := mod.Scope().Clone()
	z := put(s2, "z", Bool)
	s3 := s2.Clone()
	put(s3, "z", Str)
	s3.Remove("x")
	s2.Overwrite(s3)
	assert.NotEqual(t, BindingSet{z}, s2.LookupLocal("z"))
	assert.NotNil(t, s2.LookupLocal("x"))
}

func TestNames(t *testing.T) {
	mod := newTestModule()
	for _, name := range []string{"b", "c", "a"} {
		put(mod.Scope(), name, Int)
	}
	assert.Equal(t, []string{"a", "b", "c"}, mod.Scope().Names())
	assert.Equal(t, 3, mod.Scope().Len())
}

func TestFrozenScope(t *testing.T) {
	d := NewMockDelegate(t)
	assert.True(t, Builtins.Frozen())
	assert.True(t, Int.Scope().Frozen())
	assert.Panics(t, func() {
		Builtins.Insert(d, "x", nil, Int, ScopeBinding)
	})
	assert.Panics(t, func() {
		Str.Scope().AddSuper(NewScope(nil, BlockScope))
	})
}

func TestExtendPath(t *testing.T) {
	s := NewScope(nil, ModuleScope)
	assert.Equal(t, "x", s.ExtendPath("x"))
	s.Path = "pkg.mod"
	assert.Equal(t, "pkg.mod.x", s.ExtendPath("x"))
}
