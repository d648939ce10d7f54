package pythontype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinClasses(t *testing.T) {
	for _, k := range []Kind{NoneKind, BoolKind, IntKind, FloatKind, ComplexKind, StrKind, ListKind, TupleKind, DictKind, SetKind} {
		c := BuiltinClass(k)
		require.NotNil(t, c, "class for %s", k)
		assert.True(t, c.Scope().Frozen())
		bs := Builtins.LookupLocal(c.Name)
		require.Len(t, bs, 1)
		assert.True(t, bs[0].IsBuiltin)
		assert.Equal(t, ClassBinding, bs[0].Kind)
	}
	assert.Nil(t, BuiltinClass(UnionKind))
}

func TestBuiltinMembers(t *testing.T) {
	// members are found through the builtin class
	assertEqual(t, Str.Scope().LookupAttrType("upper").(*FunType).ReturnType(), Str)
	assertEqual(t, NewStr("x").Scope().LookupAttrType("split").(*FunType).ReturnType(), NewList(Str))
	assertEqual(t, NewList(Int).Scope().LookupAttrType("append").(*FunType).ReturnType(), None)

	// bool inherits from int
	assert.NotNil(t, NewBool(True).Scope().LookupAttr("bit_length"))

	bs := Str.Scope().LookupAttr("upper")
	require.Len(t, bs, 1)
	assert.Equal(t, "str.upper", bs[0].QName)
	assert.Equal(t, MethodBinding, bs[0].Kind)
}

func TestBuiltinNames(t *testing.T) {
	assert.True(t, Builtins.LookupType("None") == None)
	assertEqual(t, Builtins.LookupType("True"), Bool)
	assert.Equal(t, True, Builtins.LookupType("True").(*BoolType).Value)
	assertEqual(t, Builtins.LookupType("len").(*FunType).ReturnType(), Int)
	assert.Equal(t, "len", Builtins.LookupLocal("len")[0].QName)

	assert.True(t, Builtins.LookupTypeByName("int") == Int)
	assert.Equal(t, ListKind, Builtins.LookupTypeByName("List").Kind())
	assert.Nil(t, Builtins.LookupTypeByName("Nope"))
}

func TestBuiltinsAreFrozen(t *testing.T) {
	for _, name := range Builtins.Names() {
		for _, b := range Builtins.LookupLocal(name) {
			assert.True(t, b.Type().Scope().Frozen(), "%s", name)
		}
	}
}

func TestInstanceOf(t *testing.T) {
	assert.True(t, InstanceOf(BuiltinClass(IntKind)) == Int)
	assert.True(t, InstanceOf(BuiltinClass(StrKind)) == Str)
	assertEqual(t, InstanceOf(BuiltinClass(ListKind)), NewList(Unknown))
	assertEqual(t, InstanceOf(BuiltinClass(DictKind)), NewDict(Unknown, Unknown))

	c := NewClass("Point", nil, "Point")
	assert.True(t, InstanceOf(c) == c.Instance())
}

func TestBuiltinResultsAreFrozen(t *testing.T) {
	fns := map[string]*FunType{
		"range":      Builtins.LookupType("range").(*FunType),
		"str.split":  Str.Scope().LookupAttrType("split").(*FunType),
		"dict.keys":  NewDict(Unknown, Unknown).Scope().LookupAttrType("keys").(*FunType),
		"dict.items": NewDict(Unknown, Unknown).Scope().LookupAttrType("items").(*FunType),
	}
	for name, f := range fns {
		assert.True(t, f.ReturnType().Scope().Frozen(), "%s", name)
	}
	items := fns["dict.items"].ReturnType().(*IterableType)
	assert.True(t, items.Elem.Scope().Frozen())
}

func TestFresh(t *testing.T) {
	ret := Builtins.LookupType("range").(*FunType).ReturnType()
	l, ok := Fresh(ret).(*ListType)
	require.True(t, ok)
	assert.False(t, l.Scope().Frozen())
	assert.False(t, l == ret)
	assertEqual(t, l, ret)

	l.Elem = Union(l.Elem, Str)
	assertEqual(t, ret, NewList(Int))

	mine := NewList(Int)
	assert.True(t, Fresh(mine) == DataType(mine))
	assert.True(t, Fresh(Int) == Int)
	assert.Nil(t, Fresh(nil))
}
