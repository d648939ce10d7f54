package pythontype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunReturnType(t *testing.T) {
	f := NewFun(nil, nil)
	assert.True(t, IsUnknown(f.ReturnType()))

	f.AddMapping(NewTuple(Int), Str)
	f.AddMapping(NewTuple(Str), Int)
	assert.True(t, f.ReturnType() == Str)
	assert.True(t, f.Mapping(NewTuple(Str)) == Int)
	assert.Nil(t, f.Mapping(NewTuple(Float)))

	// an equal shape replaces the earlier arrow in place
	f.AddMapping(NewTuple(Int), Bool)
	require.Len(t, f.Arrows(), 2)
	assert.True(t, f.ReturnType() == Bool)
}

func TestFunArrowCap(t *testing.T) {
	f := NewFun(nil, nil)
	shapes := []DataType{
		NewTuple(Int),
		NewTuple(Str),
		NewTuple(Float),
		NewTuple(NewList(Int)),
		NewTuple(NewDict(Str, Int)),
		NewTuple(NewSet(Str)),
	}
	for i, s := range shapes {
		added := f.AddMapping(s, Int)
		assert.Equal(t, i < maxLiveArrows, added, "shape %d", i)
	}
	assert.Len(t, f.Arrows(), maxLiveArrows)
	assert.True(t, len(f.Arrows()) <= maxCompressedArrows)
}

func TestFunCompression(t *testing.T) {
	f := NewFun(nil, nil)
	f.AddMapping(NewTuple(Unknown, Int), Str)
	f.AddMapping(NewTuple(Str, Int), Float)
	require.Len(t, f.Arrows(), 1)
	assertEqual(t, f.Arrows()[0].From, NewTuple(Str, Int))

	// shapes of different arity are never subsumed
	f.AddMapping(NewTuple(Str), Float)
	assert.Len(t, f.Arrows(), 2)
}

func TestFunCompressionKeepsEarlierOfEquivalent(t *testing.T) {
	arrows := []Arrow{
		{NewTuple(None), Int},
		{NewTuple(Unknown), Str},
	}
	out := compressArrows(arrows)
	require.Len(t, out, 1)
	assert.True(t, out[0].To == Int)
}

func TestSubsumed(t *testing.T) {
	assert.True(t, Subsumed(Unknown, Int))
	assert.True(t, Subsumed(None, Str))
	assert.True(t, Subsumed(Int, Int))
	assert.False(t, Subsumed(Int, Str))
	assert.True(t, Subsumed(NewTuple(Unknown, Str), NewTuple(Int, Str)))
	assert.False(t, Subsumed(NewTuple(Int, Str), NewTuple(Unknown, Str)))
	assert.False(t, Subsumed(NewTuple(Int), NewTuple(Int, Int)))

	l1 := NewList(Unknown)
	l1.Add(None)
	l1.Add(Int)
	l2 := NewList(Unknown)
	l2.Add(Str)
	l2.Add(Int)
	assert.True(t, Subsumed(l1, l2))

	// self-referential tuples terminate
	c1 := NewTuple(Unknown, Int)
	c1.Elems[1] = c1
	c2 := NewTuple(Unknown, Int)
	c2.Elems[1] = c2
	assert.True(t, Subsumed(c1, c2))
}

func TestFunReceiverNormalization(t *testing.T) {
	c := NewClass("C", nil, "C")
	f := NewFun(nil, c.Scope())
	f.Class = c
	f.AddMapping(NewTuple(Unknown, Int), Str)

	from := f.Arrows()[0].From.(*TupleType)
	assert.True(t, from.Elems[0] == c.Instance())
	assert.True(t, from.Elems[1] == Int)
}

func TestMakeAwaitable(t *testing.T) {
	f := NewFun(nil, nil)
	f.QName = "mod.fetch"
	f.AddMapping(NewTuple(Str), Int)

	a := f.MakeAwaitable()
	require.Len(t, a.Arrows(), 1)
	assertEqual(t, a.ReturnType(), NewAwaitable(Int))
	assert.True(t, f.ReturnType() == Int)
	assert.Equal(t, f.QName, a.QName)
}
