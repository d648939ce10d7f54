package pythontype

// guardedEqual compares a and b with f unless the pair is already being
// compared further up the stack, in which case they are assumed equal
func guardedEqual(s *TypeStack, a, b DataType, f func() bool) bool {
	if s.Contains(a, b) {
		return true
	}
	s.Push(a, b)
	defer s.Pop()
	return f()
}

// ListType is a list. Positional records the types of the elements of a list
// literal, in order, and Values their literal values where known.
type ListType struct {
	base
	Elem       DataType
	Positional []DataType
	Values     []interface{}
}

// NewList creates a list type with the given element type
func NewList(elem DataType) *ListType {
	t := &ListType{base: instanceBase(ListKind), Elem: orUnknown(elem)}
	t.scope.Type = t
	return t
}

// Add appends a positional element and widens the element type
func (t *ListType) Add(elem DataType) {
	t.Elem = Union(t.Elem, elem)
	t.Positional = append(t.Positional, elem)
}

// ToTupleN gets a tuple of n copies of the element type
func (t *ListType) ToTupleN(n int) *TupleType {
	return repeatTuple(t.Elem, n)
}

// ToTuple gets a tuple of the positional element types
func (t *ListType) ToTuple() *TupleType {
	return NewTuple(t.Positional...)
}

// Kind implements DataType
func (t *ListType) Kind() Kind { return ListKind }

// Accept implements DataType
func (t *ListType) Accept(v Visitor) { v.VisitList(t) }

// MakeGeneric implements DataType
func (t *ListType) MakeGeneric(args ...DataType) (DataType, error) {
	if len(args) != 1 {
		return nil, wrongArity(t, 1, len(args))
	}
	return NewList(args[0]), nil
}

// String implements DataType
func (t *ListType) String() string { return Print(t) }

func (t *ListType) equal(u DataType, s *TypeStack) bool {
	o, ok := u.(*ListType)
	if !ok {
		return false
	}
	return guardedEqual(s, t, o, func() bool {
		return equal(t.Elem, o.Elem, s)
	})
}

func (t *ListType) hash(s *TypeStack) uint64 {
	return guardedHash(s, t, saltList, func() uint64 {
		return rehashTypes(s, saltList, t.Elem)
	})
}

// ---

// TupleType is a tuple with ordered element types. A variant tuple is one
// whose arity is not exactly known.
type TupleType struct {
	base
	Elems   []DataType
	Variant bool
}

// NewTuple creates a tuple type
func NewTuple(elems ...DataType) *TupleType {
	t := &TupleType{base: instanceBase(TupleKind)}
	for _, e := range elems {
		t.Elems = append(t.Elems, orUnknown(e))
	}
	t.scope.Type = t
	return t
}

func repeatTuple(elem DataType, n int) *TupleType {
	elems := make([]DataType, n)
	for i := range elems {
		elems[i] = elem
	}
	return NewTuple(elems...)
}

// Len gets the number of elements
func (t *TupleType) Len() int { return len(t.Elems) }

// ToList gets a list whose element type is the union of the tuple elements
func (t *TupleType) ToList() *ListType {
	l := NewList(Unknown)
	for _, e := range t.Elems {
		l.Add(e)
	}
	return l
}

// withReceiver copies the tuple with its first element replaced
func (t *TupleType) withReceiver(recv DataType) *TupleType {
	elems := append([]DataType(nil), t.Elems...)
	elems[0] = recv
	c := NewTuple(elems...)
	c.Variant = t.Variant
	return c
}

// Kind implements DataType
func (t *TupleType) Kind() Kind { return TupleKind }

// Accept implements DataType
func (t *TupleType) Accept(v Visitor) { v.VisitTuple(t) }

// MakeGeneric implements DataType
func (t *TupleType) MakeGeneric(args ...DataType) (DataType, error) {
	return NewTuple(args...), nil
}

// String implements DataType
func (t *TupleType) String() string { return Print(t) }

func (t *TupleType) equal(u DataType, s *TypeStack) bool {
	o, ok := u.(*TupleType)
	if !ok || len(t.Elems) != len(o.Elems) {
		return false
	}
	return guardedEqual(s, t, o, func() bool {
		for i := range t.Elems {
			if !equal(t.Elems[i], o.Elems[i], s) {
				return false
			}
		}
		return true
	})
}

func (t *TupleType) hash(s *TypeStack) uint64 {
	return guardedHash(s, t, saltTuple, func() uint64 {
		return rehashTypes(s, saltTuple, t.Elems...)
	})
}

// ---

// DictType is a dict with key and value types
type DictType struct {
	base
	Key   DataType
	Value DataType
}

// NewDict creates a dict type
func NewDict(key, value DataType) *DictType {
	t := &DictType{base: instanceBase(DictKind), Key: orUnknown(key), Value: orUnknown(value)}
	t.scope.Type = t
	return t
}

// Put widens the key and value types
func (t *DictType) Put(key, value DataType) {
	t.Key = Union(t.Key, key)
	t.Value = Union(t.Value, value)
}

// ToTupleN gets a tuple of n copies of the key type, which is what unpacking
// a dict yields
func (t *DictType) ToTupleN(n int) *TupleType {
	return repeatTuple(t.Key, n)
}

// Kind implements DataType
func (t *DictType) Kind() Kind { return DictKind }

// Accept implements DataType
func (t *DictType) Accept(v Visitor) { v.VisitDict(t) }

// MakeGeneric implements DataType
func (t *DictType) MakeGeneric(args ...DataType) (DataType, error) {
	if len(args) != 2 {
		return nil, wrongArity(t, 2, len(args))
	}
	return NewDict(args[0], args[1]), nil
}

// String implements DataType
func (t *DictType) String() string { return Print(t) }

func (t *DictType) equal(u DataType, s *TypeStack) bool {
	o, ok := u.(*DictType)
	if !ok {
		return false
	}
	return guardedEqual(s, t, o, func() bool {
		return equal(t.Key, o.Key, s) && equal(t.Value, o.Value, s)
	})
}

func (t *DictType) hash(s *TypeStack) uint64 {
	return guardedHash(s, t, saltDict, func() uint64 {
		return rehashTypes(s, saltDict, t.Key, t.Value)
	})
}

// ---

// SetType is a set with an element type
type SetType struct {
	base
	Elem DataType
}

// NewSet creates a set type
func NewSet(elem DataType) *SetType {
	t := &SetType{base: instanceBase(SetKind), Elem: orUnknown(elem)}
	t.scope.Type = t
	return t
}

// Kind implements DataType
func (t *SetType) Kind() Kind { return SetKind }

// Accept implements DataType
func (t *SetType) Accept(v Visitor) { v.VisitSet(t) }

// MakeGeneric implements DataType
func (t *SetType) MakeGeneric(args ...DataType) (DataType, error) {
	if len(args) != 1 {
		return nil, wrongArity(t, 1, len(args))
	}
	return NewSet(args[0]), nil
}

// String implements DataType
func (t *SetType) String() string { return Print(t) }

func (t *SetType) equal(u DataType, s *TypeStack) bool {
	o, ok := u.(*SetType)
	if !ok {
		return false
	}
	return guardedEqual(s, t, o, func() bool {
		return equal(t.Elem, o.Elem, s)
	})
}

func (t *SetType) hash(s *TypeStack) uint64 {
	return guardedHash(s, t, saltSet, func() uint64 {
		return rehashTypes(s, saltSet, t.Elem)
	})
}

// ---

// IterableType is something that can be iterated over but not indexed
type IterableType struct {
	base
	Elem DataType
}

// NewIterable creates an iterable type
func NewIterable(elem DataType) *IterableType {
	t := &IterableType{base: newBase(InstanceScope), Elem: orUnknown(elem)}
	t.scope.Type = t
	return t
}

// Kind implements DataType
func (t *IterableType) Kind() Kind { return IterableKind }

// Accept implements DataType
func (t *IterableType) Accept(v Visitor) { v.VisitIterable(t) }

// MakeGeneric implements DataType
func (t *IterableType) MakeGeneric(args ...DataType) (DataType, error) {
	if len(args) != 1 {
		return nil, wrongArity(t, 1, len(args))
	}
	return NewIterable(args[0]), nil
}

// String implements DataType
func (t *IterableType) String() string { return Print(t) }

func (t *IterableType) equal(u DataType, s *TypeStack) bool {
	o, ok := u.(*IterableType)
	if !ok {
		return false
	}
	return guardedEqual(s, t, o, func() bool {
		return equal(t.Elem, o.Elem, s)
	})
}

func (t *IterableType) hash(s *TypeStack) uint64 {
	return guardedHash(s, t, saltIterable, func() uint64 {
		return rehashTypes(s, saltIterable, t.Elem)
	})
}

// ---

// AwaitableType wraps the result of an awaitable computation
type AwaitableType struct {
	base
	Result DataType
}

// NewAwaitable creates an awaitable type
func NewAwaitable(result DataType) *AwaitableType {
	t := &AwaitableType{base: newBase(InstanceScope), Result: orUnknown(result)}
	t.scope.Type = t
	return t
}

// Kind implements DataType
func (t *AwaitableType) Kind() Kind { return AwaitableKind }

// Accept implements DataType
func (t *AwaitableType) Accept(v Visitor) { v.VisitAwaitable(t) }

// MakeGeneric implements DataType
func (t *AwaitableType) MakeGeneric(args ...DataType) (DataType, error) {
	if len(args) != 1 {
		return nil, wrongArity(t, 1, len(args))
	}
	return NewAwaitable(args[0]), nil
}

// String implements DataType
func (t *AwaitableType) String() string { return Print(t) }

func (t *AwaitableType) equal(u DataType, s *TypeStack) bool {
	o, ok := u.(*AwaitableType)
	if !ok {
		return false
	}
	return guardedEqual(s, t, o, func() bool {
		return equal(t.Result, o.Result, s)
	})
}

func (t *AwaitableType) hash(s *TypeStack) uint64 {
	return guardedHash(s, t, saltAwaitable, func() uint64 {
		return rehashTypes(s, saltAwaitable, t.Result)
	})
}

func orUnknown(t DataType) DataType {
	if t == nil {
		return Unknown
	}
	return t
}
