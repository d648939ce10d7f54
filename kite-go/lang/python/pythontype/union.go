package pythontype

// UnionType is one of several alternative types. Members are flattened and
// deduplicated, so a union never directly contains another union.
type UnionType struct {
	base
	types []DataType
}

// NewUnion creates a union directly from its members, flattening nested
// unions and dropping duplicates. Unlike Union it applies no absorption rules.
func NewUnion(ts ...DataType) *UnionType {
	u := &UnionType{base: newBase(BlockScope)}
	u.scope.Type = u
	buckets := make(map[uint64][]DataType)
	add := func(t DataType) {
		if t == nil {
			t = Unknown
		}
		h := Hash(t)
		for _, other := range buckets[h] {
			if Equal(t, other) {
				return
			}
		}
		buckets[h] = append(buckets[h], t)
		u.types = append(u.types, t)
	}
	for _, t := range ts {
		if inner, ok := t.(*UnionType); ok {
			for _, ti := range inner.types {
				add(ti)
			}
		} else {
			add(t)
		}
	}
	return u
}

// Types gets the members of the union in insertion order
func (u *UnionType) Types() []DataType {
	return append([]DataType(nil), u.types...)
}

// Len gets the number of members
func (u *UnionType) Len() int { return len(u.types) }

// FirstUseful gets the first member that is neither unknown nor None, or nil
func (u *UnionType) FirstUseful() DataType {
	for _, t := range u.types {
		if !IsUnknown(t) && !IsNone(t) {
			return t
		}
	}
	return nil
}

func (u *UnionType) contains(t DataType) bool {
	for _, m := range u.types {
		if Equal(m, t) {
			return true
		}
	}
	return false
}

// Kind implements DataType
func (u *UnionType) Kind() Kind { return UnionKind }

// Accept implements DataType
func (u *UnionType) Accept(v Visitor) { v.VisitUnion(u) }

// MakeGeneric implements DataType
func (u *UnionType) MakeGeneric(args ...DataType) (DataType, error) { return nil, notGeneric(u) }

// String implements DataType
func (u *UnionType) String() string { return Print(u) }

func (u *UnionType) equal(other DataType, s *TypeStack) bool {
	o, ok := other.(*UnionType)
	if !ok || len(u.types) != len(o.types) {
		return false
	}
	return guardedEqual(s, u, o, func() bool {
		for _, a := range u.types {
			found := false
			for _, b := range o.types {
				if equal(a, b, s) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	})
}

func (u *UnionType) hash(s *TypeStack) uint64 {
	return guardedHash(s, u, saltUnion, func() uint64 {
		// members are unordered so their hashes are combined commutatively
		var sum uint64
		for _, t := range u.types {
			sum += hash(t, s)
		}
		return rehash(saltUnion, sum)
	})
}

// Union joins two types. Unknown loses to anything, None loses to anything
// that is not None, an int/float mix widens to float, and two tuples are
// joined element by element over their common prefix.
func Union(u, v DataType) DataType {
	switch {
	case u == nil:
		return orUnknown(v)
	case v == nil:
		return u
	case Equal(u, v):
		return u
	case IsUnknown(u):
		return v
	case IsUnknown(v):
		return u
	case IsNone(u):
		return v
	case IsNone(v):
		return u
	case IsNumeric(u) && IsNumeric(v):
		return Float
	}

	if tu, ok := u.(*TupleType); ok {
		if tv, ok := v.(*TupleType); ok {
			return unionTuples(tu, tv)
		}
	}

	if uu, ok := u.(*UnionType); ok && uu.contains(v) {
		return u
	}
	if vu, ok := v.(*UnionType); ok && vu.contains(u) {
		return v
	}
	return NewUnion(u, v)
}

// unionTuples joins tuples over their common prefix. Trailing elements of the
// longer tuple are dropped and the result is marked as variant.
func unionTuples(a, b *TupleType) *TupleType {
	n := len(a.Elems)
	if len(b.Elems) < n {
		n = len(b.Elems)
	}
	elems := make([]DataType, n)
	for i := range elems {
		elems[i] = Union(a.Elems[i], b.Elems[i])
	}
	t := NewTuple(elems...)
	t.Variant = a.Variant || b.Variant || len(a.Elems) != len(b.Elems)
	return t
}

// CreateUnion folds Union over ts, starting from Unknown
func CreateUnion(ts []DataType) DataType {
	var t DataType = Unknown
	for _, ti := range ts {
		t = Union(t, ti)
	}
	return t
}

// Disjuncts gets the members of a union, or t itself for any other type
func Disjuncts(t DataType) []DataType {
	if u, ok := t.(*UnionType); ok {
		return u.Types()
	}
	if t == nil {
		return nil
	}
	return []DataType{t}
}

// FirstUseful gets the first alternative of t that is neither unknown nor
// None, or nil if there is none
func FirstUseful(t DataType) DataType {
	if u, ok := t.(*UnionType); ok {
		return u.FirstUseful()
	}
	if IsUnknown(t) || IsNone(t) {
		return nil
	}
	return t
}

// Contains checks whether t2 is t1 or, if t1 is a union, one of its members
func Contains(t1, t2 DataType) bool {
	if u, ok := t1.(*UnionType); ok {
		return u.contains(t2)
	}
	return Equal(t1, t2)
}

// Remove gets t1 without the alternative t2. Removing the last alternative
// yields Unknown, never an empty union.
func Remove(t1, t2 DataType) DataType {
	u, ok := t1.(*UnionType)
	if !ok {
		if Equal(t1, t2) {
			return Unknown
		}
		return t1
	}
	var rest []DataType
	for _, t := range u.types {
		if !Equal(t, t2) {
			rest = append(rest, t)
		}
	}
	switch len(rest) {
	case len(u.types):
		return u
	case 0:
		return Unknown
	case 1:
		return rest[0]
	default:
		return CreateUnion(rest)
	}
}
