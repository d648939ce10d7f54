package pythontype

import "github.com/kiteco/pytranslate/kite-go/lang/python/pythonast"

const (
	// maxLiveArrows is the number of arrows after which further call shapes
	// are ignored
	maxLiveArrows = 5
	// maxCompressedArrows bounds the result of compression; a larger result
	// is discarded in favor of the uncompressed arrows
	maxCompressedArrows = 10
)

// Arrow maps one argument shape to the return type observed for it
type Arrow struct {
	From DataType
	To   DataType
}

// FunType is the type of a function. It approximates overloading by
// recording a small table of arrows from argument shapes to return types.
type FunType struct {
	base
	QName string
	Node  pythonast.Node
	// Class is the enclosing class of a method
	Class        *ClassType
	SelfType     DataType
	DefaultTypes []DataType
	// Env is the scope the function was defined in
	Env *Scope

	arrows []Arrow
}

// NewFun creates a function type defined by node in env
func NewFun(node pythonast.Node, env *Scope) *FunType {
	f := &FunType{base: base{id: nextID(), scope: NewScope(env, FunctionScope)}, Node: node, Env: env}
	f.scope.Type = f
	return f
}

// NewFunReturning creates a function whose only arrow maps from to ret, as
// used for builtins with a fixed signature
func NewFunReturning(qname string, from, ret DataType) *FunType {
	f := NewFun(nil, nil)
	f.QName = qname
	f.scope.Path = qname
	f.AddMapping(from, ret)
	return f
}

// Arrows gets the live arrows in insertion order
func (f *FunType) Arrows() []Arrow {
	return append([]Arrow(nil), f.arrows...)
}

// AddMapping records that calling the function with arguments of shape from
// returned to. It reports whether the arrow was recorded.
func (f *FunType) AddMapping(from, to DataType) bool {
	from, to = orUnknown(from), orUnknown(to)
	if f.Class != nil {
		if tup, ok := from.(*TupleType); ok && tup.Len() > 0 {
			from = tup.withReceiver(f.Class.Instance())
		}
	}
	if len(f.arrows) >= maxLiveArrows {
		return false
	}

	prev := f.arrows
	next := make([]Arrow, 0, len(prev)+1)
	replaced := false
	for _, a := range prev {
		if !replaced && Equal(a.From, from) {
			next = append(next, Arrow{a.From, to})
			replaced = true
			continue
		}
		next = append(next, a)
	}
	if !replaced {
		next = append(next, Arrow{from, to})
	}

	compressed := compressArrows(next)
	if len(compressed) > maxCompressedArrows {
		f.arrows = next
	} else {
		f.arrows = compressed
	}
	return true
}

// compressArrows drops every arrow whose argument shape is subsumed by that of
// another arrow. When two shapes subsume each other the earlier one is kept.
func compressArrows(arrows []Arrow) []Arrow {
	var out []Arrow
	for i, a := range arrows {
		dropped := false
		for j, b := range arrows {
			if i == j || !Subsumed(a.From, b.From) {
				continue
			}
			if j < i || !Subsumed(b.From, a.From) {
				dropped = true
				break
			}
		}
		if !dropped {
			out = append(out, a)
		}
	}
	return out
}

// Subsumed checks whether the argument shape t1 is made redundant by t2
func Subsumed(t1, t2 DataType) bool {
	return subsumed(t1, t2, &TypeStack{})
}

func subsumed(t1, t2 DataType, s *TypeStack) bool {
	if IsUnknown(t1) || IsNone(t1) || equal(t1, t2, s) {
		return true
	}
	switch a := t1.(type) {
	case *TupleType:
		b, ok := t2.(*TupleType)
		if !ok || a.Len() != b.Len() {
			return false
		}
		if s.Contains(a, b) {
			return true
		}
		s.Push(a, b)
		defer s.Pop()
		for i := range a.Elems {
			if !subsumed(a.Elems[i], b.Elems[i], s) {
				return false
			}
		}
		return true
	case *ListType:
		b, ok := t2.(*ListType)
		if !ok {
			return false
		}
		if s.Contains(a, b) {
			return true
		}
		s.Push(a, b)
		defer s.Pop()
		return subsumed(a.ToTuple(), b.ToTuple(), s)
	}
	return false
}

// Mapping gets the return type recorded for the argument shape from, or nil
func (f *FunType) Mapping(from DataType) DataType {
	for _, a := range f.arrows {
		if Equal(a.From, from) {
			return a.To
		}
	}
	return nil
}

// ReturnType gets the return type of the first arrow, or Unknown if the
// function was never called
func (f *FunType) ReturnType() DataType {
	if len(f.arrows) == 0 {
		return Unknown
	}
	return f.arrows[0].To
}

// MakeAwaitable gets a copy of the function with every return type wrapped in
// an awaitable, as for coroutine functions
func (f *FunType) MakeAwaitable() *FunType {
	c := NewFun(f.Node, f.Env)
	c.QName = f.QName
	c.scope.Path = f.scope.Path
	c.Class = f.Class
	c.SelfType = f.SelfType
	c.DefaultTypes = append([]DataType(nil), f.DefaultTypes...)
	for _, a := range f.arrows {
		c.arrows = append(c.arrows, Arrow{a.From, NewAwaitable(a.To)})
	}
	return c
}

// Kind implements DataType
func (f *FunType) Kind() Kind { return FunctionKind }

// Accept implements DataType
func (f *FunType) Accept(v Visitor) { v.VisitFun(f) }

// MakeGeneric implements DataType
func (f *FunType) MakeGeneric(args ...DataType) (DataType, error) { return nil, notGeneric(f) }

// String implements DataType
func (f *FunType) String() string { return Print(f) }

func (f *FunType) equal(u DataType, s *TypeStack) bool {
	o, ok := u.(*FunType)
	return ok && f.QName != "" && f.QName == o.QName
}

func (f *FunType) hash(s *TypeStack) uint64 {
	if f.QName == "" {
		return rehash(saltFunc, uint64(f.id))
	}
	return rehashString(saltFunc, f.QName)
}
