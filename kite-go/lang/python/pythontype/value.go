package pythontype

import (
	"fmt"
	"sync/atomic"
)

// Kind is the tag of each variant in the closed set of data types
type Kind int

const (
	// UnknownKind is a value about which nothing is known
	UnknownKind Kind = iota
	// NoneKind is the None singleton
	NoneKind
	// BoolKind is a boolean, possibly with a known truth value
	BoolKind
	// IntKind is an integer
	IntKind
	// FloatKind is a floating point number
	FloatKind
	// ComplexKind is a complex number
	ComplexKind
	// StrKind is a string, possibly with a known literal value
	StrKind
	// ListKind is a list with an element type
	ListKind
	// TupleKind is a tuple with ordered element types
	TupleKind
	// DictKind is a dict with key and value types
	DictKind
	// SetKind is a set with an element type
	SetKind
	// IterableKind is something that can be iterated but not indexed
	IterableKind
	// FunctionKind is a function, method or lambda
	FunctionKind
	// ClassKind is a nominal class type
	ClassKind
	// InstanceKind is an instance of a class
	InstanceKind
	// ModuleKind is a module
	ModuleKind
	// SymbolKind is an interned atom
	SymbolKind
	// UnionKind is one of several alternative types
	UnionKind
	// AwaitableKind wraps the result of an awaitable computation
	AwaitableKind
)

var kindNames = [...]string{
	UnknownKind:   "unknown",
	NoneKind:      "none",
	BoolKind:      "bool",
	IntKind:       "int",
	FloatKind:     "float",
	ComplexKind:   "complex",
	StrKind:       "str",
	ListKind:      "list",
	TupleKind:     "tuple",
	DictKind:      "dict",
	SetKind:       "set",
	IterableKind:  "iterable",
	FunctionKind:  "function",
	ClassKind:     "class",
	InstanceKind:  "instance",
	ModuleKind:    "module",
	SymbolKind:    "symbol",
	UnionKind:     "union",
	AwaitableKind: "awaitable",
}

// String gets a string representation of this kind
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("invalid(%d)", int(k))
}

// ID identifies a type node. IDs are never reused within a process, so cycle
// guards can key on them instead of on pointer identity.
type ID uint64

var lastID uint64

func nextID() ID {
	return ID(atomic.AddUint64(&lastID, 1))
}

// DataType is the abstract type of a python expression as far as it can be
// proven statically. Every data type owns a scope so that classes, modules and
// instances can double as roots for attribute lookup.
type DataType interface {
	// Kind is the variant tag of this type
	Kind() Kind

	// ID is the identity of this type node
	ID() ID

	// Scope is the attribute namespace of this type
	Scope() *Scope

	// Accept dispatches to the Visit method for this variant
	Accept(v Visitor)

	// MakeGeneric instantiates a parametric type with the given type arguments
	MakeGeneric(args ...DataType) (DataType, error)

	// String renders the type with the default printer
	String() string

	equal(other DataType, s *TypeStack) bool
	hash(s *TypeStack) uint64
}

// base carries the identity and scope shared by every variant
type base struct {
	id    ID
	scope *Scope
}

func newBase(kind ScopeKind) base {
	return base{id: nextID(), scope: NewScope(nil, kind)}
}

// ID implements DataType
func (b *base) ID() ID { return b.id }

// Scope implements DataType
func (b *base) Scope() *Scope { return b.scope }

// IsUnknown checks whether t is the unknown type. A nil type is treated as
// unknown.
func IsUnknown(t DataType) bool {
	return t == nil || t.Kind() == UnknownKind
}

// IsNone checks whether t is the None type
func IsNone(t DataType) bool {
	return t != nil && t.Kind() == NoneKind
}

// IsNumeric checks whether t is an int or a float
func IsNumeric(t DataType) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case IntKind, FloatKind:
		return true
	}
	return false
}

// Equal determines whether two types are structurally (or, for nominal types,
// referentially) the same. Self-referential types are handled by a fresh cycle
// guard per call.
func Equal(a, b DataType) bool {
	return equal(a, b, &TypeStack{})
}

func equal(a, b DataType, s *TypeStack) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.ID() == b.ID() {
		return true
	}
	return a.equal(b, s)
}

// Hash computes a hash consistent with Equal
func Hash(t DataType) uint64 {
	return hash(t, &TypeStack{})
}

func hash(t DataType, s *TypeStack) uint64 {
	if t == nil {
		return 0
	}
	return t.hash(s)
}
