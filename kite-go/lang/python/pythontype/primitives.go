package pythontype

// Singletons for the types that carry no structure. Their scopes are linked
// to the builtin classes and frozen when the builtins are seeded.
var (
	// Unknown is the type of values about which nothing is known
	Unknown = &UnknownType{newBase(InstanceScope)}
	// None is the type of the None singleton
	None = &NoneType{newBase(InstanceScope)}
	// Int is the integer type
	Int = &IntType{newBase(InstanceScope)}
	// Float is the floating point type
	Float = &FloatType{newBase(InstanceScope)}
	// Complex is the complex number type
	Complex = &ComplexType{newBase(InstanceScope)}
	// Bool is a boolean with undecided truth value
	Bool = &BoolType{newBase(InstanceScope), Undecided}
	// Str is a string without a known literal value
	Str = &StrType{base: newBase(InstanceScope)}
)

// UnknownType is the type of values about which nothing is known
type UnknownType struct{ base }

// Kind implements DataType
func (t *UnknownType) Kind() Kind { return UnknownKind }

// Accept implements DataType
func (t *UnknownType) Accept(v Visitor) { v.VisitUnknown(t) }

// MakeGeneric on the unknown type yields the unknown type, so annotations
// that name unresolved generics degrade gracefully
func (t *UnknownType) MakeGeneric(args ...DataType) (DataType, error) { return t, nil }

// String implements DataType
func (t *UnknownType) String() string { return Print(t) }

func (t *UnknownType) equal(u DataType, s *TypeStack) bool { return u.Kind() == UnknownKind }
func (t *UnknownType) hash(s *TypeStack) uint64            { return saltUnknown }

// ---

// NoneType is the type of the None singleton
type NoneType struct{ base }

// Kind implements DataType
func (t *NoneType) Kind() Kind { return NoneKind }

// Accept implements DataType
func (t *NoneType) Accept(v Visitor) { v.VisitNone(t) }

// MakeGeneric implements DataType
func (t *NoneType) MakeGeneric(args ...DataType) (DataType, error) { return nil, notGeneric(t) }

// String implements DataType
func (t *NoneType) String() string { return Print(t) }

func (t *NoneType) equal(u DataType, s *TypeStack) bool { return u.Kind() == NoneKind }
func (t *NoneType) hash(s *TypeStack) uint64            { return saltNone }

// ---

// BoolValue is the truth value of a boolean, when it is known
type BoolValue int

const (
	// Undecided means the truth value is not known statically
	Undecided BoolValue = iota
	// True means the value is known to be True
	True
	// False means the value is known to be False
	False
)

// String gets a string representation of the truth value
func (b BoolValue) String() string {
	switch b {
	case True:
		return "True"
	case False:
		return "False"
	default:
		return "Undecided"
	}
}

// BoolType is a boolean. All booleans are equal regardless of truth value.
type BoolType struct {
	base
	Value BoolValue
}

// NewBool creates a boolean with the given truth value
func NewBool(v BoolValue) *BoolType {
	t := &BoolType{instanceBase(BoolKind), v}
	t.scope.Type = t
	return t
}

// Kind implements DataType
func (t *BoolType) Kind() Kind { return BoolKind }

// Accept implements DataType
func (t *BoolType) Accept(v Visitor) { v.VisitBool(t) }

// MakeGeneric implements DataType
func (t *BoolType) MakeGeneric(args ...DataType) (DataType, error) { return nil, notGeneric(t) }

// String implements DataType
func (t *BoolType) String() string { return Print(t) }

func (t *BoolType) equal(u DataType, s *TypeStack) bool { return u.Kind() == BoolKind }
func (t *BoolType) hash(s *TypeStack) uint64            { return saltBool }

// ---

// IntType is the integer type
type IntType struct{ base }

// Kind implements DataType
func (t *IntType) Kind() Kind { return IntKind }

// Accept implements DataType
func (t *IntType) Accept(v Visitor) { v.VisitInt(t) }

// MakeGeneric implements DataType
func (t *IntType) MakeGeneric(args ...DataType) (DataType, error) { return nil, notGeneric(t) }

// String implements DataType
func (t *IntType) String() string { return Print(t) }

func (t *IntType) equal(u DataType, s *TypeStack) bool { return u.Kind() == IntKind }
func (t *IntType) hash(s *TypeStack) uint64            { return saltInt }

// ---

// FloatType is the floating point type
type FloatType struct{ base }

// Kind implements DataType
func (t *FloatType) Kind() Kind { return FloatKind }

// Accept implements DataType
func (t *FloatType) Accept(v Visitor) { v.VisitFloat(t) }

// MakeGeneric implements DataType
func (t *FloatType) MakeGeneric(args ...DataType) (DataType, error) { return nil, notGeneric(t) }

// String implements DataType
func (t *FloatType) String() string { return Print(t) }

func (t *FloatType) equal(u DataType, s *TypeStack) bool { return u.Kind() == FloatKind }
func (t *FloatType) hash(s *TypeStack) uint64            { return saltFloat }

// ---

// ComplexType is the complex number type
type ComplexType struct{ base }

// Kind implements DataType
func (t *ComplexType) Kind() Kind { return ComplexKind }

// Accept implements DataType
func (t *ComplexType) Accept(v Visitor) { v.VisitComplex(t) }

// MakeGeneric implements DataType
func (t *ComplexType) MakeGeneric(args ...DataType) (DataType, error) { return nil, notGeneric(t) }

// String implements DataType
func (t *ComplexType) String() string { return Print(t) }

func (t *ComplexType) equal(u DataType, s *TypeStack) bool { return u.Kind() == ComplexKind }
func (t *ComplexType) hash(s *TypeStack) uint64            { return saltComplex }

// ---

// StrType is a string. The literal value, when known, does not take part in
// equality.
type StrType struct {
	base
	Value    string
	HasValue bool
}

// NewStr creates a string type carrying a literal value
func NewStr(value string) *StrType {
	t := &StrType{base: instanceBase(StrKind), Value: value, HasValue: true}
	t.scope.Type = t
	return t
}

// Kind implements DataType
func (t *StrType) Kind() Kind { return StrKind }

// Accept implements DataType
func (t *StrType) Accept(v Visitor) { v.VisitStr(t) }

// MakeGeneric implements DataType
func (t *StrType) MakeGeneric(args ...DataType) (DataType, error) { return nil, notGeneric(t) }

// String implements DataType
func (t *StrType) String() string { return Print(t) }

func (t *StrType) equal(u DataType, s *TypeStack) bool { return u.Kind() == StrKind }
func (t *StrType) hash(s *TypeStack) uint64            { return saltStr }

// ---

// SymbolType is an interned atom, compared by name
type SymbolType struct {
	base
	Name string
}

// NewSymbol creates a symbol type
func NewSymbol(name string) *SymbolType {
	t := &SymbolType{newBase(BlockScope), name}
	t.scope.Type = t
	return t
}

// Kind implements DataType
func (t *SymbolType) Kind() Kind { return SymbolKind }

// Accept implements DataType
func (t *SymbolType) Accept(v Visitor) { v.VisitSymbol(t) }

// MakeGeneric implements DataType
func (t *SymbolType) MakeGeneric(args ...DataType) (DataType, error) { return nil, notGeneric(t) }

// String implements DataType
func (t *SymbolType) String() string { return Print(t) }

func (t *SymbolType) equal(u DataType, s *TypeStack) bool {
	if o, ok := u.(*SymbolType); ok {
		return t.Name == o.Name
	}
	return false
}

func (t *SymbolType) hash(s *TypeStack) uint64 { return rehashString(saltSymbol, t.Name) }
