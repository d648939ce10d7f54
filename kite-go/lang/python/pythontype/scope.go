package pythontype

import (
	"fmt"
	"sort"

	"github.com/kiteco/pytranslate/kite-go/lang/python/pythonast"
)

// ScopeKind distinguishes the namespaces a python program can introduce
type ScopeKind int

const (
	// ModuleScope is the top-level namespace of a file
	ModuleScope ScopeKind = iota
	// ClassScope is the body of a class definition
	ClassScope
	// InstanceScope holds the attributes of instances of a type
	InstanceScope
	// FunctionScope is the body of a function or lambda
	FunctionScope
	// GlobalScope is the builtin namespace
	GlobalScope
	// BlockScope is any other namespace, such as the scope owned by a
	// structural type
	BlockScope
)

var scopeKindNames = [...]string{
	ModuleScope:   "module",
	ClassScope:    "class",
	InstanceScope: "instance",
	FunctionScope: "function",
	GlobalScope:   "global",
	BlockScope:    "block",
}

// String gets a string representation of the scope kind
func (k ScopeKind) String() string {
	if k >= 0 && int(k) < len(scopeKindNames) {
		return scopeKindNames[k]
	}
	return fmt.Sprintf("invalid(%d)", int(k))
}

// Scope is a symbol table mapping names to sets of bindings. Scopes form a
// tree through Parent and a separate DAG through their supers, which are the
// scopes of base classes.
type Scope struct {
	Parent *Scope
	Kind   ScopeKind
	// Path is the qualified name prefix for bindings inserted here
	Path string
	// Type is the data type that owns this scope, if any
	Type DataType
	// Forwarding is the closest enclosing scope that is not a class scope
	Forwarding *Scope

	table   map[string]BindingSet
	supers  []*Scope
	globals map[string]bool
	types   map[string]DataType
	frozen  bool
}

// NewScope creates an empty scope
func NewScope(parent *Scope, kind ScopeKind) *Scope {
	s := &Scope{
		Parent: parent,
		Kind:   kind,
		table:  make(map[string]BindingSet),
	}
	if kind == ClassScope {
		if parent != nil {
			s.Forwarding = parent.forwarding()
		}
	} else {
		s.Forwarding = s
	}
	return s
}

func (s *Scope) forwarding() *Scope {
	if s.Forwarding != nil {
		return s.Forwarding
	}
	return s
}

func (s *Scope) mustNotBeFrozen(op string) {
	if s.frozen {
		panic(fmt.Sprintf("%s on frozen %s scope %q", op, s.Kind, s.Path))
	}
}

// Freeze makes the scope immutable. Builtin scopes are frozen once seeded.
func (s *Scope) Freeze() { s.frozen = true }

// Frozen checks whether the scope has been frozen
func (s *Scope) Frozen() bool { return s.frozen }

// Insert creates a binding through the delegate and stores it under name,
// replacing whatever was bound to name before
func (s *Scope) Insert(d Delegate, name string, node pythonast.Node, t DataType, kind BindingKind) *Binding {
	s.mustNotBeFrozen("insert")
	b := d.CreateBinding(name, node, t, kind)
	if m, ok := t.(*ModuleType); ok {
		b.QName = m.QName
	} else {
		b.QName = s.ExtendPath(name)
	}
	s.table[name] = BindingSet{b}
	return b
}

// Put stores a single binding under name, replacing any previous set
func (s *Scope) Put(name string, b *Binding) {
	s.PutSet(name, BindingSet{b})
}

// PutSet stores a set of bindings under name, replacing any previous set
func (s *Scope) PutSet(name string, bs BindingSet) {
	s.mustNotBeFrozen("put")
	s.table[name] = bs
}

// Remove deletes the bindings for name from this scope
func (s *Scope) Remove(name string) {
	s.mustNotBeFrozen("remove")
	delete(s.table, name)
}

// LookupLocal gets the bindings for name in this scope only
func (s *Scope) LookupLocal(name string) BindingSet {
	return s.table[name]
}

// Lookup resolves name lexically. A name declared global here or in an
// enclosing scope is looked up in the module scope only.
func (s *Scope) Lookup(name string) BindingSet {
	if bs, global := s.moduleBindingIfGlobal(name); global {
		return bs
	}
	for cur := s; cur != nil; cur = cur.Parent {
		if bs := cur.table[name]; len(bs) > 0 {
			return bs
		}
	}
	return nil
}

// LookupScope resolves name in this scope only, honoring global declarations
func (s *Scope) LookupScope(name string) BindingSet {
	if bs, global := s.moduleBindingIfGlobal(name); global {
		return bs
	}
	return s.LookupLocal(name)
}

func (s *Scope) moduleBindingIfGlobal(name string) (BindingSet, bool) {
	if !s.IsGlobalName(name) {
		return nil, false
	}
	return s.ModuleScope().LookupLocal(name), true
}

// LookupAttr resolves an attribute by searching this scope and then each
// super scope in declaration order, depth first
func (s *Scope) LookupAttr(name string) BindingSet {
	return s.lookupAttr(name, make(map[*Scope]bool))
}

func (s *Scope) lookupAttr(name string, visited map[*Scope]bool) BindingSet {
	if visited[s] {
		return nil
	}
	if bs := s.table[name]; len(bs) > 0 {
		return bs
	}
	visited[s] = true
	for _, sup := range s.supers {
		if bs := sup.lookupAttr(name, visited); len(bs) > 0 {
			return bs
		}
	}
	return nil
}

// LookupType gets the union of the types bound to name, or nil if the name
// cannot be resolved
func (s *Scope) LookupType(name string) DataType {
	return s.Lookup(name).Type()
}

// LookupAttrType gets the union of the types bound to the attribute name, or
// nil if the attribute cannot be resolved
func (s *Scope) LookupAttrType(name string) DataType {
	return s.LookupAttr(name).Type()
}

// ClosestOfKind walks up the parent chain, starting at s, to the first scope
// of the given kind
func (s *Scope) ClosestOfKind(kind ScopeKind) *Scope {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Kind == kind {
			return cur
		}
	}
	return nil
}

// ModuleScope gets the enclosing module scope, or s itself when there is none
func (s *Scope) ModuleScope() *Scope {
	if m := s.ClosestOfKind(ModuleScope); m != nil {
		return m
	}
	return s
}

// AddGlobalName declares name global in this scope
func (s *Scope) AddGlobalName(name string) {
	if s.globals == nil {
		s.globals = make(map[string]bool)
	}
	s.globals[name] = true
}

// IsGlobalName checks whether name was declared global in this scope or in an
// enclosing one
func (s *Scope) IsGlobalName(name string) bool {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.globals[name] {
			return true
		}
	}
	return false
}

// AddSuper appends the scope of a base class
func (s *Scope) AddSuper(sup *Scope) {
	s.mustNotBeFrozen("add super")
	if sup == nil {
		return
	}
	s.supers = append(s.supers, sup)
}

// Supers gets the super scopes in declaration order
func (s *Scope) Supers() []*Scope {
	return append([]*Scope(nil), s.supers...)
}

// ExtendPath gets the qualified name of name within this scope
func (s *Scope) ExtendPath(name string) string {
	if s.Path == "" {
		return name
	}
	return s.Path + "." + name
}

// Names gets the locally bound names in sorted order
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.table))
	for name := range s.table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len gets the number of locally bound names
func (s *Scope) Len() int {
	return len(s.table)
}

// DefineType registers a named type, as used by type annotations
func (s *Scope) DefineType(name string, t DataType) {
	s.mustNotBeFrozen("define type")
	if s.types == nil {
		s.types = make(map[string]DataType)
	}
	s.types[name] = t
}

// LookupTypeByName resolves a named type in this scope or an enclosing one
func (s *Scope) LookupTypeByName(name string) DataType {
	for cur := s; cur != nil; cur = cur.Parent {
		if t, ok := cur.types[name]; ok {
			return t
		}
	}
	return nil
}

// Clone creates an unfrozen copy of the scope sharing its parent, supers and
// bindings, so that a walker can analyze one branch of a conditional and merge
// the result afterwards
func (s *Scope) Clone() *Scope {
	c := &Scope{
		Parent:     s.Parent,
		Kind:       s.Kind,
		Path:       s.Path,
		Type:       s.Type,
		Forwarding: s.Forwarding,
		table:      make(map[string]BindingSet, len(s.table)),
		supers:     append([]*Scope(nil), s.supers...),
	}
	if s.Forwarding == s {
		c.Forwarding = c
	}
	for name, bs := range s.table {
		c.table[name] = append(BindingSet(nil), bs...)
	}
	for name := range s.globals {
		c.AddGlobalName(name)
	}
	for name, t := range s.types {
		c.DefineType(name, t)
	}
	return c
}

// Merge adds the bindings of other to this scope, name by name
func (s *Scope) Merge(other *Scope) {
	s.mustNotBeFrozen("merge")
	for name, bs := range other.table {
		s.table[name] = s.table[name].Union(bs)
	}
	for name := range other.globals {
		s.AddGlobalName(name)
	}
}

// Overwrite replaces the bindings of this scope with those of other, name by
// name. Names bound only here are kept.
func (s *Scope) Overwrite(other *Scope) {
	s.mustNotBeFrozen("overwrite")
	for name, bs := range other.table {
		s.table[name] = append(BindingSet(nil), bs...)
	}
	for name := range other.globals {
		s.AddGlobalName(name)
	}
}

// String gets a short description of the scope
func (s *Scope) String() string {
	return fmt.Sprintf("%s scope %q (%d names)", s.Kind, s.Path, len(s.table))
}
