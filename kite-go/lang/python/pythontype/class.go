package pythontype

import (
	"github.com/kiteco/pytranslate/kite-go/lang/python/pythonast"
	"github.com/pkg/errors"
)

// ClassType is a nominal class. A class with a positive Arity is an open
// generic; MakeGeneric closes it into a new class that records its
// definition and type arguments.
type ClassType struct {
	base
	Name  string
	Node  pythonast.Node
	Arity int

	// Definition is the open generic this class was closed from, if any
	Definition *ClassType
	TypeArgs   []DataType

	bases    []DataType
	instance *InstanceType
}

// NewClass creates a class whose scope is nested in parent and whose members
// are qualified by path
func NewClass(name string, parent *Scope, path string) *ClassType {
	c := &ClassType{base: base{id: nextID(), scope: NewScope(parent, ClassScope)}, Name: name}
	c.scope.Path = path
	c.scope.Type = c
	return c
}

// NewGenericClass creates an open generic class taking arity type arguments
func NewGenericClass(name string, arity int, parent *Scope, path string) *ClassType {
	c := NewClass(name, parent, path)
	c.Arity = arity
	return c
}

// AddBase appends a base class. Attribute lookup searches bases in the order
// they were added.
func (c *ClassType) AddBase(t DataType) {
	if t == nil {
		return
	}
	c.bases = append(c.bases, t)
	c.scope.AddSuper(t.Scope())
}

// Bases gets the base classes in declaration order
func (c *ClassType) Bases() []DataType {
	return append([]DataType(nil), c.bases...)
}

// Instance gets the type of instances of this class
func (c *ClassType) Instance() *InstanceType {
	if c.instance == nil {
		c.instance = newInstance(c)
	}
	return c.instance
}

// IsClosed checks whether this class was produced by closing a generic
func (c *ClassType) IsClosed() bool {
	return c.Definition != nil
}

// Kind implements DataType
func (c *ClassType) Kind() Kind { return ClassKind }

// Accept implements DataType
func (c *ClassType) Accept(v Visitor) { v.VisitClass(c) }

// MakeGeneric closes an open generic class
func (c *ClassType) MakeGeneric(args ...DataType) (DataType, error) {
	switch {
	case c.IsClosed():
		return nil, errors.Wrapf(ErrInvalidOperation, "generic class %s is already closed", c.Name)
	case c.Arity == 0:
		return nil, notGeneric(c)
	case len(args) != c.Arity:
		return nil, wrongArity(c, c.Arity, len(args))
	}
	closed := NewClass(c.Name, c.scope.Parent, c.scope.Path)
	closed.Node = c.Node
	closed.Arity = c.Arity
	closed.Definition = c
	for _, a := range args {
		closed.TypeArgs = append(closed.TypeArgs, orUnknown(a))
	}
	closed.scope.AddSuper(c.scope)
	return closed, nil
}

// String implements DataType
func (c *ClassType) String() string { return Print(c) }

// equal compares classes by identity, except that two closings of the same
// generic with equal arguments are the same class
func (c *ClassType) equal(u DataType, s *TypeStack) bool {
	o, ok := u.(*ClassType)
	if !ok || !c.IsClosed() || !o.IsClosed() || c.Definition != o.Definition {
		return false
	}
	if len(c.TypeArgs) != len(o.TypeArgs) {
		return false
	}
	return guardedEqual(s, c, o, func() bool {
		for i := range c.TypeArgs {
			if !equal(c.TypeArgs[i], o.TypeArgs[i], s) {
				return false
			}
		}
		return true
	})
}

func (c *ClassType) hash(s *TypeStack) uint64 {
	if !c.IsClosed() {
		return rehash(saltClass, uint64(c.id))
	}
	return guardedHash(s, c, saltClass, func() uint64 {
		return rehash(uint64(c.Definition.id), rehashTypes(s, saltClass, c.TypeArgs...))
	})
}

// ---

// InstanceType is the type of instances of a class
type InstanceType struct {
	base
	Class *ClassType
}

func newInstance(c *ClassType) *InstanceType {
	t := &InstanceType{base: newBase(InstanceScope), Class: c}
	t.scope.Path = c.scope.Path
	t.scope.AddSuper(c.scope)
	t.scope.Type = t
	return t
}

// Kind implements DataType
func (t *InstanceType) Kind() Kind { return InstanceKind }

// Accept implements DataType
func (t *InstanceType) Accept(v Visitor) { v.VisitInstance(t) }

// MakeGeneric implements DataType
func (t *InstanceType) MakeGeneric(args ...DataType) (DataType, error) { return nil, notGeneric(t) }

// String implements DataType
func (t *InstanceType) String() string { return Print(t) }

func (t *InstanceType) equal(u DataType, s *TypeStack) bool {
	o, ok := u.(*InstanceType)
	return ok && equal(t.Class, o.Class, s)
}

func (t *InstanceType) hash(s *TypeStack) uint64 {
	return rehashTypes(s, saltInstance, t.Class)
}

// ---

// ModuleType is a module. Modules loaded from the same file are the same
// module.
type ModuleType struct {
	base
	Name  string
	QName string
	File  string
	Node  *pythonast.Module
}

// NewModule creates a module type whose scope is nested in parent, which is
// normally the builtin scope
func NewModule(name, qname, file string, parent *Scope) *ModuleType {
	m := &ModuleType{
		base:  base{id: nextID(), scope: NewScope(parent, ModuleScope)},
		Name:  name,
		QName: qname,
		File:  file,
	}
	m.scope.Path = qname
	m.scope.Type = m
	return m
}

// Kind implements DataType
func (m *ModuleType) Kind() Kind { return ModuleKind }

// Accept implements DataType
func (m *ModuleType) Accept(v Visitor) { v.VisitModule(m) }

// MakeGeneric implements DataType
func (m *ModuleType) MakeGeneric(args ...DataType) (DataType, error) { return nil, notGeneric(m) }

// String implements DataType
func (m *ModuleType) String() string { return Print(m) }

func (m *ModuleType) equal(u DataType, s *TypeStack) bool {
	o, ok := u.(*ModuleType)
	return ok && m.File != "" && m.File == o.File
}

func (m *ModuleType) hash(s *TypeStack) uint64 {
	if m.File == "" {
		return rehash(saltModule, uint64(m.id))
	}
	return rehashString(saltModule, m.File)
}
