package pythontype

import (
	"testing"

	"github.com/kiteco/pytranslate/kite-go/lang/python/pythonast"
)

// MockDelegate is a Delegate for tests. It records everything it is told and
// types expressions from a fixed table, falling back to name lookup.
type MockDelegate struct {
	t        testing.TB
	Bindings []*Binding
	Problems []string
	Refs     map[pythonast.Node]BindingSet
	Types    map[pythonast.Expr]DataType
}

// NewMockDelegate creates an empty mock delegate
func NewMockDelegate(t testing.TB) *MockDelegate {
	return &MockDelegate{
		t:     t,
		Refs:  make(map[pythonast.Node]BindingSet),
		Types: make(map[pythonast.Expr]DataType),
	}
}

// CreateBinding implements Delegate
func (m *MockDelegate) CreateBinding(name string, node pythonast.Node, t DataType, kind BindingKind) *Binding {
	b := NewBinding(name, node, t, kind)
	m.Bindings = append(m.Bindings, b)
	return b
}

// AddReference implements Delegate
func (m *MockDelegate) AddReference(node pythonast.Node, bs BindingSet) {
	m.Refs[node] = m.Refs[node].Union(bs)
	for _, b := range bs {
		b.AddReference(node)
	}
}

// AddProblem implements Delegate
func (m *MockDelegate) AddProblem(node pythonast.Node, msg string) {
	m.t.Logf("problem at %s: %s", pythonast.String(node), msg)
	m.Problems = append(m.Problems, msg)
}

// TypeOf implements Delegate
func (m *MockDelegate) TypeOf(s *Scope, expr pythonast.Expr) DataType {
	if t, ok := m.Types[expr]; ok {
		return t
	}
	if n, ok := expr.(*pythonast.NameExpr); ok {
		if t := s.LookupType(n.Ident.Literal); t != nil {
			return t
		}
	}
	return Unknown
}
