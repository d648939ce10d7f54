package pythonstatic

import (
	"sort"

	"github.com/kiteco/pytranslate/kite-go/lang/python/pythonast"
	"github.com/kiteco/pytranslate/kite-go/lang/python/pythontype"
	"github.com/kiteco/pytranslate/kite-golib/kitelog"
	"go.uber.org/zap"
)

// Analyzer collects the results of analyzing one file at a time: the
// bindings that were created, the problems that were found, the bindings
// referenced from each node and the type of each expression. It implements
// pythontype.Delegate.
type Analyzer struct {
	// OnProblem, if set, is called with each diagnostic that is kept
	OnProblem func(Diagnostic)

	opts   Options
	logger *zap.Logger

	file   string
	module *pythontype.ModuleType

	bindings   []*pythontype.Binding
	references map[pythonast.Node]pythontype.BindingSet
	exprTypes  map[pythonast.Expr]pythontype.DataType
	problems   []Diagnostic
	uncalled   []*pythontype.FunType
	resolved   map[pythonast.Node]bool
	unresolved map[pythonast.Node]bool
	stats      *Statistics
}

var _ pythontype.Delegate = (*Analyzer)(nil)

// NewAnalyzer creates an analyzer. A nil logger discards all output.
func NewAnalyzer(opts Options, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		opts:       opts,
		logger:     kitelog.OrNop(logger),
		references: make(map[pythonast.Node]pythontype.BindingSet),
		exprTypes:  make(map[pythonast.Expr]pythontype.DataType),
		resolved:   make(map[pythonast.Node]bool),
		unresolved: make(map[pythonast.Node]bool),
		stats:      NewStatistics(),
	}
}

// Options gets the options the analyzer was created with
func (a *Analyzer) Options() Options {
	return a.opts
}

// NewModule creates the type of the module defined by node and makes file
// the current file. The module scope is nested in the builtin scope and is
// seeded with the synthetic module attributes.
func (a *Analyzer) NewModule(node *pythonast.Module, name, file string) *pythontype.ModuleType {
	a.file = file
	m := pythontype.NewModule(name, name, file, pythontype.Builtins)
	m.Node = node
	a.module = m

	for _, attr := range []struct {
		name string
		t    pythontype.DataType
	}{
		{"__name__", pythontype.NewStr(name)},
		{"__file__", pythontype.NewStr(file)},
		{"__doc__", pythontype.Str},
		{"__package__", pythontype.Str},
	} {
		b := a.CreateBinding(attr.name, node, attr.t, pythontype.ScopeBinding)
		b.QName = m.Scope().ExtendPath(attr.name)
		b.IsSynthetic = true
		m.Scope().Put(attr.name, b)
	}

	if node != nil {
		a.stats.Add(StatNodes, int64(pythonast.CountNodes(node)))
	}
	a.logger.Debug("created module", zap.String("module", name), zap.String("file", file))
	return m
}

// Module gets the module most recently created with NewModule
func (a *Analyzer) Module() *pythontype.ModuleType {
	return a.module
}

// CreateBinding implements pythontype.Delegate. The binding is attributed to
// the current file and registered with the analyzer.
func (a *Analyzer) CreateBinding(name string, node pythonast.Node, t pythontype.DataType, kind pythontype.BindingKind) *pythontype.Binding {
	b := pythontype.NewBinding(name, node, t, kind)
	b.File = a.file
	a.bindings = append(a.bindings, b)
	a.stats.Inc(StatBindings)
	return b
}

// AddProblem implements pythontype.Delegate. Problems are recorded as warnings.
func (a *Analyzer) AddProblem(node pythonast.Node, msg string) {
	a.AddDiagnostic(node, Warning, msg)
}

// AddDiagnostic records a diagnostic at node. Once MaxProblems diagnostics have
// been kept further diagnostics are only counted.
func (a *Analyzer) AddDiagnostic(node pythonast.Node, cat Category, msg string) {
	d := Diagnostic{File: a.file, Category: cat, Message: msg}
	if !pythonast.IsNil(node) {
		d.Begin, d.End = node.Begin(), node.End()
	}
	a.logger.Debug("diagnostic",
		zap.String("file", d.File),
		zap.Stringer("category", d.Category),
		zap.Int("begin", int(d.Begin)),
		zap.Int("end", int(d.End)),
		zap.String("message", msg))

	if a.opts.MaxProblems > 0 && len(a.problems) >= a.opts.MaxProblems {
		a.stats.Inc(StatDroppedProblems)
		return
	}
	a.problems = append(a.problems, d)
	a.stats.Inc(StatProblems)
	if a.OnProblem != nil {
		a.OnProblem(d)
	}
}

// AddReference implements pythontype.Delegate
func (a *Analyzer) AddReference(node pythonast.Node, bs pythontype.BindingSet) {
	if len(bs) == 0 {
		return
	}
	a.references[node] = a.references[node].Union(bs)
	for _, b := range bs {
		b.AddReference(node)
	}
	a.stats.Inc(StatReferences)
}

// TypeOf implements pythontype.Delegate using the default expression typer.
// The result is recorded when RecordExprTypes is set.
func (a *Analyzer) TypeOf(s *pythontype.Scope, expr pythonast.Expr) pythontype.DataType {
	t := a.typeOf(s, expr)
	if a.opts.RecordExprTypes {
		a.AddExprType(expr, t)
	}
	return t
}

// AddExprType records the type of an expression, replacing any earlier type
func (a *Analyzer) AddExprType(expr pythonast.Expr, t pythontype.DataType) {
	if pythonast.IsNil(expr) || t == nil {
		return
	}
	if _, seen := a.exprTypes[expr]; !seen {
		a.stats.Inc(StatExprTypes)
	}
	a.exprTypes[expr] = t
}

// ExprType gets the recorded type of an expression, or nil
func (a *Analyzer) ExprType(expr pythonast.Expr) pythontype.DataType {
	return a.exprTypes[expr]
}

// AddUncalled records a function that has not been called yet
func (a *Analyzer) AddUncalled(f *pythontype.FunType) {
	for _, g := range a.uncalled {
		if g == f {
			return
		}
	}
	a.uncalled = append(a.uncalled, f)
}

// RemoveUncalled records that a function has been called
func (a *Analyzer) RemoveUncalled(f *pythontype.FunType) {
	for i, g := range a.uncalled {
		if g == f {
			a.uncalled = append(a.uncalled[:i], a.uncalled[i+1:]...)
			return
		}
	}
}

// Uncalled gets the functions that were defined but never called, in the
// order they were defined
func (a *Analyzer) Uncalled() []*pythontype.FunType {
	return append([]*pythontype.FunType(nil), a.uncalled...)
}

// Resolved gets the name nodes that were found in scope, ordered by position
func (a *Analyzer) Resolved() []pythonast.Node {
	return sortedNodes(a.resolved)
}

// Unresolved gets the name nodes that could not be found, ordered by position
func (a *Analyzer) Unresolved() []pythonast.Node {
	return sortedNodes(a.unresolved)
}

func (a *Analyzer) markResolved(node pythonast.Node, found bool) {
	if found {
		if !a.resolved[node] {
			a.stats.Inc(StatResolved)
		}
		a.resolved[node] = true
		return
	}
	if !a.unresolved[node] {
		a.stats.Inc(StatUnresolved)
	}
	a.unresolved[node] = true
}

func sortedNodes(set map[pythonast.Node]bool) []pythonast.Node {
	nodes := make([]pythonast.Node, 0, len(set))
	for n := range set {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Begin() != nodes[j].Begin() {
			return nodes[i].Begin() < nodes[j].Begin()
		}
		return nodes[i].End() < nodes[j].End()
	})
	return nodes
}

// Problems gets the diagnostics that were kept, in the order they were found
func (a *Analyzer) Problems() []Diagnostic {
	return append([]Diagnostic(nil), a.problems...)
}

// Bindings gets every binding created through the analyzer, in creation order
func (a *Analyzer) Bindings() []*pythontype.Binding {
	return append([]*pythontype.Binding(nil), a.bindings...)
}

// References gets the bindings referenced from node
func (a *Analyzer) References(node pythonast.Node) pythontype.BindingSet {
	return a.references[node]
}

// Statistics gets the analyzer's counters
func (a *Analyzer) Statistics() *Statistics {
	return a.stats
}

// BuildTypeDictionary maps the definition node of each binding to the union of
// the types bound there, then adds the recorded expression types of nodes not
// already covered. Synthetic bindings are skipped.
func (a *Analyzer) BuildTypeDictionary() map[pythonast.Node]pythontype.DataType {
	dict := make(map[pythonast.Node]pythontype.DataType)
	for _, b := range a.bindings {
		if b.IsSynthetic || pythonast.IsNil(b.Node) {
			continue
		}
		dict[b.Node] = pythontype.Union(dict[b.Node], b.Type())
	}
	for expr, t := range a.exprTypes {
		if _, ok := dict[expr]; !ok {
			dict[expr] = t
		}
	}
	return dict
}

// Print renders a type with the analyzer's printing options
func (a *Analyzer) Print(t pythontype.DataType) string {
	return a.opts.Printer().Print(t)
}
