package pythonast

// EdgeVisitor is called for each edge in the syntax tree. field names the
// field of parent that holds node. If the returned visitor w is not nil,
// the children of node are visited with w, followed by a call to
// w.VisitEdge(node, nil, "").
type EdgeVisitor interface {
	VisitEdge(parent, node Node, field string) (w EdgeVisitor)
}

// Visitor is called for each node in the syntax tree. If the returned visitor
// w is not nil, the children of node are visited with w, followed by a call to
// w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

type nodeVisitor struct {
	v Visitor
}

func (v nodeVisitor) VisitEdge(parent, node Node, field string) EdgeVisitor {
	if w := v.v.Visit(node); w != nil {
		return nodeVisitor{w}
	}
	return nil
}

// Walk traverses the tree rooted at node in depth-first order
func Walk(v Visitor, node Node) {
	WalkEdges(nodeVisitor{v}, node)
}

// WalkEdges traverses the tree rooted at node in depth-first order, reporting
// the parent and field of every node
func WalkEdges(v EdgeVisitor, node Node) {
	walkEdge(v, nil, node, "")
}

func walkEdge(v EdgeVisitor, parent, node Node, field string) {
	if IsNil(node) {
		return
	}
	w := v.VisitEdge(parent, node, field)
	if w == nil {
		return
	}

	child := func(n Node, field string) {
		walkEdge(w, node, n, field)
	}
	exprs := func(ns []Expr, field string) {
		for _, n := range ns {
			child(n, field)
		}
	}
	stmts := func(ns []Stmt, field string) {
		for _, n := range ns {
			child(n, field)
		}
	}

	switch n := node.(type) {
	case *Module:
		stmts(n.Body, "Body")
	case *ClassDefStmt:
		child(n.Name, "Name")
		exprs(n.Bases, "Bases")
		stmts(n.Body, "Body")
	case *FunctionDefStmt:
		exprs(n.Decorators, "Decorators")
		child(n.Name, "Name")
		for _, p := range n.Parameters {
			child(p, "Parameters")
		}
		stmts(n.Body, "Body")
	case *Parameter:
		child(n.Name, "Name")
		child(n.Annotation, "Annotation")
		child(n.Default, "Default")
	case *AssignStmt:
		exprs(n.Targets, "Targets")
		child(n.Value, "Value")
	case *ForStmt:
		exprs(n.Target, "Target")
		child(n.Iterable, "Iterable")
		stmts(n.Body, "Body")
	case *GlobalStmt:
		for _, name := range n.Names {
			child(name, "Names")
		}
	case *ExprStmt:
		child(n.Value, "Value")
	case *AttributeExpr:
		child(n.Value, "Value")
	case *IndexExpr:
		child(n.Value, "Value")
		exprs(n.Subscripts, "Subscripts")
	case *TupleExpr:
		exprs(n.Elts, "Elts")
	case *ListExpr:
		exprs(n.Values, "Values")
	case *SetExpr:
		exprs(n.Values, "Values")
	case *DictExpr:
		for _, item := range n.Items {
			child(item.Key, "Items")
			child(item.Value, "Items")
		}
	case *CallExpr:
		child(n.Func, "Func")
		for _, arg := range n.Args {
			child(arg.Value, "Args")
		}
	case *AwaitExpr:
		child(n.Value, "Value")
	}

	w.VisitEdge(node, nil, "")
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses the tree rooted at node, calling f for each node and then
// f(nil) once its children are done. Children are skipped if f returns false.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type edgeInspector func(parent, child Node, field string) bool

func (f edgeInspector) VisitEdge(parent, child Node, field string) EdgeVisitor {
	if f(parent, child, field) {
		return f
	}
	return nil
}

// InspectEdges is like Inspect but also reports the parent and field of each node
func InspectEdges(node Node, f func(parent, child Node, field string) bool) {
	WalkEdges(edgeInspector(f), node)
}
