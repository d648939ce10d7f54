package pythontype

import (
	"fmt"
	"strconv"
	"strings"
)

// Printer renders data types as text. Composite types that contain
// themselves are printed once, with each re-entry replaced by a
// back-reference #n and the outermost occurrence prefixed with =#n:.
type Printer struct {
	ShowLiterals    bool
	MultilineArrows bool

	buf    *strings.Builder
	nums   map[ID]int
	active map[ID]bool
	used   map[ID]bool
}

// Print renders t with the default printer
func Print(t DataType) string {
	var p Printer
	return p.Print(t)
}

// Print renders t
func (p *Printer) Print(t DataType) string {
	p.buf = &strings.Builder{}
	p.nums = make(map[ID]int)
	p.active = make(map[ID]bool)
	p.used = make(map[ID]bool)
	p.write(t)
	return p.buf.String()
}

func (p *Printer) write(t DataType) {
	if t == nil {
		p.buf.WriteString("?")
		return
	}
	t.Accept(p)
}

// composite prints the body of a type that may be reached again while its
// body is printed
func (p *Printer) composite(t DataType, body func()) {
	id := t.ID()
	if p.active[id] {
		p.used[id] = true
		fmt.Fprintf(p.buf, "#%d", p.number(id))
		return
	}

	outer := p.buf
	p.buf = &strings.Builder{}
	p.active[id] = true
	body()
	delete(p.active, id)
	inner := p.buf.String()
	p.buf = outer

	if p.used[id] {
		fmt.Fprintf(p.buf, "=#%d:", p.number(id))
	}
	p.buf.WriteString(inner)
}

func (p *Printer) number(id ID) int {
	n, ok := p.nums[id]
	if !ok {
		n = len(p.nums) + 1
		p.nums[id] = n
	}
	return n
}

func (p *Printer) list(ts []DataType) {
	for i, t := range ts {
		if i > 0 {
			p.buf.WriteString(", ")
		}
		p.write(t)
	}
}

// VisitUnknown implements Visitor
func (p *Printer) VisitUnknown(t *UnknownType) { p.buf.WriteString("?") }

// VisitNone implements Visitor
func (p *Printer) VisitNone(t *NoneType) { p.buf.WriteString("None") }

// VisitBool implements Visitor
func (p *Printer) VisitBool(t *BoolType) {
	p.buf.WriteString("bool")
	if p.ShowLiterals && t.Value != Undecided {
		fmt.Fprintf(p.buf, "(%s)", t.Value)
	}
}

// VisitInt implements Visitor
func (p *Printer) VisitInt(t *IntType) { p.buf.WriteString("int") }

// VisitFloat implements Visitor
func (p *Printer) VisitFloat(t *FloatType) { p.buf.WriteString("float") }

// VisitComplex implements Visitor
func (p *Printer) VisitComplex(t *ComplexType) { p.buf.WriteString("complex") }

// VisitStr implements Visitor
func (p *Printer) VisitStr(t *StrType) {
	p.buf.WriteString("str")
	if p.ShowLiterals && t.HasValue {
		fmt.Fprintf(p.buf, "(%s)", strconv.Quote(t.Value))
	}
}

// VisitList implements Visitor
func (p *Printer) VisitList(t *ListType) {
	p.composite(t, func() {
		p.buf.WriteString("[")
		p.write(t.Elem)
		p.buf.WriteString("]")
	})
}

// VisitTuple implements Visitor
func (p *Printer) VisitTuple(t *TupleType) {
	p.composite(t, func() {
		p.buf.WriteString("(")
		p.list(t.Elems)
		switch {
		case t.Variant:
			p.buf.WriteString(", ...")
		case len(t.Elems) == 1:
			p.buf.WriteString(",")
		}
		p.buf.WriteString(")")
	})
}

// VisitDict implements Visitor
func (p *Printer) VisitDict(t *DictType) {
	p.composite(t, func() {
		p.buf.WriteString("{")
		p.write(t.Key)
		p.buf.WriteString(": ")
		p.write(t.Value)
		p.buf.WriteString("}")
	})
}

// VisitSet implements Visitor
func (p *Printer) VisitSet(t *SetType) {
	p.composite(t, func() {
		p.buf.WriteString("{")
		p.write(t.Elem)
		p.buf.WriteString("}")
	})
}

// VisitIterable implements Visitor
func (p *Printer) VisitIterable(t *IterableType) {
	p.composite(t, func() {
		p.buf.WriteString("iter(")
		p.write(t.Elem)
		p.buf.WriteString(")")
	})
}

// VisitFun implements Visitor
func (p *Printer) VisitFun(t *FunType) {
	if len(t.arrows) == 0 {
		p.buf.WriteString("? -> ?")
		return
	}
	sep := " | "
	if p.MultilineArrows {
		sep = "\n| "
	}
	p.composite(t, func() {
		for i, a := range t.arrows {
			if i > 0 {
				p.buf.WriteString(sep)
			}
			p.write(a.From)
			p.buf.WriteString(" -> ")
			p.write(a.To)
		}
	})
}

// VisitClass implements Visitor
func (p *Printer) VisitClass(t *ClassType) {
	p.buf.WriteString("<" + t.Name)
	if len(t.TypeArgs) > 0 {
		p.composite(t, func() {
			p.buf.WriteString("[")
			p.list(t.TypeArgs)
			p.buf.WriteString("]")
		})
	}
	p.buf.WriteString(">")
}

// VisitInstance implements Visitor
func (p *Printer) VisitInstance(t *InstanceType) {
	p.buf.WriteString(t.Class.Name)
}

// VisitModule implements Visitor
func (p *Printer) VisitModule(t *ModuleType) {
	p.buf.WriteString("<module " + t.Name + ">")
}

// VisitSymbol implements Visitor
func (p *Printer) VisitSymbol(t *SymbolType) {
	p.buf.WriteString(":" + t.Name)
}

// VisitUnion implements Visitor
func (p *Printer) VisitUnion(t *UnionType) {
	p.composite(t, func() {
		p.buf.WriteString("Union(")
		p.list(t.types)
		p.buf.WriteString(")")
	})
}

// VisitAwaitable implements Visitor
func (p *Printer) VisitAwaitable(t *AwaitableType) {
	p.composite(t, func() {
		p.buf.WriteString("awaitable(")
		p.write(t.Result)
		p.buf.WriteString(")")
	})
}
