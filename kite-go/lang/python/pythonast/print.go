package pythonast

import (
	"fmt"
	"reflect"
	"strings"
)

func derefType(t reflect.Type) reflect.Type {
	switch t.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Array:
		return derefType(t.Elem())
	default:
		return t
	}
}

func typename(obj interface{}) string {
	return derefType(reflect.TypeOf(obj)).Name()
}

func identStr(id *Ident) string {
	if id == nil {
		return "<nil>"
	}
	return id.Literal
}

// String returns a short textual representation of a node
func String(n Node) string {
	if IsNil(n) {
		return "Nil"
	}
	out := typename(n)
	switch n := n.(type) {
	case *AttributeExpr:
		out += "[" + identStr(n.Attribute) + "]"
	case *NameExpr:
		out += "[" + identStr(n.Ident) + "]"
	case *NumberExpr:
		out += "[" + n.Literal + "]"
	case *StringExpr:
		out += "[" + strings.Replace(n.Value, "\n", "\\n", -1) + "]"
	case *ClassDefStmt:
		if n.Name != nil {
			out += "[" + identStr(n.Name.Ident) + "]"
		}
	case *FunctionDefStmt:
		if n.Name != nil {
			out += "[" + identStr(n.Name.Ident) + "]"
		}
	}
	return fmt.Sprintf("%s@%d", out, n.Begin())
}
