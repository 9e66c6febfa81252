package jsast

import (
	"reflect"

	"github.com/dop251/goja/ast"
)

var (
	nodeType     = reflect.TypeOf((*ast.Node)(nil)).Elem()
	declListType = reflect.TypeOf([]*ast.VariableDeclaration(nil))
	astPkg       = nodeType.PkgPath()
)

// Inspect traverses the tree rooted at node in depth-first source order,
// calling f for every node. If f returns true, Inspect visits the children
// of the node and then calls f(nil). This matches go/ast.Inspect.
//
// goja has no generic visitor, so children are discovered by reflecting
// over the exported fields of the node structs. Scope declaration lists are
// skipped; they repeat nodes already present in the statement tree.
func Inspect(node ast.Node, f func(ast.Node) bool) {
	if node == nil {
		return
	}
	inspect(reflect.ValueOf(node), f)
}

func inspect(v reflect.Value, f func(ast.Node) bool) {
	switch v.Kind() {
	case reflect.Interface:
		if !v.IsNil() {
			inspect(v.Elem(), f)
		}
	case reflect.Pointer:
		if v.IsNil() || v.Elem().Kind() != reflect.Struct || v.Elem().Type().PkgPath() != astPkg {
			return
		}
		n, ok := v.Interface().(ast.Node)
		if !ok {
			inspectFields(v.Elem(), f)
			return
		}
		if !f(n) {
			return
		}
		inspectFields(v.Elem(), f)
		f(nil)
	case reflect.Struct:
		if v.Type().PkgPath() != astPkg {
			return
		}
		if v.CanAddr() {
			inspect(v.Addr(), f)
			return
		}
		inspectFields(v, f)
	case reflect.Slice:
		if v.Type() == declListType {
			return
		}
		for i := 0; i < v.Len(); i++ {
			inspect(v.Index(i), f)
		}
	}
}

func inspectFields(v reflect.Value, f func(ast.Node) bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if !t.Field(i).IsExported() {
			continue
		}
		inspect(v.Field(i), f)
	}
}

// Switches returns every switch statement in the tree, outermost first and
// in source order.
func Switches(node ast.Node) []*ast.SwitchStatement {
	var out []*ast.SwitchStatement
	seen := map[*ast.SwitchStatement]bool{}
	Inspect(node, func(n ast.Node) bool {
		if sw, ok := n.(*ast.SwitchStatement); ok && !seen[sw] {
			seen[sw] = true
			out = append(out, sw)
		}
		return true
	})
	return out
}

// CountSwitches returns the number of switch statements in the tree.
func CountSwitches(node ast.Node) int {
	return len(Switches(node))
}
