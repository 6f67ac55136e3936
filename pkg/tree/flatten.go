package tree

import (
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"

	"github.com/matzehuels/astscope/pkg/errors"
)

var (
	posType  = reflect.TypeOf(token.Pos(0))
	tokType  = reflect.TypeOf(token.Token(0))
	nodeType = reflect.TypeOf((*ast.Node)(nil)).Elem()
)

// skipFields are go/ast struct fields excluded from flattening.
// Obj and Scope introduce cycles through declaration back-references.
// Imports, Unresolved, and Comments alias nodes already reachable through
// Decls, which would duplicate subtrees.
var skipFields = map[string]bool{
	"Obj":        true,
	"Scope":      true,
	"Imports":    true,
	"Unresolved": true,
	"Comments":   true,
}

// FromSource parses Go source text and flattens it into a Node.
//
// Bare statement snippets (no package clause) are accepted: they are
// wrapped in a minimal main function before parsing, mirroring how a
// module node wraps top-level statements. Parse failures are returned as
// a coded error and never reach the converter or printer.
func FromSource(src string) (*Node, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "input.go", src, parser.SkipObjectResolution)
	if err != nil {
		wrapped := "package main\n\nfunc main() {\n" + src + "\n}\n"
		file, err2 := parser.ParseFile(fset, "input.go", wrapped, parser.SkipObjectResolution)
		if err2 == nil {
			return FromAST(file), nil
		}
		return nil, errors.Wrap(errors.ErrCodeParseFailed, err, "parse source")
	}
	return FromAST(file), nil
}

// FromAST flattens a go/ast node into the generic tree model.
//
// Struct fields are visited in declaration order. Position fields and the
// fields listed in skipFields are dropped; nested nodes recurse, node
// slices become Lists (nil slices become empty Lists), and token and
// basic values become Scalars. Nil child nodes are omitted.
func FromAST(n ast.Node) *Node {
	rv := reflect.ValueOf(n)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return &Node{Kind: rv.Type().Name()}
	}

	out := &Node{Kind: rv.Type().Name()}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() || sf.Type == posType || skipFields[sf.Name] {
			continue
		}
		if v, ok := flattenValue(rv.Field(i)); ok {
			out.Fields = append(out.Fields, Field{Name: fieldName(sf.Name), Value: v})
		}
	}
	return out
}

// flattenValue converts one reflected field into a Value.
// The second return is false when the field should be omitted.
func flattenValue(fv reflect.Value) (Value, bool) {
	switch {
	case fv.Type() == tokType:
		return Scalar{Val: fv.Interface().(token.Token).String()}, true

	case fv.Kind() == reflect.Slice && fv.Type().Elem().Implements(nodeType):
		list := List{}
		for i := 0; i < fv.Len(); i++ {
			item := fv.Index(i)
			if item.IsNil() {
				continue
			}
			if child := FromAST(item.Interface().(ast.Node)); child != nil {
				list = append(list, child)
			}
		}
		return list, true

	case fv.Type().Implements(nodeType):
		if fv.IsNil() {
			return nil, false
		}
		child := FromAST(fv.Interface().(ast.Node))
		if child == nil {
			return nil, false
		}
		return child, true
	}

	switch fv.Kind() {
	case reflect.String:
		if fv.Len() == 0 {
			return nil, false
		}
		return Scalar{Val: fv.String()}, true
	case reflect.Bool:
		if !fv.Bool() {
			return nil, false
		}
		return Scalar{Val: true}, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Scalar{Val: int(fv.Int())}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Scalar{Val: int(fv.Uint())}, true
	}
	return nil, false
}

// fieldName lowercases the leading rune so printed fields read like
// attribute names (name=..., body=..., value=...).
func fieldName(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
