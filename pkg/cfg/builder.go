package cfg

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"

	"github.com/matzehuels/astscope/pkg/errors"
)

// FromSource parses Go source text and builds a control-flow graph for
// its first function body.
//
// Bare statement snippets without a package clause are wrapped in a
// minimal main function first. The builder is structural: statements
// become nodes in source order, if/else introduces condition nodes with
// true/false branch edges, for and range loops get a back edge, and
// return statements jump to the terminal node. Parse failures are
// returned as a coded error.
func FromSource(src string) (*Graph, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "input.go", src, parser.SkipObjectResolution)
	if err != nil {
		wrapped := "package main\n\nfunc main() {\n" + src + "\n}\n"
		var err2 error
		file, err2 = parser.ParseFile(fset, "input.go", wrapped, parser.SkipObjectResolution)
		if err2 != nil {
			return nil, errors.Wrap(errors.ErrCodeParseFailed, err, "parse source")
		}
	}

	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && fn.Body != nil {
			return FromFunc(fset, fn), nil
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidSource, "no function body to build a control-flow graph from")
}

// FromFunc builds a control-flow graph for a single function body.
func FromFunc(fset *token.FileSet, fn *ast.FuncDecl) *Graph {
	b := &builder{fset: fset, g: &Graph{}}
	start := b.node("start", MarkerInitial)
	exits := b.stmts(fn.Body.List, []pred{{id: start}})
	end := b.node("end", MarkerTerminal)
	b.join(exits, end)
	for _, id := range b.returns {
		b.edge(id, end, "")
	}
	return b.g
}

// pred is a dangling exit waiting to be connected to the next node,
// optionally labeled with the branch condition that leads out of it.
type pred struct {
	id   string
	cond string
}

type builder struct {
	fset    *token.FileSet
	g       *Graph
	n       int
	returns []string
}

func (b *builder) node(content string, m Marker) string {
	b.n++
	id := fmt.Sprintf("n%d", b.n)
	b.g.Nodes = append(b.g.Nodes, Node{ID: id, Content: content, Special: m})
	return id
}

func (b *builder) edge(from, to, cond string) {
	b.g.Edges = append(b.g.Edges, Edge{From: from, To: to, Condition: cond})
}

func (b *builder) join(preds []pred, to string) {
	for _, p := range preds {
		b.edge(p.id, to, p.cond)
	}
}

// stmts threads the dangling exits through a statement list and returns
// the exits left dangling at the end.
func (b *builder) stmts(list []ast.Stmt, preds []pred) []pred {
	for _, s := range list {
		if len(preds) == 0 {
			break // unreachable after return on all paths
		}
		preds = b.stmt(s, preds)
	}
	return preds
}

func (b *builder) stmt(s ast.Stmt, preds []pred) []pred {
	switch s := s.(type) {
	case *ast.IfStmt:
		if s.Init != nil {
			id := b.node(b.text(s.Init), MarkerNone)
			b.join(preds, id)
			preds = []pred{{id: id}}
		}
		cond := b.node(b.text(s.Cond), MarkerNone)
		b.join(preds, cond)

		thenExits := b.stmts(s.Body.List, []pred{{id: cond, cond: "true"}})
		switch e := s.Else.(type) {
		case nil:
			return append(thenExits, pred{id: cond, cond: "false"})
		case *ast.BlockStmt:
			elseExits := b.stmts(e.List, []pred{{id: cond, cond: "false"}})
			return append(thenExits, elseExits...)
		default:
			elseExits := b.stmt(e, []pred{{id: cond, cond: "false"}})
			return append(thenExits, elseExits...)
		}

	case *ast.ForStmt:
		if s.Init != nil {
			id := b.node(b.text(s.Init), MarkerNone)
			b.join(preds, id)
			preds = []pred{{id: id}}
		}
		content := "loop"
		if s.Cond != nil {
			content = b.text(s.Cond)
		}
		cond := b.node(content, MarkerNone)
		b.join(preds, cond)

		bodyExits := b.stmts(s.Body.List, []pred{{id: cond, cond: "true"}})
		if s.Post != nil {
			post := b.node(b.text(s.Post), MarkerNone)
			b.join(bodyExits, post)
			bodyExits = []pred{{id: post}}
		}
		b.join(bodyExits, cond) // back edge
		return []pred{{id: cond, cond: "false"}}

	case *ast.RangeStmt:
		cond := b.node(b.text(s), MarkerNone)
		b.join(preds, cond)
		bodyExits := b.stmts(s.Body.List, []pred{{id: cond, cond: "next"}})
		b.join(bodyExits, cond) // back edge
		return []pred{{id: cond, cond: "done"}}

	case *ast.ReturnStmt:
		id := b.node(b.text(s), MarkerNone)
		b.join(preds, id)
		b.returns = append(b.returns, id)
		return nil

	case *ast.BlockStmt:
		return b.stmts(s.List, preds)

	default:
		id := b.node(b.text(s), MarkerNone)
		b.join(preds, id)
		return []pred{{id: id}}
	}
}

// text renders a statement or expression back to source form.
// Range statements are summarized by their header only.
func (b *builder) text(n ast.Node) string {
	if r, ok := n.(*ast.RangeStmt); ok {
		return "range " + b.text(r.X)
	}
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, b.fset, n); err != nil {
		return fmt.Sprintf("%T", n)
	}
	return buf.String()
}
