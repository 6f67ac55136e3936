// Package printer renders a structural tree as indented, categorized,
// optionally annotated text.
//
// The layout rule, applied recursively per node:
//   - the kind tag is emitted wrapped in its category's style (plain mode
//     emits it bare);
//   - a node without fields is just the kind token, no parentheses;
//   - a node with fields wraps them in parentheses, one name=value field
//     per line, one level deeper, joined with commas, with the closing
//     parenthesis on its own line at the kind token's indentation;
//   - nested nodes recurse one level deeper; list items one level deeper
//     than their enclosing field line; an empty list renders as [];
//   - scalars use their literal representation.
//
// The printer accepts both freshly flattened trees and trees restored
// from their externalized JSON form; the output is identical. It
// recurses once per nesting level, so pathologically deep trees are
// limited only by goroutine stack growth.
package printer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/astscope/pkg/catalog"
	"github.com/matzehuels/astscope/pkg/tree"
)

// Options configures printing.
type Options struct {
	// ShowExplanations appends the catalog explanation for kinds that
	// have one, as a trailing annotation on the kind line.
	ShowExplanations bool

	// Plain disables all styling, producing bare text.
	Plain bool

	// Catalog supplies categories and explanations. Nil means the
	// built-in catalog.
	Catalog *catalog.Catalog

	// Styles overrides the Category → style table. Nil means
	// DefaultStyles. Ignored in plain mode.
	Styles map[catalog.Category]lipgloss.Style

	// Indent is the per-level indentation unit. Empty means two spaces.
	Indent string
}

// Print renders the tree at indentation depth 0.
func Print(t *tree.Node, opts Options) string {
	return PrintAt(t, 0, opts)
}

// PrintAt renders the tree starting at the given indentation depth.
// The first line is not indented; continuation lines are indented
// relative to depth so the output can be embedded after a field name.
func PrintAt(t *tree.Node, depth int, opts Options) string {
	p := &printer{opts: opts}
	if p.opts.Catalog == nil {
		p.opts.Catalog = defaultCatalog
	}
	if p.opts.Styles == nil {
		p.opts.Styles = defaultStyles
	}
	if p.opts.Indent == "" {
		p.opts.Indent = "  "
	}
	var b strings.Builder
	p.node(&b, t, depth)
	return b.String()
}

type printer struct {
	opts Options
}

func (p *printer) node(b *strings.Builder, t *tree.Node, depth int) {
	if t == nil {
		return
	}
	b.WriteString(p.kindToken(t.Kind))

	if len(t.Fields) == 0 {
		p.annotate(b, t.Kind)
		return
	}

	b.WriteString("(")
	p.annotate(b, t.Kind)
	b.WriteString("\n")
	for i, f := range t.Fields {
		b.WriteString(p.indent(depth + 1))
		b.WriteString(f.Name)
		b.WriteString("=")
		p.value(b, f.Value, depth+1)
		if i < len(t.Fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(p.indent(depth))
	b.WriteString(")")
}

func (p *printer) value(b *strings.Builder, v tree.Value, depth int) {
	switch v := v.(type) {
	case *tree.Node:
		p.node(b, v, depth)
	case tree.List:
		if len(v) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for i, item := range v {
			b.WriteString(p.indent(depth + 1))
			p.node(b, item, depth+1)
			if i < len(v)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		b.WriteString(p.indent(depth))
		b.WriteString("]")
	case tree.Scalar:
		b.WriteString(v.Literal())
	}
}

// kindToken wraps the kind tag in its category style.
func (p *printer) kindToken(kind string) string {
	if p.opts.Plain {
		return kind
	}
	cat := p.opts.Catalog.Category(kind)
	style, ok := p.opts.Styles[cat]
	if !ok {
		return kind
	}
	return style.Render(kind)
}

// annotate appends the kind's explanation when enabled and present.
func (p *printer) annotate(b *strings.Builder, kind string) {
	if !p.opts.ShowExplanations {
		return
	}
	expl := p.opts.Catalog.Explanation(kind)
	if expl == "" {
		return
	}
	text := "  # " + expl
	if p.opts.Plain {
		b.WriteString(text)
		return
	}
	b.WriteString(styleAnnotation.Render(text))
}

func (p *printer) indent(depth int) string {
	return strings.Repeat(p.opts.Indent, depth)
}

var (
	defaultCatalog = catalog.Default()
	defaultStyles  = DefaultStyles()
)
