// Package dot emits Graphviz DOT for graph artifacts and renders it to
// SVG or PNG in-process.
//
// This package is the markup boundary: node labels are escaped here for
// safe embedding in Graphviz HTML-like labels, and CFG markers are
// translated into shapes and colors. Layout itself is delegated to
// Graphviz.
package dot

import (
	"fmt"
	"strings"

	"github.com/matzehuels/astscope/pkg/graph"
)

// Options configures DOT emission.
type Options struct {
	// Title is rendered as the graph label, above the drawing.
	Title string

	// RankDir is the layout direction. Empty means "TB".
	RankDir string
}

// ToDOT converts a graph artifact to Graphviz DOT.
//
// Node content is embedded as an HTML-like label, so it is escaped
// first: ampersand, then less-than, then greater-than, in that fixed
// order to avoid double-escaping, then line breaks become <br/> tokens.
// Marker styling follows the artifact contract: initial nodes render as
// green circles, terminal nodes as red double circles, everything else
// as the default box.
func ToDOT(g graph.Graph, opts Options) string {
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "TB"
	}

	var buf strings.Builder
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", opts.Title)
		buf.WriteString("  labelloc=\"t\";\n")
		buf.WriteString("  fontsize=16;\n")
	}
	buf.WriteString("  node [shape=box, style=filled, fillcolor=lightblue, color=darkblue, fontsize=10];\n")
	buf.WriteString("  edge [color=gray, fontsize=10];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		label := EscapeLabel(n.Label)
		attrs := fmt.Sprintf("label=<%s>", label)
		switch n.Marker {
		case graph.MarkerInitial:
			attrs += ", shape=circle, fillcolor=lightgreen, color=darkgreen"
		case graph.MarkerTerminal:
			attrs += ", shape=doublecircle, fillcolor=mistyrose, color=darkred"
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, attrs)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if e.Label != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From, e.To, e.Label)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// EscapeLabel escapes content for a Graphviz HTML-like label.
// Replacement order matters: ampersand first, then less-than, then
// greater-than, and finally line breaks to <br/>.
func EscapeLabel(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\n", "<br/>")
	return s
}
