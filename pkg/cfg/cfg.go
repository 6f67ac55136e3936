// Package cfg models control-flow graphs and renders them into the
// node/edge artifact shared with the tree converter.
//
// A CFG is supplied already built: nodes carry free-text content and an
// optional special marker (initial or terminal), edges carry an optional
// branch condition. The renderer only decides the visual encoding; it
// never constructs or rewrites CFG structure. For convenience the
// package also includes a structural builder that derives a CFG from Go
// source ([FromSource]), covering sequencing, if/else, loops, and
// returns.
package cfg

import (
	"github.com/matzehuels/astscope/pkg/graph"
)

// Marker flags a node as a distinguished entry or exit point.
type Marker string

// Node markers. MarkerNone renders as the default box shape, MarkerInitial
// as a circled start node, MarkerTerminal as a double-bordered end node.
const (
	MarkerNone     Marker = ""
	MarkerInitial  Marker = graph.MarkerInitial
	MarkerTerminal Marker = graph.MarkerTerminal
)

// Node is a single control-flow node.
type Node struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Special Marker `json:"special,omitempty"`
}

// Edge is a directed control-flow edge with an optional branch condition.
type Edge struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Condition string `json:"condition,omitempty"`
}

// Graph is a complete control-flow graph.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Render maps the CFG onto the node/edge artifact contract. Content
// becomes the node label, the special marker selects the shape during
// DOT emission, and conditions become edge labels. Markup escaping is
// applied later, at the markup boundary.
func Render(g *Graph) graph.Graph {
	out := graph.Graph{
		Nodes: make([]graph.Node, len(g.Nodes)),
		Edges: make([]graph.Edge, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		out.Nodes[i] = graph.Node{
			ID:     n.ID,
			Label:  n.Content,
			Marker: string(n.Special),
		}
	}
	for i, e := range g.Edges {
		out.Edges[i] = graph.Edge{
			From:  e.From,
			To:    e.To,
			Label: e.Condition,
		}
	}
	return out
}
