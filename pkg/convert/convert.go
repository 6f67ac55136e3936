// Package convert turns a structural tree into the flat node/edge graph
// artifact used for visual layout.
//
// The converter performs a depth-first pre-order traversal. Each visited
// tree node is assigned a fresh unique identity, labeled according to the
// catalog's label rules, and connected by a directed edge from its parent
// at the time of visit. Scalar field values are not visited and produce
// neither nodes nor edges.
//
// The parent identity is threaded through the recursion as an explicit
// parameter, so it is restored naturally when a descent returns. This is
// what keeps siblings under a list-valued or multi-field parent attached
// to their true common parent instead of the last-visited descendant.
//
// Input trees must be finite and acyclic. Cycles are not detected; a
// cyclic input recurses without bound. Recursion depth equals tree
// depth, so pathologically deep inputs are limited only by goroutine
// stack growth.
package convert

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/astscope/pkg/catalog"
	"github.com/matzehuels/astscope/pkg/graph"
	"github.com/matzehuels/astscope/pkg/tree"
)

// Converter converts trees to graph artifacts.
//
// A Converter holds no per-conversion state; the same instance can serve
// concurrent conversions as long as NewID is collision-free under
// concurrent calls (the default UUID allocator is).
type Converter struct {
	// Catalog supplies categories and label rules. Nil means the
	// built-in catalog.
	Catalog *catalog.Catalog

	// NewID allocates node identities. Identities only need to be
	// unique within a single conversion. Defaults to uuid.NewString.
	NewID func() string
}

// New creates a converter with the given catalog.
func New(c *catalog.Catalog) *Converter {
	return &Converter{Catalog: c}
}

// Convert traverses the tree and returns the flat graph artifact.
// A nil tree yields an empty graph. The result contains exactly one node
// per visited tree node and one edge per non-root node.
func (c *Converter) Convert(t *tree.Node) graph.Graph {
	var g graph.Graph
	if t == nil {
		return g
	}
	c.visit(t, "", &g)
	return g
}

// visit adds the node, its incoming edge, and its descendants.
// parentID is empty only for the root.
func (c *Converter) visit(t *tree.Node, parentID string, g *graph.Graph) {
	id := c.newID()
	g.Nodes = append(g.Nodes, graph.Node{
		ID:       id,
		Label:    c.label(t),
		Category: string(c.cat().Category(t.Kind)),
	})
	if parentID != "" {
		g.Edges = append(g.Edges, graph.Edge{From: parentID, To: id})
	}

	for _, f := range t.Fields {
		switch v := f.Value.(type) {
		case *tree.Node:
			c.visit(v, id, g)
		case tree.List:
			for _, item := range v {
				c.visit(item, id, g)
			}
		}
	}
}

// label synthesizes the display label: the kind tag, and for kinds that
// carry an identifying attribute, that attribute's value on a second line.
func (c *Converter) label(t *tree.Node) string {
	field := c.cat().LabelField(t.Kind)
	if field == "" {
		return t.Kind
	}
	val, ok := c.identifyingValue(t, field, 0)
	if !ok {
		return t.Kind
	}
	return fmt.Sprintf("%s\n%s=%s", t.Kind, field, val)
}

// identifyingValue resolves a label field to a display value. When the
// field holds a nested node (a declared name is an identifier node, an
// import path is a literal node), the nested node's own label rule is
// followed, a couple of levels at most.
func (c *Converter) identifyingValue(t *tree.Node, field string, depth int) (string, bool) {
	if depth > 2 {
		return "", false
	}
	switch v := t.Field(field).(type) {
	case tree.Scalar:
		return fmt.Sprintf("%v", v.Val), true
	case *tree.Node:
		nested := c.cat().LabelField(v.Kind)
		if nested == "" {
			return "", false
		}
		return c.identifyingValue(v, nested, depth+1)
	}
	return "", false
}

func (c *Converter) cat() *catalog.Catalog {
	if c.Catalog != nil {
		return c.Catalog
	}
	return defaultCatalog
}

func (c *Converter) newID() string {
	if c.NewID != nil {
		return c.NewID()
	}
	return uuid.NewString()
}

var defaultCatalog = catalog.Default()
