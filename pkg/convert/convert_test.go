package convert

import (
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/astscope/pkg/catalog"
	"github.com/matzehuels/astscope/pkg/tree"
)

// seqIDs returns a deterministic ID allocator for tests.
func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id%d", n)
	}
}

func TestConvert_Nil(t *testing.T) {
	c := New(nil)
	g := c.Convert(nil)
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Errorf("nil tree gave %d nodes, %d edges, want 0, 0", g.NodeCount(), g.EdgeCount())
	}
}

func TestConvert_SingleNode(t *testing.T) {
	c := &Converter{NewID: seqIDs()}
	g := c.Convert(tree.New("Ident", tree.F("name", tree.Scalar{Val: "x"})))

	if g.NodeCount() != 1 {
		t.Fatalf("NodeCount = %d, want 1", g.NodeCount())
	}
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount = %d, want 0 for the root", g.EdgeCount())
	}
	if got, want := g.Nodes[0].Label, "Ident\nname=x"; got != want {
		t.Errorf("label = %q, want %q", got, want)
	}
	if g.Nodes[0].Category != string(catalog.CategoryExpression) {
		t.Errorf("category = %q, want expression", g.Nodes[0].Category)
	}
}

func TestConvert_ScalarsProduceNoNodes(t *testing.T) {
	c := &Converter{NewID: seqIDs()}
	n := tree.New("AssignStmt",
		tree.F("lhs", tree.List{tree.New("Ident", tree.F("name", tree.Scalar{Val: "x"}))}),
		tree.F("tok", tree.Scalar{Val: ":="}),
		tree.F("rhs", tree.List{tree.New("BasicLit", tree.F("value", tree.Scalar{Val: "42"}))}),
	)
	g := c.Convert(n)

	if g.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3 (scalars are not visited)", g.NodeCount())
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2", g.EdgeCount())
	}
}

func TestConvert_SiblingsShareParent(t *testing.T) {
	// The second subtree must attach to the root even though the first
	// descent went several levels deep.
	c := &Converter{NewID: seqIDs()}
	deep := tree.New("CallExpr",
		tree.F("fun", tree.New("SelectorExpr",
			tree.F("x", tree.New("Ident", tree.F("name", tree.Scalar{Val: "fmt"}))),
			tree.F("sel", tree.New("Ident", tree.F("name", tree.Scalar{Val: "Println"}))),
		)),
	)
	n := tree.New("BinaryExpr",
		tree.F("x", deep),
		tree.F("op", tree.Scalar{Val: "+"}),
		tree.F("y", tree.New("BasicLit", tree.F("value", tree.Scalar{Val: "1"}))),
	)
	g := c.Convert(n)

	rootID := g.Nodes[0].ID
	var fromRoot []string
	for _, e := range g.Edges {
		if e.From == rootID {
			fromRoot = append(fromRoot, e.To)
		}
	}
	if len(fromRoot) != 2 {
		t.Fatalf("root has %d children, want 2", len(fromRoot))
	}

	second, ok := g.Node(fromRoot[1])
	if !ok || !strings.HasPrefix(second.Label, "BasicLit") {
		t.Errorf("second child = %v, want the BasicLit sibling", second)
	}
}

func TestConvert_EdgeCountInvariant(t *testing.T) {
	src, err := tree.FromSource("x := 10\nif x > 5 {\n\tprintln(x)\n}")
	if err != nil {
		t.Fatalf("FromSource error: %v", err)
	}

	c := &Converter{NewID: seqIDs()}
	g := c.Convert(src)

	if g.EdgeCount() != g.NodeCount()-1 {
		t.Errorf("edges = %d, nodes = %d; want edges = nodes-1", g.EdgeCount(), g.NodeCount())
	}
}

func TestConvert_UniqueIDs(t *testing.T) {
	src, err := tree.FromSource("x := 42\ny := x")
	if err != nil {
		t.Fatalf("FromSource error: %v", err)
	}

	c := New(nil) // default UUID allocator
	g := c.Convert(src)

	seen := map[string]bool{}
	for _, n := range g.Nodes {
		if seen[n.ID] {
			t.Errorf("duplicate node ID %s", n.ID)
		}
		seen[n.ID] = true
	}
}

func TestConvert_FreshIdentitiesPerRun(t *testing.T) {
	src := tree.New("Ident", tree.F("name", tree.Scalar{Val: "x"}))
	c := New(nil)

	first := c.Convert(src)
	second := c.Convert(src)
	if first.Nodes[0].ID == second.Nodes[0].ID {
		t.Error("repeated conversions should allocate fresh identities")
	}
}

func TestConvert_LabelRules(t *testing.T) {
	tests := []struct {
		name string
		node *tree.Node
		want string
	}{
		{
			"ident",
			tree.New("Ident", tree.F("name", tree.Scalar{Val: "x"})),
			"Ident\nname=x",
		},
		{
			"literal",
			tree.New("BasicLit", tree.F("kind", tree.Scalar{Val: "INT"}), tree.F("value", tree.Scalar{Val: "42"})),
			"BasicLit\nvalue=42",
		},
		{
			// The function's name is a nested identifier node; its own
			// label rule resolves the display value.
			"funcdecl",
			tree.New("FuncDecl", tree.F("name", tree.New("Ident", tree.F("name", tree.Scalar{Val: "add"})))),
			"FuncDecl\nname=add",
		},
		{
			"no rule",
			tree.New("BlockStmt"),
			"BlockStmt",
		},
		{
			"rule without value",
			tree.New("Ident"),
			"Ident",
		},
	}

	c := &Converter{NewID: seqIDs()}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := c.Convert(tt.node)
			if g.Nodes[0].Label != tt.want {
				t.Errorf("label = %q, want %q", g.Nodes[0].Label, tt.want)
			}
		})
	}
}

func TestConvert_UnknownKindIsAttribute(t *testing.T) {
	c := &Converter{NewID: seqIDs()}
	g := c.Convert(tree.New("SomethingNovel"))

	if g.Nodes[0].Category != string(catalog.CategoryAttribute) {
		t.Errorf("category = %q, want attribute", g.Nodes[0].Category)
	}
	if g.Nodes[0].Label != "SomethingNovel" {
		t.Errorf("label = %q, want bare kind", g.Nodes[0].Label)
	}
}

func TestConvert_CustomCatalog(t *testing.T) {
	cat := catalog.New(
		map[string]catalog.Category{"Widget": catalog.CategoryDefinition},
		nil,
		map[string]string{"Widget": "id"},
	)
	c := &Converter{Catalog: cat, NewID: seqIDs()}
	g := c.Convert(tree.New("Widget", tree.F("id", tree.Scalar{Val: "w1"})))

	if g.Nodes[0].Label != "Widget\nid=w1" {
		t.Errorf("label = %q, want custom rule applied", g.Nodes[0].Label)
	}
	if g.Nodes[0].Category != string(catalog.CategoryDefinition) {
		t.Errorf("category = %q, want definition", g.Nodes[0].Category)
	}
}
