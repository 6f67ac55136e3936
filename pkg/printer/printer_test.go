package printer

import (
	"strings"
	"testing"

	"github.com/matzehuels/astscope/pkg/catalog"
	"github.com/matzehuels/astscope/pkg/tree"
)

func plain() Options {
	return Options{Plain: true}
}

func TestPrint_LeafWithoutFields(t *testing.T) {
	got := Print(tree.New("EmptyStmt"), plain())
	if got != "EmptyStmt" {
		t.Errorf("leaf = %q, want bare kind without parentheses", got)
	}
}

func TestPrint_AssignStatement(t *testing.T) {
	n := tree.New("AssignStmt",
		tree.F("lhs", tree.List{
			tree.New("Ident", tree.F("name", tree.Scalar{Val: "x"})),
		}),
		tree.F("tok", tree.Scalar{Val: ":="}),
		tree.F("rhs", tree.List{
			tree.New("BasicLit",
				tree.F("kind", tree.Scalar{Val: "INT"}),
				tree.F("value", tree.Scalar{Val: "42"})),
		}),
	)

	want := strings.Join([]string{
		"AssignStmt(",
		"  lhs=[",
		"    Ident(",
		"      name='x'",
		"    )",
		"  ],",
		"  tok=':=',",
		"  rhs=[",
		"    BasicLit(",
		"      kind='INT',",
		"      value='42'",
		"    )",
		"  ]",
		")",
	}, "\n")

	got := Print(n, plain())
	if got != want {
		t.Errorf("Print mismatch:\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrint_EmptyListVerbatim(t *testing.T) {
	n := tree.New("FieldList", tree.F("list", tree.List{}))
	got := Print(n, plain())

	want := "FieldList(\n  list=[]\n)"
	if got != want {
		t.Errorf("empty list output = %q, want %q", got, want)
	}
}

func TestPrint_BalancedDelimiters(t *testing.T) {
	src, err := tree.FromSource("x := 10\nif x > 5 {\n\tprintln(x)\n} else {\n\tprintln(0)\n}")
	if err != nil {
		t.Fatalf("FromSource error: %v", err)
	}

	got := Print(src, plain())
	if strings.Count(got, "(") != strings.Count(got, ")") {
		t.Error("unbalanced parentheses")
	}
	if strings.Count(got, "[") != strings.Count(got, "]") {
		t.Error("unbalanced brackets")
	}
}

func TestPrint_RestoredTreeIdentical(t *testing.T) {
	src, err := tree.FromSource("x := 42")
	if err != nil {
		t.Fatalf("FromSource error: %v", err)
	}

	data, err := tree.MarshalNode(src)
	if err != nil {
		t.Fatalf("MarshalNode error: %v", err)
	}
	restored, err := tree.UnmarshalNode(data)
	if err != nil {
		t.Fatalf("UnmarshalNode error: %v", err)
	}

	if Print(src, plain()) != Print(restored, plain()) {
		t.Error("restored tree prints differently from the original")
	}
}

func TestPrint_Explanations(t *testing.T) {
	n := tree.New("Ident", tree.F("name", tree.Scalar{Val: "x"}))
	got := Print(n, Options{Plain: true, ShowExplanations: true})

	if !strings.Contains(got, "# name referring to a variable, type, or function") {
		t.Errorf("missing explanation annotation in %q", got)
	}
	// The annotation sits on the kind line, before the fields.
	first := strings.SplitN(got, "\n", 2)[0]
	if !strings.Contains(first, "#") {
		t.Errorf("annotation not on the kind line: %q", first)
	}
}

func TestPrint_ExplanationsSkipUnknownKinds(t *testing.T) {
	got := Print(tree.New("SomethingNovel"), Options{Plain: true, ShowExplanations: true})
	if strings.Contains(got, "#") {
		t.Errorf("unknown kind should have no annotation, got %q", got)
	}
}

func TestPrintAt_EmbeddedDepth(t *testing.T) {
	n := tree.New("Ident", tree.F("name", tree.Scalar{Val: "x"}))
	got := PrintAt(n, 2, plain())

	lines := strings.Split(got, "\n")
	if strings.HasPrefix(lines[0], " ") {
		t.Errorf("first line should not be indented: %q", lines[0])
	}
	if lines[len(lines)-1] != "    )" {
		t.Errorf("closing paren = %q, want indented to depth 2", lines[len(lines)-1])
	}
}

func TestPrint_CustomIndent(t *testing.T) {
	n := tree.New("Ident", tree.F("name", tree.Scalar{Val: "x"}))
	got := Print(n, Options{Plain: true, Indent: "\t"})

	if !strings.Contains(got, "\tname='x'") {
		t.Errorf("custom indent not applied: %q", got)
	}
}

func TestPrint_CustomCatalog(t *testing.T) {
	cat := catalog.New(nil, map[string]string{"Widget": "a widget"}, nil)
	got := Print(tree.New("Widget"), Options{Plain: true, ShowExplanations: true, Catalog: cat})

	if !strings.Contains(got, "# a widget") {
		t.Errorf("custom catalog explanation missing: %q", got)
	}
}

func TestDefaultStyles_CoverAllCategories(t *testing.T) {
	styles := DefaultStyles()
	for _, cat := range []catalog.Category{
		catalog.CategoryStatement,
		catalog.CategoryControlFlow,
		catalog.CategoryDefinition,
		catalog.CategoryExpression,
		catalog.CategoryOperator,
		catalog.CategoryLiteral,
		catalog.CategoryAttribute,
	} {
		if _, ok := styles[cat]; !ok {
			t.Errorf("no style for category %s", cat)
		}
	}
}
