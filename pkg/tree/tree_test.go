package tree

import (
	"reflect"
	"testing"

	"github.com/matzehuels/astscope/pkg/errors"
)

func TestFromSource_File(t *testing.T) {
	n, err := FromSource("package main\n\nfunc main() {}\n")
	if err != nil {
		t.Fatalf("FromSource error: %v", err)
	}
	if n.Kind != "File" {
		t.Errorf("root kind = %q, want File", n.Kind)
	}
	if n.Field("decls") == nil {
		t.Error("File should have a decls field")
	}
}

func TestFromSource_BareStatements(t *testing.T) {
	// No package clause: the snippet is wrapped in a main function.
	n, err := FromSource("x := 42")
	if err != nil {
		t.Fatalf("FromSource error: %v", err)
	}
	if n.Kind != "File" {
		t.Errorf("root kind = %q, want File", n.Kind)
	}

	assign := findKind(n, "AssignStmt")
	if assign == nil {
		t.Fatal("wrapped snippet should contain an AssignStmt")
	}
}

func TestFromSource_ParseError(t *testing.T) {
	_, err := FromSource("func {{{")
	if err == nil {
		t.Fatal("expected error for invalid source")
	}
	if !errors.Is(err, errors.ErrCodeParseFailed) {
		t.Errorf("error code = %v, want PARSE_FAILED", errors.GetCode(err))
	}
	// The upstream parser message must survive for display.
	if errors.UserMessage(err) == "parse source" {
		t.Error("user message should include the parser's own error")
	}
}

func TestFromSource_FieldOrder(t *testing.T) {
	n, err := FromSource("x := 42")
	if err != nil {
		t.Fatalf("FromSource error: %v", err)
	}
	assign := findKind(n, "AssignStmt")
	if assign == nil {
		t.Fatal("no AssignStmt found")
	}

	want := []string{"lhs", "tok", "rhs"}
	var got []string
	for _, f := range assign.Fields {
		got = append(got, f.Name)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AssignStmt fields = %v, want %v", got, want)
	}
}

func TestFromSource_Scalars(t *testing.T) {
	n, err := FromSource("x := 42")
	if err != nil {
		t.Fatalf("FromSource error: %v", err)
	}

	ident := findKind(n, "Ident")
	if ident == nil {
		t.Fatal("no Ident found")
	}
	name, ok := ident.Field("name").(Scalar)
	if !ok {
		t.Fatalf("Ident name = %#v, want Scalar", ident.Field("name"))
	}
	if name.Val != "x" && name.Val != "main" {
		t.Errorf("Ident name = %v, want x or main", name.Val)
	}

	lit := findKind(n, "BasicLit")
	if lit == nil {
		t.Fatal("no BasicLit found")
	}
	// Token fields become their string form.
	if kind, ok := lit.Field("kind").(Scalar); !ok || kind.Val != "INT" {
		t.Errorf("BasicLit kind = %#v, want Scalar INT", lit.Field("kind"))
	}
	if val, ok := lit.Field("value").(Scalar); !ok || val.Val != "42" {
		t.Errorf("BasicLit value = %#v, want Scalar 42", lit.Field("value"))
	}
}

func TestFromSource_NoPositionFields(t *testing.T) {
	n, err := FromSource("x := 42")
	if err != nil {
		t.Fatalf("FromSource error: %v", err)
	}
	walk(n, func(node *Node) {
		for _, f := range node.Fields {
			switch f.Name {
			case "tokPos", "namePos", "valuePos", "lbrace", "rbrace", "package":
				t.Errorf("%s carries position field %s", node.Kind, f.Name)
			}
		}
	})
}

func TestScalarLiteral(t *testing.T) {
	tests := []struct {
		val  any
		want string
	}{
		{"hello", "'hello'"},
		{"", "''"},
		{42, "42"},
		{true, "true"},
		{nil, "None"},
	}
	for _, tt := range tests {
		if got := (Scalar{Val: tt.val}).Literal(); got != tt.want {
			t.Errorf("Literal(%v) = %q, want %q", tt.val, got, tt.want)
		}
	}
}

func TestMarshalNode_RoundTrip(t *testing.T) {
	n := New("FuncDecl",
		F("name", New("Ident", F("name", Scalar{Val: "add"}))),
		F("type", New("FuncType", F("params", List{}))),
		F("body", List{
			New("ReturnStmt", F("results", List{
				New("BasicLit", F("kind", Scalar{Val: "INT"}), F("value", Scalar{Val: "1"})),
			})),
		}),
	)

	data, err := MarshalNode(n)
	if err != nil {
		t.Fatalf("MarshalNode error: %v", err)
	}
	back, err := UnmarshalNode(data)
	if err != nil {
		t.Fatalf("UnmarshalNode error: %v", err)
	}
	if !reflect.DeepEqual(n, back) {
		t.Errorf("round trip mismatch:\n got %#v\nwant %#v", back, n)
	}
}

func TestMarshalNode_EmptyListPreserved(t *testing.T) {
	n := New("FieldList", F("list", List{}))

	data, err := MarshalNode(n)
	if err != nil {
		t.Fatalf("MarshalNode error: %v", err)
	}
	back, err := UnmarshalNode(data)
	if err != nil {
		t.Fatalf("UnmarshalNode error: %v", err)
	}

	v, ok := back.Field("list").(List)
	if !ok {
		t.Fatalf("list field = %#v, want List", back.Field("list"))
	}
	if len(v) != 0 {
		t.Errorf("list length = %d, want 0", len(v))
	}
}

func TestMarshalNode_IntegersSurvive(t *testing.T) {
	n := New("Thing", F("count", Scalar{Val: 7}))

	data, err := MarshalNode(n)
	if err != nil {
		t.Fatalf("MarshalNode error: %v", err)
	}
	back, err := UnmarshalNode(data)
	if err != nil {
		t.Fatalf("UnmarshalNode error: %v", err)
	}
	if got := back.Field("count").(Scalar).Val; got != 7 {
		t.Errorf("count = %v (%T), want 7 (int)", got, got)
	}
}

// findKind returns the first node with the given kind, depth-first.
func findKind(n *Node, kind string) *Node {
	if n == nil {
		return nil
	}
	if n.Kind == kind {
		return n
	}
	for _, f := range n.Fields {
		switch v := f.Value.(type) {
		case *Node:
			if found := findKind(v, kind); found != nil {
				return found
			}
		case List:
			for _, item := range v {
				if found := findKind(item, kind); found != nil {
					return found
				}
			}
		}
	}
	return nil
}

// walk applies fn to every node in the tree.
func walk(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, f := range n.Fields {
		switch v := f.Value.(type) {
		case *Node:
			walk(v, fn)
		case List:
			for _, item := range v {
				walk(item, fn)
			}
		}
	}
}
