package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/astscope/pkg/errors"
)

func TestCategory_Known(t *testing.T) {
	c := Default()

	tests := []struct {
		kind string
		want Category
	}{
		{"AssignStmt", CategoryStatement},
		{"IfStmt", CategoryControlFlow},
		{"ForStmt", CategoryControlFlow},
		{"ReturnStmt", CategoryControlFlow},
		{"FuncDecl", CategoryDefinition},
		{"File", CategoryDefinition},
		{"Ident", CategoryExpression},
		{"CallExpr", CategoryExpression},
		{"BinaryExpr", CategoryOperator},
		{"UnaryExpr", CategoryOperator},
		{"BasicLit", CategoryLiteral},
	}
	for _, tt := range tests {
		if got := c.Category(tt.kind); got != tt.want {
			t.Errorf("Category(%s) = %s, want %s", tt.kind, got, tt.want)
		}
	}
}

func TestCategory_UnknownDefaultsToAttribute(t *testing.T) {
	c := Default()
	if got := c.Category("NeverHeardOfIt"); got != CategoryAttribute {
		t.Errorf("Category(unknown) = %s, want attribute", got)
	}
}

func TestExplanation(t *testing.T) {
	c := Default()
	if c.Explanation("Ident") == "" {
		t.Error("Ident should have an explanation")
	}
	if c.Explanation("NeverHeardOfIt") != "" {
		t.Error("unknown kind should have no explanation")
	}
}

func TestLabelField(t *testing.T) {
	c := Default()

	tests := []struct {
		kind string
		want string
	}{
		{"Ident", "name"},
		{"BasicLit", "value"},
		{"FuncDecl", "name"},
		{"BinaryExpr", "op"},
		{"BlockStmt", ""},
	}
	for _, tt := range tests {
		if got := c.LabelField(tt.kind); got != tt.want {
			t.Errorf("LabelField(%s) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a := Default()
	b := Default()

	a.categories["Ident"] = CategoryLiteral
	if b.Category("Ident") != CategoryExpression {
		t.Error("mutating one copy must not affect another")
	}
}

func TestMergeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.toml")
	content := `
[categories]
Ident = "literal"
MyKind = "statement"

[explanations]
MyKind = "a custom kind"

[labels]
MyKind = "tag"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c := Default()
	if err := c.MergeFile(path); err != nil {
		t.Fatalf("MergeFile error: %v", err)
	}

	// Overridden
	if got := c.Category("Ident"); got != CategoryLiteral {
		t.Errorf("Category(Ident) = %s, want literal after override", got)
	}
	// Added
	if got := c.Category("MyKind"); got != CategoryStatement {
		t.Errorf("Category(MyKind) = %s, want statement", got)
	}
	if got := c.Explanation("MyKind"); got != "a custom kind" {
		t.Errorf("Explanation(MyKind) = %q", got)
	}
	if got := c.LabelField("MyKind"); got != "tag" {
		t.Errorf("LabelField(MyKind) = %q, want tag", got)
	}
	// Untouched
	if got := c.Category("IfStmt"); got != CategoryControlFlow {
		t.Errorf("Category(IfStmt) = %s, want control_flow unchanged", got)
	}
}

func TestMergeFile_UnknownCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[categories]\nX = \"nonsense\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := Default().MergeFile(path)
	if err == nil {
		t.Fatal("expected error for unknown category name")
	}
	if !errors.Is(err, errors.ErrCodeInvalidCatalog) {
		t.Errorf("error code = %v, want INVALID_CATALOG", errors.GetCode(err))
	}
}

func TestMergeFile_MissingFile(t *testing.T) {
	err := Default().MergeFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, errors.ErrCodeInvalidCatalog) {
		t.Errorf("error code = %v, want INVALID_CATALOG", errors.GetCode(err))
	}
}

func TestFingerprint(t *testing.T) {
	a := Default()
	b := Default()
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical catalogs should fingerprint identically")
	}

	path := filepath.Join(t.TempDir(), "override.toml")
	if err := os.WriteFile(path, []byte("[labels]\nIdent = \"obj\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := b.MergeFile(path); err != nil {
		t.Fatalf("MergeFile error: %v", err)
	}
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("a merged override must change the fingerprint")
	}
}

func TestFingerprint_Nil(t *testing.T) {
	var c *Catalog
	if c.Fingerprint() != New(nil, nil, nil).Fingerprint() {
		t.Error("nil catalog should fingerprint like an empty one")
	}
}
