// Package catalog classifies structural node kinds for display.
//
// The catalog maps a kind tag to three things: a display [Category], an
// optional human-readable explanation, and an optional label rule naming
// the field whose value identifies the node (a name reference's id, a
// literal's value, a declared function's name). Lookups are pure and
// independent of tree position; unknown kinds degrade to
// [CategoryAttribute] with an empty explanation rather than failing.
//
// The built-in catalog covers the go/ast kinds produced by
// [github.com/matzehuels/astscope/pkg/tree.FromSource]. A different
// mapping can be supplied without touching traversal or printing logic,
// either programmatically or by merging a TOML override file with
// [Default] + [Catalog.MergeFile].
package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// Category is a coarse display grouping used to select styling.
type Category string

// Display categories, from the coarse grouping used by the visualizer.
const (
	CategoryStatement   Category = "statement"
	CategoryControlFlow Category = "control_flow"
	CategoryDefinition  Category = "definition"
	CategoryExpression  Category = "expression"
	CategoryOperator    Category = "operator"
	CategoryLiteral     Category = "literal"
	CategoryAttribute   Category = "attribute" // default for unknown kinds
)

// Catalog holds the per-kind classification tables.
// A Catalog is read-only after construction and safe to share across
// concurrent conversions and prints.
type Catalog struct {
	categories   map[string]Category
	explanations map[string]string
	labelFields  map[string]string
}

// New creates a catalog from explicit tables. Nil maps are allowed.
func New(categories map[string]Category, explanations, labelFields map[string]string) *Catalog {
	c := &Catalog{
		categories:   map[string]Category{},
		explanations: map[string]string{},
		labelFields:  map[string]string{},
	}
	for k, v := range categories {
		c.categories[k] = v
	}
	for k, v := range explanations {
		c.explanations[k] = v
	}
	for k, v := range labelFields {
		c.labelFields[k] = v
	}
	return c
}

// Category returns the display category for a kind.
// Unknown kinds return CategoryAttribute.
func (c *Catalog) Category(kind string) Category {
	if cat, ok := c.categories[kind]; ok {
		return cat
	}
	return CategoryAttribute
}

// Explanation returns the human-readable explanation for a kind, or an
// empty string when none is registered.
func (c *Catalog) Explanation(kind string) string {
	return c.explanations[kind]
}

// LabelField returns the name of the identifying field for a kind, or an
// empty string when the kind labels with just its name.
func (c *Catalog) LabelField(kind string) string {
	return c.labelFields[kind]
}

// Fingerprint returns a stable hash of the catalog tables. Catalogs
// with identical classification content fingerprint identically no
// matter how they were constructed, so the fingerprint can key cached
// results that depend on the catalog. A nil catalog fingerprints the
// same as an empty one.
func (c *Catalog) Fingerprint() string {
	h := sha256.New()
	if c == nil {
		return hex.EncodeToString(h.Sum(nil))
	}

	writeTable := func(name string, entries map[string]string) {
		keys := make([]string, 0, len(entries))
		for k := range entries {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(h, "%s\x00%s\x00%s\x00", name, k, entries[k])
		}
	}

	categories := make(map[string]string, len(c.categories))
	for k, v := range c.categories {
		categories[k] = string(v)
	}
	writeTable("categories", categories)
	writeTable("explanations", c.explanations)
	writeTable("labels", c.labelFields)
	return hex.EncodeToString(h.Sum(nil))
}

// Default returns a copy of the built-in catalog for go/ast kinds.
// The copy can be extended or overridden freely.
func Default() *Catalog {
	return New(defaultCategories, defaultExplanations, defaultLabelFields)
}

var defaultCategories = map[string]Category{
	// Statements
	"AssignStmt": CategoryStatement,
	"ExprStmt":   CategoryStatement,
	"DeclStmt":   CategoryStatement,
	"IncDecStmt": CategoryStatement,
	"SendStmt":   CategoryStatement,
	"GoStmt":     CategoryStatement,
	"DeferStmt":  CategoryStatement,
	"EmptyStmt":  CategoryStatement,
	"BlockStmt":  CategoryStatement,

	// Control flow
	"IfStmt":         CategoryControlFlow,
	"ForStmt":        CategoryControlFlow,
	"RangeStmt":      CategoryControlFlow,
	"SwitchStmt":     CategoryControlFlow,
	"TypeSwitchStmt": CategoryControlFlow,
	"SelectStmt":     CategoryControlFlow,
	"CaseClause":     CategoryControlFlow,
	"CommClause":     CategoryControlFlow,
	"BranchStmt":     CategoryControlFlow,
	"ReturnStmt":     CategoryControlFlow,
	"LabeledStmt":    CategoryControlFlow,

	// Definitions
	"File":       CategoryDefinition,
	"FuncDecl":   CategoryDefinition,
	"GenDecl":    CategoryDefinition,
	"TypeSpec":   CategoryDefinition,
	"ValueSpec":  CategoryDefinition,
	"ImportSpec": CategoryDefinition,
	"Field":      CategoryDefinition,
	"FieldList":  CategoryDefinition,
	"FuncType":   CategoryDefinition,
	"StructType": CategoryDefinition,

	// Expressions
	"Ident":          CategoryExpression,
	"CallExpr":       CategoryExpression,
	"SelectorExpr":   CategoryExpression,
	"IndexExpr":      CategoryExpression,
	"SliceExpr":      CategoryExpression,
	"StarExpr":       CategoryExpression,
	"ParenExpr":      CategoryExpression,
	"KeyValueExpr":   CategoryExpression,
	"TypeAssertExpr": CategoryExpression,

	// Operators
	"BinaryExpr": CategoryOperator,
	"UnaryExpr":  CategoryOperator,

	// Literals
	"BasicLit":     CategoryLiteral,
	"CompositeLit": CategoryLiteral,
	"FuncLit":      CategoryLiteral,
}

var defaultExplanations = map[string]string{
	"File":       "root of the parsed source file",
	"FuncDecl":   "function declaration with name, signature, and body",
	"GenDecl":    "generic declaration (import, const, type, or var)",
	"AssignStmt": "assignment or short variable declaration",
	"ExprStmt":   "expression evaluated for its side effects",
	"IfStmt":     "conditional branch with optional else",
	"ForStmt":    "loop with optional init, condition, and post",
	"RangeStmt":  "loop over a sequence, map, or channel",
	"ReturnStmt": "returns control to the caller",
	"BranchStmt": "break, continue, goto, or fallthrough",
	"BlockStmt":  "braced statement list",
	"Ident":      "name referring to a variable, type, or function",
	"BasicLit":   "literal value such as a number or string",
	"BinaryExpr": "operation combining two operands",
	"UnaryExpr":  "operation applied to a single operand",
	"CallExpr":   "function or method invocation",
	"FieldList":  "parameters, results, or struct fields",
	"Field":      "named entry in a field list",
	"ImportSpec": "single imported package path",
	"ValueSpec":  "constant or variable names with values",
	"TypeSpec":   "type name bound to a type expression",
}

// defaultLabelFields names the identifying field appended to a node's
// label. Kinds absent here label with just the kind tag.
var defaultLabelFields = map[string]string{
	"Ident":        "name",
	"BasicLit":     "value",
	"FuncDecl":     "name",
	"TypeSpec":     "name",
	"LabeledStmt":  "label",
	"BranchStmt":   "tok",
	"BinaryExpr":   "op",
	"UnaryExpr":    "op",
	"ImportSpec":   "path",
	"SelectorExpr": "sel",
}
