package catalog

import (
	"github.com/BurntSushi/toml"

	"github.com/matzehuels/astscope/pkg/errors"
)

// overrides is the TOML schema for catalog override files:
//
//	[categories]
//	MyKind = "statement"
//
//	[explanations]
//	MyKind = "what this kind means"
//
//	[labels]
//	MyKind = "name"
type overrides struct {
	Categories   map[string]string `toml:"categories"`
	Explanations map[string]string `toml:"explanations"`
	Labels       map[string]string `toml:"labels"`
}

// validCategories is the closed set of category names accepted in
// override files.
var validCategories = map[string]Category{
	string(CategoryStatement):   CategoryStatement,
	string(CategoryControlFlow): CategoryControlFlow,
	string(CategoryDefinition):  CategoryDefinition,
	string(CategoryExpression):  CategoryExpression,
	string(CategoryOperator):    CategoryOperator,
	string(CategoryLiteral):     CategoryLiteral,
	string(CategoryAttribute):   CategoryAttribute,
}

// MergeFile merges a TOML override file into the catalog.
// Entries replace built-in values per kind; kinds not mentioned keep
// their existing classification. Returns a coded error for unreadable
// files or unknown category names.
func (c *Catalog) MergeFile(path string) error {
	var o overrides
	if _, err := toml.DecodeFile(path, &o); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidCatalog, err, "load catalog overrides %s", path)
	}

	for kind, name := range o.Categories {
		cat, ok := validCategories[name]
		if !ok {
			return errors.New(errors.ErrCodeInvalidCatalog,
				"unknown category %q for kind %s", name, kind)
		}
		c.categories[kind] = cat
	}
	for kind, expl := range o.Explanations {
		c.explanations[kind] = expl
	}
	for kind, field := range o.Labels {
		c.labelFields[kind] = field
	}
	return nil
}
