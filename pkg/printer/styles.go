package printer

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/astscope/pkg/catalog"
)

// Terminal palette, matching the CLI color choices.
var (
	colorCyan   = lipgloss.Color("36")  // statements
	colorYellow = lipgloss.Color("220") // control flow
	colorGreen  = lipgloss.Color("35")  // definitions
	colorBlue   = lipgloss.Color("75")  // expressions
	colorRed    = lipgloss.Color("167") // operators
	colorWhite  = lipgloss.Color("255") // literals
	colorGray   = lipgloss.Color("245") // attributes (default)
	colorDim    = lipgloss.Color("240") // annotations
)

// DefaultStyles is the built-in Category → style table. Callers can pass
// their own table through Options.Styles; categories absent from the
// table render unstyled.
func DefaultStyles() map[catalog.Category]lipgloss.Style {
	return map[catalog.Category]lipgloss.Style{
		catalog.CategoryStatement:   lipgloss.NewStyle().Foreground(colorCyan),
		catalog.CategoryControlFlow: lipgloss.NewStyle().Foreground(colorYellow).Bold(true),
		catalog.CategoryDefinition:  lipgloss.NewStyle().Foreground(colorGreen).Bold(true),
		catalog.CategoryExpression:  lipgloss.NewStyle().Foreground(colorBlue),
		catalog.CategoryOperator:    lipgloss.NewStyle().Foreground(colorRed),
		catalog.CategoryLiteral:     lipgloss.NewStyle().Foreground(colorWhite),
		catalog.CategoryAttribute:   lipgloss.NewStyle().Foreground(colorGray),
	}
}

var styleAnnotation = lipgloss.NewStyle().Foreground(colorDim)
