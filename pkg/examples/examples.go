// Package examples provides the built-in source snippets offered by the
// CLI picker and the HTTP API. Snippets are either bare statement lists
// or complete files; both forms are accepted by the parser front-end.
package examples

import (
	"github.com/matzehuels/astscope/pkg/errors"
)

// Example is a named source snippet with a display title.
type Example struct {
	Name   string
	Title  string
	Source string
}

// All returns the built-in examples in display order.
func All() []Example {
	return builtin
}

// Get returns the example with the given name.
func Get(name string) (Example, error) {
	for _, e := range builtin {
		if e.Name == name {
			return e, nil
		}
	}
	return Example{}, errors.New(errors.ErrCodeExampleNotFound, "unknown example %q", name)
}

// Names returns the example names in display order, for flag completion.
func Names() []string {
	names := make([]string, len(builtin))
	for i, e := range builtin {
		names[i] = e.Name
	}
	return names
}

var builtin = []Example{
	{
		Name:  "variable",
		Title: "Variable Assignment",
		Source: `x := 42
y := x + 1
x = y`,
	},
	{
		Name:  "simple-function",
		Title: "Simple Function",
		Source: `package main

func add(a, b int) int {
	return a + b
}

func main() {
	result := add(5, 3)
	println(result)
}`,
	},
	{
		Name:  "if-else",
		Title: "If-Else Statement",
		Source: `x := 10
if x > 5 {
	println("greater")
} else {
	println("lesser")
}`,
	},
	{
		Name:  "loop",
		Title: "For Loop",
		Source: `for i := 0; i < 3; i++ {
	if i%2 == 0 {
		println("even")
	} else {
		println("odd")
	}
}`,
	},
	{
		Name:  "complex",
		Title: "Recursive Function",
		Source: `package main

func factorial(n int) int {
	if n <= 1 {
		return 1
	}
	return n * factorial(n-1)
}

func main() {
	result := factorial(5)
	println(result)
}`,
	},
}
