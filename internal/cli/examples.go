package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/astscope/pkg/examples"
)

// examplesCommand creates the examples command for browsing bundled snippets.
func (c *CLI) examplesCommand() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "examples",
		Short: "Browse the bundled example snippets",
		Long: `Browse the bundled example snippets.

Without flags an interactive picker opens; the selected example's
source is printed to stdout so it can be piped into 'ast' or 'cfg'.
Use --list for a plain listing in scripts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list || !stdoutIsTerminal() {
				printExampleList()
				return nil
			}
			return runExamplePicker()
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "print a plain listing instead of the picker")
	cmd.AddCommand(c.examplesShowCommand())

	return cmd
}

// examplesShowCommand creates the "examples show" subcommand.
func (c *CLI) examplesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print an example's source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := examples.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Println(ex.Source)
			return nil
		},
	}
}

// printExampleList prints one line per example.
func printExampleList() {
	for _, ex := range examples.All() {
		printKeyValue(ex.Name, ex.Title)
	}
}

// runExamplePicker opens the interactive picker and prints the
// selected example's source.
func runExamplePicker() error {
	model := NewExampleListModel(examples.All())
	p := tea.NewProgram(model, tea.WithOutput(os.Stderr))

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("picker: %w", err)
	}

	m, ok := final.(ExampleListModel)
	if !ok || m.Selected == nil {
		return nil
	}
	fmt.Println(m.Selected.Source)
	return nil
}

// stdoutIsTerminal reports whether stdout is attached to a terminal.
func stdoutIsTerminal() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
