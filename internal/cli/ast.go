package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/astscope/pkg/pipeline"
)

// astCommand creates the ast command for visualizing syntax trees.
func (c *CLI) astCommand() *cobra.Command {
	var (
		formatsStr string
		example    string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{Mode: pipeline.ModeAST}

	cmd := &cobra.Command{
		Use:   "ast [file]",
		Short: "Visualize the syntax tree of a source snippet",
		Long: `Visualize the syntax tree of a source snippet.

The snippet comes from a file argument, a bundled example (--example),
or stdin when neither is given. Bare statement sequences are accepted;
they are wrapped in a function before parsing.

Output formats:
  svg, png   rendered drawings (written to files)
  dot        Graphviz source
  json       the node/edge graph artifact
  text       an indented pretty-print of the tree

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			src, err := readSource(arg, example)
			if err != nil {
				return err
			}
			return c.runPipeline(cmd.Context(), opts, src, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&example, "example", "e", "", "use a bundled example as input")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or base path; - writes to stdout (single format only)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json, text (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache for this run")

	// Render flags
	cmd.Flags().StringVar(&opts.Title, "title", "", "title rendered above the drawing")
	cmd.Flags().StringVar(&opts.RankDir, "rankdir", "", "layout direction: TB (default), LR, BT, RL")
	cmd.Flags().StringVar(&opts.CatalogPath, "catalog", "", "TOML file overriding node categories and labels")

	// Text output flags
	cmd.Flags().BoolVar(&opts.ShowExplanations, "explain", false, "annotate text output with node explanations")
	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "disable styling in text output")

	return cmd
}
