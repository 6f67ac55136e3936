package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/astscope/pkg/pipeline"
)

// cfgCommand creates the cfg command for visualizing control flow.
func (c *CLI) cfgCommand() *cobra.Command {
	var (
		formatsStr string
		example    string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{Mode: pipeline.ModeCFG}

	cmd := &cobra.Command{
		Use:   "cfg [file]",
		Short: "Visualize the control-flow graph of a function",
		Long: `Visualize the control-flow graph of a function.

The first function in the snippet is analyzed. Entry points are drawn
as circles, returns as double circles, and conditional edges carry
true/false labels.

Output formats:
  svg, png   rendered drawings (written to files)
  dot        Graphviz source
  json       the node/edge graph artifact`,
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

	cmd.Flags().StringVarP(&example, "example", "e", "", "use a bundled example as input")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or base path; - writes to stdout (single format only)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache for this run")

	cmd.Flags().StringVar(&opts.Title, "title", "", "title rendered above the drawing")
	cmd.Flags().StringVar(&opts.RankDir, "rankdir", "", "layout direction: TB (default), LR, BT, RL")

	return cmd
}
