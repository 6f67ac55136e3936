package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/astscope/pkg/examples"
	"github.com/matzehuels/astscope/pkg/pipeline"
)

// =============================================================================
// Source Input
// =============================================================================

// sourceInput describes where the snippet to visualize came from. The
// label is used to derive output file names.
type sourceInput struct {
	text  string
	label string
}

// readSource resolves the snippet from an example name, a file path,
// or stdin ("-" or no argument).
func readSource(arg, example string) (sourceInput, error) {
	if example != "" {
		ex, err := examples.Get(example)
		if err != nil {
			return sourceInput{}, err
		}
		return sourceInput{text: ex.Source, label: ex.Name}, nil
	}
	if arg == "" || arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return sourceInput{}, fmt.Errorf("read stdin: %w", err)
		}
		return sourceInput{text: string(data), label: appName}, nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return sourceInput{}, fmt.Errorf("read %s: %w", arg, err)
	}
	return sourceInput{text: string(data), label: arg}, nil
}

// =============================================================================
// Pipeline Execution
// =============================================================================

// runPipeline executes the pipeline with a spinner and writes the
// resulting artifacts.
func (c *CLI) runPipeline(ctx context.Context, opts pipeline.Options, src sourceInput, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Source = src.text
	opts.Logger = c.Logger

	spinner := newSpinner(ctx, fmt.Sprintf("Visualizing %s...", opts.Mode))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return err
	}
	spinner.Stop()

	cached := result.CacheInfo.GraphHit && result.CacheInfo.RenderHit
	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     src.label,
		output:    output,
		nodes:     result.Stats.NodeCount,
		edges:     result.Stats.EdgeCount,
		cached:    cached,
	})
}

// =============================================================================
// Artifact Output
// =============================================================================

// artifactWriteParams bundles the inputs for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	nodes     int
	edges     int
	cached    bool
}

// streamFormats are written to stdout when no output path is given.
var streamFormats = map[string]bool{
	pipeline.FormatDOT:  true,
	pipeline.FormatJSON: true,
	pipeline.FormatText: true,
}

// writeArtifacts writes each rendered format to its destination. A
// single textual format with no output path goes to stdout; everything
// else lands in files derived from the input label.
func writeArtifacts(p artifactWriteParams) error {
	if len(p.formats) == 1 {
		format := p.formats[0]
		if p.output == "-" || (p.output == "" && streamFormats[format]) {
			_, err := os.Stdout.Write(p.artifacts[format])
			return err
		}
		path := p.output
		if path == "" {
			path = basePath("", p.input) + "." + format
		}
		if err := os.WriteFile(path, p.artifacts[format], 0o644); err != nil {
			return err
		}
		printSuccess("Generated %s visualization", format)
		printFile(path)
		printStats(p.nodes, p.edges, p.cached)
		return nil
	}

	if p.output == "-" {
		return fmt.Errorf("stdout output supports a single format; got %d", len(p.formats))
	}

	base := basePath(p.output, p.input)
	printSuccess("Generated %d visualizations", len(p.formats))
	for _, format := range p.formats {
		path := base + "." + format
		if err := os.WriteFile(path, p.artifacts[format], 0o644); err != nil {
			return err
		}
		printFile(path)
	}
	printStats(p.nodes, p.edges, p.cached)
	return nil
}

// basePath derives the base output path from the output and input
// labels. Format extensions on the output path are stripped so
// multiple formats do not stack suffixes.
func basePath(output, input string) string {
	if output == "" {
		if input == "" || input == "-" {
			return appName
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if pipeline.ValidFormats[ext] {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}
