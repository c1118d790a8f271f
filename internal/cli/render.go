package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/hierarchy"
	"github.com/matzehuels/arbor/pkg/pipeline"
	"github.com/matzehuels/arbor/pkg/tree"
)

// renderCommand creates the render command. Its input is either a tree
// document, which is laid out first, or a saved layout document.
func (c *CLI) renderCommand() *cobra.Command {
	var lf layoutFlags
	var rf renderFlags

	cmd := &cobra.Command{
		Use:   "render [tree-or-layout-file]",
		Short: "Render a tree or a saved layout",
		Long: `Render a tree document (.json or .toml) or a layout document produced by
"arbor layout". Layout flags are ignored for layout documents.

PNG and PDF output require rsvg-convert (librsvg).`,
		Example: `  arbor render org.json -k treemap -f svg,png --labels
  arbor render org.layout.json -f pdf -o org.pdf
  arbor render org.json --engine dot -f svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &lf, &rf)
			if err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runRender(ctx, args[0], rf.output, lf.noCache, opts)
		},
	}

	lf.register(cmd)
	rf.register(cmd)

	return cmd
}

// loadInput reads a layout document, falling back to a tree document.
func loadInput(path string) (*hierarchy.Node[tree.Payload], *tree.Layout, error) {
	if strings.HasSuffix(path, ".json") {
		if l, err := tree.ReadLayoutFile(path); err == nil {
			return nil, &l, nil
		}
	}
	root, err := tree.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return root, nil, nil
}

func (c *CLI) runRender(ctx context.Context, input, output string, noCache bool, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	root, saved, err := loadInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()

	var (
		artifacts map[string][]byte
		cached    bool
		nodes     int
		leaves    int
	)
	prog := newProgress(logger)
	if saved != nil {
		logger.Debugf("Loaded layout %s (%s, %d nodes)", saved.ID, saved.Kind, len(saved.Nodes))
		artifacts, cached, err = runner.RenderWithCacheInfo(ctx, *saved, opts)
		nodes, leaves = len(saved.Nodes), leafCount(*saved)
	} else {
		var result *pipeline.Result
		result, err = runner.Execute(ctx, root, opts)
		if err == nil {
			artifacts = result.Artifacts
			cached = result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit
			nodes, leaves = result.Stats.NodeCount, result.Stats.LeafCount
		}
	}
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done("Rendered " + strings.Join(opts.Formats, ", "))

	single := len(opts.Formats) == 1
	var written []string
	for _, format := range opts.Formats {
		path := outputPath(output, input, format, single)
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess("Rendered %d file(s)", len(written))
	printStats(nodes, leaves, cached)
	for _, path := range written {
		printFile(path)
	}
	return nil
}
