package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/pipeline"
	"github.com/matzehuels/arbor/pkg/tree"
)

// layoutCommand creates the layout command, which computes a layout and
// writes the layout document as JSON.
func (c *CLI) layoutCommand() *cobra.Command {
	var lf layoutFlags
	var output string

	cmd := &cobra.Command{
		Use:   "layout [tree-file]",
		Short: "Compute a layout and write it as JSON",
		Long: `Compute a tidy tree, cluster or treemap layout for a tree document
(.json or .toml) and write the positioned nodes as a JSON layout document.
The result can be rendered later with "arbor render" or queried with
"arbor hit".`,
		Example: `  arbor layout org.json -k treemap --tiling binary -o org.layout.json
  arbor layout org.toml --node-width 40 --node-height 80`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &lf, nil)
			if err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runLayout(ctx, cmd, args[0], output, lf.noCache, opts)
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, cmd *cobra.Command, input, output string, noCache bool, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)

	root, err := tree.ReadFile(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %s: %d nodes", input, root.Count())

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	l, hit, err := runner.LayoutWithCacheInfo(ctx, root, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Computed %s layout", l.Kind))

	data, err := tree.MarshalLayout(l)
	if err != nil {
		return err
	}

	out, err := openOutput(output, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(append(data, '\n')); err != nil {
		return err
	}

	if output != "" && output != "-" {
		printSuccess("Wrote %s layout", l.Kind)
		printStats(len(l.Nodes), leafCount(l), hit)
		printFile(output)
	}
	return nil
}

func leafCount(l tree.Layout) int {
	n := 0
	for _, node := range l.Nodes {
		if node.Leaf {
			n++
		}
	}
	return n
}
