package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/hierarchy"
	"github.com/matzehuels/arbor/pkg/pipeline"
	"github.com/matzehuels/arbor/pkg/tree"
)

// statsCommand creates the stats command, which summarises a tree and
// breaks one node's value down by child.
func (c *CLI) statsCommand() *cobra.Command {
	var nodeID string
	var sortByValue bool

	cmd := &cobra.Command{
		Use:   "stats [tree-file]",
		Short: "Summarise a tree",
		Example: `  arbor stats org.json
  arbor stats org.json --node engineering --sort`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := tree.ReadFile(args[0])
			if err != nil {
				return err
			}
			return writeStats(cmd.OutOrStdout(), root, nodeID, sortByValue)
		},
	}

	cmd.Flags().StringVar(&nodeID, "node", "", "break down this node instead of the root")
	cmd.Flags().BoolVar(&sortByValue, "sort", false, "order children by value")

	return cmd
}

func writeStats(w io.Writer, root *hierarchy.Node[tree.Payload], nodeID string, sortByValue bool) error {
	stats := pipeline.ComputeStats(root)

	work := tree.Clone(root)
	work.Sum()
	work.EachBefore()
	if sortByValue {
		work.SortByValue()
	}

	focus := work
	if nodeID != "" {
		focus = nil
		for n := range work.All() {
			if n.Data.ID == nodeID {
				focus = n
				break
			}
		}
		if focus == nil {
			return errors.New(errors.ErrCodeNotFound, "node %q not found", nodeID)
		}
	}

	keyStyle := lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	line := func(k, v string) {
		fmt.Fprintln(w, keyStyle.Render(k)+" "+StyleValue.Render(v))
	}
	line("Nodes", fmt.Sprint(stats.NodeCount))
	line("Leaves", fmt.Sprint(stats.LeafCount))
	line("Depth", fmt.Sprint(stats.MaxDepth))
	line("Total", formatValue(stats.TotalValue))
	fmt.Fprintln(w)

	if focus.IsLeaf() {
		fmt.Fprintln(w, StyleDim.Render(focus.Data.DisplayLabel()+" is a leaf"))
		return nil
	}

	rows := make([][]string, 0, len(focus.Children))
	for _, child := range focus.Children {
		rows = append(rows, []string{
			child.Data.DisplayLabel(),
			formatValue(child.Value),
			formatShare(child.Value, focus.Value),
			fmt.Sprint(child.LeafCount()),
			fmt.Sprint(child.Height),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers(focus.Data.DisplayLabel(), "Value", "Share", "Leaves", "Height").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorBright)
			}
			return lipgloss.NewStyle().Foreground(colorAccent).Align(lipgloss.Right)
		})

	fmt.Fprintln(w, t.Render())
	return nil
}

func formatValue(v float64) string {
	return fmt.Sprintf("%g", v)
}

// formatShare returns part as a percentage of total.
func formatShare(part, total float64) string {
	if total <= 0 {
		return "—"
	}
	return fmt.Sprintf("%.1f%%", part/total*100)
}
