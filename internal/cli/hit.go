package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/tree"
)

// hitCommand creates the hit command, which finds the deepest node of a
// saved layout containing a point.
func (c *CLI) hitCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "hit [layout-file] [x] [y]",
		Short: "Find the node under a point of a saved layout",
		Long: `Find the deepest node of a layout document containing the point (x, y).
Treemap nodes are hit by their rectangle, tree and cluster nodes by their
circle (see --node-radius of "arbor layout").`,
		Example: `  arbor hit org.layout.json 120 48
  arbor hit org.layout.json 120 48 --json`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := parseCoord("x", args[1])
			if err != nil {
				return err
			}
			y, err := parseCoord("y", args[2])
			if err != nil {
				return err
			}
			l, err := tree.ReadLayoutFile(args[0])
			if err != nil {
				return err
			}
			return writeHit(cmd.OutOrStdout(), l, x, y, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the node and its path as JSON")

	return cmd
}

func parseCoord(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid %s coordinate %q", name, s)
	}
	return v, nil
}

// hitResult is the JSON form of a hit.
type hitResult struct {
	Node tree.PositionedNode `json:"node"`
	Path []string            `json:"path"`
}

func writeHit(w io.Writer, l tree.Layout, x, y float64, asJSON bool) error {
	i := l.HitTest(x, y)
	if i < 0 {
		return errors.New(errors.ErrCodeNotFound, "no node at (%g, %g)", x, y)
	}
	n := l.Nodes[i]

	var path []string
	for _, j := range l.Path(i) {
		path = append(path, l.Nodes[j].ID)
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(hitResult{Node: n, Path: path})
	}

	labels := make([]string, len(path))
	for k, j := range l.Path(i) {
		labels[k] = l.Nodes[j].DisplayLabel()
	}
	fmt.Fprintln(w, StyleTitle.Render(n.DisplayLabel()))
	fmt.Fprintln(w, StyleDim.Render(strings.Join(labels, " "+iconInfo+" ")))
	row := func(k, v string) {
		fmt.Fprintf(w, "%-8s %s\n", StyleDim.Render(k), StyleValue.Render(v))
	}
	row("id", n.ID)
	row("value", formatValue(n.Value))
	row("depth", fmt.Sprint(n.Depth))
	if l.IsTreemap() {
		row("rect", fmt.Sprintf("%.1f,%.1f %.1f×%.1f", n.X, n.Y, n.Width, n.Height))
	} else {
		row("centre", fmt.Sprintf("%.1f,%.1f r=%.1f", n.X, n.Y, n.Radius))
	}
	return nil
}
