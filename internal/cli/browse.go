package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/hierarchy"
	"github.com/matzehuels/arbor/pkg/tree"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorBright)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorFaint)
)

// browseCommand creates the browse command, an interactive tree explorer.
func (c *CLI) browseCommand() *cobra.Command {
	var sortByValue bool

	cmd := &cobra.Command{
		Use:   "browse [tree-file]",
		Short: "Explore a tree interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := tree.ReadFile(args[0])
			if err != nil {
				return err
			}
			m := newBrowseModel(root, sortByValue)
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&sortByValue, "sort", false, "order children by value")

	return cmd
}

// =============================================================================
// browseModel - Interactive tree explorer
// =============================================================================

type browseRow struct {
	node  *hierarchy.Node[tree.Payload]
	depth int
}

// browseModel is the bubbletea model of the tree explorer. Values are
// aggregated on a private copy, so every branch shows its subtree total.
type browseModel struct {
	root     *hierarchy.Node[tree.Payload]
	parents  map[*hierarchy.Node[tree.Payload]]*hierarchy.Node[tree.Payload]
	expanded map[*hierarchy.Node[tree.Payload]]bool
	rows     []browseRow
	cursor   int
	offset   int
	height   int
}

func newBrowseModel(root *hierarchy.Node[tree.Payload], sortByValue bool) browseModel {
	work := tree.Clone(root)
	work.Sum()
	work.EachBefore()
	if sortByValue {
		work.SortByValue()
	}

	m := browseModel{
		root:     work,
		parents:  make(map[*hierarchy.Node[tree.Payload]]*hierarchy.Node[tree.Payload]),
		expanded: map[*hierarchy.Node[tree.Payload]]bool{work: true},
		height:   15,
	}
	for n := range work.All() {
		for _, c := range n.Children {
			m.parents[c] = n
		}
	}
	m.rebuild()
	return m
}

// rebuild recomputes the visible rows from the expanded set.
func (m *browseModel) rebuild() {
	m.rows = m.rows[:0]
	var walk func(n *hierarchy.Node[tree.Payload], depth int)
	walk = func(n *hierarchy.Node[tree.Payload], depth int) {
		m.rows = append(m.rows, browseRow{node: n, depth: depth})
		if !m.expanded[n] {
			return
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(m.root, 0)
	m.cursor = min(m.cursor, len(m.rows)-1)
	m.scroll()
}

func (m *browseModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m *browseModel) selectNode(n *hierarchy.Node[tree.Payload]) {
	for i, r := range m.rows {
		if r.node == n {
			m.cursor = i
			break
		}
	}
	m.scroll()
}

// current returns the node under the cursor.
func (m browseModel) current() *hierarchy.Node[tree.Payload] {
	return m.rows[m.cursor].node
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.scroll()
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				m.scroll()
			}
		case "right", "l", "enter":
			if n := m.current(); !n.IsLeaf() {
				m.expanded[n] = true
				m.rebuild()
			}
		case "left", "h":
			n := m.current()
			if m.expanded[n] && !n.IsLeaf() {
				m.expanded[n] = false
				m.rebuild()
			} else if p := m.parents[n]; p != nil {
				m.expanded[p] = false
				m.rebuild()
				m.selectNode(p)
			}
		case "e":
			for n := range m.root.All() {
				if !n.IsLeaf() {
					m.expanded[n] = true
				}
			}
			m.rebuild()
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-7, 5)
		m.scroll()
	}
	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.root.Data.DisplayLabel()))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d nodes · total %s", m.root.Count(), formatValue(m.root.Value))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  → expand  ← collapse  e expand all  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.rows))
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		n := r.node

		var marker string
		switch {
		case n.IsLeaf():
			marker = "· "
		case m.expanded[n]:
			marker = "▾ "
		default:
			marker = "▸ "
		}

		share := ""
		if p := m.parents[n]; p != nil {
			share = formatShare(n.Value, p.Value)
		}

		label := strings.Repeat("  ", r.depth) + marker + n.Data.DisplayLabel()
		line := fmt.Sprintf("%-40s %10s %7s", label, formatValue(n.Value), share)

		switch {
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case n.IsLeaf():
			b.WriteString(listNormalStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Bold(true).Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %s", m.cursor+1, len(m.rows), m.current().Data.ID)))

	return b.String()
}
