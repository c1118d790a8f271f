package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// 256-colour palette used by every command.
var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorFail   = lipgloss.Color("167")
	colorBright = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

// Exported styles are shared with the browse and stats views.
var (
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleDim   = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue = lipgloss.NewStyle().Foreground(colorBright)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorOK)
	styleIconError   = lipgloss.NewStyle().Foreground(colorFail)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorMuted)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)

	styleCached   = lipgloss.NewStyle().Foreground(colorOK)
	styleComputed = lipgloss.NewStyle().Foreground(colorMuted)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// status prints one line prefixed by a coloured icon.
func status(style lipgloss.Style, icon, format string, args ...any) {
	fmt.Println(style.Render(icon), fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { status(styleIconSuccess, iconSuccess, format, args...) }
func printError(format string, args ...any)   { status(styleIconError, iconError, format, args...) }
func printInfo(format string, args ...any)    { status(styleIconInfo, iconInfo, format, args...) }

// printDetail prints a dimmed, indented line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a written output path.
func printFile(path string) {
	fmt.Printf("  %s %s\n", StyleDim.Render(iconArrow), StyleValue.Render(path))
}

func printStats(nodeCount, leafCount int, cached bool) {
	fmt.Println(statsLine(nodeCount, leafCount, cached))
}

// statsLine summarises a run as "N nodes · N leaves · cached|fresh". Zero
// counts are omitted.
func statsLine(nodeCount, leafCount int, cached bool) string {
	parts := make([]string, 0, 3)
	for _, c := range []struct {
		n    int
		unit string
	}{{nodeCount, "nodes"}, {leafCount, "leaves"}} {
		if c.n > 0 {
			parts = append(parts, StyleDim.Render(fmt.Sprintf("%d %s", c.n, c.unit)))
		}
	}
	origin := styleComputed.Render(iconFresh)
	if cached {
		origin = styleCached.Render(iconCached)
	}
	parts = append(parts, origin)
	return "  " + strings.Join(parts, StyleDim.Render(" · "))
}
