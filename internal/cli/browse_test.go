package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/arbor/pkg/tree"
)

func browseFixture(t *testing.T) browseModel {
	t.Helper()
	root, err := tree.Read(strings.NewReader(sampleTree), tree.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	return newBrowseModel(root, false)
}

func press(m browseModel, keys ...tea.KeyMsg) browseModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(browseModel)
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowseModelNavigation(t *testing.T) {
	m := browseFixture(t)
	if len(m.rows) != 3 {
		t.Fatalf("initial rows = %d, want root and its 2 children", len(m.rows))
	}

	m = press(m, keyDown, keyRight)
	if got := m.current().Data.ID; got != "a" {
		t.Fatalf("cursor on %q, want a", got)
	}
	if len(m.rows) != 5 {
		t.Errorf("rows after expanding a = %d, want 5", len(m.rows))
	}

	m = press(m, keyDown)
	if got := m.current().Data.ID; got != "a1" {
		t.Errorf("cursor on %q, want a1", got)
	}

	// Left on a leaf collapses its parent and moves there.
	m = press(m, keyLeft)
	if got := m.current().Data.ID; got != "a" || len(m.rows) != 3 {
		t.Errorf("after left: cursor %q with %d rows, want a with 3", got, len(m.rows))
	}

	m = press(m, keyLeft)
	if got := m.current().Data.ID; got != "root" || len(m.rows) != 1 {
		t.Errorf("after second left: cursor %q with %d rows, want root alone", got, len(m.rows))
	}

	m = press(m, runes("e"))
	if len(m.rows) != 5 {
		t.Errorf("expand all rows = %d, want 5", len(m.rows))
	}
}

func TestBrowseModelBounds(t *testing.T) {
	m := browseFixture(t)

	m = press(m, keyUp)
	if m.cursor != 0 {
		t.Errorf("up at top moved cursor to %d", m.cursor)
	}
	m = press(m, keyDown, keyDown, keyDown, keyDown)
	if m.cursor != len(m.rows)-1 {
		t.Errorf("cursor = %d, want last row %d", m.cursor, len(m.rows)-1)
	}

	// Right on a leaf does nothing.
	before := len(m.rows)
	m = press(m, keyRight)
	if len(m.rows) != before {
		t.Errorf("expanding a leaf changed rows from %d to %d", before, len(m.rows))
	}
}

func TestBrowseModelScroll(t *testing.T) {
	m := browseFixture(t)
	m = press(m, runes("e"))

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 0})
	m = next.(browseModel)
	if m.height != 5 {
		t.Fatalf("height = %d, want minimum 5", m.height)
	}

	m = press(m, keyDown, keyDown, keyDown, keyDown)
	if m.offset != 0 {
		t.Errorf("offset = %d, all five rows fit", m.offset)
	}

	m.height = 2
	m.scroll()
	if m.offset != 3 {
		t.Errorf("offset = %d, want 3 to keep cursor 4 visible", m.offset)
	}
}

func TestBrowseModelQuit(t *testing.T) {
	m := browseFixture(t)
	for _, k := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		if _, cmd := m.Update(k); cmd == nil {
			t.Errorf("%s should quit", k)
		}
	}
}

func TestBrowseModelView(t *testing.T) {
	m := browseFixture(t)
	m = press(m, runes("e"), keyDown)

	view := m.View()
	for _, want := range []string{"Root", "5 nodes", "total 9", "▾ a", "· a1", "77.8%", "[2/5]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestBrowseModelSorted(t *testing.T) {
	root, err := tree.Read(strings.NewReader(sampleTree), tree.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	m := press(newBrowseModel(root, true), runes("e"))

	var ids []string
	for _, r := range m.rows {
		ids = append(ids, r.node.Data.ID)
	}
	if got := strings.Join(ids, " "); got != "root a a2 a1 b" {
		t.Errorf("sorted rows = %q", got)
	}
}
