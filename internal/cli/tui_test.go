package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwollen/cargo/pkg/unit"
	"github.com/jwollen/cargo/pkg/unitgraph"
)

func browseDoc() *unitgraph.Document {
	mk := func(name string, deps ...unitgraph.SerializedDep) unitgraph.SerializedUnit {
		return unitgraph.SerializedUnit{
			PkgID:        unit.PackageID{Name: name, Version: "1.0.0"},
			Target:       unit.Target{Kind: unit.TargetLib, Name: name, SrcPath: "src/lib.rs", Edition: "2021"},
			Profile:      unit.Profile{Name: "dev", Panic: unit.PanicUnwind},
			Mode:         unit.ModeBuild,
			Features:     []string{"default"},
			Dependencies: deps,
		}
	}
	return &unitgraph.Document{
		Version: unitgraph.Version,
		Units: []unitgraph.SerializedUnit{
			mk("app", unitgraph.SerializedDep{Index: 1, ExternCrateName: "lib", UnitFor: unitgraph.PurposeNormal}),
			mk("lib"),
		},
		Roots: []int{0},
	}
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	}
	panic("unknown key: " + s)
}

func TestUnitListView(t *testing.T) {
	m := newUnitListModel(browseDoc())

	view := m.View()
	for _, want := range []string{"Unit Graph", "app v1.0.0", "lib v1.0.0", "[1/2]"} {
		if !strings.Contains(view, want) {
			t.Errorf("list view missing %q:\n%s", want, view)
		}
	}
}

func TestUnitListNavigation(t *testing.T) {
	m := newUnitListModel(browseDoc())

	next, _ := m.Update(keyMsg("down"))
	m = next.(unitListModel)
	if m.cursor != 1 {
		t.Errorf("cursor = %d after down, want 1", m.cursor)
	}

	// Cursor is clamped at the last unit.
	next, _ = m.Update(keyMsg("down"))
	m = next.(unitListModel)
	if m.cursor != 1 {
		t.Errorf("cursor = %d at bottom, want 1", m.cursor)
	}

	next, _ = m.Update(keyMsg("up"))
	m = next.(unitListModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d after up, want 0", m.cursor)
	}

	next, _ = m.Update(keyMsg("up"))
	m = next.(unitListModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d at top, want 0", m.cursor)
	}
}

func TestUnitListDetail(t *testing.T) {
	m := newUnitListModel(browseDoc())

	next, _ := m.Update(keyMsg("enter"))
	m = next.(unitListModel)
	if m.detail != 0 {
		t.Fatalf("detail = %d after enter, want 0", m.detail)
	}

	view := m.View()
	for _, want := range []string{"Unit #0", "app 1.0.0", "dependencies (1)", "lib"} {
		if !strings.Contains(view, want) {
			t.Errorf("detail view missing %q:\n%s", want, view)
		}
	}

	// esc returns to the list without quitting.
	next, cmd := m.Update(keyMsg("esc"))
	m = next.(unitListModel)
	if m.detail != -1 {
		t.Errorf("detail = %d after esc, want -1", m.detail)
	}
	if cmd != nil {
		t.Error("esc from detail should not quit")
	}
}

func TestUnitListQuit(t *testing.T) {
	m := newUnitListModel(browseDoc())

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
	if msg := cmd(); msg != (tea.QuitMsg{}) {
		t.Errorf("q produced %T, want tea.QuitMsg", msg)
	}
}
