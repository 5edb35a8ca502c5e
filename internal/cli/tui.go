package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jwollen/cargo/pkg/unitgraph"
)

// List styles.
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listRootStyle     = lipgloss.NewStyle().Foreground(colorGreen)
)

// newBrowseCmd creates the browse command: an interactive viewer over a
// validated unit graph document.
func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <path>",
		Short: "Interactively browse a dumped unit graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			logger := loggerFromContext(c.Context())
			doc, err := unitgraph.Load(args[0])
			if err != nil {
				return err
			}
			if err := doc.Validate(logger); err != nil {
				return err
			}
			model := newUnitListModel(doc)
			_, err = tea.NewProgram(model, tea.WithContext(c.Context())).Run()
			return err
		},
	}
}

// unitListModel is the bubbletea model for browsing units. The list view
// shows every unit in document order; selecting one switches to a detail
// view of its attributes and dependency edges.
type unitListModel struct {
	doc    *unitgraph.Document
	roots  map[int]bool
	cursor int
	offset int
	height int

	// detail is the index of the unit shown in the detail view, or -1
	// when the list is shown.
	detail int
}

func newUnitListModel(doc *unitgraph.Document) unitListModel {
	roots := make(map[int]bool, len(doc.Roots))
	for _, r := range doc.Roots {
		roots[r] = true
	}
	return unitListModel{doc: doc, roots: roots, height: 15, detail: -1}
}

func (m unitListModel) Init() tea.Cmd {
	return nil
}

func (m unitListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.detail >= 0 {
				m.detail = -1
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.detail < 0 && m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.detail < 0 && m.cursor < len(m.doc.Units)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			if m.detail < 0 && len(m.doc.Units) > 0 {
				m.detail = m.cursor
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m unitListModel) View() string {
	if m.detail >= 0 {
		return m.detailView()
	}
	return m.listView()
}

func (m unitListModel) listView() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Unit Graph"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.doc.Units) {
		end = len(m.doc.Units)
	}

	for i := m.offset; i < end; i++ {
		u := &m.doc.Units[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		rootMark := " "
		if m.roots[i] {
			rootMark = listRootStyle.Render("●")
		}

		line := fmt.Sprintf("%s%s #%-4d %-40s %s", cursor, rootMark, i,
			fmt.Sprintf("%s v%s", u.PkgID.Name, u.PkgID.Version),
			listDimStyle.Render(fmt.Sprintf("%s · %s", u.Mode, u.Platform)))

		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %s root", m.cursor+1, len(m.doc.Units), listRootStyle.Render("●"))))
	return b.String()
}

func (m unitListModel) detailView() string {
	u := &m.doc.Units[m.detail]
	var b strings.Builder

	b.WriteString(styleTitle.Render(fmt.Sprintf("Unit #%d", m.detail)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	row := func(key, value string) {
		b.WriteString(fmt.Sprintf("  %-10s %s\n", listDimStyle.Render(key), value))
	}
	row("package", u.PkgID.String())
	row("target", fmt.Sprintf("%s %q", u.Target.Kind, u.Target.Name))
	row("profile", u.Profile.Name)
	row("platform", u.Platform.String())
	row("mode", string(u.Mode))
	if len(u.Features) > 0 {
		row("features", strings.Join(u.Features, ", "))
	}
	if u.Artifact {
		row("artifact", "yes")
	}

	b.WriteString("\n")
	b.WriteString(listNormalStyle.Render(fmt.Sprintf("  dependencies (%d)", len(u.Dependencies))))
	b.WriteString("\n")
	for _, dep := range u.Dependencies {
		target := &m.doc.Units[dep.Index]
		b.WriteString(fmt.Sprintf("    %s #%-4d %-30s %s\n",
			listDimStyle.Render(iconArrow), dep.Index,
			dep.ExternCrateName,
			listDimStyle.Render(fmt.Sprintf("%s · %s", dep.UnitFor, target.PkgID.Name))))
	}

	return b.String()
}
