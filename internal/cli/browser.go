package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rfgds/rfgds/pkg/generate"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// ComponentListModel is the bubbletea model for the interactive
// component catalog: a type list on the left, the selected generator's
// parameters and ports on the right.
type ComponentListModel struct {
	Generators []*generate.Generator
	Cursor     int
	Height     int
	Offset     int
}

// NewComponentListModel creates a new component browser model.
func NewComponentListModel(gens []*generate.Generator) ComponentListModel {
	return ComponentListModel{
		Generators: gens,
		Height:     15,
	}
}

func (m ComponentListModel) Init() tea.Cmd {
	return nil
}

func (m ComponentListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Generators)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ComponentListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Component Catalog"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Generators) {
		end = len(m.Generators)
	}

	var list strings.Builder
	for i := m.Offset; i < end; i++ {
		g := m.Generators[i]
		cursor := "  "
		line := cursor + g.Type
		if i == m.Cursor {
			line = "▸ " + g.Type
			list.WriteString(listSelectedStyle.Render(line))
		} else {
			list.WriteString(listNormalStyle.Render(line))
		}
		list.WriteString("\n")
	}

	detail := m.detailView()
	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(28).Render(list.String()),
		detail)
	b.WriteString(columns)

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Generators))))

	return b.String()
}

// detailView renders the selected generator's contract.
func (m ComponentListModel) detailView() string {
	if len(m.Generators) == 0 {
		return ""
	}
	g := m.Generators[m.Cursor]

	var b strings.Builder
	b.WriteString(listSelectedStyle.Render(g.Type))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(g.Desc))
	b.WriteString("\n\n")

	b.WriteString(listNormalStyle.Render("Parameters"))
	b.WriteString("\n")
	for _, p := range g.Params {
		def := listDimStyle.Render("required")
		if p.Default != nil {
			def = listDimStyle.Render(fmt.Sprintf("default %v", p.Default))
		}
		b.WriteString(fmt.Sprintf("  %-18s %s\n", p.Name, def))
	}

	b.WriteString("\n")
	b.WriteString(listNormalStyle.Render("Ports"))
	b.WriteString("\n  ")
	b.WriteString(strings.Join(g.Ports, ", "))
	b.WriteString("\n")

	return b.String()
}
