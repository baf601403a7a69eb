package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/kinship/pkg/stats"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// MemberPickerModel - Interactive source/target selection
// =============================================================================

// MemberPickerModel picks a source and then a target member. Typing filters
// the list by a case-insensitive substring of the name or class.
type MemberPickerModel struct {
	Members []stats.MemberRow
	Filter  string
	Cursor  int
	Offset  int
	Height  int

	// From is set once the first member is chosen; To once the second is.
	From, To string
	Aborted  bool

	visible []int
}

// NewMemberPickerModel creates a picker over members.
func NewMemberPickerModel(members []stats.MemberRow) MemberPickerModel {
	m := MemberPickerModel{Members: members, Height: 15}
	m.refilter()
	return m
}

// Done reports whether both members were chosen.
func (m MemberPickerModel) Done() bool { return m.From != "" && m.To != "" }

func (m MemberPickerModel) Init() tea.Cmd {
	return nil
}

func (m MemberPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.Aborted = true
			return m, tea.Quit
		case tea.KeyUp:
			m.move(-1)
		case tea.KeyDown:
			m.move(1)
		case tea.KeyBackspace:
			if m.Filter != "" {
				r := []rune(m.Filter)
				m.Filter = string(r[:len(r)-1])
				m.refilter()
			}
		case tea.KeyEnter:
			if len(m.visible) == 0 {
				return m, nil
			}
			id := m.Members[m.visible[m.Cursor]].ID
			if m.From == "" {
				m.From = id
				m.Filter = ""
				m.refilter()
				return m, nil
			}
			m.To = id
			return m, tea.Quit
		case tea.KeyRunes:
			m.Filter += string(msg.Runes)
			m.refilter()
		case tea.KeySpace:
			m.Filter += " "
			m.refilter()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m.clampOffset()
	}
	return m, nil
}

func (m *MemberPickerModel) move(delta int) {
	if len(m.visible) == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.visible)-1)
	m.clampOffset()
}

func (m *MemberPickerModel) clampOffset() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m *MemberPickerModel) refilter() {
	needle := strings.ToLower(m.Filter)
	var visible []int
	for i, row := range m.Members {
		if needle == "" ||
			strings.Contains(strings.ToLower(row.ID), needle) ||
			strings.Contains(strings.ToLower(row.Cohort), needle) {
			visible = append(visible, i)
		}
	}
	m.visible = visible
	m.Cursor, m.Offset = 0, 0
}

func (m MemberPickerModel) View() string {
	var b strings.Builder

	title := "Select From"
	if m.From != "" {
		title = "Select To  " + listDimStyle.Render("from "+m.From)
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("type to filter  ↑/↓ navigate  ⏎ select  esc quit"))
	b.WriteString("\n")
	b.WriteString("filter: " + StyleHighlight.Render(m.Filter))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.visible))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Members[m.visible[i]]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, r.ID, r.Cohort, fmt.Sprintf("%d/%d", r.Bigs, r.Littles)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Member", "Class", "Bigs/Littles").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 3 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.visible)), len(m.visible))))

	return b.String()
}
