package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
)

// deleteContactMsg asks the root model to delete a contact by exact name.
type deleteContactMsg struct {
	name string
}

type deleteModel struct {
	input textinput.Model
	flash string
}

func newDeleteModel() deleteModel {
	ti := textinput.New()
	ti.Placeholder = "exact name"
	ti.CharLimit = 256
	ti.Width = 40
	ti.Focus()

	return deleteModel{input: ti}
}

func (m deleteModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m deleteModel) Update(msg tea.Msg) (deleteModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if key.Matches(msg, zstyle.KeyBack) {
			return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			name := m.input.Value()
			if strings.TrimSpace(name) == "" {
				return m, nil
			}
			return m, func() tea.Msg { return deleteContactMsg{name: name} }
		}

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m deleteModel) View() string {
	s := "\n  " + m.input.View() + "\n"
	if m.flash != "" {
		s += "\n  " + zstyle.StatusWarn.Render(m.flash) + "\n"
	}
	return s
}
