package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zbook/internal/contact"
)

// searchMsg asks the root model to search the book.
type searchMsg struct {
	term string
}

// findModel searches contacts by name fragment or phone digits.
type findModel struct {
	input    textinput.Model
	results  []*contact.Record
	searched bool
}

func newFindModel() findModel {
	ti := textinput.New()
	ti.Placeholder = "name or phone"
	ti.CharLimit = 128
	ti.Width = 40
	ti.Focus()

	return findModel{input: ti}
}

func (m findModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m findModel) Update(msg tea.Msg) (findModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if key.Matches(msg, zstyle.KeyBack) {
			return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			term := m.input.Value()
			if strings.TrimSpace(term) == "" {
				return m, nil
			}
			return m, func() tea.Msg { return searchMsg{term: term} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m findModel) View() string {
	s := "\n  " + m.input.View() + "\n\n"

	if !m.searched {
		return s
	}

	if len(m.results) == 0 {
		return s + "  " + zstyle.MutedText.Render("no contacts found") + "\n"
	}

	s += "  " + zstyle.MutedText.Render(fmt.Sprintf("%d found", len(m.results))) + "\n"
	for _, r := range m.results {
		s += "  " + r.String() + "\n"
	}
	return s
}
