package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zbook/internal/contact"
)

type addField int

const (
	addName addField = iota
	addPhones
	addBirthday
	addFieldCount
)

var addLabels = [addFieldCount]string{
	"name",
	"phones",
	"birthday",
}

// saveContactMsg asks the root model to store a record.
type saveContactMsg struct {
	record *contact.Record
}

// addModel is the form for creating a contact.
type addModel struct {
	inputs []textinput.Model
	focus  int
	flash  string
}

func newAddModel() addModel {
	inputs := make([]textinput.Model, addFieldCount)

	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 256
		ti.Width = 40
		inputs[i] = ti
	}

	inputs[addName].Placeholder = "Jane Doe"
	inputs[addPhones].Placeholder = "0123456789, 0987654321"
	inputs[addBirthday].Placeholder = contact.DateLayout
	inputs[addBirthday].CharLimit = len(contact.DateLayout)

	inputs[0].Focus()

	return addModel{inputs: inputs}
}

func (m addModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m addModel) Update(msg tea.Msg) (addModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if key.Matches(msg, zstyle.KeyBack) {
			return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
		}

		if key.Matches(msg, zstyle.KeyTab) || msg.Type == tea.KeyDown {
			return m.nextField(), nil
		}

		if msg.Type == tea.KeyUp || msg.Type == tea.KeyShiftTab {
			return m.prevField(), nil
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			// enter on last field saves; otherwise advance
			if m.focus == int(addFieldCount)-1 {
				return m.submit()
			}
			return m.nextField(), nil
		}

		if msg.String() == "ctrl+s" {
			return m.submit()
		}

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// submit builds a record from the form. Phones are separated by commas or
// spaces; a blank phone field gives a contact without phones.
func (m addModel) submit() (addModel, tea.Cmd) {
	name := m.inputs[addName].Value()
	if strings.TrimSpace(name) == "" {
		m.flash = "name is required"
		return m, clearFlashAfter()
	}

	r, err := contact.NewRecord(name, strings.TrimSpace(m.inputs[addBirthday].Value()))
	if err != nil {
		m.flash = err.Error()
		return m, clearFlashAfter()
	}

	for _, p := range splitPhones(m.inputs[addPhones].Value()) {
		if err := r.AddPhone(p); err != nil {
			m.flash = err.Error()
			return m, clearFlashAfter()
		}
	}

	return m, func() tea.Msg { return saveContactMsg{record: r} }
}

func splitPhones(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	})
}

func (m addModel) nextField() addModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % int(addFieldCount)
	m.inputs[m.focus].Focus()
	return m
}

func (m addModel) prevField() addModel {
	m.inputs[m.focus].Blur()
	m.focus--
	if m.focus < 0 {
		m.focus = int(addFieldCount) - 1
	}
	m.inputs[m.focus].Focus()
	return m
}

func (m addModel) View() string {
	accentStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)

	s := "\n"
	for i, input := range m.inputs {
		label := zstyle.MutedText.Render(fmt.Sprintf("  %-10s", addLabels[i]))
		if i == m.focus {
			s += accentStyle.Render(">") + " " + label + input.View() + "\n"
		} else {
			s += "  " + label + input.View() + "\n"
		}
	}

	if m.flash != "" {
		s += "\n  " + zstyle.StatusErr.Render(m.flash) + "\n"
	}

	return s
}
