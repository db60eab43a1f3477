package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zbook/internal/book"
)

type birthdaysModel struct {
	upcoming []book.Upcoming
	window   int
}

func newBirthdaysModel(upcoming []book.Upcoming, window int) birthdaysModel {
	return birthdaysModel{upcoming: upcoming, window: window}
}

func (m birthdaysModel) Init() tea.Cmd {
	return nil
}

func (m birthdaysModel) Update(msg tea.Msg) (birthdaysModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m birthdaysModel) handleKey(msg tea.KeyMsg) (birthdaysModel, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyQuit) {
		return m, func() tea.Msg { return quitMsg{} }
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	return m, nil
}

func (m birthdaysModel) View() string {
	if len(m.upcoming) == 0 {
		return "\n  " + zstyle.MutedText.Render(fmt.Sprintf("no birthdays in the next %d days", m.window)) + "\n"
	}

	s := "\n"
	for _, u := range m.upcoming {
		bd, _ := u.Record.Birthday()
		when := u.When()
		if u.Days == 0 {
			when = zstyle.StatusOK.Render(when)
		}
		s += fmt.Sprintf("  %-20s %s  %s\n", u.Record.Name(), bd, when)
	}
	return s
}
