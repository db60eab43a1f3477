package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zbook/internal/book"
	"github.com/zarlcorp/zbook/internal/contact"
)

// listModel pages through the book one chunk at a time.
type listModel struct {
	pager *book.Pager
	chunk []*contact.Record
	page  int
	shown int
	total int
	done  bool
}

func newListModel(p *book.Pager, total int) listModel {
	m := listModel{pager: p, total: total}
	return m.advance()
}

// advance loads the next chunk, or marks the list done when the pager is
// drained. The last chunk stays on screen.
func (m listModel) advance() listModel {
	chunk, ok := m.pager.Next()
	if !ok {
		m.done = true
		return m
	}
	m.chunk = chunk
	m.page++
	m.shown += len(chunk)
	if m.pager.Remaining() == 0 {
		m.done = true
	}
	return m
}

func (m listModel) Init() tea.Cmd {
	return nil
}

func (m listModel) Update(msg tea.Msg) (listModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m listModel) handleKey(msg tea.KeyMsg) (listModel, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyQuit) {
		return m, func() tea.Msg { return quitMsg{} }
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	switch msg.String() {
	case "n", " ", "enter":
		if !m.done {
			m = m.advance()
		}
	}

	return m, nil
}

func (m listModel) View() string {
	if m.page == 0 {
		return "\n  " + zstyle.MutedText.Render("no saved contacts") + "\n"
	}

	s := "\n"
	for _, r := range m.chunk {
		s += "  " + r.String() + "\n"
	}

	status := fmt.Sprintf("page %d  %d of %d", m.page, m.shown, m.total)
	if m.done {
		status += "  end of list"
	}
	s += "\n  " + zstyle.MutedText.Render(status) + "\n"
	return s
}
