package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
)

type menuChoice int

const (
	menuAdd menuChoice = iota
	menuFind
	menuDelete
	menuList
	menuBirthdays
	menuQuit
)

var menuItems = []string{
	"Add contact",
	"Find contact",
	"Delete contact",
	"List contacts",
	"Upcoming birthdays",
	"Save and quit",
}

// menuModel is the numbered main menu.
type menuModel struct {
	cursor       int
	version      string
	contactCount int
	flash        string
}

// navigateMsg tells the root model to switch views.
type navigateMsg struct {
	view viewID
}

// flashMsg clears the flash after a timeout.
type flashMsg struct{}

func clearFlashAfter() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return flashMsg{}
	})
}

func newMenuModel(version string, contactCount int) menuModel {
	return menuModel{version: version, contactCount: contactCount}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (menuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m menuModel) handleKey(msg tea.KeyMsg) (menuModel, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyQuit) {
		return m, func() tea.Msg { return quitMsg{} }
	}

	// digits pick an item directly
	if len(msg.Runes) == 1 {
		if n := int(msg.Runes[0] - '1'); n >= 0 && n < len(menuItems) {
			m.cursor = n
			return m, m.selectItem()
		}
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		return m, m.selectItem()
	}

	return m, nil
}

func (m menuModel) selectItem() tea.Cmd {
	var view viewID
	switch menuChoice(m.cursor) {
	case menuAdd:
		view = viewAdd
	case menuFind:
		view = viewFind
	case menuDelete:
		view = viewDelete
	case menuList:
		view = viewList
	case menuBirthdays:
		view = viewBirthdays
	case menuQuit:
		return func() tea.Msg { return quitMsg{} }
	default:
		return nil
	}
	return func() tea.Msg { return navigateMsg{view: view} }
}

func (m menuModel) View() string {
	title := zstyle.Title.Render("zbook")
	ver := zstyle.MutedText.Render(m.version)

	s := fmt.Sprintf("\n  %s %s\n", title, ver)
	s += "  " + zstyle.MutedText.Render(fmt.Sprintf("%d contacts", m.contactCount)) + "\n\n"

	for i, item := range menuItems {
		line := fmt.Sprintf("%d. %s", i+1, item)
		if m.cursor == i {
			s += zstyle.Highlight.Render("  > "+line) + "\n"
		} else {
			s += "    " + line + "\n"
		}
	}

	s += "\n"
	if m.flash != "" {
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	s += "  " + zstyle.MutedText.Render("1-6 select  j/k navigate  enter select  q save and quit") + "\n\n"
	return s
}
