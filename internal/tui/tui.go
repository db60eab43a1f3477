// Package tui implements the root Bubble Tea model for zbook.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zbook/internal/book"
	"github.com/zarlcorp/zbook/internal/contact"
)

type viewID int

const (
	viewPassword viewID = iota
	viewMenu
	viewAdd
	viewFind
	viewDelete
	viewList
	viewBirthdays
)

// accent is zbook's highlight color.
var accent = lipgloss.Color("#5fafd7")

// OpenFunc opens the address book. password is nil for unencrypted storage.
// The returned func releases the storage.
type OpenFunc func(password []byte) (*book.Book, func() error, error)

// Options configures the model.
type Options struct {
	Encrypted      bool // prompt for a master password before opening
	FirstRun       bool // the encrypted book does not exist yet
	ChunkSize      int
	BirthdayWindow int
	Now            func() time.Time
}

// Model is the root TUI model.
type Model struct {
	version string
	open    OpenFunc
	opts    Options
	book    *book.Book
	closeFn func() error
	fatal   string

	active    viewID
	password  passwordModel
	menu      menuModel
	add       addModel
	find      findModel
	remove    deleteModel
	list      listModel
	birthdays birthdaysModel

	width int
}

// openMsg asks the root to open unencrypted storage.
type openMsg struct{}

// quitMsg asks the root to save the book and exit.
type quitMsg struct{}

// New creates the root TUI model.
func New(version string, open OpenFunc, opts Options) Model {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = book.DefaultChunkSize
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return Model{
		version:  version,
		open:     open,
		opts:     opts,
		active:   viewPassword,
		password: newPasswordModel(opts.FirstRun),
	}
}

func (m Model) Init() tea.Cmd {
	if !m.opts.Encrypted {
		return func() tea.Msg { return openMsg{} }
	}
	return m.password.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case openMsg:
		return m.openBook(nil)

	case passwordSubmitMsg:
		return m.openBook([]byte(msg.password))

	case navigateMsg:
		return m.navigate(msg.view)

	case saveContactMsg:
		return m.handleSave(msg.record)

	case searchMsg:
		m.find.results = m.book.Search(msg.term)
		m.find.searched = true
		return m, nil

	case deleteContactMsg:
		return m.handleDelete(msg.name)

	case quitMsg:
		return m.handleQuit()
	}

	if m.fatal != "" {
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, tea.Quit
		}
		return m, nil
	}

	return m.updateActive(msg)
}

func (m Model) View() string {
	if m.fatal != "" {
		return "\n  " + zstyle.StatusErr.Render(m.fatal) + "\n\n  " +
			zstyle.MutedText.Render("press any key to quit") + "\n\n"
	}

	switch m.active {
	case viewPassword:
		if !m.opts.Encrypted {
			return "\n  " + zstyle.MutedText.Render("opening address book...") + "\n"
		}
		return m.password.View()
	case viewMenu:
		return m.menu.View()
	}

	var content string
	switch m.active {
	case viewAdd:
		content = m.add.View()
	case viewFind:
		content = m.find.View()
	case viewDelete:
		content = m.remove.View()
	case viewList:
		content = m.list.View()
	case viewBirthdays:
		content = m.birthdays.View()
	}

	header := "  " + zstyle.Title.Render("zbook") + "  " +
		lipgloss.NewStyle().Foreground(accent).Render(viewTitle(m.active))
	sep := zstyle.RenderSeparator(m.width)
	footer := zstyle.RenderFooter(helpFor(m.active))

	return "\n" + header + "\n" + sep + "\n" + content + "\n" + footer + "\n"
}

// viewTitle returns the display title for each view.
func viewTitle(id viewID) string {
	switch id {
	case viewAdd:
		return "Add Contact"
	case viewFind:
		return "Find Contact"
	case viewDelete:
		return "Delete Contact"
	case viewList:
		return "Contacts"
	case viewBirthdays:
		return "Upcoming Birthdays"
	}
	return ""
}

// helpFor returns keybinding pairs for each view's footer.
func helpFor(id viewID) []zstyle.HelpPair {
	switch id {
	case viewAdd:
		return []zstyle.HelpPair{
			{Key: "tab", Desc: "next"},
			{Key: "shift+tab", Desc: "prev"},
			{Key: "enter", Desc: "save"},
			{Key: "esc", Desc: "cancel"},
		}
	case viewFind:
		return []zstyle.HelpPair{
			{Key: "enter", Desc: "search"},
			{Key: "esc", Desc: "back"},
		}
	case viewDelete:
		return []zstyle.HelpPair{
			{Key: "enter", Desc: "delete"},
			{Key: "esc", Desc: "back"},
		}
	case viewList:
		return []zstyle.HelpPair{
			{Key: "n", Desc: "next page"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewBirthdays:
		return []zstyle.HelpPair{
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	}
	return nil
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.active {
	case viewPassword:
		if m.opts.Encrypted {
			m.password, cmd = m.password.Update(msg)
		}
	case viewMenu:
		m.menu, cmd = m.menu.Update(msg)
	case viewAdd:
		m.add, cmd = m.add.Update(msg)
	case viewFind:
		m.find, cmd = m.find.Update(msg)
	case viewDelete:
		m.remove, cmd = m.remove.Update(msg)
	case viewList:
		m.list, cmd = m.list.Update(msg)
	case viewBirthdays:
		m.birthdays, cmd = m.birthdays.Update(msg)
	}

	return m, cmd
}

func (m Model) openBook(password []byte) (tea.Model, tea.Cmd) {
	b, closeFn, err := m.open(password)
	if err != nil {
		if m.opts.Encrypted {
			m.password, _ = m.password.Update(passwordErrMsg{err: err})
			return m, nil
		}
		m.fatal = "open: " + err.Error()
		return m, nil
	}

	m.book = b
	m.closeFn = closeFn
	return m.navigate(viewMenu)
}

func (m Model) navigate(view viewID) (tea.Model, tea.Cmd) {
	switch view {
	case viewMenu:
		m.menu = newMenuModel(m.version, m.book.Len())
		m.active = viewMenu
		return m, tea.ClearScreen

	case viewAdd:
		m.add = newAddModel()
		m.active = viewAdd
		return m, tea.Batch(m.add.Init(), tea.ClearScreen)

	case viewFind:
		m.find = newFindModel()
		m.active = viewFind
		return m, tea.Batch(m.find.Init(), tea.ClearScreen)

	case viewDelete:
		m.remove = newDeleteModel()
		m.active = viewDelete
		return m, tea.Batch(m.remove.Init(), tea.ClearScreen)

	case viewList:
		p, err := m.book.Pager(m.opts.ChunkSize)
		if err != nil {
			return m.menuFlash("list: " + err.Error())
		}
		m.list = newListModel(p, m.book.Len())
		m.active = viewList
		return m, tea.ClearScreen

	case viewBirthdays:
		window := m.opts.BirthdayWindow
		m.birthdays = newBirthdaysModel(m.book.Upcoming(m.opts.Now(), window), window)
		m.active = viewBirthdays
		return m, tea.ClearScreen
	}

	return m, nil
}

// menuFlash returns to the menu showing a status line.
func (m Model) menuFlash(s string) (tea.Model, tea.Cmd) {
	next, cmd := m.navigate(viewMenu)
	nm := next.(Model)
	nm.menu.flash = s
	return nm, tea.Batch(cmd, clearFlashAfter())
}

func (m Model) handleSave(r *contact.Record) (tea.Model, tea.Cmd) {
	name := r.Name().Value()
	_, replaced := m.book.Find(name)

	if err := m.book.Add(r); err != nil {
		m.add.flash = "save: " + err.Error()
		return m, clearFlashAfter()
	}

	if replaced {
		return m.menuFlash(fmt.Sprintf("replaced %s", name))
	}
	return m.menuFlash(fmt.Sprintf("added %s", name))
}

func (m Model) handleDelete(name string) (tea.Model, tea.Cmd) {
	if _, ok := m.book.Find(name); !ok {
		m.remove.flash = fmt.Sprintf("no contact named %q", name)
		return m, clearFlashAfter()
	}

	if err := m.book.Delete(name); err != nil {
		m.remove.flash = "delete: " + err.Error()
		return m, clearFlashAfter()
	}

	return m.menuFlash(fmt.Sprintf("deleted %s", name))
}

func (m Model) handleQuit() (tea.Model, tea.Cmd) {
	if m.book != nil {
		if err := m.book.Save(); err != nil {
			return m.menuFlash("save: " + err.Error())
		}
	}
	return m, tea.Quit
}

// Close releases the storage. Call after the program exits.
func (m Model) Close() error {
	if m.closeFn != nil {
		return m.closeFn()
	}
	return nil
}
