package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
)

type pwField int

const (
	pwFieldPassword pwField = iota
	pwFieldConfirm
)

// passwordModel prompts for the master password of an encrypted book.
// On first run it asks twice.
type passwordModel struct {
	password textinput.Model
	confirm  textinput.Model
	focused  pwField
	firstRun bool
	errMsg   string
}

// passwordSubmitMsg carries the entered password to the root model.
type passwordSubmitMsg struct {
	password string
}

// passwordErrMsg reports that the book could not be opened.
type passwordErrMsg struct {
	err error
}

func newSecretInput() textinput.Model {
	ti := textinput.New()
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'
	ti.CharLimit = 128
	ti.Width = 40
	return ti
}

func newPasswordModel(firstRun bool) passwordModel {
	pw := newSecretInput()
	pw.Focus()

	return passwordModel{
		password: pw,
		confirm:  newSecretInput(),
		firstRun: firstRun,
	}
}

func (m passwordModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m passwordModel) Update(msg tea.Msg) (passwordModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		m.errMsg = ""

		if key.Matches(msg, zstyle.KeyTab) {
			if m.firstRun {
				m = m.focus(1 - m.focused)
			}
			return m, nil
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			return m.handleSubmit()
		}

	case passwordErrMsg:
		m.errMsg = msg.err.Error()
		m.password.SetValue("")
		m.confirm.SetValue("")
		m = m.focus(pwFieldPassword)
		return m, nil
	}

	var cmd tea.Cmd
	if m.focused == pwFieldConfirm {
		m.confirm, cmd = m.confirm.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m passwordModel) focus(f pwField) passwordModel {
	m.focused = f
	if f == pwFieldConfirm {
		m.password.Blur()
		m.confirm.Focus()
	} else {
		m.confirm.Blur()
		m.password.Focus()
	}
	return m
}

func (m passwordModel) handleSubmit() (passwordModel, tea.Cmd) {
	val := m.password.Value()
	if val == "" {
		m.errMsg = "password cannot be empty"
		return m.focus(pwFieldPassword), nil
	}

	if m.firstRun {
		if m.focused == pwFieldPassword {
			return m.focus(pwFieldConfirm), nil
		}
		if m.confirm.Value() != val {
			m.errMsg = "passwords do not match"
			m.confirm.SetValue("")
			return m, nil
		}
	}

	return m, func() tea.Msg {
		return passwordSubmitMsg{password: val}
	}
}

func (m passwordModel) View() string {
	indent := lipgloss.NewStyle().MarginLeft(2)
	logo := indent.Render(
		zstyle.StyledLogo(lipgloss.NewStyle().Foreground(accent)),
	)
	toolName := indent.Render(zstyle.MutedText.Render("zbook"))

	var s string
	if m.firstRun {
		s = fmt.Sprintf("\n%s\n%s\n\n  %s\n  %s\n\n  password\n  %s\n\n  confirm\n  %s\n",
			logo, toolName,
			zstyle.Subtitle.Render("create new store"),
			zstyle.MutedText.Render("choose a master password for your address book"),
			m.password.View(),
			m.confirm.View(),
		)
	} else {
		s = fmt.Sprintf("\n%s\n%s\n\n  %s\n  %s\n\n  %s\n",
			logo, toolName,
			zstyle.Subtitle.Render("unlock store"),
			zstyle.MutedText.Render("enter your master password"),
			m.password.View(),
		)
	}

	if m.errMsg != "" {
		s += "\n  " + zstyle.StatusErr.Render(m.errMsg) + "\n"
	}

	return s + "\n"
}
