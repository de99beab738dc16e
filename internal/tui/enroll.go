package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/vault-safe/internal/app"
	"github.com/MKhiriev/vault-safe/internal/auth"
)

// Enroller stores the passphrase that later unlocks protected operations.
// Implemented by [auth.PassphraseChecker].
type Enroller interface {
	IsEnrolled(ctx context.Context) (bool, error)
	Enroll(ctx context.Context, passphrase string) error
}

var _ Enroller = (*auth.PassphraseChecker)(nil)

type enrolledMsg struct {
	err error
}

type enrollModel struct {
	ctx      context.Context
	enroller Enroller

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string

	done       bool
	quitByUser bool
}

func newEnrollModel(ctx context.Context, enroller Enroller) enrollModel {
	pass := textinput.New()
	pass.Placeholder = "Passphrase"
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'
	pass.Width = 40
	pass.Focus()

	confirm := textinput.New()
	confirm.Placeholder = "Repeat passphrase"
	confirm.EchoMode = textinput.EchoPassword
	confirm.EchoCharacter = '•'
	confirm.Width = 40

	return enrollModel{
		ctx:      ctx,
		enroller: enroller,
		inputs:   []textinput.Model{pass, confirm},
	}
}

func (m enrollModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m enrollModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case enrolledMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = app.UserMessage(msg.err)
			m.clearInputs()
			return m, nil
		}
		m.done = true
		m.clearInputs()
		return m, tea.Quit
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc), msg.String() == "ctrl+c":
			m.quitByUser = true
			m.clearInputs()
			return m, tea.Quit
		case m.submitting:
			return m, nil
		case key.Matches(msg, keys.tab), key.Matches(msg, keys.backtab):
			m.setFocus(1 - m.focus)
			return m, nil
		case key.Matches(msg, keys.enter):
			if m.focus == 0 {
				m.setFocus(1)
				return m, nil
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m enrollModel) submit() (tea.Model, tea.Cmd) {
	pass, confirm := m.inputs[0].Value(), m.inputs[1].Value()
	if pass != confirm {
		m.errMsg = app.UserMessage(app.ErrPassphraseMismatch)
		m.clearInputs()
		return m, nil
	}

	m.errMsg = ""
	m.submitting = true
	ctx, enroller := m.ctx, m.enroller
	return m, func() tea.Msg {
		return enrolledMsg{err: enroller.Enroll(ctx, pass)}
	}
}

func (m *enrollModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m *enrollModel) clearInputs() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.setFocus(0)
}

func (m enrollModel) View() string {
	var out strings.Builder
	out.WriteString("Choose a passphrase. It is asked before a note is shown,\n")
	out.WriteString("deleted, or the vault is reset.\n\n")
	out.WriteString("Passphrase │ " + m.inputs[0].View() + "\n")
	out.WriteString("Repeat     │ " + m.inputs[1].View() + "\n")
	if m.submitting {
		out.WriteString("\nSaving...")
	}
	if m.errMsg != "" {
		out.WriteString("\n" + errorStyle.Render(m.errMsg))
	}

	return appStyle.Render(renderPage("SET UP VAULT", out.String(), "tab: next field │ enter: confirm │ esc: quit"))
}
