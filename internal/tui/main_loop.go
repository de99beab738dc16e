package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/vault-safe/internal/app"
	"github.com/MKhiriev/vault-safe/internal/auth"
	"github.com/MKhiriev/vault-safe/internal/service"
	"github.com/MKhiriev/vault-safe/models"
)

type screen int

const (
	screenList screen = iota
	screenAdd
	screenDetail
	screenAbout
)

type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmDelete
	confirmReset
)

const statusLifetime = 3 * time.Second

const (
	addFieldTitle = iota
	addFieldCategory
	addFieldContent
	addFieldCount
)

type mainLoopModel struct {
	ctx    context.Context
	vault  service.VaultService
	info   models.AppBuildInfo
	bridge *PromptBridge

	clipboardClear time.Duration
	writeClipboard func(string) error
	readClipboard  func() (string, error)

	screen  screen
	items   []models.NoteSummary
	idx     int
	loading bool
	busy    bool
	status  string

	addInputs  []textinput.Model
	addContent textarea.Model
	addFocus   int

	detailNote    models.NoteSummary
	detailContent string

	confirm     confirmAction
	confirmNote models.NoteSummary

	prompting   bool
	promptReq   promptRequest
	promptInput textinput.Model

	errMsg string
}

func newMainLoopModel(ctx context.Context, services *service.Services, bridge *PromptBridge, clipboardClear time.Duration) mainLoopModel {
	in := textinput.New()
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '•'
	in.Placeholder = "passphrase"
	in.Width = 40

	return mainLoopModel{
		ctx:            ctx,
		vault:          services.VaultService,
		info:           services.AppInfoService.GetBuildInfo(ctx),
		bridge:         bridge,
		clipboardClear: clipboardClear,
		writeClipboard: clipboard.WriteAll,
		readClipboard:  clipboard.ReadAll,
		loading:        true,
		promptInput:    in,
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.cmdLoadItems()}
	if m.bridge != nil {
		cmds = append(cmds, m.bridge.waitForPrompt(m.ctx))
	}
	return tea.Batch(cmds...)
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = app.UserMessage(msg.err)
			return m, nil
		}
		m.items = msg.items
		m.clampIndex()
		return m, nil
	case noteSavedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = app.UserMessage(msg.err)
			return m, nil
		}
		m.screen = screenList
		m.resetAddForm()
		m.idx = 0
		m.loading = true
		status := m.setStatus("Note saved")
		return m, tea.Batch(status, m.cmdLoadItems())
	case noteRevealedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = app.UserMessage(msg.err)
			return m, nil
		}
		m.detailNote = msg.note
		m.detailContent = msg.content
		m.screen = screenDetail
		return m, nil
	case noteDeletedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = app.UserMessage(msg.err)
			return m, nil
		}
		if m.screen == screenDetail && m.detailNote.ID == msg.id {
			m.leaveDetail()
		}
		m.loading = true
		status := m.setStatus("Note deleted")
		return m, tea.Batch(status, m.cmdLoadItems())
	case vaultResetMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = app.UserMessage(msg.err)
			return m, nil
		}
		m.leaveDetail()
		m.idx = 0
		m.loading = true
		status := m.setStatus("Vault reset")
		return m, tea.Batch(status, m.cmdLoadItems())
	case reencryptedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = app.UserMessage(msg.err)
			return m, nil
		}
		status := m.setStatus(fmt.Sprintf("Re-encrypted %d note(s)", msg.count))
		return m, status
	case promptRequestedMsg:
		return m.startPrompt(msg.req)
	case promptExpiredMsg:
		if m.prompting && msg.req.reply == m.promptReq.reply {
			m.stopPrompt()
		}
		return m, nil
	case clipboardClearMsg:
		if current, err := m.readClipboard(); err == nil && current == msg.content {
			_ = m.writeClipboard("")
		}
		return m, nil
	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}

	if keyMsg.String() == "ctrl+c" {
		if m.prompting {
			m.promptReq.answer("", auth.ErrPromptDismissed)
			m.stopPrompt()
		}
		return m, tea.Quit
	}

	switch {
	case m.prompting:
		return m.updatePrompt(keyMsg)
	case m.errMsg != "":
		if key.Matches(keyMsg, keys.enter, keys.esc) {
			m.errMsg = ""
		}
		return m, nil
	case m.confirm != confirmNone:
		return m.updateConfirm(keyMsg)
	}

	switch m.screen {
	case screenAdd:
		return m.updateAdd(keyMsg)
	case screenDetail:
		return m.updateDetail(keyMsg)
	case screenAbout:
		if key.Matches(keyMsg, keys.esc, keys.enter) {
			m.screen = screenList
		}
		return m, nil
	default:
		return m.updateList(keyMsg)
	}
}

func (m mainLoopModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.about):
		m.screen = screenAbout
	case m.busy:
		status := m.setStatus("Please wait...")
		return m, status
	case key.Matches(msg, keys.newNote):
		m.startAdd()
		return m, textinput.Blink
	case key.Matches(msg, keys.reload):
		m.loading = true
		return m, m.cmdLoadItems()
	case key.Matches(msg, keys.enter):
		note, ok := m.current()
		if !ok {
			status := m.setStatus("No notes")
			return m, status
		}
		m.busy = true
		return m, m.cmdReveal(note)
	case key.Matches(msg, keys.delete):
		note, ok := m.current()
		if !ok {
			status := m.setStatus("No notes")
			return m, status
		}
		m.confirm = confirmDelete
		m.confirmNote = note
	case key.Matches(msg, keys.reset):
		m.confirm = confirmReset
	case key.Matches(msg, keys.reencrypt):
		m.busy = true
		return m, m.cmdReencrypt()
	}
	return m, nil
}

func (m mainLoopModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.leaveDetail()
	case key.Matches(msg, keys.copy):
		if err := m.writeClipboard(m.detailContent); err != nil {
			m.errMsg = "copy failed: " + err.Error()
			return m, nil
		}
		cmds := []tea.Cmd{m.setStatus("Copied to clipboard")}
		if m.clipboardClear > 0 {
			content := m.detailContent
			cmds = append(cmds, tea.Tick(m.clipboardClear, func(time.Time) tea.Msg {
				return clipboardClearMsg{content: content}
			}))
		}
		return m, tea.Batch(cmds...)
	case key.Matches(msg, keys.delete):
		if m.busy {
			return m, nil
		}
		m.confirm = confirmDelete
		m.confirmNote = m.detailNote
	}
	return m, nil
}

func (m mainLoopModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		action, note := m.confirm, m.confirmNote
		m.confirm = confirmNone
		m.busy = true
		if action == confirmReset {
			return m, m.cmdReset()
		}
		return m, m.cmdDelete(note.ID)
	case key.Matches(msg, keys.no, keys.esc):
		m.confirm = confirmNone
	}
	return m, nil
}

func (m mainLoopModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.enter):
		m.promptReq.answer(m.promptInput.Value(), nil)
		m.stopPrompt()
		return m, nil
	case key.Matches(msg, keys.esc):
		m.promptReq.answer("", auth.ErrPromptDismissed)
		m.stopPrompt()
		return m, nil
	}

	var cmd tea.Cmd
	m.promptInput, cmd = m.promptInput.Update(msg)
	return m, cmd
}

func (m mainLoopModel) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.resetAddForm()
		m.screen = screenList
		return m, nil
	case key.Matches(msg, keys.tab):
		m.focusAdd((m.addFocus + 1) % addFieldCount)
		return m, nil
	case key.Matches(msg, keys.backtab):
		m.focusAdd((m.addFocus - 1 + addFieldCount) % addFieldCount)
		return m, nil
	case key.Matches(msg, keys.save):
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.cmdSave(
			m.addInputs[addFieldTitle].Value(),
			m.addContent.Value(),
			strings.TrimSpace(m.addInputs[addFieldCategory].Value()),
		)
	}
	return m.updateInputs(msg)
}

// updateInputs forwards msg to whichever text field currently has focus.
func (m mainLoopModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.prompting:
		m.promptInput, cmd = m.promptInput.Update(msg)
	case m.screen == screenAdd && m.addFocus == addFieldContent:
		m.addContent, cmd = m.addContent.Update(msg)
	case m.screen == screenAdd && len(m.addInputs) > m.addFocus:
		m.addInputs[m.addFocus], cmd = m.addInputs[m.addFocus].Update(msg)
	}
	return m, cmd
}

func (m mainLoopModel) startPrompt(req promptRequest) (tea.Model, tea.Cmd) {
	next := m.bridge.waitForPrompt(m.ctx)
	if m.prompting {
		req.answer("", auth.ErrPromptDismissed)
		return m, next
	}

	m.prompting = true
	m.promptReq = req
	m.promptInput.Prompt = ""
	m.promptInput.SetValue("")
	m.promptInput.Focus()
	return m, tea.Batch(next, req.expired(), textinput.Blink)
}

func (m *mainLoopModel) stopPrompt() {
	m.prompting = false
	m.promptReq = promptRequest{}
	m.promptInput.SetValue("")
	m.promptInput.Blur()
}

func (m *mainLoopModel) startAdd() {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 200
	title.Width = 40

	category := textinput.New()
	category.Placeholder = models.DefaultCategory
	category.CharLimit = 64
	category.Width = 40

	content := textarea.New()
	content.Placeholder = "Secret content"
	content.SetWidth(60)
	content.SetHeight(8)

	m.addInputs = []textinput.Model{title, category}
	m.addContent = content
	m.screen = screenAdd
	m.focusAdd(addFieldTitle)
}

func (m *mainLoopModel) focusAdd(field int) {
	for i := range m.addInputs {
		m.addInputs[i].Blur()
	}
	m.addContent.Blur()

	m.addFocus = field
	if field == addFieldContent {
		m.addContent.Focus()
		return
	}
	m.addInputs[field].Focus()
}

func (m *mainLoopModel) resetAddForm() {
	m.addInputs = nil
	m.addContent = textarea.Model{}
	m.addFocus = 0
}

func (m *mainLoopModel) leaveDetail() {
	m.screen = screenList
	m.detailNote = models.NoteSummary{}
	m.detailContent = ""
}

func (m *mainLoopModel) clampIndex() {
	if m.idx >= len(m.items) {
		m.idx = len(m.items) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *mainLoopModel) setStatus(status string) tea.Cmd {
	m.status = status
	return tea.Tick(statusLifetime, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m mainLoopModel) current() (models.NoteSummary, bool) {
	if len(m.items) == 0 || m.idx < 0 || m.idx >= len(m.items) {
		return models.NoteSummary{}, false
	}
	return m.items[m.idx], true
}

func (m mainLoopModel) cmdLoadItems() tea.Cmd {
	parent, svc := m.ctx, m.vault

	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		defer cancel()

		items, err := svc.ListNotes(ctx)
		return listLoadedMsg{items: items, err: err}
	}
}

func (m mainLoopModel) cmdSave(title, content, category string) tea.Cmd {
	parent, svc := m.ctx, m.vault

	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		defer cancel()

		id, err := svc.SaveNote(ctx, title, content, category)
		return noteSavedMsg{id: id, err: err}
	}
}

func (m mainLoopModel) cmdReveal(note models.NoteSummary) tea.Cmd {
	parent, svc := m.ctx, m.vault

	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		defer cancel()

		content, err := svc.RevealNote(ctx, note.ID)
		return noteRevealedMsg{note: note, content: content, err: err}
	}
}

func (m mainLoopModel) cmdDelete(id int64) tea.Cmd {
	parent, svc := m.ctx, m.vault

	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		defer cancel()

		return noteDeletedMsg{id: id, err: svc.DeleteNote(ctx, id)}
	}
}

func (m mainLoopModel) cmdReset() tea.Cmd {
	parent, svc := m.ctx, m.vault

	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		defer cancel()

		return vaultResetMsg{err: svc.ResetVault(ctx)}
	}
}

func (m mainLoopModel) cmdReencrypt() tea.Cmd {
	parent, svc := m.ctx, m.vault

	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		defer cancel()

		n, err := svc.ReencryptAll(ctx)
		return reencryptedMsg{count: n, err: err}
	}
}

func (m mainLoopModel) View() string {
	var page string
	switch m.screen {
	case screenAdd:
		page = m.viewAdd()
	case screenDetail:
		page = m.viewDetail()
	case screenAbout:
		page = renderBuildInfoWindow(m.info)
	default:
		page = m.viewList()
	}

	switch {
	case m.prompting:
		page += "\n\n" + m.viewPrompt()
	case m.errMsg != "":
		page += "\n\n" + errorOverlayModel{message: m.errMsg}.View()
	case m.confirm == confirmDelete:
		page += "\n\n" + confirmModel{message: fmt.Sprintf("Delete %q?", m.confirmNote.Title)}.View()
	case m.confirm == confirmReset:
		page += "\n\n" + confirmModel{message: "Erase every note and the vault key?\nThis cannot be undone."}.View()
	}

	return appStyle.Render(page)
}

func (m mainLoopModel) viewList() string {
	const hotKeys = "enter: view │ n: new │ d: delete │ r: reload │ U: re-encrypt │ R: reset │ v: about │ q: quit"

	var out strings.Builder
	if m.loading {
		out.WriteString("Loading notes...")
		return renderPage("VAULT", out.String(), hotKeys)
	}
	if m.status != "" {
		out.WriteString(statusStyle.Render(m.status))
		out.WriteString("\n\n")
	}

	if len(m.items) == 0 {
		out.WriteString("No notes yet")
		return renderPage("VAULT", out.String(), hotKeys)
	}

	out.WriteString("  Title                    │ Category         │ Created\n")
	out.WriteString("  ─────────────────────────┼──────────────────┼─────────────────\n")
	for i, item := range m.items {
		row := fmt.Sprintf("%-24s │ %-16s │ %s",
			fitText(item.Title, 24),
			fitText(item.Category, 16),
			formatCreated(item.CreatedAt),
		)
		if i == m.idx {
			out.WriteString("> " + selectedStyle.Render(row) + "\n")
			continue
		}
		out.WriteString("  " + row + "\n")
	}

	return renderPage("VAULT", strings.TrimRight(out.String(), "\n"), hotKeys)
}

func (m mainLoopModel) viewAdd() string {
	if len(m.addInputs) != addFieldCount-1 {
		return renderPage("NEW NOTE", "", "esc: back")
	}

	var out strings.Builder
	out.WriteString("Title     │ " + m.addInputs[addFieldTitle].View() + "\n")
	out.WriteString("Category  │ " + m.addInputs[addFieldCategory].View() + "\n\n")
	out.WriteString(m.addContent.View())
	if m.busy {
		out.WriteString("\n\nSaving...")
	}

	return renderPage("NEW NOTE", out.String(), "tab: next field │ ctrl+s: save │ esc: back")
}

func (m mainLoopModel) viewDetail() string {
	var out strings.Builder
	out.WriteString("Title     │ " + m.detailNote.Title + "\n")
	out.WriteString("Category  │ " + m.detailNote.Category + "\n")
	out.WriteString("Created   │ " + formatCreated(m.detailNote.CreatedAt) + "\n\n")
	out.WriteString(secretStyle.Render(m.detailContent))
	if m.status != "" {
		out.WriteString("\n\n" + statusStyle.Render(m.status))
	}

	hotKeys := "c: copy │ d: delete │ esc: back"
	if m.clipboardClear > 0 {
		hotKeys += fmt.Sprintf(" │ clipboard clears after %s", m.clipboardClear)
	}
	return renderPage("NOTE", out.String(), hotKeys)
}

func (m mainLoopModel) viewPrompt() string {
	content := titleStyle.Render(m.promptReq.prompt) + "\n\n" + m.promptInput.View() + "\n\nenter confirm    esc cancel"
	return overlayBoxStyle.Render(content)
}
