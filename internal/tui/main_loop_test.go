package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/vault-safe/internal/app"
	"github.com/MKhiriev/vault-safe/internal/auth"
	"github.com/MKhiriev/vault-safe/internal/mock"
	"github.com/MKhiriev/vault-safe/internal/service"
	"github.com/MKhiriev/vault-safe/models"
)

type fakeClipboard struct {
	value  string
	writes int
}

func (c *fakeClipboard) write(v string) error {
	c.value = v
	c.writes++
	return nil
}

func (c *fakeClipboard) read() (string, error) {
	return c.value, nil
}

var testNotes = []models.NoteSummary{
	{ID: 2, Title: "Wifi", Category: "Home", CreatedAt: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)},
	{ID: 1, Title: "Bank PIN", Category: "Finance", CreatedAt: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)},
}

func newTestMainLoop(t *testing.T) (mainLoopModel, *mock.MockVaultService, *fakeClipboard) {
	t.Helper()
	ctrl := gomock.NewController(t)

	vault := mock.NewMockVaultService(ctrl)
	info := mock.NewMockAppInfoService(ctrl)
	info.EXPECT().GetBuildInfo(gomock.Any()).Return(models.NewAppBuildInfo("1.0.0", "2026-01-01", "abc123"))

	services := &service.Services{VaultService: vault, AppInfoService: info}
	m := newMainLoopModel(context.Background(), services, NewPromptBridge(), 30*time.Second)

	cb := &fakeClipboard{}
	m.writeClipboard = cb.write
	m.readClipboard = cb.read

	next, _ := m.Update(listLoadedMsg{items: testNotes})
	return next.(mainLoopModel), vault, cb
}

func step(t *testing.T, m mainLoopModel, msg tea.Msg) (mainLoopModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(mainLoopModel)
	require.True(t, ok)
	return out, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestMainLoop_ListLoaded(t *testing.T) {
	m, _, _ := newTestMainLoop(t)

	assert.False(t, m.loading)
	assert.Len(t, m.items, 2)
	assert.Contains(t, m.View(), "Bank PIN")
	assert.Contains(t, m.View(), "Finance")

	m, _ = step(t, m, listLoadedMsg{err: fmt.Errorf("boom")})
	assert.Equal(t, app.MsgUnexpectedError, m.errMsg)
}

func TestMainLoop_Navigation(t *testing.T) {
	m, _, _ := newTestMainLoop(t)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.idx)
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.idx)
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.idx)

	m, _ = step(t, m, listLoadedMsg{items: testNotes[:1]})
	m.idx = 5
	m.clampIndex()
	assert.Equal(t, 0, m.idx)
}

func TestMainLoop_RevealNote(t *testing.T) {
	m, vault, _ := newTestMainLoop(t)
	vault.EXPECT().RevealNote(gomock.Any(), int64(1)).Return("4521", nil)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := step(t, m, enterKey)
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	m, _ = step(t, m, cmd())
	assert.False(t, m.busy)
	assert.Equal(t, screenDetail, m.screen)
	assert.Equal(t, "4521", m.detailContent)
	assert.Contains(t, m.View(), "4521")

	m, _ = step(t, m, escKey)
	assert.Equal(t, screenList, m.screen)
	assert.Empty(t, m.detailContent)
}

func TestMainLoop_RevealDenied(t *testing.T) {
	m, vault, _ := newTestMainLoop(t)
	vault.EXPECT().RevealNote(gomock.Any(), int64(2)).
		Return("", fmt.Errorf("%w: %s", service.ErrAccessDenied, auth.ReasonNotMatched))

	m, cmd := step(t, m, enterKey)
	m, _ = step(t, m, cmd())

	assert.Equal(t, screenList, m.screen)
	assert.Equal(t, app.MsgAccessDenied, m.errMsg)
	assert.Empty(t, m.detailContent)

	m, _ = step(t, m, escKey)
	assert.Empty(t, m.errMsg)
}

func TestMainLoop_PromptAnswered(t *testing.T) {
	m, _, _ := newTestMainLoop(t)
	res := promptAsync(context.Background(), m.bridge, "Authenticate to view note")

	msg := m.bridge.waitForPrompt(context.Background())()
	m, cmd := step(t, m, msg)
	require.NotNil(t, cmd)
	assert.True(t, m.prompting)
	assert.Contains(t, m.View(), "Authenticate to view note")

	m, _ = step(t, m, runes("correct horse"))
	assert.NotContains(t, m.View(), "correct horse")

	m, _ = step(t, m, enterKey)
	assert.False(t, m.prompting)

	r := <-res
	require.NoError(t, r.err)
	assert.Equal(t, "correct horse", r.secret)
	assert.Empty(t, m.promptInput.Value())
}

func TestMainLoop_PromptDismissed(t *testing.T) {
	m, _, _ := newTestMainLoop(t)
	res := promptAsync(context.Background(), m.bridge, "Authenticate to delete note")

	m, _ = step(t, m, m.bridge.waitForPrompt(context.Background())())
	m, _ = step(t, m, escKey)
	assert.False(t, m.prompting)

	r := <-res
	assert.ErrorIs(t, r.err, auth.ErrPromptDismissed)
}

func TestMainLoop_PromptExpired(t *testing.T) {
	m, _, _ := newTestMainLoop(t)
	ctx, cancel := context.WithCancel(context.Background())
	res := promptAsync(ctx, m.bridge, "prompt")

	m, _ = step(t, m, m.bridge.waitForPrompt(context.Background())())
	req := m.promptReq

	other := promptRequest{reply: make(chan promptReply, 1)}
	m, _ = step(t, m, promptExpiredMsg{req: other})
	assert.True(t, m.prompting)

	cancel()
	<-res
	m, _ = step(t, m, req.expired()())
	assert.False(t, m.prompting)
}

func TestMainLoop_SecondPromptDismissed(t *testing.T) {
	m, _, _ := newTestMainLoop(t)

	first := promptRequest{ctx: context.Background(), prompt: "first", reply: make(chan promptReply, 1)}
	second := promptRequest{ctx: context.Background(), prompt: "second", reply: make(chan promptReply, 1)}

	m, _ = step(t, m, promptRequestedMsg{req: first})
	m, _ = step(t, m, promptRequestedMsg{req: second})

	assert.Equal(t, "first", m.promptReq.prompt)
	r := <-second.reply
	assert.ErrorIs(t, r.err, auth.ErrPromptDismissed)
}

func TestMainLoop_CopyAndClearClipboard(t *testing.T) {
	m, _, cb := newTestMainLoop(t)
	m, _ = step(t, m, noteRevealedMsg{note: testNotes[1], content: "4521"})

	m, cmd := step(t, m, runes("c"))
	require.NotNil(t, cmd)
	assert.Equal(t, "4521", cb.value)
	assert.Equal(t, "Copied to clipboard", m.status)

	m, _ = step(t, m, clipboardClearMsg{content: "4521"})
	assert.Empty(t, cb.value)

	cb.value = "something else"
	m, _ = step(t, m, clipboardClearMsg{content: "4521"})
	assert.Equal(t, "something else", cb.value)
}

func TestMainLoop_DeleteConfirmed(t *testing.T) {
	m, vault, _ := newTestMainLoop(t)
	vault.EXPECT().DeleteNote(gomock.Any(), int64(2)).Return(nil)
	vault.EXPECT().ListNotes(gomock.Any()).Return(testNotes[1:], nil)

	m, _ = step(t, m, runes("d"))
	assert.Equal(t, confirmDelete, m.confirm)
	assert.Contains(t, m.View(), `Delete "Wifi"?`)

	m, cmd := step(t, m, runes("y"))
	assert.Equal(t, confirmNone, m.confirm)
	m, _ = step(t, m, cmd())
	assert.Equal(t, "Note deleted", m.status)
	assert.True(t, m.loading)

	m, _ = step(t, m, m.cmdLoadItems()())
	assert.False(t, m.loading)
	assert.Len(t, m.items, 1)
}

func TestMainLoop_DeleteCancelled(t *testing.T) {
	m, _, _ := newTestMainLoop(t)

	m, _ = step(t, m, runes("d"))
	m, cmd := step(t, m, runes("n"))
	assert.Nil(t, cmd)
	assert.Equal(t, confirmNone, m.confirm)
	assert.Equal(t, screenList, m.screen)
}

func TestMainLoop_ResetVault(t *testing.T) {
	m, vault, _ := newTestMainLoop(t)
	vault.EXPECT().ResetVault(gomock.Any()).Return(nil)

	m, _ = step(t, m, runes("R"))
	assert.Equal(t, confirmReset, m.confirm)

	m, cmd := step(t, m, runes("y"))
	msg := cmd()
	assert.IsType(t, vaultResetMsg{}, msg)

	m, _ = step(t, m, msg)
	assert.Equal(t, "Vault reset", m.status)
}

func TestMainLoop_Reencrypt(t *testing.T) {
	m, vault, _ := newTestMainLoop(t)
	vault.EXPECT().ReencryptAll(gomock.Any()).Return(2, nil)

	m, cmd := step(t, m, runes("U"))
	assert.True(t, m.busy)
	m, _ = step(t, m, cmd())
	assert.Equal(t, "Re-encrypted 2 note(s)", m.status)
}

func TestMainLoop_AddNote(t *testing.T) {
	m, vault, _ := newTestMainLoop(t)
	vault.EXPECT().SaveNote(gomock.Any(), "Bank PIN", "4521", "Finance").Return(int64(3), nil)

	m, _ = step(t, m, runes("n"))
	assert.Equal(t, screenAdd, m.screen)

	m, _ = step(t, m, runes("Bank PIN"))
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = step(t, m, runes("Finance"))
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = step(t, m, runes("4521"))

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	m, _ = step(t, m, cmd())

	assert.Equal(t, screenList, m.screen)
	assert.Equal(t, "Note saved", m.status)
	assert.Nil(t, m.addInputs)
}

func TestMainLoop_AddNoteInvalid(t *testing.T) {
	m, vault, _ := newTestMainLoop(t)
	vault.EXPECT().SaveNote(gomock.Any(), "", "", "").
		Return(int64(0), fmt.Errorf("%w: %w", service.ErrInvalidInput, errors.New("title must not be empty")))

	m, _ = step(t, m, runes("n"))
	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = step(t, m, cmd())

	assert.Equal(t, screenAdd, m.screen)
	assert.Equal(t, app.MsgInvalidInput+": title must not be empty", m.errMsg)
}

func TestMainLoop_BusyBlocksActions(t *testing.T) {
	m, _, _ := newTestMainLoop(t)
	m.busy = true

	m, _ = step(t, m, enterKey)
	assert.Equal(t, "Please wait...", m.status)
	assert.Equal(t, screenList, m.screen)
}

func TestMainLoop_About(t *testing.T) {
	m, _, _ := newTestMainLoop(t)

	m, _ = step(t, m, runes("v"))
	assert.Equal(t, screenAbout, m.screen)
	assert.Contains(t, m.View(), "1.0.0")
	assert.Contains(t, m.View(), "abc123")

	m, _ = step(t, m, escKey)
	assert.Equal(t, screenList, m.screen)
}

func TestMainLoop_CtrlCDismissesPrompt(t *testing.T) {
	m, _, _ := newTestMainLoop(t)
	req := promptRequest{ctx: context.Background(), prompt: "p", reply: make(chan promptReply, 1)}

	m, _ = step(t, m, promptRequestedMsg{req: req})
	_, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.IsType(t, tea.QuitMsg{}, cmd())
	r := <-req.reply
	assert.ErrorIs(t, r.err, auth.ErrPromptDismissed)
}
