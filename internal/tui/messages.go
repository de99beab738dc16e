package tui

import (
	"github.com/MKhiriev/vault-safe/models"
)

type listLoadedMsg struct {
	items []models.NoteSummary
	err   error
}

type noteSavedMsg struct {
	id  int64
	err error
}

type noteRevealedMsg struct {
	note    models.NoteSummary
	content string
	err     error
}

type noteDeletedMsg struct {
	id  int64
	err error
}

type vaultResetMsg struct {
	err error
}

type reencryptedMsg struct {
	count int
	err   error
}

type promptRequestedMsg struct {
	req promptRequest
}

type promptExpiredMsg struct {
	req promptRequest
}

type clipboardClearMsg struct {
	content string
}

type clearStatusMsg struct{}
