package service

import (
	"context"

	"github.com/MKhiriev/vault-safe/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// VaultService is the only surface the presentation layer talks to. Every
// operation that produces plaintext is authorized by the access gate first.
type VaultService interface {
	// SaveNote validates the input, encrypts content under the master key
	// and stores it. An empty category becomes the configured default.
	// Returns the id of the new note.
	SaveNote(ctx context.Context, title, content, category string) (int64, error)

	// ListNotes returns metadata of every note, newest first. It never
	// decrypts anything and needs no authorization.
	ListNotes(ctx context.Context) ([]models.NoteSummary, error)

	// RevealNote authorizes through the gate and returns the decrypted
	// content of note id. A denied gate yields ErrAccessDenied and nothing
	// else is touched.
	RevealNote(ctx context.Context, id int64) (string, error)

	// DeleteNote permanently removes note id, authorizing first when the
	// delete policy requires it.
	DeleteNote(ctx context.Context, id int64) error

	// ResetVault authorizes, removes every note and discards the master key.
	// The next save creates a new key.
	ResetVault(ctx context.Context) error

	// ReencryptAll authorizes and rewrites every envelope not sealed with the
	// configured suite. Returns the number of rewritten notes.
	ReencryptAll(ctx context.Context) (int, error)
}

// AppInfoService exposes build metadata to the presentation layer.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
