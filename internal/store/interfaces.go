package store

import (
	"context"

	"github.com/MKhiriev/vault-safe/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// NoteRepository persists encrypted notes. Envelopes are opaque bytes to the
// repository; it never sees plaintext.
//
// All methods are safe for concurrent use; statements never interleave.
type NoteRepository interface {
	// Init prepares the schema. Calling it again is a no-op.
	Init(ctx context.Context) error

	// Insert stores a new note and returns it with the store-assigned ID and
	// CreatedAt. Any ID on the input is ignored. Ids are never reused, even
	// after deletes or a purge.
	Insert(ctx context.Context, note models.SecretNote) (models.SecretNote, error)

	// ListMetadata returns every note newest first (created_at, then id).
	// Envelopes are not read.
	ListMetadata(ctx context.Context) ([]models.NoteSummary, error)

	// GetEnvelope returns the stored envelope of note id, or ErrNoteNotFound.
	GetEnvelope(ctx context.Context, id int64) ([]byte, error)

	// Delete permanently removes note id, or returns ErrNoteNotFound.
	Delete(ctx context.Context, id int64) error

	// UpdateEnvelope replaces the envelope of note id. Used when notes are
	// re-sealed under a newer envelope version.
	UpdateEnvelope(ctx context.Context, id int64, envelope []byte) error

	// Purge removes every note and returns how many were removed.
	Purge(ctx context.Context) (int64, error)
}

// ErrorClassificator decides whether a failed database call is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
