package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/vault-safe/internal/config"
	"github.com/MKhiriev/vault-safe/internal/logger"
)

// Storages groups the vault storage repositories into a single value that
// can be passed to the service layer.
type Storages struct {
	// NoteRepository is the SQLite-backed repository for encrypted notes.
	NoteRepository NoteRepository

	db *DB
}

// NewStorages opens the vault database described by cfg and wires the
// repositories. The schema is not touched until NoteRepository.Init.
func NewStorages(ctx context.Context, cfg config.Storage, clock Clock, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	return &Storages{
		NoteRepository: NewNoteRepository(db, clock, logger),
		db:             db,
	}, nil
}

// Close releases the database connection.
func (s *Storages) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
