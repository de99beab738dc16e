// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/vault-safe/internal/logger"
	"github.com/MKhiriev/vault-safe/models"
)

// Clock returns the current time. Injected so insert timestamps are
// deterministic in tests.
type Clock func() time.Time

type noteRepository struct {
	*DB
	logger *logger.Logger
	now    Clock
}

// NewNoteRepository constructs a [NoteRepository] on db. A nil clock uses
// time.Now. Timestamps are always stored in UTC.
func NewNoteRepository(db *DB, clock Clock, logger *logger.Logger) NoteRepository {
	if clock == nil {
		clock = time.Now
	}
	return &noteRepository{
		DB:     db,
		logger: logger,
		now:    clock,
	}
}

// Init implements [NoteRepository] by running the embedded migrations.
func (r *noteRepository) Init(ctx context.Context) error {
	log := logger.FromContext(ctx)

	err := r.withRetry(ctx, func(context.Context) error {
		return r.DB.Migrate()
	})
	if err != nil {
		log.Err(err).Str("func", "noteRepository.Init").Msg("failed to migrate vault database")
		return fmt.Errorf("%w: %w", ErrStore, err)
	}

	log.Debug().Str("func", "noteRepository.Init").Msg("vault schema is up to date")
	return nil
}

// Insert implements [NoteRepository].
func (r *noteRepository) Insert(ctx context.Context, note models.SecretNote) (models.SecretNote, error) {
	log := logger.FromContext(ctx)

	note.CreatedAt = r.now().UTC()
	query, args, err := buildInsertNoteQuery(note.Title, note.Category, note.Envelope, note.CreatedAt)
	if err != nil {
		return models.SecretNote{}, fmt.Errorf("%w: %w: %w", ErrStore, ErrBuildingSQLQuery, err)
	}

	err = r.withRetry(ctx, func(ctx context.Context) error {
		res, err := r.DB.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		note.ID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.Insert").
			Str("category", note.Category).
			Msg("failed to insert note")
		return models.SecretNote{}, fmt.Errorf("%w: %w: %w", ErrStore, ErrExecutingStatement, err)
	}

	log.Debug().Str("func", "noteRepository.Insert").Int64("note_id", note.ID).Msg("note inserted")
	return note, nil
}

// ListMetadata implements [NoteRepository].
func (r *noteRepository) ListMetadata(ctx context.Context) ([]models.NoteSummary, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListNotesQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrStore, ErrBuildingSQLQuery, err)
	}

	var notes []models.NoteSummary
	err = r.withRetry(ctx, func(ctx context.Context) error {
		notes = notes[:0]

		rows, err := r.DB.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var n models.NoteSummary
			if err := rows.Scan(&n.ID, &n.Title, &n.Category, &n.CreatedAt); err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, err)
			}
			n.CreatedAt = n.CreatedAt.UTC()
			notes = append(notes, n)
		}
		return rows.Err()
	})
	if err != nil {
		log.Err(err).Str("func", "noteRepository.ListMetadata").Msg("failed to list notes")
		return nil, fmt.Errorf("%w: %w: %w", ErrStore, ErrExecutingQuery, err)
	}

	if notes == nil {
		notes = []models.NoteSummary{}
	}
	return notes, nil
}

// GetEnvelope implements [NoteRepository].
func (r *noteRepository) GetEnvelope(ctx context.Context, id int64) ([]byte, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetEnvelopeQuery(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrStore, ErrBuildingSQLQuery, err)
	}

	var envelope []byte
	err = r.withRetry(ctx, func(ctx context.Context) error {
		return r.DB.QueryRowContext(ctx, query, args...).Scan(&envelope)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id=%d", ErrNoteNotFound, id)
	}
	if err != nil {
		log.Err(err).Str("func", "noteRepository.GetEnvelope").Int64("note_id", id).Msg("failed to read note envelope")
		return nil, fmt.Errorf("%w: %w: %w", ErrStore, ErrExecutingQuery, err)
	}

	return envelope, nil
}

// Delete implements [NoteRepository]. The row is removed by one DELETE
// statement; there is no soft delete.
func (r *noteRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := buildDeleteNoteQuery(id)
	if err != nil {
		return fmt.Errorf("%w: %w: %w", ErrStore, ErrBuildingSQLQuery, err)
	}

	return r.execSingleRow(ctx, "noteRepository.Delete", id, query, args)
}

// UpdateEnvelope implements [NoteRepository].
func (r *noteRepository) UpdateEnvelope(ctx context.Context, id int64, envelope []byte) error {
	query, args, err := buildUpdateEnvelopeQuery(id, envelope)
	if err != nil {
		return fmt.Errorf("%w: %w: %w", ErrStore, ErrBuildingSQLQuery, err)
	}

	return r.execSingleRow(ctx, "noteRepository.UpdateEnvelope", id, query, args)
}

// Purge implements [NoteRepository]. The AUTOINCREMENT sequence is kept, so
// ids handed out before the purge are never reused.
func (r *noteRepository) Purge(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildPurgeQuery()
	if err != nil {
		return 0, fmt.Errorf("%w: %w: %w", ErrStore, ErrBuildingSQLQuery, err)
	}

	var removed int64
	err = r.withRetry(ctx, func(ctx context.Context) error {
		res, err := r.DB.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "noteRepository.Purge").Msg("failed to purge notes")
		return 0, fmt.Errorf("%w: %w: %w", ErrStore, ErrExecutingStatement, err)
	}

	log.Info().Str("func", "noteRepository.Purge").Int64("removed", removed).Msg("vault purged")
	return removed, nil
}

// execSingleRow runs a statement that must affect exactly the row id.
func (r *noteRepository) execSingleRow(ctx context.Context, funcName string, id int64, query string, args []any) error {
	log := logger.FromContext(ctx)

	var affected int64
	err := r.withRetry(ctx, func(ctx context.Context) error {
		res, err := r.DB.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		log.Err(err).Str("func", funcName).Int64("note_id", id).Msg("failed to execute statement")
		return fmt.Errorf("%w: %w: %w", ErrStore, ErrExecutingStatement, err)
	}

	if affected == 0 {
		log.Debug().Str("func", funcName).Int64("note_id", id).Msg("note not found")
		return fmt.Errorf("%w: id=%d", ErrNoteNotFound, id)
	}

	return nil
}
