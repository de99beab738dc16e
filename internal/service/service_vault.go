// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/vault-safe/internal/auth"
	"github.com/MKhiriev/vault-safe/internal/config"
	"github.com/MKhiriev/vault-safe/internal/crypto"
	"github.com/MKhiriev/vault-safe/internal/logger"
	"github.com/MKhiriev/vault-safe/internal/store"
	"github.com/MKhiriev/vault-safe/internal/validators"
	"github.com/MKhiriev/vault-safe/models"
)

// Prompts shown by the identity check.
const (
	PromptReveal    = "Authenticate to view note"
	PromptDelete    = "Authenticate to delete note"
	PromptReset     = "Authenticate to reset the vault"
	PromptReencrypt = "Authenticate to re-encrypt the vault"
)

type vaultService struct {
	notes     store.NoteRepository
	keys      crypto.KeyProvider
	cipher    crypto.Cipher
	gate      auth.AccessGate
	validator validators.Validator
	cfg       config.Vault

	// rotation is held exclusively while the key or every envelope changes.
	rotation sync.RWMutex

	logger *logger.Logger
}

func NewVaultService(
	notes store.NoteRepository,
	keys crypto.KeyProvider,
	cipher crypto.Cipher,
	gate auth.AccessGate,
	validator validators.Validator,
	cfg config.Vault,
	logger *logger.Logger,
) VaultService {
	return &vaultService{
		notes:     notes,
		keys:      keys,
		cipher:    cipher,
		gate:      gate,
		validator: validator,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *vaultService) SaveNote(ctx context.Context, title, content, category string) (int64, error) {
	ctx, log := s.logger.WithOperation(ctx, "save_note")

	draft := models.NoteDraft{Title: title, Content: content, Category: strings.TrimSpace(category)}
	if err := s.validator.Validate(ctx, draft); err != nil {
		log.Info().Err(err).Str("func", "vaultService.SaveNote").Msg("note rejected by validation")
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if draft.Category == "" {
		draft.Category = s.defaultCategory()
	}

	s.rotation.RLock()
	defer s.rotation.RUnlock()

	key, err := s.keys.GetOrCreateMasterKey(ctx)
	if err != nil {
		return 0, fmt.Errorf("get master key: %w", err)
	}

	plaintext := []byte(draft.Content)
	env, err := s.cipher.Encrypt(plaintext, key)
	memguard.WipeBytes(plaintext)
	if err != nil {
		return 0, fmt.Errorf("encrypt note: %w", err)
	}

	stored, err := s.notes.Insert(ctx, models.SecretNote{
		Title:    draft.Title,
		Envelope: env,
		Category: draft.Category,
	})
	if err != nil {
		return 0, fmt.Errorf("store note: %w", err)
	}

	log.Info().Str("func", "vaultService.SaveNote").Int64("note_id", stored.ID).Str("category", stored.Category).Msg("note saved")
	return stored.ID, nil
}

func (s *vaultService) ListNotes(ctx context.Context) ([]models.NoteSummary, error) {
	ctx, log := s.logger.WithOperation(ctx, "list_notes")

	notes, err := s.notes.ListMetadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	log.Debug().Str("func", "vaultService.ListNotes").Int("count", len(notes)).Msg("notes listed")
	return notes, nil
}

func (s *vaultService) RevealNote(ctx context.Context, id int64) (string, error) {
	ctx, log := s.logger.WithOperation(ctx, "reveal_note")

	if err := s.validator.Validate(ctx, id); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.authorize(ctx, PromptReveal); err != nil {
		return "", err
	}

	s.rotation.RLock()
	defer s.rotation.RUnlock()

	env, err := s.notes.GetEnvelope(ctx, id)
	if err != nil {
		return "", fmt.Errorf("load note %d: %w", id, err)
	}

	key, err := s.keys.GetOrCreateMasterKey(ctx)
	if err != nil {
		return "", fmt.Errorf("get master key: %w", err)
	}

	plaintext, err := s.cipher.Decrypt(env, key)
	if err != nil {
		log.Warn().Err(err).Str("func", "vaultService.RevealNote").Int64("note_id", id).Msg("note failed to decrypt")
		return "", fmt.Errorf("decrypt note %d: %w", id, err)
	}
	content := string(plaintext)
	memguard.WipeBytes(plaintext)

	log.Info().Str("func", "vaultService.RevealNote").Int64("note_id", id).Msg("note revealed")
	return content, nil
}

func (s *vaultService) DeleteNote(ctx context.Context, id int64) error {
	ctx, log := s.logger.WithOperation(ctx, "delete_note")

	if err := s.validator.Validate(ctx, id); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if s.cfg.DeleteNeedsAuth() {
		if err := s.authorize(ctx, PromptDelete); err != nil {
			return err
		}
	}

	if err := s.notes.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete note %d: %w", id, err)
	}

	log.Info().Str("func", "vaultService.DeleteNote").Int64("note_id", id).Msg("note deleted")
	return nil
}

func (s *vaultService) ResetVault(ctx context.Context) error {
	ctx, log := s.logger.WithOperation(ctx, "reset_vault")

	if err := s.authorize(ctx, PromptReset); err != nil {
		return err
	}

	s.rotation.Lock()
	defer s.rotation.Unlock()

	// rows first: an empty vault with the old key is still consistent
	purged, err := s.notes.Purge(ctx)
	if err != nil {
		return fmt.Errorf("purge notes: %w", err)
	}

	if err = s.keys.ResetVault(ctx); err != nil {
		return fmt.Errorf("reset master key: %w", err)
	}

	s.gate.Lock()
	log.Warn().Str("func", "vaultService.ResetVault").Int64("purged", purged).Msg("vault reset")
	return nil
}

func (s *vaultService) ReencryptAll(ctx context.Context) (int, error) {
	ctx, log := s.logger.WithOperation(ctx, "reencrypt_all")

	if err := s.authorize(ctx, PromptReencrypt); err != nil {
		return 0, err
	}

	s.rotation.Lock()
	defer s.rotation.Unlock()

	notes, err := s.notes.ListMetadata(ctx)
	if err != nil {
		return 0, fmt.Errorf("list notes: %w", err)
	}

	key, err := s.keys.GetOrCreateMasterKey(ctx)
	if err != nil {
		return 0, fmt.Errorf("get master key: %w", err)
	}

	rewritten := 0
	for _, note := range notes {
		if err = ctx.Err(); err != nil {
			return rewritten, err
		}

		changed, err := s.reencryptOne(ctx, key, note.ID)
		if err != nil {
			log.Err(err).Str("func", "vaultService.ReencryptAll").Int64("note_id", note.ID).Int("rewritten", rewritten).Msg("re-encryption stopped")
			return rewritten, err
		}
		if changed {
			rewritten++
		}
	}

	log.Info().Str("func", "vaultService.ReencryptAll").Int("rewritten", rewritten).Int("total", len(notes)).Msg("re-encryption finished")
	return rewritten, nil
}

// reencryptOne rewrites a single envelope when it is not sealed with the
// configured suite and reports whether it did.
func (s *vaultService) reencryptOne(ctx context.Context, key *crypto.MasterKey, id int64) (bool, error) {
	env, err := s.notes.GetEnvelope(ctx, id)
	if err != nil {
		return false, fmt.Errorf("load note %d: %w", id, err)
	}
	if !s.cipher.NeedsUpgrade(env) {
		return false, nil
	}

	plaintext, err := s.cipher.Decrypt(env, key)
	if err != nil {
		return false, fmt.Errorf("decrypt note %d: %w", id, err)
	}
	upgraded, err := s.cipher.Encrypt(plaintext, key)
	memguard.WipeBytes(plaintext)
	if err != nil {
		return false, fmt.Errorf("encrypt note %d: %w", id, err)
	}

	if err = s.notes.UpdateEnvelope(ctx, id, upgraded); err != nil {
		return false, fmt.Errorf("store note %d: %w", id, err)
	}
	return true, nil
}

// authorize runs the gate and maps a refusal to a service error.
func (s *vaultService) authorize(ctx context.Context, prompt string) error {
	decision := s.gate.CheckAccess(ctx, prompt)
	if decision.Authorized {
		return nil
	}

	logger.FromContext(ctx).Info().
		Str("func", "vaultService.authorize").
		Str("state", decision.State.String()).
		Str("reason", decision.Reason).
		Msg("operation not authorized")

	switch {
	case decision.State == auth.StateError:
		return fmt.Errorf("%w: %s", ErrGateUnavailable, decision.Reason)
	case decision.Reason == auth.ReasonLockedOut:
		return ErrLockedOut
	}
	return fmt.Errorf("%w: %s", ErrAccessDenied, decision.Reason)
}

func (s *vaultService) defaultCategory() string {
	if c := strings.TrimSpace(s.cfg.DefaultCategory); c != "" {
		return c
	}
	return models.DefaultCategory
}
