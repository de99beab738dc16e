// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/vault-safe/internal/logger"
	"github.com/MKhiriev/vault-safe/internal/secretstore"
)

// MasterKeyItem is the secret-store item holding the raw master key.
const MasterKeyItem = "master-key"

// keyManager is the private implementation of [KeyProvider]. The key is
// kept only in the platform secret store and, once loaded, in the cached
// enclave. It never touches the vault database.
type keyManager struct {
	store  secretstore.SecretStore
	random io.Reader

	mu     sync.Mutex
	cached *MasterKey
}

// NewKeyManager constructs a [KeyProvider] backed by store.
func NewKeyManager(store secretstore.SecretStore) KeyProvider {
	return &keyManager{store: store, random: rand.Reader}
}

// GetOrCreateMasterKey implements [KeyProvider].
//
// Lookup order: cached key, then the secret store, then a freshly generated
// key that is persisted before it is returned. A store error other than
// "not found", or stored material of the wrong size, fails with
// [ErrKeyUnavailable]; no substitute key is ever produced.
func (m *keyManager) GetOrCreateMasterKey(ctx context.Context) (*MasterKey, error) {
	log := logger.FromContext(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cached != nil {
		return m.cached, nil
	}

	raw, err := m.store.Get(ctx, MasterKeyItem)
	switch {
	case err == nil:
		key, err := NewMasterKey(raw)
		if err != nil {
			log.Err(err).Str("func", "keyManager.GetOrCreateMasterKey").Msg("stored master key is malformed")
			return nil, fmt.Errorf("%w: %w", ErrKeyUnavailable, err)
		}
		log.Debug().Str("func", "keyManager.GetOrCreateMasterKey").Msg("master key loaded from secret store")
		m.cached = key
		return key, nil

	case errors.Is(err, secretstore.ErrNotFound):
		// first run, or the vault was reset

	default:
		log.Err(err).Str("func", "keyManager.GetOrCreateMasterKey").Msg("secret store unavailable")
		return nil, fmt.Errorf("%w: %w", ErrKeyUnavailable, err)
	}

	raw, err = generateKeyMaterial(m.random)
	if err != nil {
		log.Err(err).Str("func", "keyManager.GetOrCreateMasterKey").Msg("failed to generate master key")
		return nil, fmt.Errorf("%w: %w", ErrKeyUnavailable, err)
	}

	if err = m.store.Set(ctx, MasterKeyItem, raw); err != nil {
		memguard.WipeBytes(raw)
		log.Err(err).Str("func", "keyManager.GetOrCreateMasterKey").Msg("failed to persist master key")
		return nil, fmt.Errorf("%w: %w", ErrKeyUnavailable, err)
	}

	key, err := NewMasterKey(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyUnavailable, err)
	}

	log.Info().Str("func", "keyManager.GetOrCreateMasterKey").Msg("new master key created")
	m.cached = key
	return key, nil
}

// ResetVault implements [KeyProvider]. The cached key is dropped even when
// the store delete fails, so a failed reset never keeps serving the old key.
func (m *keyManager) ResetVault(ctx context.Context) error {
	log := logger.FromContext(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.cached = nil

	if err := m.store.Delete(ctx, MasterKeyItem); err != nil {
		log.Err(err).Str("func", "keyManager.ResetVault").Msg("failed to delete master key")
		return fmt.Errorf("%w: %w", ErrKeyUnavailable, err)
	}

	log.Info().Str("func", "keyManager.ResetVault").Msg("master key discarded")
	return nil
}
