// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package secretstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/99designs/keyring"

	"github.com/MKhiriev/vault-safe/internal/config"
	"github.com/MKhiriev/vault-safe/internal/logger"
)

type keyringStore struct {
	ring   keyring.Keyring
	prefix string
}

// NewKeyringStore wraps an already opened keyring. Every key is prefixed with
// prefix so several vaults can share one platform keychain.
func NewKeyringStore(ring keyring.Keyring, prefix string) SecretStore {
	return &keyringStore{ring: ring, prefix: prefix}
}

// OpenKeyring opens the platform keyring described by cfg. An empty backend
// list lets keyring pick the best available one in its preference order.
// The file backend is only eligible when a file password is configured.
func OpenKeyring(cfg config.Keys, log *logger.Logger) (SecretStore, error) {
	backends := allowedBackends(cfg)
	if len(backends) == 0 {
		log.Error().Str("func", "secretstore.OpenKeyring").Msg("no usable keyring backend")
		return nil, fmt.Errorf("%w: no usable keyring backend", ErrBackendUnavailable)
	}

	ring, err := keyring.Open(keyring.Config{
		ServiceName:                    cfg.ServiceName,
		AllowedBackends:                backends,
		FileDir:                        cfg.FileDir,
		FilePasswordFunc:               filePasswordFunc(cfg.FilePassword),
		KeychainTrustApplication:       true,
		KeychainAccessibleWhenUnlocked: true,
		LibSecretCollectionName:        cfg.ServiceName,
		KWalletAppID:                   cfg.ServiceName,
		KWalletFolder:                  cfg.ServiceName,
	})
	if err != nil {
		log.Err(err).Str("func", "secretstore.OpenKeyring").Msg("failed to open platform keyring")
		return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}

	log.Debug().Str("func", "secretstore.OpenKeyring").Strs("backends", cfg.KeyringBackends).Msg("platform keyring opened")
	return NewKeyringStore(ring, cfg.ServiceName+":"), nil
}

// allowedBackends resolves the keyring implementations OpenKeyring may try.
// The TUI owns the terminal, so the file backend is dropped unless it can be
// unlocked without asking.
func allowedBackends(cfg config.Keys) []keyring.BackendType {
	var backends []keyring.BackendType
	if len(cfg.KeyringBackends) == 0 {
		backends = keyring.AvailableBackends()
	} else {
		for _, b := range cfg.KeyringBackends {
			backends = append(backends, keyring.BackendType(b))
		}
	}

	if cfg.FilePassword == "" {
		backends = slices.DeleteFunc(backends, func(b keyring.BackendType) bool {
			return b == keyring.FileBackend
		})
	}
	return backends
}

// filePasswordFunc returns the password for the file backend. It never reads
// from the terminal.
func filePasswordFunc(password string) keyring.PromptFunc {
	if password != "" {
		return keyring.FixedStringPrompt(password)
	}
	return func(string) (string, error) {
		return "", fmt.Errorf("%w: file keyring password is not configured", ErrBackendUnavailable)
	}
}

func (k *keyringStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	item, err := k.ring.Get(k.prefix + key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("keyring get %q: %w", key, err)
	}
	// ArrayKeyring hands out its own slice; callers may wipe what they get.
	return bytes.Clone(item.Data), nil
}

func (k *keyringStore) Set(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := k.ring.Set(keyring.Item{
		Key:         k.prefix + key,
		Data:        bytes.Clone(data),
		Label:       k.prefix + key,
		Description: "vault-safe secret",
	})
	if err != nil {
		return fmt.Errorf("keyring set %q: %w", key, err)
	}
	return nil
}

func (k *keyringStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := k.ring.Remove(k.prefix + key); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("keyring delete %q: %w", key, err)
	}
	return nil
}
