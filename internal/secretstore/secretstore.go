// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package secretstore adapts platform secret storage (OS keychain,
// secret-service, kwallet, wincred or an encrypted file) to the small
// get/set/delete contract the vault needs to keep its master key and gate
// verifier outside the vault database.
package secretstore

import (
	"context"
	"errors"
)

//go:generate mockgen -source=secretstore.go -destination=../mock/secret_store_mock.go -package=mock

// ErrNotFound is returned by [SecretStore.Get] when no item is stored under
// the requested key. Any other error means the store itself is unusable.
var ErrNotFound = errors.New("secret not found")

// ErrBackendUnavailable is returned by [New] when the configured backend
// cannot be opened on this machine.
var ErrBackendUnavailable = errors.New("secret store backend unavailable")

// SecretStore is the secret-storage primitive consumed by the key manager
// and the passphrase checker.
type SecretStore interface {
	// Get returns the bytes stored under key, or [ErrNotFound].
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores data under key, replacing any previous value.
	Set(ctx context.Context, key string, data []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
