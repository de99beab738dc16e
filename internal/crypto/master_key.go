// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/awnumar/memguard"
)

// MasterKeySize is the length of the vault master key (256 bits).
const MasterKeySize = 32

// MasterKey is the symmetric key all envelopes are sealed under. The key
// bytes live encrypted in a memguard enclave and are decrypted into locked,
// guarded memory only for the duration of one AEAD call.
//
// A MasterKey is immutable after creation and safe for concurrent use.
type MasterKey struct {
	enclave *memguard.Enclave
}

// NewMasterKey moves raw into a new MasterKey. raw is wiped, whether or not
// it has the right length.
func NewMasterKey(raw []byte) (*MasterKey, error) {
	if len(raw) != MasterKeySize {
		memguard.WipeBytes(raw)
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeySize, len(raw))
	}

	return &MasterKey{enclave: memguard.NewEnclave(raw)}, nil
}

// generateKeyMaterial reads MasterKeySize bytes from the OS CSPRNG.
func generateKeyMaterial(random io.Reader) ([]byte, error) {
	raw := make([]byte, MasterKeySize)
	if _, err := io.ReadFull(random, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// GenerateMasterKey returns a fresh random MasterKey that is not persisted
// anywhere.
func GenerateMasterKey() (*MasterKey, error) {
	raw, err := generateKeyMaterial(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate master key: %w", err)
	}
	return NewMasterKey(raw)
}

// use opens the enclave, hands the plaintext key to fn and destroys the
// buffer afterwards. fn must not retain key.
func (k *MasterKey) use(fn func(key []byte) error) error {
	if k == nil || k.enclave == nil {
		return ErrKeyUnavailable
	}

	buf, err := k.enclave.Open()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrKeyUnavailable, err)
	}
	defer buf.Destroy()

	return fn(buf.Bytes())
}
