// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// engine is the private implementation of [Cipher].
type engine struct {
	// version is the suite used for new envelopes. Every known suite can
	// be decrypted regardless.
	version uint8
	random  io.Reader
}

// NewEngine constructs a [Cipher] that seals new envelopes with the given
// suite version. Zero selects [CurrentVersion].
func NewEngine(version uint8) (Cipher, error) {
	if version == 0 {
		version = CurrentVersion
	}
	if version != VersionAESGCM && version != VersionChaCha20Poly1305 {
		return nil, fmt.Errorf("%w %d", ErrUnsupportedVersion, version)
	}

	return &engine{version: version, random: rand.Reader}, nil
}

// newAEAD builds the AEAD of the given suite over key.
func newAEAD(version uint8, key []byte) (cipher.AEAD, error) {
	switch version {
	case VersionAESGCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("create cipher: %w", err)
		}
		return cipher.NewGCM(block)
	case VersionChaCha20Poly1305:
		return chacha20poly1305.New(key)
	default:
		return nil, fmt.Errorf("%w %d", ErrUnsupportedVersion, version)
	}
}

// Encrypt implements [Cipher]. Every call draws a fresh 12-byte nonce from
// the OS CSPRNG, so sealing the same plaintext twice yields different
// envelopes.
func (e *engine) Encrypt(plaintext []byte, key *MasterKey) (Envelope, error) {
	if len(plaintext) > MaxPlaintextSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrPlaintextTooLarge, len(plaintext), MaxPlaintextSize)
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(e.random, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	var env Envelope
	err := key.use(func(k []byte) error {
		aead, err := newAEAD(e.version, k)
		if err != nil {
			return err
		}

		aad := associatedData(e.version, NonceSize, len(plaintext))
		sealed := aead.Seal(nil, nonce, plaintext, aad)
		env = sealEnvelope(e.version, nonce, sealed, len(plaintext))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("encrypt: %w", err)
	}

	return env, nil
}

// Decrypt implements [Cipher]. Framing, version and tag are all checked
// before any plaintext is returned; every failure wraps
// [ErrIntegrityViolation] except an unusable key ([ErrKeyUnavailable]).
func (e *engine) Decrypt(env Envelope, key *MasterKey) ([]byte, error) {
	parts, err := parseEnvelope(env)
	if err != nil {
		return nil, err
	}

	var plaintext []byte
	err = key.use(func(k []byte) error {
		aead, err := newAEAD(parts.version, k)
		if err != nil {
			return err
		}

		plaintext, err = aead.Open(nil, parts.nonce, parts.sealed, parts.aad)
		if err != nil {
			// the AEAD error carries no detail worth keeping
			return ErrIntegrityViolation
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}

	// aead.Open returns nil for an empty plaintext
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}

// NeedsUpgrade implements [Cipher].
func (e *engine) NeedsUpgrade(env Envelope) bool {
	return env.Version() != e.version
}
