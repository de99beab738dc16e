// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package auth

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/MKhiriev/vault-safe/internal/config"
	"github.com/MKhiriev/vault-safe/internal/crypto"
	"github.com/MKhiriev/vault-safe/internal/logger"
	"github.com/MKhiriev/vault-safe/internal/secretstore"
)

// VerifierItem is the secret store item written by [PassphraseChecker.Enroll].
// Salt, KDF parameters and hash live in one item so a re-enrollment replaces
// them together or not at all.
const VerifierItem = "gate-verifier"

// MinPassphraseLength is the minimum number of characters accepted by Enroll.
const MinPassphraseLength = 8

// verifier layout: time u32 | memory u32 | threads u8 | saltLen u8 | salt | hash
const verifierHeaderSize = 10

// PassphraseChecker verifies a locally enrolled passphrase. Only an Argon2id
// verifier is stored; the passphrase itself never leaves memory.
type PassphraseChecker struct {
	store    secretstore.SecretStore
	prompter CredentialPrompter
	params   crypto.Argon2Params
}

// NewPassphraseChecker builds a checker that keeps its verifier in store and
// reads passphrases through prompter. params apply to new enrollments;
// verification uses the parameters stored with the verifier.
func NewPassphraseChecker(store secretstore.SecretStore, prompter CredentialPrompter, params crypto.Argon2Params) *PassphraseChecker {
	return &PassphraseChecker{store: store, prompter: prompter, params: params}
}

// ArgonParamsFromConfig builds KDF parameters from gate configuration.
func ArgonParamsFromConfig(cfg config.Gate) crypto.Argon2Params {
	p := crypto.DefaultArgon2Params()
	if cfg.ArgonTime > 0 {
		p.Time = cfg.ArgonTime
	}
	if cfg.ArgonMemory > 0 {
		p.Memory = cfg.ArgonMemory
	}
	if cfg.ArgonThreads > 0 {
		p.Threads = cfg.ArgonThreads
	}
	return p
}

// IsEnrolled reports whether a verifier is stored.
func (c *PassphraseChecker) IsEnrolled(ctx context.Context) (bool, error) {
	_, err := c.store.Get(ctx, VerifierItem)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, secretstore.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Enroll replaces the stored verifier with one for passphrase.
func (c *PassphraseChecker) Enroll(ctx context.Context, passphrase string) error {
	log := logger.FromContext(ctx)

	if utf8.RuneCountInString(passphrase) < MinPassphraseLength {
		return fmt.Errorf("%w: at least %d characters required", ErrWeakPassphrase, MinPassphraseLength)
	}

	salt, err := crypto.GenerateSalt()
	if err != nil {
		log.Err(err).Str("func", "PassphraseChecker.Enroll").Msg("failed to generate salt")
		return err
	}

	hash := crypto.DeriveKey([]byte(passphrase), salt, c.params)
	if err = c.store.Set(ctx, VerifierItem, encodeVerifier(c.params, salt, hash)); err != nil {
		log.Err(err).Str("func", "PassphraseChecker.Enroll").Msg("failed to store verifier")
		return err
	}

	log.Info().Str("func", "PassphraseChecker.Enroll").Msg("passphrase enrolled")
	return nil
}

// IsAvailable implements [IdentityChecker]: a prompter is wired and a
// passphrase is enrolled.
func (c *PassphraseChecker) IsAvailable(ctx context.Context) bool {
	if c.prompter == nil {
		return false
	}
	enrolled, err := c.IsEnrolled(ctx)
	return err == nil && enrolled
}

// Authenticate implements [IdentityChecker].
func (c *PassphraseChecker) Authenticate(ctx context.Context, prompt string) (Result, error) {
	salt, params, want, err := c.loadVerifier(ctx)
	if err != nil {
		return Result{}, err
	}

	passphrase, err := c.prompter.PromptCredential(ctx, prompt)
	if err != nil {
		return Result{}, err
	}
	if err = ctx.Err(); err != nil {
		return Result{}, err
	}

	return Result{Success: crypto.VerifySecret([]byte(passphrase), salt, want, params)}, nil
}

func (c *PassphraseChecker) loadVerifier(ctx context.Context) ([]byte, crypto.Argon2Params, []byte, error) {
	raw, err := c.store.Get(ctx, VerifierItem)
	if err != nil {
		if errors.Is(err, secretstore.ErrNotFound) {
			return nil, crypto.Argon2Params{}, nil, ErrNotEnrolled
		}
		return nil, crypto.Argon2Params{}, nil, err
	}

	return decodeVerifier(raw)
}

func encodeVerifier(p crypto.Argon2Params, salt, hash []byte) []byte {
	out := make([]byte, verifierHeaderSize, verifierHeaderSize+len(salt)+len(hash))
	binary.BigEndian.PutUint32(out[0:4], p.Time)
	binary.BigEndian.PutUint32(out[4:8], p.Memory)
	out[8] = p.Threads
	out[9] = byte(len(salt))
	out = append(out, salt...)
	return append(out, hash...)
}

func decodeVerifier(raw []byte) (salt []byte, p crypto.Argon2Params, hash []byte, err error) {
	if len(raw) <= verifierHeaderSize {
		return nil, crypto.Argon2Params{}, nil, ErrCorruptVerifier
	}

	p = crypto.Argon2Params{
		Time:    binary.BigEndian.Uint32(raw[0:4]),
		Memory:  binary.BigEndian.Uint32(raw[4:8]),
		Threads: raw[8],
	}
	if p.Time == 0 || p.Memory == 0 || p.Threads == 0 {
		return nil, crypto.Argon2Params{}, nil, ErrCorruptVerifier
	}

	saltLen := int(raw[9])
	if saltLen == 0 || len(raw) <= verifierHeaderSize+saltLen {
		return nil, crypto.Argon2Params{}, nil, ErrCorruptVerifier
	}

	salt = raw[verifierHeaderSize : verifierHeaderSize+saltLen]
	hash = raw[verifierHeaderSize+saltLen:]
	p.KeyLen = uint32(len(hash))
	return salt, p, hash, nil
}
