package crypto

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// Cipher seals and opens note bodies.
//
// Encrypt produces a self-describing [Envelope] under a fresh random nonce.
// Decrypt either returns the full plaintext or an error wrapping
// [ErrIntegrityViolation]; partial plaintext is never returned.
type Cipher interface {
	Encrypt(plaintext []byte, key *MasterKey) (Envelope, error)
	Decrypt(env Envelope, key *MasterKey) ([]byte, error)

	// NeedsUpgrade reports whether env was sealed with a suite other than
	// the one new envelopes use.
	NeedsUpgrade(env Envelope) bool
}

// KeyProvider owns the vault master key.
type KeyProvider interface {
	// GetOrCreateMasterKey returns the master key, creating and persisting
	// one on first use. The same *MasterKey is returned until ResetVault.
	GetOrCreateMasterKey(ctx context.Context) (*MasterKey, error)

	// ResetVault discards the stored master key. Envelopes sealed under it
	// can no longer be opened.
	ResetVault(ctx context.Context) error
}
