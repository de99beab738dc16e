package crypto

import (
	"errors"
	"fmt"
)

var (
	// ErrIntegrityViolation is returned by Decrypt for any envelope that does
	// not authenticate under the given key: tampered bytes, wrong key,
	// truncated or malformed framing.
	ErrIntegrityViolation = errors.New("envelope integrity violation")

	// ErrUnsupportedVersion is an [ErrIntegrityViolation] for envelopes whose
	// version byte names no known suite.
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported envelope version", ErrIntegrityViolation)

	// ErrPlaintextTooLarge is returned by Encrypt for plaintext above
	// [MaxPlaintextSize].
	ErrPlaintextTooLarge = errors.New("plaintext too large")

	// ErrKeyUnavailable means the master key could not be loaded, created or
	// opened. There is no fallback key.
	ErrKeyUnavailable = errors.New("master key unavailable")

	// ErrInvalidKeySize is returned when raw key material is not
	// [MasterKeySize] bytes long.
	ErrInvalidKeySize = errors.New("invalid master key size")
)
