// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"io"

	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of salts produced by [GenerateSalt].
const SaltSize = 16

// Argon2Params are the Argon2id tuning parameters. They are kept in a value
// so they can be adjusted per deployment target (e.g. slow laptops vs.
// desktops) through configuration.
type Argon2Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
}

// DefaultArgon2Params returns the parameters recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:    1,
		Memory:  64 * 1024, // 64 MiB
		Threads: 4,
		KeyLen:  32, // 256 bits
	}
}

// GenerateSalt reads SaltSize random bytes from the OS CSPRNG.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// DeriveKey derives a p.KeyLen-byte key from secret and salt using Argon2id.
// The same inputs always produce the same output.
func DeriveKey(secret, salt []byte, p Argon2Params) []byte {
	return argon2.IDKey(secret, salt, p.Time, p.Memory, p.Threads, p.KeyLen)
}

// VerifySecret derives a key from secret and compares it with want in
// constant time.
func VerifySecret(secret, salt, want []byte, p Argon2Params) bool {
	got := DeriveKey(secret, salt, p)
	return subtle.ConstantTimeCompare(got, want) == 1
}
