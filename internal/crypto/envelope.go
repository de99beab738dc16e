// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/binary"
	"fmt"
)

// Envelope suites. The version byte is the first byte of every envelope.
const (
	// VersionAESGCM seals with AES-256-GCM.
	VersionAESGCM uint8 = 1
	// VersionChaCha20Poly1305 seals with ChaCha20-Poly1305. Default for new
	// envelopes.
	VersionChaCha20Poly1305 uint8 = 2

	// CurrentVersion is used by [NewEngine] when no version is requested.
	CurrentVersion = VersionChaCha20Poly1305
)

const (
	// NonceSize is the nonce length of both suites.
	NonceSize = 12
	// TagSize is the authentication tag length of both suites.
	TagSize = 16
	// MaxPlaintextSize bounds a single note body.
	MaxPlaintextSize = 1 << 20

	// version | nonceLen | nonce | ctLen
	headerSize = 1 + 1 + NonceSize + 4
)

// Envelope is the serialized form of an encrypted note body:
//
//	version u8 | nonceLen u8 | nonce | ctLen u32 (big endian) | ciphertext | tag
//
// The version, nonce length and ciphertext length are bound to the tag as
// associated data.
type Envelope []byte

// Version returns the suite byte, or 0 for an empty envelope.
func (e Envelope) Version() uint8 {
	if len(e) == 0 {
		return 0
	}
	return e[0]
}

// envelopeParts is a decoded envelope. Slices alias the source envelope.
type envelopeParts struct {
	version uint8
	nonce   []byte
	sealed  []byte // ciphertext || tag
	aad     []byte
}

// sealEnvelope frames sealed (ciphertext || tag, as returned by AEAD.Seal).
func sealEnvelope(version uint8, nonce, sealed []byte, ctLen int) Envelope {
	out := make([]byte, 0, headerSize+len(sealed))
	out = append(out, version, byte(len(nonce)))
	out = append(out, nonce...)
	out = binary.BigEndian.AppendUint32(out, uint32(ctLen))
	return append(out, sealed...)
}

// associatedData binds the framing fields to the tag.
func associatedData(version uint8, nonceLen int, ctLen int) []byte {
	aad := []byte{version, byte(nonceLen)}
	return binary.BigEndian.AppendUint32(aad, uint32(ctLen))
}

// parseEnvelope decodes env strictly: the nonce must be exactly NonceSize
// bytes, the tag exactly TagSize bytes, and nothing may trail the tag.
func parseEnvelope(env Envelope) (envelopeParts, error) {
	if len(env) < 2 {
		return envelopeParts{}, fmt.Errorf("%w: envelope too short", ErrIntegrityViolation)
	}

	version, nonceLen := env[0], int(env[1])
	if version != VersionAESGCM && version != VersionChaCha20Poly1305 {
		return envelopeParts{}, fmt.Errorf("%w %d", ErrUnsupportedVersion, version)
	}
	if nonceLen != NonceSize {
		return envelopeParts{}, fmt.Errorf("%w: nonce length %d", ErrIntegrityViolation, nonceLen)
	}
	if len(env) < headerSize {
		return envelopeParts{}, fmt.Errorf("%w: truncated header", ErrIntegrityViolation)
	}

	ctLen := binary.BigEndian.Uint32(env[2+NonceSize : headerSize])
	if ctLen > MaxPlaintextSize {
		return envelopeParts{}, fmt.Errorf("%w: ciphertext length %d", ErrIntegrityViolation, ctLen)
	}
	if len(env)-headerSize != int(ctLen)+TagSize {
		return envelopeParts{}, fmt.Errorf("%w: body length mismatch", ErrIntegrityViolation)
	}

	return envelopeParts{
		version: version,
		nonce:   env[2 : 2+NonceSize],
		sealed:  env[headerSize:],
		aad:     associatedData(version, nonceLen, int(ctLen)),
	}, nil
}
