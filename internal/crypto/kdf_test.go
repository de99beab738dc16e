package crypto

import (
	"bytes"
	"testing"
)

// fastParams keeps Argon2id cheap in tests.
var fastParams = Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32}

func TestGenerateSalt_LengthAndRandomness(t *testing.T) {
	s1, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt error: %v", err)
	}
	s2, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt error: %v", err)
	}

	if len(s1) != SaltSize || len(s2) != SaltSize {
		t.Fatalf("salt lengths = %d/%d, want %d", len(s1), len(s2), SaltSize)
	}
	if bytes.Equal(s1, s2) {
		t.Fatalf("expected salts to differ, but they are equal")
	}
}

func TestDeriveKey_DeterministicForSameInputs(t *testing.T) {
	secret := []byte("correct horse battery staple")
	salt := bytes.Repeat([]byte{0xAB}, SaltSize)

	k1 := DeriveKey(secret, salt, fastParams)
	k2 := DeriveKey(secret, salt, fastParams)

	if len(k1) != 32 {
		t.Fatalf("key length = %d, want 32", len(k1))
	}
	if !bytes.Equal(k1, k2) {
		t.Fatalf("expected keys to match for same secret+salt")
	}
}

func TestDeriveKey_DifferentSaltProducesDifferentKey(t *testing.T) {
	secret := []byte("same passphrase")

	k1 := DeriveKey(secret, bytes.Repeat([]byte{0x01}, SaltSize), fastParams)
	k2 := DeriveKey(secret, bytes.Repeat([]byte{0x02}, SaltSize), fastParams)

	if bytes.Equal(k1, k2) {
		t.Fatalf("expected different keys for different salts")
	}
}

func TestVerifySecret(t *testing.T) {
	salt := bytes.Repeat([]byte{0x07}, SaltSize)
	want := DeriveKey([]byte("open sesame"), salt, fastParams)

	if !VerifySecret([]byte("open sesame"), salt, want, fastParams) {
		t.Fatalf("expected the enrolled secret to verify")
	}
	if VerifySecret([]byte("open sesame!"), salt, want, fastParams) {
		t.Fatalf("expected a different secret to be rejected")
	}
	if VerifySecret([]byte("open sesame"), salt, want[:16], fastParams) {
		t.Fatalf("expected a truncated verifier to be rejected")
	}
}

func TestDefaultArgon2Params(t *testing.T) {
	p := DefaultArgon2Params()
	if p.Time != 1 || p.Memory != 64*1024 || p.Threads != 4 || p.KeyLen != 32 {
		t.Fatalf("unexpected defaults: %+v", p)
	}
}
