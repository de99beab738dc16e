// Package auth implements the access gate that must authorize every
// operation producing note plaintext.
//
// A [Gate] drives one identity check at a time through an [IdentityChecker]
// and resolves it to a [Decision]. Checkers are the platform-facing side:
// [PassphraseChecker] verifies a locally enrolled passphrase and
// [ChainChecker] falls back across several checkers.
package auth
