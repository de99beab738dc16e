package auth

import "errors"

var (
	// ErrPromptDismissed is returned by a [CredentialPrompter] when the user
	// closes the prompt without answering.
	ErrPromptDismissed = errors.New("prompt dismissed")

	// ErrNotEnrolled means no passphrase has been enrolled yet.
	ErrNotEnrolled = errors.New("passphrase not enrolled")

	// ErrCheckerUnavailable means no identity checker can run.
	ErrCheckerUnavailable = errors.New("identity checker unavailable")

	// ErrWeakPassphrase is returned by Enroll for passphrases shorter than
	// [MinPassphraseLength].
	ErrWeakPassphrase = errors.New("passphrase too short")

	// ErrCorruptVerifier means the stored verifier cannot be decoded.
	ErrCorruptVerifier = errors.New("stored passphrase verifier is corrupt")
)
