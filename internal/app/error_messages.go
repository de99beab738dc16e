// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing wording of vault-safe.
//
// All Msg* constants are human-readable strings shown by the terminal UI.
// Keeping them in one place keeps the wording consistent, and UserMessage
// is the single place where internal errors are turned into them.
package app

const (
	// MsgAccessDenied is shown when the identity check was failed, dismissed
	// or timed out.
	MsgAccessDenied = "access denied"

	// MsgLockedOut is shown while the access gate refuses to prompt after too
	// many failed attempts.
	MsgLockedOut = "too many failed attempts, try again later"

	// MsgGateUnavailable is shown when no identity check can run, e.g. no
	// passphrase has been enrolled.
	MsgGateUnavailable = "identity check unavailable"

	// MsgNoteNotFound is shown when the selected note no longer exists.
	MsgNoteNotFound = "note not found"

	// MsgIntegrityViolation is shown when a note fails authentication on
	// decrypt. The note was modified or the vault key changed.
	MsgIntegrityViolation = "note is damaged or was encrypted with another key"

	// MsgKeyUnavailable is shown when the master key cannot be read from or
	// written to the system secret store.
	MsgKeyUnavailable = "vault key unavailable, check the system keychain"

	// MsgStoreError is shown when the vault database cannot be read or
	// written.
	MsgStoreError = "vault database error"

	// MsgInvalidInput prefixes validation failures of user input.
	MsgInvalidInput = "invalid input"

	// MsgCancelled is shown when an operation was interrupted.
	MsgCancelled = "operation cancelled"

	// MsgWeakPassphrase is shown when the enrolled passphrase is too short.
	MsgWeakPassphrase = "passphrase is too short"

	// MsgPassphraseMismatch is shown when the confirmation does not match.
	MsgPassphraseMismatch = "passphrases do not match"

	// MsgUnexpectedError is shown for anything not classified above.
	MsgUnexpectedError = "unexpected error, see the log file"
)
