package app

import (
	"context"
	"errors"

	"github.com/MKhiriev/vault-safe/internal/auth"
	"github.com/MKhiriev/vault-safe/internal/crypto"
	"github.com/MKhiriev/vault-safe/internal/service"
	"github.com/MKhiriev/vault-safe/internal/store"
)

// ErrPassphraseMismatch is returned by enrollment when the confirmation
// differs from the passphrase.
var ErrPassphraseMismatch = errors.New("passphrase confirmation mismatch")

// UserMessage maps err to text suitable for the UI. It never includes note
// content or key material; internal details stay in the log file.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, service.ErrGateUnavailable):
		return MsgGateUnavailable
	case errors.Is(err, service.ErrLockedOut):
		return MsgLockedOut
	case errors.Is(err, service.ErrAccessDenied):
		return MsgAccessDenied
	case errors.Is(err, service.ErrInvalidInput):
		return MsgInvalidInput + ": " + innermost(err)
	case errors.Is(err, store.ErrNoteNotFound):
		return MsgNoteNotFound
	case errors.Is(err, crypto.ErrIntegrityViolation):
		return MsgIntegrityViolation
	case errors.Is(err, crypto.ErrKeyUnavailable):
		return MsgKeyUnavailable
	case errors.Is(err, store.ErrStore):
		return MsgStoreError
	case errors.Is(err, auth.ErrWeakPassphrase):
		return MsgWeakPassphrase
	case errors.Is(err, ErrPassphraseMismatch):
		return MsgPassphraseMismatch
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return MsgCancelled
	default:
		return MsgUnexpectedError
	}
}

// innermost returns the message of the deepest wrapped error, which for
// validation failures is the rule that was broken.
func innermost(err error) string {
	for {
		var next error
		switch e := err.(type) {
		case interface{ Unwrap() []error }:
			errs := e.Unwrap()
			if len(errs) > 0 {
				next = errs[len(errs)-1]
			}
		case interface{ Unwrap() error }:
			next = e.Unwrap()
		}
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
