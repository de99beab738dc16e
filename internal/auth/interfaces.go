package auth

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/auth_mock.go -package=mock

// AccessGate authorizes operations that produce plaintext.
type AccessGate interface {
	// CheckAccess runs (or reuses) an identity check for reason. It always
	// resolves; failures are reported through the Decision, never by
	// blocking or panicking.
	CheckAccess(ctx context.Context, reason string) Decision

	// Lock ends any grace window immediately.
	Lock()

	// State reports the current gate state.
	State() State
}

// Result is the raw outcome of one identity check.
type Result struct {
	Success bool
}

// IdentityChecker is the identity-check primitive (biometric sensor,
// device credential, passphrase).
type IdentityChecker interface {
	// IsAvailable reports whether the checker can run: hardware is present
	// and a credential is enrolled.
	IsAvailable(ctx context.Context) bool

	// Authenticate asks the user to prove their identity. A dismissed
	// prompt returns ErrPromptDismissed; a cancelled ctx returns ctx.Err().
	Authenticate(ctx context.Context, prompt string) (Result, error)
}

// CredentialPrompter asks the user for a secret. Implemented by the
// terminal UI.
type CredentialPrompter interface {
	PromptCredential(ctx context.Context, prompt string) (string, error)
}

// PrompterFunc adapts a function to [CredentialPrompter].
type PrompterFunc func(ctx context.Context, prompt string) (string, error)

// PromptCredential implements [CredentialPrompter].
func (f PrompterFunc) PromptCredential(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
