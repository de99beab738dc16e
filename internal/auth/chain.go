package auth

import "context"

// ChainChecker delegates to the first available checker, in order. A
// platform biometric checker goes first with the passphrase as fallback.
type ChainChecker struct {
	checkers []IdentityChecker
}

// NewChainChecker returns a checker over checkers; nil entries are skipped.
func NewChainChecker(checkers ...IdentityChecker) *ChainChecker {
	c := &ChainChecker{}
	for _, ch := range checkers {
		if ch != nil {
			c.checkers = append(c.checkers, ch)
		}
	}
	return c
}

// IsAvailable implements [IdentityChecker].
func (c *ChainChecker) IsAvailable(ctx context.Context) bool {
	return c.first(ctx) != nil
}

// Authenticate implements [IdentityChecker].
func (c *ChainChecker) Authenticate(ctx context.Context, prompt string) (Result, error) {
	checker := c.first(ctx)
	if checker == nil {
		return Result{}, ErrCheckerUnavailable
	}
	return checker.Authenticate(ctx, prompt)
}

func (c *ChainChecker) first(ctx context.Context) IdentityChecker {
	for _, ch := range c.checkers {
		if ch.IsAvailable(ctx) {
			return ch
		}
	}
	return nil
}
