// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/vault-safe/internal/config"
	"github.com/MKhiriev/vault-safe/internal/logger"
)

// Policy controls retries and reuse of a successful check.
type Policy struct {
	// MaxAttempts consecutive mismatches trigger a lockout.
	MaxAttempts int
	// LockoutBase is the first lockout; each further lockout doubles it.
	LockoutBase time.Duration
	// LockoutMax caps the lockout duration.
	LockoutMax time.Duration
	// GraceWindow lets an Authorized decision be reused. Zero disables it.
	GraceWindow time.Duration
	// PromptTimeout bounds a single prompt. Zero means no bound.
	PromptTimeout time.Duration
}

// PolicyFromConfig converts gate configuration to a [Policy].
func PolicyFromConfig(cfg config.Gate) Policy {
	return Policy{
		MaxAttempts:   cfg.MaxAttempts,
		LockoutBase:   cfg.LockoutBase,
		LockoutMax:    cfg.LockoutMax,
		GraceWindow:   cfg.GraceWindow,
		PromptTimeout: cfg.PromptTimeout,
	}
}

// Option configures a [Gate].
type Option func(*Gate)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		g.now = now
	}
}

// Gate is the default [AccessGate].
type Gate struct {
	checker IdentityChecker
	policy  Policy
	now     func() time.Time

	// prompt holds a token while a check is outstanding.
	prompt chan struct{}

	mu           sync.Mutex
	state        State
	authorizedAt time.Time
	failures     int
	lockouts     int
	lockedUntil  time.Time
}

// NewGate returns a gate in [StateIdle].
func NewGate(checker IdentityChecker, policy Policy, opts ...Option) *Gate {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = config.DefaultMaxAttempts
	}
	if policy.LockoutBase <= 0 {
		policy.LockoutBase = config.DefaultLockoutBase
	}
	if policy.LockoutMax < policy.LockoutBase {
		policy.LockoutMax = policy.LockoutBase
	}

	g := &Gate{
		checker: checker,
		policy:  policy,
		now:     time.Now,
		prompt:  make(chan struct{}, 1),
		state:   StateIdle,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CheckAccess implements [AccessGate].
func (g *Gate) CheckAccess(ctx context.Context, reason string) Decision {
	log := logger.FromContext(ctx)

	// select picks randomly when both cases are ready
	if ctx.Err() != nil {
		return g.resolve(log, StateDenied, ReasonCancelled)
	}

	select {
	case g.prompt <- struct{}{}:
	case <-ctx.Done():
		return g.resolve(log, StateDenied, ReasonCancelled)
	}
	defer func() { <-g.prompt }()

	if d, ok := g.shortCircuit(); ok {
		log.Debug().Str("func", "Gate.CheckAccess").Str("reason", d.Reason).Msg("decision without prompt")
		return d
	}

	if g.checker == nil || !g.checker.IsAvailable(ctx) {
		return g.resolve(log, StateError, ReasonUnavailable)
	}

	g.setState(StatePrompting)

	promptCtx := ctx
	if g.policy.PromptTimeout > 0 {
		var cancel context.CancelFunc
		promptCtx, cancel = context.WithTimeout(ctx, g.policy.PromptTimeout)
		defer cancel()
	}

	res, err := g.checker.Authenticate(promptCtx, reason)
	switch {
	case ctx.Err() != nil:
		return g.resolve(log, StateDenied, ReasonCancelled)
	case promptCtx.Err() != nil || errors.Is(err, context.DeadlineExceeded):
		return g.resolve(log, StateDenied, ReasonTimedOut)
	case errors.Is(err, ErrPromptDismissed) || errors.Is(err, context.Canceled):
		return g.resolve(log, StateDenied, ReasonDismissed)
	case err != nil:
		log.Err(err).Str("func", "Gate.CheckAccess").Msg("identity check failed")
		return g.resolve(log, StateError, ReasonCheckFailed)
	case res.Success:
		return g.authorize(log)
	default:
		return g.reject(log)
	}
}

// Lock implements [AccessGate].
func (g *Gate) Lock() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.authorizedAt = time.Time{}
	if g.state == StateAuthorized {
		g.state = StateIdle
	}
}

// State implements [AccessGate].
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state
}

// shortCircuit answers from the grace window or an active lockout.
func (g *Gate) shortCircuit() (Decision, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if now.Before(g.lockedUntil) {
		g.state = StateDenied
		return Decision{State: StateDenied, Reason: ReasonLockedOut, Timestamp: now}, true
	}

	if g.policy.GraceWindow > 0 && g.state == StateAuthorized && !g.authorizedAt.IsZero() &&
		now.Sub(g.authorizedAt) < g.policy.GraceWindow {
		return Decision{Authorized: true, State: StateAuthorized, Reason: ReasonGraceWindow, Timestamp: now}, true
	}

	return Decision{}, false
}

func (g *Gate) authorize(log *logger.Logger) Decision {
	g.mu.Lock()
	now := g.now()
	g.failures = 0
	g.lockouts = 0
	g.lockedUntil = time.Time{}
	g.authorizedAt = now
	g.state = StateAuthorized
	g.mu.Unlock()

	log.Info().Str("func", "Gate.CheckAccess").Msg("access authorized")
	return Decision{Authorized: true, State: StateAuthorized, Reason: ReasonAuthorized, Timestamp: now}
}

func (g *Gate) reject(log *logger.Logger) Decision {
	g.mu.Lock()
	now := g.now()
	g.failures++
	g.authorizedAt = time.Time{}
	g.state = StateDenied

	if g.failures >= g.policy.MaxAttempts {
		g.lockouts++
		g.failures = 0
		g.lockedUntil = now.Add(lockoutDuration(g.policy, g.lockouts))
		log.Warn().Str("func", "Gate.CheckAccess").
			Int("lockouts", g.lockouts).
			Time("locked_until", g.lockedUntil).
			Msg("too many failed attempts, gate locked out")
	}
	g.mu.Unlock()

	log.Info().Str("func", "Gate.CheckAccess").Msg("access denied")
	return Decision{State: StateDenied, Reason: ReasonNotMatched, Timestamp: now}
}

func (g *Gate) resolve(log *logger.Logger, state State, reason string) Decision {
	g.mu.Lock()
	now := g.now()
	g.state = state
	g.authorizedAt = time.Time{}
	g.mu.Unlock()

	log.Info().Str("func", "Gate.CheckAccess").Str("state", state.String()).Str("reason", reason).Msg("access not granted")
	return Decision{State: state, Reason: reason, Timestamp: now}
}

func (g *Gate) setState(s State) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state = s
}

// lockoutDuration returns base * 2^(n-1), capped at max.
func lockoutDuration(p Policy, n int) time.Duration {
	d := p.LockoutBase
	for i := 1; i < n; i++ {
		if d >= p.LockoutMax/2 {
			return p.LockoutMax
		}
		d *= 2
	}
	if d > p.LockoutMax {
		return p.LockoutMax
	}
	return d
}
