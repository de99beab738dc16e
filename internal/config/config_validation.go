// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup. It runs after
// defaults are applied, so zero values here mean an explicit bad value.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid* sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	db := cfg.Storage.DB
	if db.DSN == "" || db.BusyTimeout < 0 || db.BusyBackoff <= 0 || db.BusyRetries > 10 {
		return fmt.Errorf("%w: dsn=%q busy_retries=%d", ErrInvalidStorageConfigs, db.DSN, db.BusyRetries)
	}

	switch cfg.Keys.Backend {
	case KeysBackendKeyring, KeysBackendMemory:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidKeysConfigs, cfg.Keys.Backend)
	}
	if cfg.Keys.ServiceName == "" {
		return fmt.Errorf("%w: empty service name", ErrInvalidKeysConfigs)
	}
	if cfg.Keys.FilePassword == "" && slices.Contains(cfg.Keys.KeyringBackends, KeyringFileBackend) {
		return fmt.Errorf("%w: %q keyring backend requires a file password", ErrInvalidKeysConfigs, KeyringFileBackend)
	}

	g := cfg.Gate
	switch {
	case g.MaxAttempts < 1:
		return fmt.Errorf("%w: max attempts must be positive", ErrInvalidGateConfigs)
	case g.LockoutBase <= 0 || g.LockoutMax < g.LockoutBase:
		return fmt.Errorf("%w: lockout base %s, max %s", ErrInvalidGateConfigs, g.LockoutBase, g.LockoutMax)
	case g.GraceWindow < 0 || g.GraceWindow > MaxGraceWindow:
		return fmt.Errorf("%w: grace window must be within [0, %s]", ErrInvalidGateConfigs, MaxGraceWindow)
	case g.PromptTimeout <= 0:
		return fmt.Errorf("%w: prompt timeout must be positive", ErrInvalidGateConfigs)
	}

	if v := cfg.Vault.EnvelopeVersion; v != 1 && v != 2 {
		return fmt.Errorf("%w: unsupported envelope version %d", ErrInvalidVaultConfigs, v)
	}
	if cfg.Vault.ClipboardClearAfter < 0 {
		return fmt.Errorf("%w: clipboard clear delay must not be negative", ErrInvalidVaultConfigs)
	}

	return nil
}
