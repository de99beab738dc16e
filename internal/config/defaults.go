package config

import "time"

// Defaults applied to every field left empty by all configuration sources.
const (
	DefaultDSN             = "vault_safe.db"
	DefaultBusyTimeout     = 5 * time.Second
	DefaultBusyRetries     = 3
	DefaultBusyBackoff     = 50 * time.Millisecond
	DefaultServiceName     = "vault-safe"
	DefaultMaxAttempts     = 5
	DefaultLockoutBase     = 30 * time.Second
	DefaultLockoutMax      = 15 * time.Minute
	DefaultPromptTimeout   = 2 * time.Minute
	DefaultArgonTime       = 1
	DefaultArgonMemory     = 64 * 1024 // 64 MiB
	DefaultArgonThreads    = 4
	DefaultCategory        = "General"
	DefaultEnvelopeVersion = 2
	DefaultClipboardClear  = 30 * time.Second

	// MaxGraceWindow bounds GATE_GRACE_WINDOW.
	MaxGraceWindow = 15 * time.Minute
)

func (cfg *StructuredConfig) applyDefaults() {
	db := &cfg.Storage.DB
	if db.DSN == "" {
		db.DSN = DefaultDSN
	}
	if db.BusyTimeout == 0 {
		db.BusyTimeout = DefaultBusyTimeout
	}
	if db.BusyRetries == 0 {
		db.BusyRetries = DefaultBusyRetries
	}
	if db.BusyBackoff == 0 {
		db.BusyBackoff = DefaultBusyBackoff
	}

	if cfg.Keys.Backend == "" {
		cfg.Keys.Backend = KeysBackendKeyring
	}
	if cfg.Keys.ServiceName == "" {
		cfg.Keys.ServiceName = DefaultServiceName
	}

	g := &cfg.Gate
	if g.MaxAttempts == 0 {
		g.MaxAttempts = DefaultMaxAttempts
	}
	if g.LockoutBase == 0 {
		g.LockoutBase = DefaultLockoutBase
	}
	if g.LockoutMax == 0 {
		g.LockoutMax = DefaultLockoutMax
	}
	if g.PromptTimeout == 0 {
		g.PromptTimeout = DefaultPromptTimeout
	}
	if g.ArgonTime == 0 {
		g.ArgonTime = DefaultArgonTime
	}
	if g.ArgonMemory == 0 {
		g.ArgonMemory = DefaultArgonMemory
	}
	if g.ArgonThreads == 0 {
		g.ArgonThreads = DefaultArgonThreads
	}

	if cfg.Vault.DefaultCategory == "" {
		cfg.Vault.DefaultCategory = DefaultCategory
	}
	if cfg.Vault.EnvelopeVersion == 0 {
		cfg.Vault.EnvelopeVersion = DefaultEnvelopeVersion
	}
	if cfg.Vault.ClipboardClearAfter == 0 {
		cfg.Vault.ClipboardClearAfter = DefaultClipboardClear
	}
}
