// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// Secret-store backends accepted in [Keys.Backend].
const (
	// KeysBackendKeyring keeps vault secrets in the platform keychain.
	KeysBackendKeyring = "keyring"
	// KeysBackendMemory keeps vault secrets in process memory; the vault does
	// not survive a restart.
	KeysBackendMemory = "memory"
)

// KeyringFileBackend names the encrypted-file keyring implementation in
// [Keys.KeyringBackends].
const KeyringFileBackend = "file"

// StructuredConfig is the top-level configuration container for the
// vault-safe application. It aggregates all sub-configurations and is
// populated by merging values from a JSON file, environment variables and
// command-line flags.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Storage holds the local vault database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Keys selects and configures the platform secret store that holds the
	// vault master key and the gate verifier.
	Keys Keys `envPrefix:"KEYS_"`

	// Gate holds the access gate policy: lockout, grace window, prompt
	// timeout and the Argon2id cost of the passphrase verifier.
	Gate Gate `envPrefix:"GATE_"`

	// Vault holds vault-level policy switches.
	Vault Vault `envPrefix:"VAULT_"`

	// Log holds logging output settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for the storage backend.
type Storage struct {
	// DB holds the SQLite database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection and retry settings for the SQLite vault database.
type DB struct {
	// DSN is the SQLite database file path (e.g. "vault_safe.db").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`

	// BusyTimeout is handed to SQLite as busy_timeout: how long a statement
	// waits on a lock held by another connection before failing with
	// SQLITE_BUSY.
	// Env: STORAGE_DB_BUSY_TIMEOUT
	BusyTimeout time.Duration `env:"BUSY_TIMEOUT"`

	// BusyRetries is the number of times a statement failing with
	// SQLITE_BUSY/SQLITE_LOCKED is retried before surfacing a store error.
	// Env: STORAGE_DB_BUSY_RETRIES
	BusyRetries uint64 `env:"BUSY_RETRIES"`

	// BusyBackoff is the base delay of the exponential backoff between
	// retries.
	// Env: STORAGE_DB_BUSY_BACKOFF
	BusyBackoff time.Duration `env:"BUSY_BACKOFF"`
}

// Keys configures the secret-storage primitive.
type Keys struct {
	// Backend is either "keyring" or "memory".
	// Env: KEYS_BACKEND
	Backend string `env:"BACKEND"`

	// KeyringBackends restricts the keyring implementations that may be
	// used (e.g. "secret-service,file"). Empty means any available one.
	// Env: KEYS_KEYRING_BACKENDS
	KeyringBackends []string `env:"KEYRING_BACKENDS" envSeparator:","`

	// ServiceName namespaces the vault items inside the platform keychain.
	// Env: KEYS_SERVICE_NAME
	ServiceName string `env:"SERVICE_NAME"`

	// FileDir is the directory of the encrypted-file keyring backend.
	// Env: KEYS_FILE_DIR
	FileDir string `env:"FILE_DIR"`

	// FilePassword unlocks the encrypted-file keyring backend. When empty
	// the file backend is never used; listing "file" in KeyringBackends
	// without it is a configuration error.
	// Env: KEYS_FILE_PASSWORD
	FilePassword string `env:"FILE_PASSWORD"`
}

// Gate holds the access gate policy.
type Gate struct {
	// MaxAttempts is the number of consecutive denials that trigger a
	// lockout.
	// Env: GATE_MAX_ATTEMPTS
	MaxAttempts int `env:"MAX_ATTEMPTS"`

	// LockoutBase is the first lockout duration; each further lockout
	// doubles it.
	// Env: GATE_LOCKOUT_BASE
	LockoutBase time.Duration `env:"LOCKOUT_BASE"`

	// LockoutMax caps the lockout duration.
	// Env: GATE_LOCKOUT_MAX
	LockoutMax time.Duration `env:"LOCKOUT_MAX"`

	// GraceWindow lets an authorization be reused without prompting for
	// this long. Zero disables reuse.
	// Env: GATE_GRACE_WINDOW
	GraceWindow time.Duration `env:"GRACE_WINDOW"`

	// PromptTimeout bounds how long the gate waits for the user; an
	// unanswered prompt resolves to denied.
	// Env: GATE_PROMPT_TIMEOUT
	PromptTimeout time.Duration `env:"PROMPT_TIMEOUT"`

	// ArgonTime, ArgonMemory (KiB) and ArgonThreads are the Argon2id cost
	// parameters of the passphrase verifier.
	// Env: GATE_ARGON_TIME, GATE_ARGON_MEMORY, GATE_ARGON_THREADS
	ArgonTime    uint32 `env:"ARGON_TIME"`
	ArgonMemory  uint32 `env:"ARGON_MEMORY"`
	ArgonThreads uint8  `env:"ARGON_THREADS"`
}

// Vault holds vault-level policy.
type Vault struct {
	// DeleteRequiresAuth gates note deletion behind the access gate. A nil
	// value means "use the default" (true).
	// Env: VAULT_DELETE_REQUIRES_AUTH
	DeleteRequiresAuth *bool `env:"DELETE_REQUIRES_AUTH"`

	// DefaultCategory is assigned to notes saved without a category.
	// Env: VAULT_DEFAULT_CATEGORY
	DefaultCategory string `env:"DEFAULT_CATEGORY"`

	// EnvelopeVersion selects the envelope suite for new notes
	// (1 = AES-256-GCM, 2 = ChaCha20-Poly1305).
	// Env: VAULT_ENVELOPE_VERSION
	EnvelopeVersion uint8 `env:"ENVELOPE_VERSION"`

	// ClipboardClearAfter is how long copied note content stays on the
	// clipboard.
	// Env: VAULT_CLIPBOARD_CLEAR_AFTER
	ClipboardClearAfter time.Duration `env:"CLIPBOARD_CLEAR_AFTER"`
}

// Log holds logging settings.
type Log struct {
	// FilePath is the log file of the terminal client.
	// Env: LOG_FILE_PATH
	FilePath string `env:"FILE_PATH"`
}

// DeleteNeedsAuth reports the effective delete policy.
func (v Vault) DeleteNeedsAuth() bool {
	if v.DeleteRequiresAuth == nil {
		return true
	}
	return *v.DeleteRequiresAuth
}

// GetStructuredConfig loads, merges, defaults and validates the application
// configuration. Sources, from lowest to highest priority:
//  1. JSON file (path resolved from the sources below)
//  2. Environment variables
//  3. Command-line flags
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
