package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when a
// configuration group is incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or too many busy retries).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidKeysConfigs indicates an unknown secret store backend or an
	// empty service name.
	ErrInvalidKeysConfigs = errors.New("invalid keys configuration")
	// ErrInvalidGateConfigs indicates an invalid access gate policy.
	ErrInvalidGateConfigs = errors.New("invalid gate configuration")
	// ErrInvalidVaultConfigs indicates invalid vault policy settings.
	ErrInvalidVaultConfigs = errors.New("invalid vault configuration")
)
