package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

// optionalBool is a flag.Value that remembers whether it was set at all, so
// an explicit "-delete-requires-auth=false" survives the merge.
type optionalBool struct {
	value *bool
}

func (b *optionalBool) String() string {
	if b == nil || b.value == nil {
		return ""
	}
	return strconv.FormatBool(*b.value)
}

func (b *optionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	b.value = &v
	return nil
}

func (b *optionalBool) IsBoolFlag() bool { return true }

// stringList is a flag.Value for comma-separated lists.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

// ParseFlags parses the configuration flags found in args.
//
// Flags:
//
//	-d database DSN
//	-busy-timeout SQLite busy timeout (e.g. "5s")
//	-busy-retries retries of a busy/locked statement
//	-busy-backoff base backoff between busy retries (e.g. "50ms")
//	-keys-backend secret store backend: keyring or memory
//	-keyring-backends comma-separated keyring implementations
//	-service-name keychain service name
//	-keyring-file-dir directory of the file keyring backend
//	-max-attempts denials before lockout
//	-lockout-base first lockout duration
//	-lockout-max lockout cap
//	-grace-window authorization reuse window, 0 disables
//	-prompt-timeout time to answer an access prompt
//	-delete-requires-auth gate note deletion
//	-default-category category for notes saved without one
//	-envelope-version envelope suite for new notes (1 or 2)
//	-log-file client log file
//	-c/-config json file path with configs
func ParseFlags(args []string) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}
	var deleteRequiresAuth optionalBool
	var keyringBackends stringList
	var envelopeVersion uint

	fs := flag.NewFlagSet("vault-safe", flag.ContinueOnError)

	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.DurationVar(&cfg.Storage.DB.BusyTimeout, "busy-timeout", 0, "SQLite busy timeout (e.g., 5s)")
	fs.Uint64Var(&cfg.Storage.DB.BusyRetries, "busy-retries", 0, "Retries of a busy or locked statement")
	fs.DurationVar(&cfg.Storage.DB.BusyBackoff, "busy-backoff", 0, "Base backoff between busy retries (e.g., 50ms)")

	fs.StringVar(&cfg.Keys.Backend, "keys-backend", "", "Secret store backend: keyring or memory")
	fs.Var(&keyringBackends, "keyring-backends", "Comma-separated keyring implementations")
	fs.StringVar(&cfg.Keys.ServiceName, "service-name", "", "Keychain service name")
	fs.StringVar(&cfg.Keys.FileDir, "keyring-file-dir", "", "Directory of the file keyring backend")

	fs.IntVar(&cfg.Gate.MaxAttempts, "max-attempts", 0, "Consecutive denials before lockout")
	fs.DurationVar(&cfg.Gate.LockoutBase, "lockout-base", 0, "First lockout duration (e.g., 30s)")
	fs.DurationVar(&cfg.Gate.LockoutMax, "lockout-max", 0, "Lockout cap (e.g., 15m)")
	fs.DurationVar(&cfg.Gate.GraceWindow, "grace-window", 0, "Authorization reuse window, 0 disables")
	fs.DurationVar(&cfg.Gate.PromptTimeout, "prompt-timeout", 0, "Time to answer an access prompt")

	fs.Var(&deleteRequiresAuth, "delete-requires-auth", "Require authorization to delete a note")
	fs.StringVar(&cfg.Vault.DefaultCategory, "default-category", "", "Category for notes saved without one")
	fs.UintVar(&envelopeVersion, "envelope-version", 0, "Envelope suite for new notes (1 or 2)")
	fs.DurationVar(&cfg.Vault.ClipboardClearAfter, "clipboard-clear", 0, "Clear copied content after (e.g., 30s)")

	fs.StringVar(&cfg.Log.FilePath, "log-file", "", "Client log file")

	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	if envelopeVersion > 255 {
		return nil, fmt.Errorf("error parsing flags: envelope version %d out of range", envelopeVersion)
	}

	cfg.Keys.KeyringBackends = keyringBackends
	cfg.Vault.DeleteRequiresAuth = deleteRequiresAuth.value
	cfg.Vault.EnvelopeVersion = uint8(envelopeVersion)

	return cfg, nil
}
