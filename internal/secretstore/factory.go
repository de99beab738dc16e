package secretstore

import (
	"fmt"

	"github.com/MKhiriev/vault-safe/internal/config"
	"github.com/MKhiriev/vault-safe/internal/logger"
)

// New builds the [SecretStore] selected by cfg.Backend ("keyring" or
// "memory").
func New(cfg config.Keys, log *logger.Logger) (SecretStore, error) {
	switch cfg.Backend {
	case config.KeysBackendKeyring:
		return OpenKeyring(cfg, log)
	case config.KeysBackendMemory:
		log.Warn().Str("func", "secretstore.New").Msg("memory secret store selected: the vault key is lost when the process exits")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrBackendUnavailable, cfg.Backend)
	}
}
