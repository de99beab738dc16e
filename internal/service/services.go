package service

import (
	"fmt"

	"github.com/MKhiriev/vault-safe/internal/auth"
	"github.com/MKhiriev/vault-safe/internal/config"
	"github.com/MKhiriev/vault-safe/internal/crypto"
	"github.com/MKhiriev/vault-safe/internal/logger"
	"github.com/MKhiriev/vault-safe/internal/store"
	"github.com/MKhiriev/vault-safe/internal/validators"
	"github.com/MKhiriev/vault-safe/models"
)

type Services struct {
	VaultService   VaultService
	AppInfoService AppInfoService
}

func NewServices(
	storages *store.Storages,
	keys crypto.KeyProvider,
	gate auth.AccessGate,
	info models.AppBuildInfo,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) (*Services, error) {
	cipher, err := crypto.NewEngine(cfg.Vault.EnvelopeVersion)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	appInfo, err := NewAppInfoService(info, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		VaultService:   NewVaultService(storages.NoteRepository, keys, cipher, gate, validators.NewNoteValidator(), cfg.Vault, logger),
		AppInfoService: appInfo,
	}, nil
}
