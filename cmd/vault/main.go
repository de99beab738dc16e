package main

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/vault-safe/internal/auth"
	"github.com/MKhiriev/vault-safe/internal/client"
	"github.com/MKhiriev/vault-safe/internal/config"
	"github.com/MKhiriev/vault-safe/internal/crypto"
	"github.com/MKhiriev/vault-safe/internal/logger"
	"github.com/MKhiriev/vault-safe/internal/secretstore"
	"github.com/MKhiriev/vault-safe/internal/service"
	"github.com/MKhiriev/vault-safe/internal/store"
	"github.com/MKhiriev/vault-safe/internal/tui"
	"github.com/MKhiriev/vault-safe/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("vault").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewFileLogger("vault", cfg.Log.FilePath)

	memguard.CatchSignal(func(s os.Signal) {
		log.Info().Str("signal", s.String()).Msg("interrupted, wiping key material")
	}, os.Interrupt, syscall.SIGTERM)
	defer memguard.Purge()

	if err = run(context.Background(), cfg, log); err != nil {
		log.Error().Err(err).Msg("vault run error")
		fmt.Fprintln(os.Stderr, err)
		memguard.SafeExit(1)
	}
}

func run(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) error {
	secrets, err := secretstore.New(cfg.Keys, log)
	if err != nil {
		return fmt.Errorf("open secret store: %w", err)
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, nil, log)
	if err != nil {
		return fmt.Errorf("create storages: %w", err)
	}
	defer storages.Close()

	bridge := tui.NewPromptBridge()
	passphrase := auth.NewPassphraseChecker(secrets, bridge, auth.ArgonParamsFromConfig(cfg.Gate))
	gate := auth.NewGate(auth.NewChainChecker(passphrase), auth.PolicyFromConfig(cfg.Gate))

	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services, err := service.NewServices(storages, crypto.NewKeyManager(secrets), gate, info, *cfg, log)
	if err != nil {
		return fmt.Errorf("create services: %w", err)
	}

	ui := tui.New(services, bridge, cfg.Vault.ClipboardClearAfter, log)

	app, err := client.NewApp(storages.NoteRepository, passphrase, ui, log)
	if err != nil {
		return fmt.Errorf("init vault app: %w", err)
	}

	return app.Run(ctx)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
