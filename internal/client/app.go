package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/vault-safe/internal/logger"
	"github.com/MKhiriev/vault-safe/internal/tui"
)

type App struct {
	schema   SchemaInitializer
	enroller tui.Enroller
	ui       UI
	logger   *logger.Logger
}

var _ Client = (*App)(nil)

func NewApp(schema SchemaInitializer, enroller tui.Enroller, ui UI, logger *logger.Logger) (*App, error) {
	if schema == nil || enroller == nil || ui == nil {
		return nil, errors.New("client app: missing dependency")
	}
	return &App{schema: schema, enroller: enroller, ui: ui, logger: logger}, nil
}

// Run initializes the vault schema, asks for a passphrase on first start and
// runs the main screen. Leaving the setup screen is a normal exit.
func (a *App) Run(ctx context.Context) error {
	ctx, log := a.logger.WithOperation(ctx, "app.Run")

	if err := a.schema.Init(ctx); err != nil {
		return fmt.Errorf("init vault schema: %w", err)
	}

	if err := a.ui.Enroll(ctx, a.enroller); err != nil {
		if errors.Is(err, tui.ErrUserQuit) {
			log.Info().Msg("setup cancelled by user")
			return nil
		}
		return fmt.Errorf("enroll passphrase: %w", err)
	}

	if err := a.ui.MainLoop(ctx); err != nil {
		return fmt.Errorf("main loop: %w", err)
	}

	log.Info().Msg("vault closed")
	return nil
}
