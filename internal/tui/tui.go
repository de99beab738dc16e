// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/vault-safe/internal/logger"
	"github.com/MKhiriev/vault-safe/internal/service"
)

// ErrUserQuit is returned when the user leaves a flow before finishing it.
var ErrUserQuit = errors.New("user quit")

var errProgramResult = errors.New("unexpected program result")

// TUI runs the terminal screens of the vault.
type TUI struct {
	services       *service.Services
	bridge         *PromptBridge
	clipboardClear time.Duration
	logger         *logger.Logger

	programOptions []tea.ProgramOption
}

// New creates a TUI over services. bridge must be the prompter the access
// gate was built with, so passphrase prompts show up inside the program.
func New(services *service.Services, bridge *PromptBridge, clipboardClear time.Duration, logger *logger.Logger) *TUI {
	return &TUI{
		services:       services,
		bridge:         bridge,
		clipboardClear: clipboardClear,
		logger:         logger,
		programOptions: []tea.ProgramOption{tea.WithAltScreen()},
	}
}

// Enroll asks for a new passphrase when none is stored yet. It returns
// [ErrUserQuit] if the user leaves without enrolling.
func (t *TUI) Enroll(ctx context.Context, enroller Enroller) error {
	enrolled, err := enroller.IsEnrolled(ctx)
	if err != nil {
		return fmt.Errorf("check enrollment: %w", err)
	}
	if enrolled {
		return nil
	}

	t.logger.Info().Str("func", "TUI.Enroll").Msg("no passphrase enrolled, starting setup")

	finalModel, err := tea.NewProgram(newEnrollModel(ctx, enroller), t.options(ctx)...).Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(enrollModel)
	if !ok {
		return errProgramResult
	}
	if result.quitByUser || !result.done {
		return ErrUserQuit
	}

	t.logger.Info().Str("func", "TUI.Enroll").Msg("passphrase enrolled")
	return nil
}

// MainLoop shows the vault until the user quits.
func (t *TUI) MainLoop(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := newMainLoopModel(ctx, t.services, t.bridge, t.clipboardClear)
	finalModel, err := tea.NewProgram(model, t.options(ctx)...).Run()
	if err != nil {
		return err
	}
	if _, ok := finalModel.(mainLoopModel); !ok {
		return errProgramResult
	}
	return nil
}

func (t *TUI) options(ctx context.Context) []tea.ProgramOption {
	return append([]tea.ProgramOption{tea.WithContext(ctx)}, t.programOptions...)
}
