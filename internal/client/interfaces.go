// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/vault-safe/internal/tui"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
}

// UI is the interactive surface driven by [App].
type UI interface {
	Enroll(ctx context.Context, enroller tui.Enroller) error
	MainLoop(ctx context.Context) error
}

// SchemaInitializer prepares the vault database before first use.
type SchemaInitializer interface {
	Init(ctx context.Context) error
}
