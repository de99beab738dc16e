// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive vault application runtime.
//
// It prepares the vault database, makes sure an unlock passphrase is
// enrolled, and hands control to the terminal UI for the rest of the
// process lifetime.
package client
