// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// DefaultCategory is assigned to notes saved without a category.
const DefaultCategory = "General"

// SecretNote is one persisted vault record.
//
// Title and Category are plaintext metadata. Envelope is the sealed note body
// produced by the crypto package; storage layers treat it as opaque bytes.
type SecretNote struct {
	// ID is assigned by the store on insert and never reused.
	ID int64

	// Title is the human-readable name of the note.
	Title string

	// Envelope is the encrypted note body.
	Envelope []byte

	// Category groups notes in listings.
	Category string

	// CreatedAt is set once on insert (UTC).
	CreatedAt time.Time
}

// NoteSummary is the listing view of a [SecretNote]. It never carries
// the envelope, so listing cannot leak content.
type NoteSummary struct {
	ID        int64
	Title     string
	Category  string
	CreatedAt time.Time
}

// NoteDraft is user input for a new note, before encryption.
type NoteDraft struct {
	Title    string
	Content  string
	Category string
}
