// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks user input before it reaches the crypto or
// storage layers.
//
// A Validator accepts any value and an optional list of field names that
// restricts which rules run. The vault service validates every note draft
// and note id through it, so invalid input never costs a key fetch or a
// database round trip.
package validators

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/validator_mock.go -package=mock

// Validator validates arbitrary input values.
type Validator interface {
	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
