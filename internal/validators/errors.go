package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyTitle      = errors.New("title is required")
	ErrTitleTooLong    = errors.New("title is too long")
	ErrEmptyContent    = errors.New("content is required")
	ErrContentTooLarge = errors.New("content is too large")
	ErrCategoryTooLong = errors.New("category is too long")
	ErrInvalidCategory = errors.New("category contains control characters")
	ErrInvalidNoteID   = errors.New("invalid note ID")
)
