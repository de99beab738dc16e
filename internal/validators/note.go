package validators

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/vault-safe/internal/crypto"
	"github.com/MKhiriev/vault-safe/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldTitle targets the note title.
	FieldTitle = "title"

	// FieldContent targets the plaintext note body.
	FieldContent = "content"

	// FieldCategory targets the optional category.
	FieldCategory = "category"
)

// Limits applied to note drafts.
const (
	MaxTitleLength    = 200
	MaxCategoryLength = 64
)

// NoteValidator implements the Validator interface for note drafts and
// note identifiers.
type NoteValidator struct {
}

// NewNoteValidator constructs a new NoteValidator and returns it as the
// Validator interface.
func NewNoteValidator() Validator {
	return &NoteValidator{}
}

// Validate dispatches on the dynamic type of obj.
//
// Supported types:
//   - models.NoteDraft / *models.NoteDraft
//   - int64 (note id, must be positive)
//
// Returns ErrUnsupportedType for anything else. When fields is empty every
// draft field is checked.
func (v *NoteValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.NoteDraft:
		return v.validateDraft(ctx, value, fields...)
	case *models.NoteDraft:
		return v.validateDraft(ctx, *value, fields...)
	case int64:
		if value <= 0 {
			return ErrInvalidNoteID
		}
		return nil
	default:
		return ErrUnsupportedType
	}
}

func (v *NoteValidator) validateDraft(_ context.Context, draft models.NoteDraft, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldContent, FieldCategory}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if strings.TrimSpace(draft.Title) == "" {
				return ErrEmptyTitle
			}
			if utf8.RuneCountInString(draft.Title) > MaxTitleLength {
				return ErrTitleTooLong
			}
		case FieldContent:
			if draft.Content == "" {
				return ErrEmptyContent
			}
			if len(draft.Content) > crypto.MaxPlaintextSize {
				return ErrContentTooLarge
			}
		case FieldCategory:
			// empty is allowed and replaced with the default category
			if utf8.RuneCountInString(draft.Category) > MaxCategoryLength {
				return ErrCategoryTooLong
			}
			if strings.IndexFunc(draft.Category, unicode.IsControl) >= 0 {
				return ErrInvalidCategory
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
