package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-ledger-sync/models"
)

// Field name constants used to scope validation of a models.Action.
const (
	// FieldType targets the action kind: update, delete or meta.
	FieldType = "type"

	// FieldID targets the item identifier of update and delete actions.
	FieldID = "id"

	// FieldValue targets the full item value of update actions.
	FieldValue = "value"

	// FieldMeta targets the meta patch of meta actions.
	FieldMeta = "meta"

	// FieldTimestamp targets the last-write-wins timestamp. Zero is accepted
	// and filled in by the bucket.
	FieldTimestamp = "timestamp"

	// FieldActions targets a whole batch.
	FieldActions = "actions"

	// FieldBookName targets the name a book is created with.
	FieldBookName = "book_name"
)

// ActionValidator implements the Validator interface for local mutations:
// a single models.Action, a batch of them, and book names.
type ActionValidator struct {
}

// NewActionValidator constructs a new ActionValidator and returns it as the
// Validator interface.
func NewActionValidator() Validator {
	return &ActionValidator{}
}

// Validate dispatches validation to the type-specific method.
// Strings are validated as book names.
func (v *ActionValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Action:
		return v.validateAction(ctx, value, fields...)
	case *models.Action:
		return v.validateAction(ctx, *value, fields...)

	case []models.Action:
		return v.validateBatch(ctx, value, fields...)

	case string:
		return v.validateBookName(ctx, value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *ActionValidator) validateAction(ctx context.Context, action models.Action, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldType, FieldID, FieldValue, FieldMeta, FieldTimestamp}
	}

	for _, f := range fields {
		switch f {
		case FieldType:
			switch action.Type {
			case models.ActionUpdate, models.ActionDelete, models.ActionMeta:
			default:
				return fmt.Errorf("%w: %q", ErrInvalidActionType, action.Type)
			}
		case FieldID:
			if action.Type != models.ActionMeta && strings.TrimSpace(action.ID) == "" {
				return ErrEmptyItemID
			}
		case FieldValue:
			if action.Type != models.ActionUpdate {
				continue
			}
			if len(action.Value) == 0 {
				return ErrEmptyValue
			}
			if id, ok := action.Value[models.FieldID]; ok && id != action.ID {
				return fmt.Errorf("%w: %s", ErrReservedField, models.FieldID)
			}
		case FieldMeta:
			if action.Type == models.ActionMeta && len(action.Meta) == 0 {
				return ErrEmptyMeta
			}
		case FieldTimestamp:
			if action.Timestamp < 0 {
				return ErrInvalidTimestamp
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ActionValidator) validateBatch(ctx context.Context, actions []models.Action, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldActions}
	}

	for _, f := range fields {
		switch f {
		case FieldActions:
			if len(actions) == 0 {
				return ErrEmptyActions
			}
			for i, action := range actions {
				if err := v.validateAction(ctx, action); err != nil {
					return fmt.Errorf("validation error at index %d: %w", i, err)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ActionValidator) validateBookName(_ context.Context, name string, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldBookName}
	}

	for _, f := range fields {
		switch f {
		case FieldBookName:
			name = strings.TrimSpace(name)
			if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
				return ErrInvalidBookName
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
