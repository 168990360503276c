package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyActions      = errors.New("actions list cannot be empty")
	ErrInvalidActionType = errors.New("invalid action type")
	ErrEmptyItemID       = errors.New("item id is required")
	ErrEmptyValue        = errors.New("value is required for update")
	ErrEmptyMeta         = errors.New("meta is required for meta action")
	ErrInvalidTimestamp  = errors.New("invalid timestamp")
	ErrReservedField     = errors.New("value sets a reserved field")
	ErrInvalidBookName   = errors.New("invalid book name")
)
