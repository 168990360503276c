package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-ledger-sync/internal/validators"
	"github.com/MKhiriev/go-ledger-sync/models"
)

// EndpointValidationService rejects malformed input before it reaches the
// wrapped Endpoint.
type EndpointValidationService struct {
	Endpoint
	validator validators.Validator
}

func NewEndpointValidationService() EndpointWrapper {
	return &EndpointValidationService{
		validator: validators.NewActionValidator(),
	}
}

func (v *EndpointValidationService) Wrap(inner Endpoint) Endpoint {
	return &EndpointValidationService{Endpoint: inner, validator: v.validator}
}

func (v *EndpointValidationService) CreateBook(ctx context.Context, name string) (models.Book, error) {
	if err := v.validator.Validate(ctx, name); err != nil {
		return models.Book{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.Endpoint.CreateBook(ctx, name)
}

func (v *EndpointValidationService) Batch(ctx context.Context, bookID string, actions []models.Action, overlap bool) error {
	if bookID == "" {
		return fmt.Errorf("%w: empty book id", ErrInvalidDataProvided)
	}
	if err := v.validator.Validate(ctx, actions); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.Endpoint.Batch(ctx, bookID, actions, overlap)
}

func (v *EndpointValidationService) InviteForBook(ctx context.Context, bookID, username string) error {
	if username == "" {
		return fmt.Errorf("%w: empty username", ErrInvalidDataProvided)
	}
	return v.Endpoint.InviteForBook(ctx, bookID, username)
}
