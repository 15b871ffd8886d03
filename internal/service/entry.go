package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"entryapi/internal/model"
	"entryapi/internal/repository"
)

// ErrValidation marks input rejected before it reaches storage.
var ErrValidation = errors.New("validation failed")

// CreateEntryInput is the create-entry request body. Content is a pointer so
// that an explicit empty string is accepted while an absent field is not.
type CreateEntryInput struct {
	Content *string `json:"content" validate:"required"`
}

// EntryService defines the use cases for handling entries.
type EntryService interface {
	// Create validates the input and stores a new entry.
	Create(ctx context.Context, in CreateEntryInput) (*model.Entry, error)

	// List returns every stored entry.
	List(ctx context.Context) ([]model.Entry, error)
}

type entryService struct {
	repo     repository.EntryRepository
	validate *validator.Validate
}

// NewEntryService constructs a new EntryService.
func NewEntryService(repo repository.EntryRepository) EntryService {
	return &entryService{repo: repo, validate: validator.New()}
}

func (s *entryService) Create(ctx context.Context, in CreateEntryInput) (*model.Entry, error) {
	if err := s.validate.StructCtx(ctx, in); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, describe(err))
	}
	return s.repo.Create(ctx, *in.Content)
}

func (s *entryService) List(ctx context.Context) ([]model.Entry, error) {
	return s.repo.List(ctx)
}

// describe turns validator output into a short client-safe message.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("field %q failed %q", fe.Field(), fe.Tag())
	}
	return err.Error()
}
