package works

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Service struct {
	repo     Repository
	validate *validator.Validate
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
	}
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Work, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id int64) (*Work, error) {
	return s.repo.Get(ctx, id)
}

// Create validates params before any row is persisted.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Work, error) {
	params.Title = strings.TrimSpace(params.Title)
	params.URL = strings.TrimSpace(params.URL)
	params.Description = strings.TrimSpace(params.Description)

	if err := s.validate.Struct(params); err != nil {
		return nil, validationError(err)
	}
	return s.repo.Create(ctx, params)
}

func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*Work, error) {
	params.Title = strings.TrimSpace(params.Title)
	params.URL = strings.TrimSpace(params.URL)
	params.Description = strings.TrimSpace(params.Description)

	if err := s.validate.Struct(params); err != nil {
		return nil, validationError(err)
	}
	return s.repo.Update(ctx, id, params)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", strings.ToLower(e.Field), e.Message)
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	first := fieldErrs[0]
	switch first.Tag() {
	case "required":
		return ValidationError{Field: first.Field(), Message: "must not be empty"}
	case "max":
		return ValidationError{Field: first.Field(), Message: fmt.Sprintf("must be at most %s characters", first.Param())}
	default:
		return ValidationError{Field: first.Field(), Message: "is invalid"}
	}
}
