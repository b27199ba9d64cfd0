package service

import (
	"context"
	"errors"
	"fmt"

	. "github.com/go-ozzo/ozzo-validation"

	"github.com/feedbackhub/feedbackhub/internal/domain"
	"github.com/feedbackhub/feedbackhub/internal/pkg/logger"
	"github.com/feedbackhub/feedbackhub/internal/repository"
)

type FeedbackTypeService struct {
	types  repository.FeedbackTypeRepository
	logger *logger.Logger
}

func NewFeedbackTypeService(types repository.FeedbackTypeRepository, logger *logger.Logger) *FeedbackTypeService {
	return &FeedbackTypeService{
		types:  types,
		logger: logger,
	}
}

func (s *FeedbackTypeService) List(ctx context.Context, includeInactive bool) ([]*domain.FeedbackType, error) {
	types, err := s.types.List(ctx, !includeInactive)
	if err != nil {
		return nil, fmt.Errorf("list feedback types: %w", err)
	}
	return types, nil
}

type FeedbackTypeInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

func (s *FeedbackTypeService) Create(ctx context.Context, input *FeedbackTypeInput) (*domain.FeedbackType, error) {
	if err := s.validateType(input); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	ft, err := s.types.Create(ctx, &domain.FeedbackType{
		Name:        input.Name,
		Description: input.Description,
		Active:      active,
	})
	if err != nil {
		return nil, fmt.Errorf("create feedback type: %w", err)
	}

	s.logger.Info("feedback type created", "type_id", ft.ID, "name", ft.Name)

	return ft, nil
}

func (s *FeedbackTypeService) Update(ctx context.Context, id int64, input *FeedbackTypeInput) (*domain.FeedbackType, error) {
	if err := s.validateType(input); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	current, err := s.types.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get feedback type: %w", err)
	}

	current.Name = input.Name
	current.Description = input.Description
	if input.Active != nil {
		current.Active = *input.Active
	}

	ft, err := s.types.Update(ctx, current)
	if err != nil {
		return nil, fmt.Errorf("update feedback type: %w", err)
	}

	s.logger.Info("feedback type updated", "type_id", id, "active", ft.Active)

	return ft, nil
}

func (s *FeedbackTypeService) validateType(input *FeedbackTypeInput) error {
	if input == nil {
		return errors.New("input is nil")
	}

	return ValidateStruct(input,
		Field(&input.Name, Required, Length(1, 255)),
		Field(&input.Description, Length(0, 2000)),
	)
}
