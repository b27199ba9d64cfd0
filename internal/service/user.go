package service

import (
	"context"
	"errors"
	"fmt"

	. "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/feedbackhub/feedbackhub/internal/auth"
	"github.com/feedbackhub/feedbackhub/internal/domain"
	"github.com/feedbackhub/feedbackhub/internal/pkg/logger"
	"github.com/feedbackhub/feedbackhub/internal/repository"
)

type UserService struct {
	users    repository.UserRepository
	teams    repository.TeamRepository
	notifier Notifier
	logger   *logger.Logger
}

func NewUserService(
	users repository.UserRepository,
	teams repository.TeamRepository,
	notifier Notifier,
	logger *logger.Logger,
) *UserService {
	return &UserService{
		users:    users,
		teams:    teams,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *UserService) List(ctx context.Context) ([]*domain.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]*domain.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.PublicUser, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user.Public(), nil
}

type CreateUserInput struct {
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	TeamID *int64      `json:"team_id"`
}

// Create provisions an account on behalf of an administrator. The user
// receives a generated temporary password by email.
func (s *UserService) Create(ctx context.Context, input *CreateUserInput) (*domain.PublicUser, error) {
	if err := s.validateCreate(input); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	exists, err := s.users.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, domain.ErrEmailExists
	}

	if input.TeamID != nil {
		if _, err := s.teams.GetByID(ctx, *input.TeamID); err != nil {
			return nil, fmt.Errorf("resolve team: %w", err)
		}
	}

	temporary := auth.TemporaryPassword()
	hash, err := auth.HashPassword(temporary)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := input.Role
	if role == "" {
		role = domain.RoleCollaborator
	}

	user, err := s.users.Create(ctx, &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		TeamID:       input.TeamID,
		Status:       domain.UserStatusActive,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user provisioned", "user_id", user.ID, "email", user.Email, "role", user.Role)

	s.notifier.UserWelcome(user, temporary)

	return user.Public(), nil
}

type UpdateUserInput struct {
	Name   *string            `json:"name"`
	Role   *domain.Role       `json:"role"`
	TeamID *int64             `json:"team_id"`
	Status *domain.UserStatus `json:"status"`
}

func (s *UserService) Update(ctx context.Context, id int64, input *UpdateUserInput) (*domain.PublicUser, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, Errors{"role": fmt.Errorf("unknown role %q", *input.Role)}
		}
		user.Role = *input.Role
	}
	if input.TeamID != nil {
		if _, err := s.teams.GetByID(ctx, *input.TeamID); err != nil {
			return nil, fmt.Errorf("resolve team: %w", err)
		}
		user.TeamID = input.TeamID
	}
	if input.Status != nil {
		if *input.Status != domain.UserStatusActive && *input.Status != domain.UserStatusInactive {
			return nil, Errors{"status": fmt.Errorf("unknown status %q", *input.Status)}
		}
		user.Status = *input.Status
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("user updated", "user_id", id, "role", updated.Role, "status", updated.Status)

	return updated.Public(), nil
}

func (s *UserService) validateCreate(input *CreateUserInput) error {
	if input == nil {
		return errors.New("input is nil")
	}

	return ValidateStruct(input,
		Field(&input.Name, Required, Length(1, 255)),
		Field(&input.Email, Required, is.Email),
		Field(&input.Role, By(validateRole)),
	)
}
