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

type AuthService struct {
	users  repository.UserRepository
	teams  repository.TeamRepository
	tokens *auth.TokenService
	logger *logger.Logger
}

func NewAuthService(
	users repository.UserRepository,
	teams repository.TeamRepository,
	tokens *auth.TokenService,
	logger *logger.Logger,
) *AuthService {
	return &AuthService{
		users:  users,
		teams:  teams,
		tokens: tokens,
		logger: logger,
	}
}

type RegisterInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
	TeamID   *int64      `json:"team_id"`
}

type AuthResponse struct {
	Token string             `json:"token"`
	User  *domain.PublicUser `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	if err := s.validateRegister(input); err != nil {
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

	hash, err := auth.HashPassword(input.Password)
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

	token, err := s.tokens.Sign(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info("user registered",
		"user_id", user.ID,
		"email", user.Email,
		"role", user.Role,
	)

	return &AuthResponse{Token: token, User: user.Public()}, nil
}

// Login verifies credentials and issues an access token. Unknown, malformed
// and wrong-password logins all return the same ErrInvalidCredentials so
// callers cannot probe which accounts exist; an inactive account is reported
// separately only after the credentials checked out. Only missing fields are
// a validation error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	if err := Validate(email, Required); err != nil {
		return nil, Errors{"email": err}
	}
	if err := Validate(password, Required); err != nil {
		return nil, Errors{"password": err}
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	if err := auth.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if user.Status != domain.UserStatusActive {
		return nil, domain.ErrUserInactive
	}

	token, err := s.tokens.Sign(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID, "role", user.Role)

	return &AuthResponse{Token: token, User: user.Public()}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID int64) (*domain.PublicUser, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return user.Public(), nil
}

func (s *AuthService) validateRegister(input *RegisterInput) error {
	if input == nil {
		return errors.New("input is nil")
	}

	return ValidateStruct(input,
		Field(&input.Name, Required, Length(1, 255)),
		Field(&input.Email, Required, is.Email),
		Field(&input.Password, Required, Length(6, 128)),
		Field(&input.Role, By(validateRole)),
	)
}

func validateRole(value interface{}) error {
	role, ok := value.(domain.Role)
	if !ok {
		return errors.New("invalid role type")
	}
	if role != "" && !role.Valid() {
		return fmt.Errorf("unknown role %q", role)
	}
	return nil
}
