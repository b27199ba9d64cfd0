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

type TeamService struct {
	teams  repository.TeamRepository
	users  repository.UserRepository
	logger *logger.Logger
}

func NewTeamService(teams repository.TeamRepository, users repository.UserRepository, logger *logger.Logger) *TeamService {
	return &TeamService{
		teams:  teams,
		users:  users,
		logger: logger,
	}
}

type TeamInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ManagerID   *int64 `json:"manager_id"`
}

func (s *TeamService) Create(ctx context.Context, input *TeamInput) (*domain.Team, error) {
	if err := s.validateTeam(input); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	exists, err := s.teams.NameExists(ctx, input.Name)
	if err != nil {
		return nil, fmt.Errorf("check team exists: %w", err)
	}
	if exists {
		return nil, domain.ErrTeamExists
	}

	// a manager reference must point at a real user
	if input.ManagerID != nil {
		if _, err := s.users.GetByID(ctx, *input.ManagerID); err != nil {
			return nil, fmt.Errorf("resolve manager: %w", err)
		}
	}

	team, err := s.teams.Create(ctx, &domain.Team{
		Name:        input.Name,
		Description: input.Description,
		ManagerID:   input.ManagerID,
	})
	if err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}

	s.logger.Info("team created", "team_id", team.ID, "name", team.Name)

	return team, nil
}

func (s *TeamService) Get(ctx context.Context, id int64) (*domain.Team, error) {
	team, err := s.teams.GetWithMembers(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	}
	return team, nil
}

func (s *TeamService) List(ctx context.Context) ([]*domain.Team, error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

type UpdateTeamInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ManagerID   *int64  `json:"manager_id"`
}

// Update applies only the fields present in the input; omitted fields keep
// their current value.
func (s *TeamService) Update(ctx context.Context, id int64, input *UpdateTeamInput) (*domain.Team, error) {
	if input == nil {
		return nil, fmt.Errorf("validation failed: %w", errors.New("input is nil"))
	}

	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	}

	if input.Name != nil {
		if err := Validate(*input.Name, Required, Length(1, 255)); err != nil {
			return nil, Errors{"name": err}
		}
		team.Name = *input.Name
	}
	if input.Description != nil {
		if err := Validate(*input.Description, Length(0, 2000)); err != nil {
			return nil, Errors{"description": err}
		}
		team.Description = *input.Description
	}
	if input.ManagerID != nil {
		if _, err := s.users.GetByID(ctx, *input.ManagerID); err != nil {
			return nil, fmt.Errorf("resolve manager: %w", err)
		}
		team.ManagerID = input.ManagerID
	}

	updated, err := s.teams.Update(ctx, team)
	if err != nil {
		return nil, fmt.Errorf("update team: %w", err)
	}

	s.logger.Info("team updated", "team_id", id, "name", updated.Name)

	return updated, nil
}

func (s *TeamService) validateTeam(input *TeamInput) error {
	if input == nil {
		return errors.New("input is nil")
	}

	return ValidateStruct(input,
		Field(&input.Name, Required, Length(1, 255)),
		Field(&input.Description, Length(0, 2000)),
	)
}
