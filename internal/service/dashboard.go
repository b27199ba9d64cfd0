package service

import (
	"context"
	"fmt"

	"github.com/feedbackhub/feedbackhub/internal/auth"
	"github.com/feedbackhub/feedbackhub/internal/domain"
	"github.com/feedbackhub/feedbackhub/internal/pkg/logger"
	"github.com/feedbackhub/feedbackhub/internal/repository"
)

type DashboardService struct {
	feedbacks repository.FeedbackRepository
	users     repository.UserRepository
	logger    *logger.Logger
}

func NewDashboardService(
	feedbacks repository.FeedbackRepository,
	users repository.UserRepository,
	logger *logger.Logger,
) *DashboardService {
	return &DashboardService{
		feedbacks: feedbacks,
		users:     users,
		logger:    logger,
	}
}

type DashboardSummary struct {
	Total    int64                    `json:"total"`
	ByStatus []repository.StatusCount `json:"by_status"`
	ByType   []repository.TypeCount   `json:"by_type"`
	Recent   []*domain.PublicFeedback `json:"recent"`
}

const recentLimit = 10

// Summary aggregates the feedback visible to the caller, using the same
// scoping rules as the feedback listing.
func (s *DashboardService) Summary(ctx context.Context, identity *auth.Claims) (*DashboardSummary, error) {
	scope, err := s.scopeFor(ctx, identity)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.feedbacks.CountByStatus(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}

	byType, err := s.feedbacks.CountByType(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("count by type: %w", err)
	}

	recent, err := s.feedbacks.List(ctx, scope, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent: %w", err)
	}

	summary := &DashboardSummary{
		ByStatus: byStatus,
		ByType:   byType,
		Recent:   make([]*domain.PublicFeedback, 0, len(recent)),
	}
	for _, c := range byStatus {
		summary.Total += c.Count
	}
	for _, fb := range recent {
		summary.Recent = append(summary.Recent, fb.Public())
	}

	return summary, nil
}

func (s *DashboardService) scopeFor(ctx context.Context, identity *auth.Claims) (repository.FeedbackScope, error) {
	switch identity.Role {
	case domain.RoleAdministrator:
		return repository.FeedbackScope{}, nil
	case domain.RoleManager:
		user, err := s.users.GetByID(ctx, identity.UserID)
		if err != nil {
			return repository.FeedbackScope{}, fmt.Errorf("resolve manager: %w", err)
		}
		userID := identity.UserID
		return repository.FeedbackScope{UserID: &userID, TeamID: user.TeamID}, nil
	default:
		userID := identity.UserID
		return repository.FeedbackScope{UserID: &userID}, nil
	}
}
