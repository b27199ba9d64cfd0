package service

import (
	"context"
	"errors"
	"fmt"

	. "github.com/go-ozzo/ozzo-validation"

	"github.com/feedbackhub/feedbackhub/internal/auth"
	"github.com/feedbackhub/feedbackhub/internal/domain"
	"github.com/feedbackhub/feedbackhub/internal/pkg/logger"
	"github.com/feedbackhub/feedbackhub/internal/repository"
)

type FeedbackService struct {
	feedbacks repository.FeedbackRepository
	users     repository.UserRepository
	types     repository.FeedbackTypeRepository
	notifier  Notifier
	logger    *logger.Logger
}

func NewFeedbackService(
	feedbacks repository.FeedbackRepository,
	users repository.UserRepository,
	types repository.FeedbackTypeRepository,
	notifier Notifier,
	logger *logger.Logger,
) *FeedbackService {
	return &FeedbackService{
		feedbacks: feedbacks,
		users:     users,
		types:     types,
		notifier:  notifier,
		logger:    logger,
	}
}

type CreateFeedbackInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	RecipientID int64  `json:"recipient_id"`
	Anonymous   bool   `json:"anonymous"`
}

func (s *FeedbackService) Create(ctx context.Context, identity *auth.Claims, input *CreateFeedbackInput) (*domain.PublicFeedback, error) {
	if err := s.validateCreate(input); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// the client sends the type NAME, resolve it before touching anything
	ftype, err := s.types.GetByName(ctx, input.Type)
	if err != nil {
		if errors.Is(err, domain.ErrTypeNotFound) {
			return nil, domain.ErrInvalidFeedbackType
		}
		return nil, fmt.Errorf("resolve feedback type: %w", err)
	}

	recipient, err := s.users.GetByID(ctx, input.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("resolve recipient: %w", err)
	}

	fb := &domain.Feedback{
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.FeedbackStatusPending,
		RecipientID: recipient.ID,
		TypeID:      ftype.ID,
		TeamID:      recipient.TeamID, // team inherited from the recipient
		Anonymous:   input.Anonymous,
	}
	if !input.Anonymous {
		authorID := identity.UserID
		fb.AuthorID = &authorID
	}

	created, err := s.feedbacks.Create(ctx, fb)
	if err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}

	s.logger.Info("feedback created",
		"feedback_id", created.ID,
		"recipient_id", recipient.ID,
		"type", ftype.Name,
		"anonymous", created.Anonymous,
	)

	// best effort, decoupled from the committed creation
	s.notifier.FeedbackCreated(created, recipient)

	return created.Public(), nil
}

// List returns the feedback visible to the caller: collaborators see what
// they authored or received, managers additionally their team's items,
// administrators everything.
func (s *FeedbackService) List(ctx context.Context, identity *auth.Claims) ([]*domain.PublicFeedback, error) {
	scope, err := s.scopeFor(ctx, identity)
	if err != nil {
		return nil, err
	}

	feedbacks, err := s.feedbacks.List(ctx, scope, 0)
	if err != nil {
		return nil, fmt.Errorf("list feedbacks: %w", err)
	}

	out := make([]*domain.PublicFeedback, 0, len(feedbacks))
	for _, fb := range feedbacks {
		out = append(out, fb.Public())
	}
	return out, nil
}

func (s *FeedbackService) Get(ctx context.Context, identity *auth.Claims, id int64) (*domain.PublicFeedback, error) {
	fb, err := s.feedbacks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get feedback: %w", err)
	}

	visible, err := s.canSee(ctx, identity, fb)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, domain.ErrForbidden
	}

	return fb.Public(), nil
}

// UpdateStatus sets any enumerated status; no workflow between statuses is
// enforced (product decision recorded in DESIGN.md).
func (s *FeedbackService) UpdateStatus(ctx context.Context, id int64, status domain.FeedbackStatus) (*domain.PublicFeedback, error) {
	if !status.Valid() {
		return nil, Errors{"status": fmt.Errorf("unknown status %q", status)}
	}

	fb, err := s.feedbacks.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	s.logger.Info("feedback status updated", "feedback_id", id, "status", status)

	if recipient, rErr := s.users.GetByID(ctx, fb.RecipientID); rErr == nil {
		s.notifier.FeedbackStatusChanged(fb, recipient)
	} else {
		s.logger.Warn("skipping status notification", "feedback_id", id, "error", rErr)
	}

	return fb.Public(), nil
}

// SetScore lets the recipient rate the feedback they received.
func (s *FeedbackService) SetScore(ctx context.Context, identity *auth.Claims, id int64, score int) (*domain.PublicFeedback, error) {
	// Required first: Min/Max skip the zero value
	if err := Validate(score, Required, Min(1), Max(5)); err != nil {
		return nil, Errors{"score": err}
	}

	fb, err := s.feedbacks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get feedback: %w", err)
	}

	if fb.RecipientID != identity.UserID {
		return nil, domain.ErrForbidden
	}

	updated, err := s.feedbacks.UpdateScore(ctx, id, score)
	if err != nil {
		return nil, fmt.Errorf("update score: %w", err)
	}

	return updated.Public(), nil
}

func (s *FeedbackService) scopeFor(ctx context.Context, identity *auth.Claims) (repository.FeedbackScope, error) {
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

func (s *FeedbackService) canSee(ctx context.Context, identity *auth.Claims, fb *domain.Feedback) (bool, error) {
	if identity.Role == domain.RoleAdministrator {
		return true, nil
	}
	if fb.RecipientID == identity.UserID {
		return true, nil
	}
	if fb.AuthorID != nil && *fb.AuthorID == identity.UserID {
		return true, nil
	}
	if identity.Role == domain.RoleManager {
		user, err := s.users.GetByID(ctx, identity.UserID)
		if err != nil {
			return false, fmt.Errorf("resolve manager: %w", err)
		}
		if user.TeamID != nil && fb.TeamID != nil && *user.TeamID == *fb.TeamID {
			return true, nil
		}
	}
	return false, nil
}

func (s *FeedbackService) validateCreate(input *CreateFeedbackInput) error {
	if input == nil {
		return errors.New("input is nil")
	}

	return ValidateStruct(input,
		Field(&input.Title, Required, Length(1, 255)),
		Field(&input.Description, Required, Length(1, 10000)),
		Field(&input.Type, Required, Length(1, 255)),
		Field(&input.RecipientID, Required, Min(int64(1))),
	)
}
