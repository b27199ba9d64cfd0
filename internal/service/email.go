package service

import (
	"context"
	"fmt"
	"time"

	. "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/feedbackhub/feedbackhub/internal/domain"
	"github.com/feedbackhub/feedbackhub/internal/notify"
	"github.com/feedbackhub/feedbackhub/internal/pkg/logger"
	"github.com/feedbackhub/feedbackhub/internal/repository"
)

// EmailService backs the administrator-only email endpoints: the delivery
// test and the weekly report fan-out to managers.
type EmailService struct {
	users     repository.UserRepository
	feedbacks repository.FeedbackRepository
	mail      *notify.Service
	logger    *logger.Logger
}

func NewEmailService(
	users repository.UserRepository,
	feedbacks repository.FeedbackRepository,
	mail *notify.Service,
	logger *logger.Logger,
) *EmailService {
	return &EmailService{
		users:     users,
		feedbacks: feedbacks,
		mail:      mail,
		logger:    logger,
	}
}

type TestEmailInput struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (s *EmailService) SendTest(ctx context.Context, input *TestEmailInput) error {
	err := ValidateStruct(input,
		Field(&input.To, Required, is.Email),
		Field(&input.Subject, Required, Length(1, 255)),
		Field(&input.Message, Required, Length(1, 10000)),
	)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := s.mail.SendDirect(ctx, input.To, input.Subject, input.Message); err != nil {
		return fmt.Errorf("send test email: %w", err)
	}

	s.logger.Info("test email sent", "to", input.To)
	return nil
}

type WeeklyReportResult struct {
	Recipients int                `json:"recipients"`
	Stats      notify.WeeklyStats `json:"stats"`
}

// SendWeeklyReport aggregates the last seven days and mails the summary to
// every active manager and administrator.
func (s *EmailService) SendWeeklyReport(ctx context.Context) (*WeeklyReportResult, error) {
	managers, err := s.users.ListActiveByRoles(ctx, []domain.Role{
		domain.RoleManager,
		domain.RoleAdministrator,
	})
	if err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}

	oneWeekAgo := time.Now().AddDate(0, 0, -7)

	stats := notify.WeeklyStats{}
	if stats.NewFeedbacks, err = s.feedbacks.CountCreatedSince(ctx, oneWeekAgo); err != nil {
		return nil, fmt.Errorf("count new feedbacks: %w", err)
	}
	if stats.ResolvedFeedbacks, err = s.feedbacks.CountStatusChangedSince(ctx, domain.FeedbackStatusResolved, oneWeekAgo); err != nil {
		return nil, fmt.Errorf("count resolved feedbacks: %w", err)
	}
	if stats.PendingFeedbacks, err = s.feedbacks.CountStatusChangedSince(ctx, domain.FeedbackStatusPending, time.Time{}); err != nil {
		return nil, fmt.Errorf("count pending feedbacks: %w", err)
	}

	for _, manager := range managers {
		if err := s.mail.SendWeeklyReport(ctx, manager, stats); err != nil {
			return nil, fmt.Errorf("send report to %s: %w", manager.Email, err)
		}
	}

	s.logger.Info("weekly reports sent",
		"recipients", len(managers),
		"new", stats.NewFeedbacks,
		"resolved", stats.ResolvedFeedbacks,
		"pending", stats.PendingFeedbacks,
	)

	return &WeeklyReportResult{Recipients: len(managers), Stats: stats}, nil
}
