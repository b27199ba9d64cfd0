package notify

import (
	"context"
	"fmt"

	"github.com/feedbackhub/feedbackhub/internal/domain"
	"github.com/feedbackhub/feedbackhub/internal/pkg/logger"
)

// Service ties the composer, the delivery worker and the raw sender
// together. Event methods queue mail asynchronously; Send* methods deliver
// synchronously for the admin email endpoints.
type Service struct {
	composer   *Composer
	dispatcher *Dispatcher
	sender     Sender
	logger     *logger.Logger
}

func NewService(composer *Composer, dispatcher *Dispatcher, sender Sender, logger *logger.Logger) *Service {
	return &Service{
		composer:   composer,
		dispatcher: dispatcher,
		sender:     sender,
		logger:     logger.Component("notify"),
	}
}

func (s *Service) FeedbackCreated(fb *domain.Feedback, recipient *domain.User) {
	msg, err := s.composer.NewFeedback(fb, recipient)
	if err != nil {
		s.logger.Error("compose new feedback notification", "feedback_id", fb.ID, "error", err)
		return
	}
	s.dispatcher.Enqueue(msg)
}

func (s *Service) FeedbackStatusChanged(fb *domain.Feedback, recipient *domain.User) {
	msg, err := s.composer.StatusUpdate(fb, recipient)
	if err != nil {
		s.logger.Error("compose status notification", "feedback_id", fb.ID, "error", err)
		return
	}
	s.dispatcher.Enqueue(msg)
}

func (s *Service) UserWelcome(user *domain.User, temporaryPassword string) {
	msg, err := s.composer.Welcome(user, temporaryPassword)
	if err != nil {
		s.logger.Error("compose welcome email", "user_id", user.ID, "error", err)
		return
	}
	s.dispatcher.Enqueue(msg)
}

// SendDirect delivers a plain message synchronously. Used by the admin
// email test endpoint.
func (s *Service) SendDirect(ctx context.Context, to, subject, body string) error {
	if err := s.sender.Send(ctx, s.composer.Plain(to, subject, body)); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// SendWeeklyReport delivers a weekly summary to one recipient synchronously.
func (s *Service) SendWeeklyReport(ctx context.Context, recipient *domain.User, stats WeeklyStats) error {
	msg, err := s.composer.WeeklyReport(recipient, stats)
	if err != nil {
		return err
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("send weekly report: %w", err)
	}
	return nil
}
