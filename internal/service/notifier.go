package service

import "github.com/feedbackhub/feedbackhub/internal/domain"

// Notifier receives fire-and-forget notification events. Implementations
// must never block and never return errors into the request path.
type Notifier interface {
	FeedbackCreated(fb *domain.Feedback, recipient *domain.User)
	FeedbackStatusChanged(fb *domain.Feedback, recipient *domain.User)
	UserWelcome(user *domain.User, temporaryPassword string)
}
