package repository

import (
	"context"
	"time"

	"github.com/feedbackhub/feedbackhub/internal/domain"
)

// FeedbackScope limits feedback queries to what the caller is allowed to
// see. A zero scope matches everything (administrators); otherwise rows
// authored by / addressed to UserID or belonging to TeamID match.
type FeedbackScope struct {
	UserID *int64
	TeamID *int64
}

// StatusCount is a dashboard aggregate bucket.
type StatusCount struct {
	Status domain.FeedbackStatus `json:"status"`
	Count  int64                 `json:"count"`
}

type TypeCount struct {
	TypeName string `json:"type"`
	Count    int64  `json:"count"`
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]*domain.User, error)
	ListActiveByRoles(ctx context.Context, roles []domain.Role) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
}

type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) (*domain.Team, error)
	GetByID(ctx context.Context, id int64) (*domain.Team, error)
	GetWithMembers(ctx context.Context, id int64) (*domain.Team, error)
	List(ctx context.Context) ([]*domain.Team, error)
	Update(ctx context.Context, team *domain.Team) (*domain.Team, error)
	NameExists(ctx context.Context, name string) (bool, error)
}

type FeedbackTypeRepository interface {
	Create(ctx context.Context, ft *domain.FeedbackType) (*domain.FeedbackType, error)
	GetByID(ctx context.Context, id int64) (*domain.FeedbackType, error)
	GetByName(ctx context.Context, name string) (*domain.FeedbackType, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.FeedbackType, error)
	Update(ctx context.Context, ft *domain.FeedbackType) (*domain.FeedbackType, error)
}

type FeedbackRepository interface {
	Create(ctx context.Context, fb *domain.Feedback) (*domain.Feedback, error)
	GetByID(ctx context.Context, id int64) (*domain.Feedback, error)
	List(ctx context.Context, scope FeedbackScope, limit int) ([]*domain.Feedback, error)
	UpdateStatus(ctx context.Context, id int64, status domain.FeedbackStatus) (*domain.Feedback, error)
	UpdateScore(ctx context.Context, id int64, score int) (*domain.Feedback, error)
	CountByStatus(ctx context.Context, scope FeedbackScope) ([]StatusCount, error)
	CountByType(ctx context.Context, scope FeedbackScope) ([]TypeCount, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CountStatusChangedSince(ctx context.Context, status domain.FeedbackStatus, since time.Time) (int64, error)
}

type SettingsRepository interface {
	Get(ctx context.Context, key string) (*domain.SystemSetting, error)
	Set(ctx context.Context, key, value string) (*domain.SystemSetting, error)
}
