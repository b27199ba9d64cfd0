package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/feedbackhub/feedbackhub/internal/domain"
	"github.com/feedbackhub/feedbackhub/internal/pkg/logger"
	"github.com/feedbackhub/feedbackhub/internal/repository"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()

	log, err := logger.New(&logger.Config{Level: "error", Format: "json"})
	require.NoError(t, err)
	return log
}

// in-memory repositories backing the service tests

type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) add(user *domain.User) *domain.User {
	if user.ID == 0 {
		r.nextID++
		user.ID = r.nextID
	} else if user.ID > r.nextID {
		r.nextID = user.ID
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrEmailExists
		}
	}
	return r.add(user), nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, user)
	}
	return out, nil
}

func (r *fakeUserRepo) ListActiveByRoles(_ context.Context, roles []domain.Role) ([]*domain.User, error) {
	var out []*domain.User
	for _, user := range r.users {
		if user.Status != domain.UserStatusActive {
			continue
		}
		for _, role := range roles {
			if user.Role == role {
				out = append(out, user)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = user
	return user, nil
}

type fakeTeamRepo struct {
	teams  map[int64]*domain.Team
	nextID int64
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[int64]*domain.Team)}
}

func (r *fakeTeamRepo) Create(_ context.Context, team *domain.Team) (*domain.Team, error) {
	for _, existing := range r.teams {
		if existing.Name == team.Name {
			return nil, domain.ErrTeamExists
		}
	}
	r.nextID++
	team.ID = r.nextID
	r.teams[team.ID] = team
	return team, nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id int64) (*domain.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, domain.ErrTeamNotFound
	}
	return team, nil
}

func (r *fakeTeamRepo) GetWithMembers(ctx context.Context, id int64) (*domain.Team, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeTeamRepo) List(_ context.Context) ([]*domain.Team, error) {
	out := make([]*domain.Team, 0, len(r.teams))
	for _, team := range r.teams {
		out = append(out, team)
	}
	return out, nil
}

func (r *fakeTeamRepo) Update(_ context.Context, team *domain.Team) (*domain.Team, error) {
	if _, ok := r.teams[team.ID]; !ok {
		return nil, domain.ErrTeamNotFound
	}
	r.teams[team.ID] = team
	return team, nil
}

func (r *fakeTeamRepo) NameExists(_ context.Context, name string) (bool, error) {
	for _, team := range r.teams {
		if team.Name == name {
			return true, nil
		}
	}
	return false, nil
}

type fakeTypeRepo struct {
	types  map[int64]*domain.FeedbackType
	nextID int64
}

func newFakeTypeRepo(names ...string) *fakeTypeRepo {
	r := &fakeTypeRepo{types: make(map[int64]*domain.FeedbackType)}
	for _, name := range names {
		r.nextID++
		r.types[r.nextID] = &domain.FeedbackType{ID: r.nextID, Name: name, Active: true}
	}
	return r
}

func (r *fakeTypeRepo) Create(_ context.Context, ft *domain.FeedbackType) (*domain.FeedbackType, error) {
	for _, existing := range r.types {
		if existing.Name == ft.Name {
			return nil, domain.ErrTypeExists
		}
	}
	r.nextID++
	ft.ID = r.nextID
	r.types[ft.ID] = ft
	return ft, nil
}

func (r *fakeTypeRepo) GetByID(_ context.Context, id int64) (*domain.FeedbackType, error) {
	ft, ok := r.types[id]
	if !ok {
		return nil, domain.ErrTypeNotFound
	}
	return ft, nil
}

func (r *fakeTypeRepo) GetByName(_ context.Context, name string) (*domain.FeedbackType, error) {
	for _, ft := range r.types {
		if ft.Name == name {
			return ft, nil
		}
	}
	return nil, domain.ErrTypeNotFound
}

func (r *fakeTypeRepo) List(_ context.Context, activeOnly bool) ([]*domain.FeedbackType, error) {
	var out []*domain.FeedbackType
	for _, ft := range r.types {
		if activeOnly && !ft.Active {
			continue
		}
		out = append(out, ft)
	}
	return out, nil
}

func (r *fakeTypeRepo) Update(_ context.Context, ft *domain.FeedbackType) (*domain.FeedbackType, error) {
	if _, ok := r.types[ft.ID]; !ok {
		return nil, domain.ErrTypeNotFound
	}
	r.types[ft.ID] = ft
	return ft, nil
}

type fakeFeedbackRepo struct {
	feedbacks map[int64]*domain.Feedback
	nextID    int64
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{feedbacks: make(map[int64]*domain.Feedback)}
}

func (r *fakeFeedbackRepo) Create(_ context.Context, fb *domain.Feedback) (*domain.Feedback, error) {
	r.nextID++
	fb.ID = r.nextID
	fb.CreatedAt = time.Now()
	fb.UpdatedAt = fb.CreatedAt
	r.feedbacks[fb.ID] = fb
	return fb, nil
}

func (r *fakeFeedbackRepo) GetByID(_ context.Context, id int64) (*domain.Feedback, error) {
	fb, ok := r.feedbacks[id]
	if !ok {
		return nil, domain.ErrFeedbackNotFound
	}
	return fb, nil
}

func (r *fakeFeedbackRepo) List(_ context.Context, _ repository.FeedbackScope, limit int) ([]*domain.Feedback, error) {
	out := make([]*domain.Feedback, 0, len(r.feedbacks))
	for _, fb := range r.feedbacks {
		out = append(out, fb)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeFeedbackRepo) UpdateStatus(_ context.Context, id int64, status domain.FeedbackStatus) (*domain.Feedback, error) {
	fb, ok := r.feedbacks[id]
	if !ok {
		return nil, domain.ErrFeedbackNotFound
	}
	fb.Status = status
	fb.UpdatedAt = time.Now()
	return fb, nil
}

func (r *fakeFeedbackRepo) UpdateScore(_ context.Context, id int64, score int) (*domain.Feedback, error) {
	fb, ok := r.feedbacks[id]
	if !ok {
		return nil, domain.ErrFeedbackNotFound
	}
	fb.Score = &score
	fb.UpdatedAt = time.Now()
	return fb, nil
}

func (r *fakeFeedbackRepo) CountByStatus(_ context.Context, _ repository.FeedbackScope) ([]repository.StatusCount, error) {
	counts := make(map[domain.FeedbackStatus]int64)
	for _, fb := range r.feedbacks {
		counts[fb.Status]++
	}
	out := make([]repository.StatusCount, 0, len(counts))
	for status, count := range counts {
		out = append(out, repository.StatusCount{Status: status, Count: count})
	}
	return out, nil
}

func (r *fakeFeedbackRepo) CountByType(_ context.Context, _ repository.FeedbackScope) ([]repository.TypeCount, error) {
	return nil, nil
}

func (r *fakeFeedbackRepo) CountCreatedSince(_ context.Context, since time.Time) (int64, error) {
	var count int64
	for _, fb := range r.feedbacks {
		if fb.CreatedAt.After(since) {
			count++
		}
	}
	return count, nil
}

func (r *fakeFeedbackRepo) CountStatusChangedSince(_ context.Context, status domain.FeedbackStatus, since time.Time) (int64, error) {
	var count int64
	for _, fb := range r.feedbacks {
		if fb.Status == status && fb.UpdatedAt.After(since) {
			count++
		}
	}
	return count, nil
}

// fakeNotifier records events; the service layer must never depend on the
// outcome of a notification.
type fakeNotifier struct {
	created  []int64
	statuses []int64
	welcomes []string
}

func (n *fakeNotifier) FeedbackCreated(fb *domain.Feedback, _ *domain.User) {
	n.created = append(n.created, fb.ID)
}

func (n *fakeNotifier) FeedbackStatusChanged(fb *domain.Feedback, _ *domain.User) {
	n.statuses = append(n.statuses, fb.ID)
}

func (n *fakeNotifier) UserWelcome(_ *domain.User, temporaryPassword string) {
	n.welcomes = append(n.welcomes, temporaryPassword)
}
