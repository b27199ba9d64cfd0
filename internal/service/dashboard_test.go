package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedbackhub/feedbackhub/internal/auth"
	"github.com/feedbackhub/feedbackhub/internal/domain"
)

func TestDashboardSummary(t *testing.T) {
	feedbacks := newFakeFeedbackRepo()
	users := newFakeUserRepo()
	svc := NewDashboardService(feedbacks, users, newTestLogger(t))

	recipient := users.add(&domain.User{Name: "R", Email: "r@example.com", Role: domain.RoleCollaborator, Status: domain.UserStatusActive})

	for _, status := range []domain.FeedbackStatus{
		domain.FeedbackStatusPending,
		domain.FeedbackStatusPending,
		domain.FeedbackStatusResolved,
	} {
		_, err := feedbacks.Create(context.Background(), &domain.Feedback{
			Title:       "item",
			Description: "d",
			Status:      status,
			RecipientID: recipient.ID,
			TypeID:      1,
		})
		require.NoError(t, err)
	}

	admin := &auth.Claims{UserID: 99, Role: domain.RoleAdministrator}
	summary, err := svc.Summary(context.Background(), admin)
	require.NoError(t, err)

	assert.Equal(t, int64(3), summary.Total)
	assert.Len(t, summary.Recent, 3)

	counts := make(map[domain.FeedbackStatus]int64)
	for _, c := range summary.ByStatus {
		counts[c.Status] = c.Count
	}
	assert.Equal(t, int64(2), counts[domain.FeedbackStatusPending])
	assert.Equal(t, int64(1), counts[domain.FeedbackStatusResolved])
}

func TestDashboardSummaryManagerNeedsAccount(t *testing.T) {
	svc := NewDashboardService(newFakeFeedbackRepo(), newFakeUserRepo(), newTestLogger(t))

	manager := &auth.Claims{UserID: 1, Role: domain.RoleManager}
	_, err := svc.Summary(context.Background(), manager)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
