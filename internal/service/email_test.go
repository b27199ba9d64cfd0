package service

import (
	"context"
	"sync"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedbackhub/feedbackhub/internal/domain"
	"github.com/feedbackhub/feedbackhub/internal/notify"
)

type captureSender struct {
	mu   sync.Mutex
	sent []notify.Message
}

func (s *captureSender) Send(_ context.Context, msg notify.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

func newEmailFixture(t *testing.T) (*EmailService, *fakeUserRepo, *fakeFeedbackRepo, *captureSender) {
	t.Helper()

	log := newTestLogger(t)
	users := newFakeUserRepo()
	feedbacks := newFakeFeedbackRepo()

	sender := &captureSender{}
	dispatcher := notify.NewDispatcher(sender, 8, log)
	mail := notify.NewService(notify.NewComposer("http://localhost:3000"), dispatcher, sender, log)

	return NewEmailService(users, feedbacks, mail, log), users, feedbacks, sender
}

func TestSendTestValidation(t *testing.T) {
	svc, _, _, sender := newEmailFixture(t)

	err := svc.SendTest(context.Background(), &TestEmailInput{To: "not-an-email", Subject: "s", Message: "m"})
	require.Error(t, err)

	var verrs validation.Errors
	assert.ErrorAs(t, err, &verrs)
	assert.Empty(t, sender.sent)
}

func TestSendTest(t *testing.T) {
	svc, _, _, sender := newEmailFixture(t)

	err := svc.SendTest(context.Background(), &TestEmailInput{
		To:      "admin@example.com",
		Subject: "Delivery check",
		Message: "Checking the SMTP settings.",
	})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "admin@example.com", sender.sent[0].To)
	assert.Equal(t, "Delivery check", sender.sent[0].Subject)
}

func TestSendWeeklyReportFansOutToManagement(t *testing.T) {
	svc, users, feedbacks, sender := newEmailFixture(t)

	users.add(&domain.User{Name: "Manager", Email: "manager@example.com", Role: domain.RoleManager, Status: domain.UserStatusActive})
	users.add(&domain.User{Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdministrator, Status: domain.UserStatusActive})
	// collaborators and inactive managers are not on the distribution list
	users.add(&domain.User{Name: "Collab", Email: "collab@example.com", Role: domain.RoleCollaborator, Status: domain.UserStatusActive})
	users.add(&domain.User{Name: "Gone", Email: "gone@example.com", Role: domain.RoleManager, Status: domain.UserStatusInactive})

	for _, status := range []domain.FeedbackStatus{
		domain.FeedbackStatusPending,
		domain.FeedbackStatusResolved,
		domain.FeedbackStatusResolved,
	} {
		_, err := feedbacks.Create(context.Background(), &domain.Feedback{
			Title: "item", Description: "d", Status: status, RecipientID: 1, TypeID: 1,
		})
		require.NoError(t, err)
	}

	result, err := svc.SendWeeklyReport(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Recipients)
	assert.Equal(t, int64(3), result.Stats.NewFeedbacks)
	assert.Equal(t, int64(2), result.Stats.ResolvedFeedbacks)
	assert.Equal(t, int64(1), result.Stats.PendingFeedbacks)

	require.Len(t, sender.sent, 2)
	recipients := []string{sender.sent[0].To, sender.sent[1].To}
	assert.ElementsMatch(t, []string{"manager@example.com", "admin@example.com"}, recipients)
}
