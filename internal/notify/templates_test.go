package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedbackhub/feedbackhub/internal/domain"
)

func testFeedback(anonymous bool) *domain.Feedback {
	authorID := int64(1)
	fb := &domain.Feedback{
		ID:          10,
		Title:       "Quarterly review notes",
		Description: "Detailed notes about the quarter.",
		Status:      domain.FeedbackStatusPending,
		RecipientID: 2,
		Anonymous:   anonymous,
		CreatedAt:   time.Now(),
		Author:      &domain.PublicUser{ID: 1, Name: "Alice"},
		Type:        &domain.FeedbackType{ID: 1, Name: "PERFORMANCE"},
	}
	if !anonymous {
		fb.AuthorID = &authorID
	}
	return fb
}

func TestComposerNewFeedback(t *testing.T) {
	c := NewComposer("http://localhost:3000/")
	recipient := &domain.User{Name: "Bob", Email: "bob@example.com"}

	msg, err := c.NewFeedback(testFeedback(false), recipient)
	require.NoError(t, err)

	assert.Equal(t, "bob@example.com", msg.To)
	assert.Equal(t, "New Feedback: Quarterly review notes", msg.Subject)
	assert.Contains(t, msg.HTML, "Alice")
	assert.Contains(t, msg.HTML, "PERFORMANCE")
	// trailing slash on the base URL must not produce a double slash
	assert.Contains(t, msg.HTML, `href="http://localhost:3000/feedbacks"`)
}

func TestComposerNewFeedbackAnonymous(t *testing.T) {
	c := NewComposer("http://localhost:3000")

	msg, err := c.NewFeedback(testFeedback(true), &domain.User{Email: "bob@example.com"})
	require.NoError(t, err)

	assert.Contains(t, msg.HTML, "Anonymous")
	assert.NotContains(t, msg.HTML, "Alice")
}

func TestComposerWelcome(t *testing.T) {
	c := NewComposer("http://localhost:3000")
	user := &domain.User{Name: "Carol", Email: "carol@example.com", Role: domain.RoleCollaborator}

	msg, err := c.Welcome(user, "temp-pass-123")
	require.NoError(t, err)

	assert.Equal(t, "Welcome to FeedbackHub!", msg.Subject)
	assert.Contains(t, msg.HTML, "temp-pass-123")
	assert.Contains(t, msg.HTML, `href="http://localhost:3000/login"`)

	// self-registered accounts get no password block
	msg, err = c.Welcome(user, "")
	require.NoError(t, err)
	assert.NotContains(t, msg.HTML, "Temporary password")
}

func TestComposerWeeklyReport(t *testing.T) {
	c := NewComposer("http://localhost:3000")
	manager := &domain.User{Name: "Dave", Email: "dave@example.com"}

	msg, err := c.WeeklyReport(manager, WeeklyStats{NewFeedbacks: 12, ResolvedFeedbacks: 7, PendingFeedbacks: 3})
	require.NoError(t, err)

	assert.Equal(t, "Weekly Report - FeedbackHub", msg.Subject)
	assert.Contains(t, msg.HTML, ">12<")
	assert.Contains(t, msg.HTML, ">7<")
	assert.Contains(t, msg.HTML, ">3<")
	assert.Contains(t, msg.HTML, `href="http://localhost:3000/dashboard"`)
}

func TestComposerPlainEscapes(t *testing.T) {
	c := NewComposer("http://localhost:3000")

	msg := c.Plain("to@example.com", "subject", `<script>alert("x")</script>`)
	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.HTML, "&lt;script&gt;")
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "Hello world", StripHTML("<p>Hello <b>world</b></p>"))
}
