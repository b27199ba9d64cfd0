package domain

import "time"

type FeedbackStatus string

const (
	FeedbackStatusPending    FeedbackStatus = "PENDING"
	FeedbackStatusInAnalysis FeedbackStatus = "IN_ANALYSIS"
	FeedbackStatusResolved   FeedbackStatus = "RESOLVED"
	FeedbackStatusRejected   FeedbackStatus = "REJECTED"
)

func (s FeedbackStatus) Valid() bool {
	switch s {
	case FeedbackStatusPending, FeedbackStatusInAnalysis, FeedbackStatusResolved, FeedbackStatusRejected:
		return true
	}
	return false
}

type FeedbackType struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

type Feedback struct {
	ID          int64
	Title       string
	Description string
	Status      FeedbackStatus
	AuthorID    *int64 // nil when the submission is anonymous
	RecipientID int64
	TypeID      int64
	TeamID      *int64
	Anonymous   bool
	Score       *int
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Author    *PublicUser
	Recipient *PublicUser
	Type      *FeedbackType
}

// PublicFeedback is the client-facing projection. For anonymous items the
// author is omitted entirely, no matter who asks.
type PublicFeedback struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      FeedbackStatus `json:"status"`
	Anonymous   bool           `json:"anonymous"`
	Author      *PublicUser    `json:"author,omitempty"`
	Recipient   *PublicUser    `json:"recipient,omitempty"`
	Type        *FeedbackType  `json:"type,omitempty"`
	TeamID      *int64         `json:"team_id,omitempty"`
	Score       *int           `json:"score,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (f *Feedback) Public() *PublicFeedback {
	pf := &PublicFeedback{
		ID:          f.ID,
		Title:       f.Title,
		Description: f.Description,
		Status:      f.Status,
		Anonymous:   f.Anonymous,
		Recipient:   f.Recipient,
		Type:        f.Type,
		TeamID:      f.TeamID,
		Score:       f.Score,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
	if !f.Anonymous {
		pf.Author = f.Author
	}
	return pf
}

type SystemSetting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
