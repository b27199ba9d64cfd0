package notify

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/feedbackhub/feedbackhub/internal/domain"
)

// WeeklyStats is the aggregate block rendered into the weekly report.
type WeeklyStats struct {
	NewFeedbacks      int64 `json:"newFeedbacks"`
	ResolvedFeedbacks int64 `json:"resolvedFeedbacks"`
	PendingFeedbacks  int64 `json:"pendingFeedbacks"`
}

// Composer renders the notification templates. FrontendURL is the base for
// deep links inside each message.
type Composer struct {
	frontendURL string
	templates   *template.Template
}

func NewComposer(frontendURL string) *Composer {
	return &Composer{
		frontendURL: strings.TrimRight(frontendURL, "/"),
		templates:   template.Must(template.New("email").Parse(emailTemplates)),
	}
}

func (c *Composer) render(name string, data any) (string, error) {
	var b strings.Builder
	if err := c.templates.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", name, err)
	}
	return b.String(), nil
}

func (c *Composer) NewFeedback(fb *domain.Feedback, recipient *domain.User) (Message, error) {
	author := "Anonymous"
	if !fb.Anonymous && fb.Author != nil {
		author = fb.Author.Name
	}

	html, err := c.render("new_feedback", map[string]any{
		"Title":       fb.Title,
		"Author":      author,
		"Type":        fb.Type.Name,
		"Status":      fb.Status,
		"Description": fb.Description,
		"CreatedAt":   fb.CreatedAt.Format(time.RFC1123),
		"Link":        c.frontendURL + "/feedbacks",
	})
	if err != nil {
		return Message{}, err
	}

	return Message{
		To:      recipient.Email,
		Subject: "New Feedback: " + fb.Title,
		HTML:    html,
	}, nil
}

func (c *Composer) StatusUpdate(fb *domain.Feedback, recipient *domain.User) (Message, error) {
	html, err := c.render("status_update", map[string]any{
		"Title":       fb.Title,
		"Status":      fb.Status,
		"Description": fb.Description,
		"UpdatedAt":   time.Now().Format(time.RFC1123),
		"Link":        c.frontendURL + "/feedbacks",
	})
	if err != nil {
		return Message{}, err
	}

	return Message{
		To:      recipient.Email,
		Subject: "Feedback Updated: " + fb.Title,
		HTML:    html,
	}, nil
}

func (c *Composer) Welcome(user *domain.User, temporaryPassword string) (Message, error) {
	html, err := c.render("welcome", map[string]any{
		"Name":              user.Name,
		"Email":             user.Email,
		"Role":              user.Role,
		"TemporaryPassword": temporaryPassword,
		"Link":              c.frontendURL + "/login",
	})
	if err != nil {
		return Message{}, err
	}

	return Message{
		To:      user.Email,
		Subject: "Welcome to FeedbackHub!",
		HTML:    html,
	}, nil
}

func (c *Composer) WeeklyReport(recipient *domain.User, stats WeeklyStats) (Message, error) {
	html, err := c.render("weekly_report", map[string]any{
		"Name":     recipient.Name,
		"New":      stats.NewFeedbacks,
		"Resolved": stats.ResolvedFeedbacks,
		"Pending":  stats.PendingFeedbacks,
		"Link":     c.frontendURL + "/dashboard",
	})
	if err != nil {
		return Message{}, err
	}

	return Message{
		To:      recipient.Email,
		Subject: "Weekly Report - FeedbackHub",
		HTML:    html,
	}, nil
}

func (c *Composer) Plain(to, subject, body string) Message {
	return Message{
		To:      to,
		Subject: subject,
		HTML:    "<p>" + template.HTMLEscapeString(body) + "</p>",
	}
}

const emailTemplates = `
{{define "new_feedback"}}
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background-color: #1976d2; color: white; padding: 20px; text-align: center;">
    <h1>FeedbackHub</h1>
    <h2>New Feedback Received</h2>
  </div>
  <div style="padding: 20px; background-color: #f5f5f5;">
    <h3>{{.Title}}</h3>
    <p><strong>Author:</strong> {{.Author}}</p>
    <p><strong>Type:</strong> {{.Type}}</p>
    <p><strong>Status:</strong> {{.Status}}</p>
    <p><strong>Date:</strong> {{.CreatedAt}}</p>
    <div style="background-color: white; padding: 15px; border-radius: 5px; margin: 15px 0;">
      <h4>Description:</h4>
      <p>{{.Description}}</p>
    </div>
    <div style="text-align: center; margin-top: 20px;">
      <a href="{{.Link}}" style="background-color: #1976d2; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">View Feedback</a>
    </div>
  </div>
  <div style="background-color: #333; color: white; padding: 10px; text-align: center; font-size: 12px;">
    <p>This is an automated FeedbackHub message. Please do not reply.</p>
  </div>
</div>
{{end}}

{{define "status_update"}}
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background-color: #2e7d32; color: white; padding: 20px; text-align: center;">
    <h1>FeedbackHub</h1>
    <h2>Feedback Status Updated</h2>
  </div>
  <div style="padding: 20px; background-color: #f5f5f5;">
    <h3>{{.Title}}</h3>
    <p><strong>New Status:</strong> <span style="color: #2e7d32; font-weight: bold;">{{.Status}}</span></p>
    <p><strong>Updated:</strong> {{.UpdatedAt}}</p>
    <div style="background-color: white; padding: 15px; border-radius: 5px; margin: 15px 0;">
      <h4>Original Description:</h4>
      <p>{{.Description}}</p>
    </div>
    <div style="text-align: center; margin-top: 20px;">
      <a href="{{.Link}}" style="background-color: #2e7d32; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">View Feedback</a>
    </div>
  </div>
  <div style="background-color: #333; color: white; padding: 10px; text-align: center; font-size: 12px;">
    <p>This is an automated FeedbackHub message. Please do not reply.</p>
  </div>
</div>
{{end}}

{{define "welcome"}}
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background-color: #9c27b0; color: white; padding: 20px; text-align: center;">
    <h1>FeedbackHub</h1>
    <h2>Welcome!</h2>
  </div>
  <div style="padding: 20px; background-color: #f5f5f5;">
    <h3>Hello, {{.Name}}!</h3>
    <p>Your FeedbackHub account has been created.</p>
    <div style="background-color: white; padding: 15px; border-radius: 5px; margin: 15px 0;">
      <h4>Account details:</h4>
      <p><strong>Email:</strong> {{.Email}}</p>
      <p><strong>Role:</strong> {{.Role}}</p>
      {{if .TemporaryPassword}}
      <p><strong>Temporary password:</strong> {{.TemporaryPassword}}</p>
      <p style="color: #d32f2f;"><strong>Important:</strong> change your password on first login.</p>
      {{end}}
    </div>
    <div style="text-align: center; margin-top: 20px;">
      <a href="{{.Link}}" style="background-color: #9c27b0; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">Sign In</a>
    </div>
  </div>
  <div style="background-color: #333; color: white; padding: 10px; text-align: center; font-size: 12px;">
    <p>This is an automated FeedbackHub message. Please do not reply.</p>
  </div>
</div>
{{end}}

{{define "weekly_report"}}
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background-color: #ed6c02; color: white; padding: 20px; text-align: center;">
    <h1>FeedbackHub</h1>
    <h2>Weekly Report</h2>
  </div>
  <div style="padding: 20px; background-color: #f5f5f5;">
    <h3>Hello, {{.Name}}! Here is your weekly summary.</h3>
    <div style="background-color: white; padding: 15px; border-radius: 5px; margin: 15px 0;">
      <h4 style="color: #1976d2; margin: 0;">New Feedbacks</h4>
      <p style="font-size: 24px; font-weight: bold; margin: 5px 0;">{{.New}}</p>
    </div>
    <div style="background-color: white; padding: 15px; border-radius: 5px; margin: 15px 0;">
      <h4 style="color: #2e7d32; margin: 0;">Resolved</h4>
      <p style="font-size: 24px; font-weight: bold; margin: 5px 0;">{{.Resolved}}</p>
    </div>
    <div style="background-color: white; padding: 15px; border-radius: 5px; margin: 15px 0;">
      <h4 style="color: #ed6c02; margin: 0;">Pending</h4>
      <p style="font-size: 24px; font-weight: bold; margin: 5px 0;">{{.Pending}}</p>
    </div>
    <div style="text-align: center; margin-top: 20px;">
      <a href="{{.Link}}" style="background-color: #ed6c02; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">Open Dashboard</a>
    </div>
  </div>
  <div style="background-color: #333; color: white; padding: 10px; text-align: center; font-size: 12px;">
    <p>This is an automated FeedbackHub message. Please do not reply.</p>
  </div>
</div>
{{end}}
`
