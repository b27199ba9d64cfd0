package notify

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMIME(t *testing.T) {
	body := string(buildMIME("no-reply@feedbackhub.local", Message{
		To:      "bob@example.com",
		Subject: "Delivery check",
		HTML:    "<p>hello</p>",
	}))

	assert.True(t, strings.HasPrefix(body, "From: FeedbackHub <no-reply@feedbackhub.local>\r\n"))
	assert.Contains(t, body, "To: bob@example.com\r\n")
	assert.Contains(t, body, "Subject: Delivery check\r\n")
	assert.Contains(t, body, "Content-Type: text/html; charset=\"UTF-8\"\r\n")

	// headers and body separated by a blank line
	_, html, found := strings.Cut(body, "\r\n\r\n")
	require.True(t, found)
	assert.Equal(t, "<p>hello</p>", html)
}

func TestNopSenderDropsQuietly(t *testing.T) {
	sender := NewNopSender(newTestLogger(t))

	err := sender.Send(context.Background(), Message{
		To:      "bob@example.com",
		Subject: "ignored",
		HTML:    "<p>never delivered</p>",
	})
	assert.NoError(t, err)
}
