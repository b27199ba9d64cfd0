package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedbackhub/feedbackhub/internal/pkg/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()

	log, err := logger.New(&logger.Config{Level: "error", Format: "json"})
	require.NoError(t, err)
	return log
}

type recordingSender struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func (s *recordingSender) messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.sent...)
}

func TestDispatcherDeliversQueuedMessages(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, 8, newTestLogger(t))
	d.Start()

	d.Enqueue(Message{To: "a@example.com", Subject: "first"})
	d.Enqueue(Message{To: "b@example.com", Subject: "second"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Stop(ctx))

	sent := sender.messages()
	require.Len(t, sent, 2)
	assert.Equal(t, "first", sent[0].Subject)
	assert.Equal(t, "second", sent[1].Subject)
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	// worker never started, so the queue fills up and overflow is dropped
	d := NewDispatcher(&recordingSender{}, 1, newTestLogger(t))

	d.Enqueue(Message{Subject: "kept"})
	d.Enqueue(Message{Subject: "dropped"})

	assert.Len(t, d.queue, 1)
}

func TestDispatcherSurvivesSendFailures(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	d := NewDispatcher(sender, 8, newTestLogger(t))
	d.Start()

	d.Enqueue(Message{To: "a@example.com", Subject: "doomed"})

	// a failing sender must not wedge the worker or shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, d.Stop(ctx))
	assert.Empty(t, sender.messages())
}

func TestDispatcherStopIdempotent(t *testing.T) {
	d := NewDispatcher(&recordingSender{}, 8, newTestLogger(t))
	d.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Stop(ctx))
	require.NoError(t, d.Stop(ctx))
}
