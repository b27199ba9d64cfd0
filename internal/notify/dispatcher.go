package notify

import (
	"context"
	"sync"
	"time"

	"github.com/feedbackhub/feedbackhub/internal/pkg/logger"
)

// Dispatcher decouples email delivery from the request path. Messages are
// queued on a buffered channel and delivered by a single worker; a full
// queue drops the message with a log line rather than blocking the caller.
type Dispatcher struct {
	sender  Sender
	queue   chan Message
	logger  *logger.Logger
	timeout time.Duration

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
}

func NewDispatcher(sender Sender, queueLen int, logger *logger.Logger) *Dispatcher {
	if queueLen <= 0 {
		queueLen = 128
	}
	return &Dispatcher{
		sender:  sender,
		queue:   make(chan Message, queueLen),
		logger:  logger.Component("notify/dispatcher"),
		timeout: 30 * time.Second,
		done:    make(chan struct{}),
	}
}

// Start launches the delivery worker.
func (d *Dispatcher) Start() {
	d.startOnce.Do(func() {
		go d.run()
	})
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		err := d.sender.Send(ctx, msg)
		cancel()

		if err != nil {
			// delivery is best effort: log and move on
			d.logger.Error("notification delivery failed",
				"to", msg.To,
				"subject", msg.Subject,
				"error", err,
			)
			continue
		}

		d.logger.Info("notification delivered", "to", msg.To, "subject", msg.Subject)
	}
}

// Enqueue hands a message to the worker without ever blocking the caller.
func (d *Dispatcher) Enqueue(msg Message) {
	select {
	case d.queue <- msg:
	default:
		d.logger.Warn("notification queue full, dropping message",
			"to", msg.To,
			"subject", msg.Subject,
		)
	}
}

// Stop closes the queue and waits for the worker to drain it, bounded by
// the context deadline.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.stopOnce.Do(func() {
		close(d.queue)
	})

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
