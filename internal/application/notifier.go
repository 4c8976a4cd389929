package application

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/linskybing/formflow/internal/domain/notification"
	"github.com/linskybing/formflow/pkg/observability"
)

// Notifier receives lifecycle events after the transition has committed.
// Implementations must not block the caller and must not report failure.
type Notifier interface {
	Notify(ctx context.Context, event notification.Event)
}

// Publisher is the outbound queue, e.g. *mq.Producer.
type Publisher interface {
	Publish(ctx context.Context, key string, payload interface{}) error
}

// Deliverer turns an event into a stored notification and an email.
type Deliverer interface {
	Deliver(ctx context.Context, event notification.Event) error
}

const dispatchTimeout = 15 * time.Second

// QueueNotifier publishes events keyed by form id so the worker sees them in order.
type QueueNotifier struct {
	publisher Publisher
	wg        sync.WaitGroup
}

func NewQueueNotifier(p Publisher) *QueueNotifier {
	return &QueueNotifier{publisher: p}
}

func (n *QueueNotifier) Notify(_ context.Context, event notification.Event) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		if err := n.publisher.Publish(ctx, event.FormID, event); err != nil {
			observability.RecordNotification(string(event.Category), "error")
			slog.Error("notifier: publish failed",
				"category", event.Category,
				"form", event.FormID,
				"recipient", event.RecipientUserID,
				"error", err,
			)
			return
		}
		observability.RecordNotification(string(event.Category), "queued")
	}()
}

// Wait blocks until in-flight publishes finish; used on shutdown.
func (n *QueueNotifier) Wait() {
	n.wg.Wait()
}

// AsyncNotifier delivers in-process on a goroutine. It backs single-binary
// deployments that run without a broker.
type AsyncNotifier struct {
	deliverer Deliverer
	wg        sync.WaitGroup
}

func NewAsyncNotifier(d Deliverer) *AsyncNotifier {
	return &AsyncNotifier{deliverer: d}
}

func (n *AsyncNotifier) Notify(_ context.Context, event notification.Event) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				slog.Error("notifier: delivery panicked", "form", event.FormID, "panic", r)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		if err := n.deliverer.Deliver(ctx, event); err != nil {
			observability.RecordNotification(string(event.Category), "error")
			slog.Error("notifier: delivery failed",
				"category", event.Category,
				"form", event.FormID,
				"recipient", event.RecipientUserID,
				"error", err,
			)
			return
		}
		observability.RecordNotification(string(event.Category), "ok")
	}()
}

func (n *AsyncNotifier) Wait() {
	n.wg.Wait()
}

// NopNotifier drops every event.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, notification.Event) {}
