package application

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/linskybing/formflow/internal/domain/notification"
	"github.com/linskybing/formflow/pkg/mq"
	"github.com/linskybing/formflow/pkg/observability"
)

// EventHandler decodes queued notification events and delivers them. A
// payload that does not decode is dropped; delivery errors are returned so
// the consumer retries.
func EventHandler(d Deliverer) mq.Handler {
	return func(ctx context.Context, msg mq.Message) error {
		var event notification.Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			slog.Error("worker: undecodable event", "key", string(msg.Key), "error", err)
			return nil
		}

		if err := d.Deliver(ctx, event); err != nil {
			observability.RecordNotification(string(event.Category), "error")
			return err
		}
		observability.RecordNotification(string(event.Category), "ok")
		slog.Info("worker: delivered",
			"category", event.Category,
			"form", event.FormID,
			"recipient", event.RecipientUserID,
		)
		return nil
	}
}
