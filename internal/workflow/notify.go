package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackzampolin/inkwell/internal/store"
)

// sendNotification reports the run's final event on every configured
// channel and writes an audit record. Channel delivery failures are logged
// and do not affect the audit status; only the audit write itself is a
// required datastore operation.
func (e *Engine) sendNotification(ctx context.Context, run *Run) error {
	if run.Event == "" {
		return nil
	}

	subject := fmt.Sprintf("[inkwell] event: %s", run.Event)
	body := fmt.Sprintf("Event: %s\nBook ID: %s\nTitle: %s", run.Event, run.BookID, run.Title)
	e.logger.Info("sending notification", "book", run.BookID, "event", run.Event)

	names := make([]string, 0, len(e.channels))
	for _, ch := range e.channels {
		if err := ch.Send(ctx, subject, body); err != nil {
			e.logger.Warn("notification delivery failed",
				"book", run.BookID, "channel", ch.Name(), "error", err)
		}
		names = append(names, ch.Name())
	}

	payload, err := json.Marshal(map[string]string{"subject": subject, "body": body})
	if err != nil {
		return err
	}

	return e.store.InsertNotification(ctx, store.Notification{
		BookID:   run.BookID,
		Type:     string(run.Event),
		Channels: strings.Join(names, "+"),
		Payload:  string(payload),
		Status:   "sent",
	})
}
