package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// Webhook posts a JSON text payload to a chat incoming-webhook URL.
type Webhook struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewWebhook creates the webhook channel.
func NewWebhook(url string, logger *slog.Logger) *Webhook {
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: sendTimeout},
		logger: logger.With("channel", "webhook"),
	}
}

// Name returns the channel identifier.
func (w *Webhook) Name() string { return "webhook" }

// Send posts the body as a {"text": ...} payload. The subject is folded
// into the text since chat webhooks have no subject field.
func (w *Webhook) Send(ctx context.Context, subject, body string) error {
	payload, err := json.Marshal(map[string]string{"text": subject + "\n" + body})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %s", resp.Status)
	}
	return nil
}
