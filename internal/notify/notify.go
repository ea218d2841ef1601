// Package notify implements the outbound notification channels. Each
// channel is independently optional: missing configuration means the
// channel is simply not constructed, never an error.
package notify

import (
	"context"
	"time"
)

// sendTimeout bounds every outbound notification round trip.
const sendTimeout = 10 * time.Second

// Channel delivers one subject/body message.
type Channel interface {
	Name() string
	Send(ctx context.Context, subject, body string) error
}
