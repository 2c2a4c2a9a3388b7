package notifier

import (
	"context"
	"fmt"
	"time"
)

const (
	ClaimStatusChanged = "claim.status_changed"
	PaymentDue         = "payment.due"
)

// Event is the body posted to the webhook.
type Event struct {
	Event  string    `json:"event"`
	SentAt time.Time `json:"sent_at"`
	Data   any       `json:"data"`
}

// StatusError is returned when the webhook answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook returned status %d", e.Code)
}

// Retryable reports whether sending the same event again may succeed.
func (e *StatusError) Retryable() bool {
	return e.Code >= 500 || e.Code == 429
}

type Notifier interface {
	Notify(ctx context.Context, event string, data any) error
}
