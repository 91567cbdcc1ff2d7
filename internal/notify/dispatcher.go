// AngelaMos | 2026
// dispatcher.go

package notify

import (
	"context"
	"log/slog"
	"time"
)

type EventType string

const (
	EventJobPublished        EventType = "job.published"
	EventApplicationReceived EventType = "application.received"
	EventApplicationMoved    EventType = "application.status_changed"
	EventAssignmentCreated   EventType = "assignment.created"
	EventBatchHandedOff      EventType = "assignment.batch_sent"
	EventCreditsGranted      EventType = "credits.granted"
)

// Event is a user-facing notification. UserID empty means broadcast.
type Event struct {
	UserID  string    `json:"user_id,omitempty"`
	Type    EventType `json:"type"`
	Message string    `json:"message"`
	Link    string    `json:"link,omitempty"`
	At      time.Time `json:"at"`
}

// Dispatcher delivers notifications fire-and-forget. Implementations must
// never propagate delivery failures: the state change that triggered the
// event has already committed and must not be rolled back.
type Dispatcher interface {
	Notify(ctx context.Context, event Event)
}

// LogDispatcher writes events to the application log. It is the fallback
// when no broker is configured.
type LogDispatcher struct {
	logger *slog.Logger
}

func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Notify(_ context.Context, event Event) {
	d.logger.Info("notification",
		"type", event.Type,
		"user_id", event.UserID,
		"message", event.Message,
	)
}
