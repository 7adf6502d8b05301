package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	EventUserRegistered = "user.registered"
	EventSessionCreated = "session.created"
)

func NewUserRegistered(userID, email string) Event {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventUserRegistered,
		Timestamp: time.Now().UTC(),
		Data: map[string]any{
			"user_id": userID,
			"email":   email,
		},
	}
}

func NewSessionCreated(sessionID, userID string) Event {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventSessionCreated,
		Timestamp: time.Now().UTC(),
		Data: map[string]any{
			"session_id": sessionID,
			"user_id":    userID,
		},
	}
}

// RegisterAuditSubscriber logs every auth lifecycle event. Kept deliberately
// dumb: the audit trail is the structured log stream.
func RegisterAuditSubscriber(bus *EventBus, logger *slog.Logger) {
	audit := func(ctx context.Context, event Event) error {
		logger.Info("audit",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}
	bus.Subscribe(EventUserRegistered, audit)
	bus.Subscribe(EventSessionCreated, audit)
}
