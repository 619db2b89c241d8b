package ws

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Event type constants for WebSocket messages.
const (
	EventMetricsUpdated  = "metrics.updated"
	EventGoalChanged     = "goal.changed"
	EventContactReceived = "contact.received"
)

// MetricsUpdatedEvent is broadcast when a write invalidates the
// aggregated snapshot; clients re-fetch on receipt.
type MetricsUpdatedEvent struct {
	Company string `json:"company,omitempty"`
	Source  string `json:"source"` // "monthly_log" or "override"
}

// GoalChangedEvent is broadcast when a goal is created, updated or
// deleted.
type GoalChangedEvent struct {
	GoalID  string `json:"goal_id"`
	Quarter int    `json:"quarter"`
	Year    int    `json:"year"`
	Action  string `json:"action"` // "created", "updated" or "deleted"
}

// ContactReceivedEvent is broadcast when the public form produces a new
// submission.
type ContactReceivedEvent struct {
	SubmissionID string `json:"submission_id"`
	Name         string `json:"name"`
}

// BroadcastEvent marshals a typed event and broadcasts it.
func (h *Hub) BroadcastEvent(ctx context.Context, eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal ws event payload", "type", eventType, "error", err)
		return
	}

	h.Broadcast(ctx, Message{
		Type:    eventType,
		Payload: json.RawMessage(data),
	})
}
