// Package broadcast defines the port for pushing events to connected
// dashboard clients.
package broadcast

import "context"

// Broadcaster fans an event out to every connected client. Delivery is
// best-effort: a slow or dead client never blocks the write path.
type Broadcaster interface {
	BroadcastEvent(ctx context.Context, eventType string, payload any)
}
