package notify

import "context"

// Event types published on the orders channel.
const (
	EventAssignment  = "order.assigned"
	EventOrderUpdate = "order.updated"
)

// Publisher is the notification/event collaborator. Publishing is
// fire-and-forget: callers log failures and never fail the operation.
type Publisher interface {
	PublishAssignment(ctx context.Context, orderID, agentID int64) error
	PublishOrderUpdate(ctx context.Context, orderID int64, status string) error
}

// Noop discards all events. Used in tests and offline tooling.
type Noop struct{}

func (Noop) PublishAssignment(ctx context.Context, orderID, agentID int64) error { return nil }

func (Noop) PublishOrderUpdate(ctx context.Context, orderID int64, status string) error { return nil }
