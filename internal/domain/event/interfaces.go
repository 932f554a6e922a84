package event

import "context"

// Publisher emits lifecycle events. Delivery is fire-and-forget and
// at-least-once; implementations never fail the triggering operation.
type Publisher interface {
	Publish(ctx context.Context, evt Event)
}

// ListOptions filters event journal reads.
type ListOptions struct {
	EntityID string
	Type     *Type
	Limit    int
	Offset   int
}

// Repository persists the event journal.
type Repository interface {
	Append(ctx context.Context, evt *Event) error
	List(ctx context.Context, opts ListOptions) ([]Event, error)
}
