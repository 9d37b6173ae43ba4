package notification

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/trip-management/internal/core/events"
	"github.com/frahmantamala/trip-management/internal/department"
)

// BusNotifier publishes queue admissions onto the event bus. The workflow
// calls it after a transition commits; delivery happens off the request path.
type BusNotifier struct {
	bus    *events.EventBus
	logger *slog.Logger
}

func NewBusNotifier(bus *events.EventBus, logger *slog.Logger) *BusNotifier {
	return &BusNotifier{bus: bus, logger: logger}
}

func (n *BusNotifier) QueueAdmitted(_ context.Context, tripID int64, dep department.Department) {
	event := events.NewQueueAdmittedEvent(tripID, dep)
	// The HTTP handler returns as soon as the transition commits and its
	// context is cancelled with it. Deliveries run detached so an in-flight
	// mail send is never aborted by the finished request.
	if err := n.bus.Publish(context.Background(), event); err != nil {
		n.logger.Error("failed to publish queue admission",
			"error", err, "trip_id", tripID, "department", dep)
	}
}
