package events

import (
	"time"

	"github.com/frahmantamala/trip-management/internal/department"
	"github.com/google/uuid"
)

const (
	EventTypeQueueAdmitted = "workflow.queue_admitted"
)

// QueueAdmittedEvent fires when a trip enters a department queue, either on
// submission or after an upstream stage completes.
type QueueAdmittedEvent struct {
	BaseEvent
	TripID     int64                 `json:"trip_id"`
	Department department.Department `json:"department"`
}

func NewQueueAdmittedEvent(tripID int64, dep department.Department) *QueueAdmittedEvent {
	return &QueueAdmittedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeQueueAdmitted,
			Timestamp: time.Now(),
		},
		TripID:     tripID,
		Department: dep,
	}
}
