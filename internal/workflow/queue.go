package workflow

import (
	"errors"
	"time"

	"github.com/frahmantamala/trip-management/internal/department"
)

// Queue entry statuses. NEW is the only non-terminal state: an entry moves to
// COMPLETED or REJECTED exactly once and never changes again.
const (
	StatusNew       = "NEW"
	StatusCompleted = "COMPLETED"
	StatusRejected  = "REJECTED"
)

// Domain errors
var (
	ErrEntryNotFound     = errors.New("queue entry not found")
	ErrInvalidTransition = errors.New("queue entry is not in NEW status")
)

// QueueEntry records one trip's membership in one department's queue. There
// is at most one entry per (trip, department) pair.
type QueueEntry struct {
	ID         int64                 `json:"id" gorm:"primaryKey"`
	TripID     int64                 `json:"trip_id" gorm:"column:trip_id;not null;uniqueIndex:idx_trip_department"`
	Department department.Department `json:"department" gorm:"column:department;not null;uniqueIndex:idx_trip_department"`
	Status     string                `json:"status" gorm:"column:status;default:NEW"`
	CreatedAt  time.Time             `json:"created_at" gorm:"column:created_at"`
	UpdatedAt  time.Time             `json:"updated_at" gorm:"column:updated_at"`
}

func (QueueEntry) TableName() string {
	return "trip_queues"
}

func (e *QueueEntry) IsNew() bool {
	return e.Status == StatusNew
}

func (e *QueueEntry) IsCompleted() bool {
	return e.Status == StatusCompleted
}

func (e *QueueEntry) IsTerminal() bool {
	return e.Status == StatusCompleted || e.Status == StatusRejected
}

// ValidStatus reports whether s names a known queue status.
func ValidStatus(s string) bool {
	return s == StatusNew || s == StatusCompleted || s == StatusRejected
}
