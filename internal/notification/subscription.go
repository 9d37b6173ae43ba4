package notification

import (
	"time"

	"github.com/frahmantamala/trip-management/internal/department"
)

// EmailSubscription ties an address to a department queue. Every active
// subscriber is mailed when a trip enters the queue.
type EmailSubscription struct {
	ID         int64                 `json:"id" gorm:"primaryKey"`
	Email      string                `json:"email" gorm:"not null"`
	Department department.Department `json:"department" gorm:"type:varchar(64);not null"`
	Active     bool                  `json:"active" gorm:"default:true"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

func (EmailSubscription) TableName() string {
	return "email_subscriptions"
}
