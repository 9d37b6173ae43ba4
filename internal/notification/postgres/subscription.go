package postgres

import (
	"github.com/frahmantamala/trip-management/internal/department"
	"github.com/frahmantamala/trip-management/internal/notification"
	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) ListActiveByDepartment(dep department.Department) ([]*notification.EmailSubscription, error) {
	var subs []*notification.EmailSubscription
	err := r.db.
		Where("department = ? AND active = ?", dep, true).
		Order("id ASC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}
