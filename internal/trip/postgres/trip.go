package postgres

import (
	"time"

	"github.com/frahmantamala/trip-management/internal/trip"
	"gorm.io/gorm"
)

// TripRepository implements the trip.Repository interface using GORM
type TripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) trip.Repository {
	return &TripRepository{db: db}
}

func (r *TripRepository) Create(t *trip.Trip) error {
	return r.db.Create(t).Error
}

func (r *TripRepository) CreatePassportData(p *trip.PassportData) error {
	return r.db.Create(p).Error
}

func (r *TripRepository) GetByID(id int64) (*trip.Trip, error) {
	var t trip.Trip
	err := r.db.Preload("DeputyGovernor").Where("id = ?", id).First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, trip.ErrTripNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TripRepository) GetByIDs(ids []int64) ([]*trip.Trip, error) {
	var trips []*trip.Trip
	err := r.db.Where("id IN ?", ids).
		Order("id DESC").
		Find(&trips).Error
	return trips, err
}

func (r *TripRepository) AttachDeputyGovernor(tripID, deputyGovernorID int64) error {
	result := r.db.Model(&trip.Trip{}).
		Where("id = ?", tripID).
		Updates(map[string]interface{}{
			"deputy_governor_id": deputyGovernorID,
			"updated_at":         time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return trip.ErrTripNotFound
	}
	return nil
}

func (r *TripRepository) GetDeputyGovernor(id int64) (*trip.DeputyGovernor, error) {
	var dg trip.DeputyGovernor
	err := r.db.Where("id = ?", id).First(&dg).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, trip.ErrDeputyGovernorNotFound
		}
		return nil, err
	}
	return &dg, nil
}

func (r *TripRepository) ListDeputyGovernors() ([]*trip.DeputyGovernor, error) {
	var governors []*trip.DeputyGovernor
	err := r.db.Order("full_name ASC").Find(&governors).Error
	return governors, err
}
