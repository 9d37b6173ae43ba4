package postgres

import (
	"errors"

	"github.com/frahmantamala/trip-management/internal/department"
	"github.com/frahmantamala/trip-management/internal/workflow"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QueueRepository struct {
	db *gorm.DB
}

func NewQueueRepository(db *gorm.DB) *QueueRepository {
	return &QueueRepository{db: db}
}

// Transact runs fn inside a database transaction, handing it a repository
// bound to the transaction connection.
func (r *QueueRepository) Transact(fn func(workflow.Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&QueueRepository{db: tx})
	})
}

func (r *QueueRepository) Get(tripID int64, dep department.Department) (*workflow.QueueEntry, error) {
	var entry workflow.QueueEntry
	err := r.db.Where("trip_id = ? AND department = ?", tripID, dep).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// GetOrCreate inserts a NEW entry for the pair unless one already exists.
// The unique index on (trip_id, department) makes concurrent admission
// attempts collapse into a single row; the conflicting insert is a no-op.
func (r *QueueRepository) GetOrCreate(tripID int64, dep department.Department) (*workflow.QueueEntry, bool, error) {
	entry := workflow.QueueEntry{
		TripID:     tripID,
		Department: dep,
		Status:     workflow.StatusNew,
	}

	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "trip_id"}, {Name: "department"}},
		DoNothing: true,
	}).Create(&entry)
	if res.Error != nil {
		return nil, false, res.Error
	}

	created := res.RowsAffected > 0
	if created {
		return &entry, true, nil
	}

	existing, err := r.Get(tripID, dep)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// CompareAndSetStatus moves the entry from one status to another in a single
// guarded update. It reports false when the entry is missing or no longer in
// the expected status.
func (r *QueueRepository) CompareAndSetStatus(tripID int64, dep department.Department, from, to string) (bool, error) {
	res := r.db.Model(&workflow.QueueEntry{}).
		Where("trip_id = ? AND department = ? AND status = ?", tripID, dep, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *QueueRepository) ListByTrip(tripID int64) ([]*workflow.QueueEntry, error) {
	var entries []*workflow.QueueEntry
	if err := r.db.Where("trip_id = ?", tripID).Order("id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *QueueRepository) ListTripIDs(dep department.Department, status string) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&workflow.QueueEntry{}).
		Where("department = ? AND status = ?", dep, status).
		Order("id DESC").
		Pluck("trip_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *QueueRepository) ListAllTripIDs() ([]int64, error) {
	var ids []int64
	err := r.db.Model(&workflow.QueueEntry{}).
		Distinct("trip_id").
		Order("trip_id DESC").
		Pluck("trip_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
