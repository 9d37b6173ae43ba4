package postgres

import (
	"github.com/frahmantamala/trip-management/internal/document"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentRepository implements the document.Repository interface using GORM
type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) document.Repository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) GetOrderByTrip(tripID int64) (*document.Order, error) {
	var o document.Order
	err := r.db.Where("trip_id = ?", tripID).First(&o).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, document.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

// GetOrCreateOrder inserts the defaults unless an order already exists for
// the trip. The unique index on trip_id makes concurrent calls converge on a
// single row.
func (r *DocumentRepository) GetOrCreateOrder(defaults *document.Order) (*document.Order, error) {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "trip_id"}},
		DoNothing: true,
	}).Create(defaults).Error
	if err != nil {
		return nil, err
	}
	return r.GetOrderByTrip(defaults.TripID)
}

func (r *DocumentRepository) SaveOrder(o *document.Order) error {
	return r.db.Save(o).Error
}

func (r *DocumentRepository) GetFundingByTrip(tripID int64) (*document.ApplicationFunding, error) {
	var app document.ApplicationFunding
	err := r.db.Where("trip_id = ?", tripID).First(&app).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, document.ErrFundingNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *DocumentRepository) GetOrCreateFunding(defaults *document.ApplicationFunding) (*document.ApplicationFunding, error) {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "trip_id"}},
		DoNothing: true,
	}).Create(defaults).Error
	if err != nil {
		return nil, err
	}
	return r.GetFundingByTrip(defaults.TripID)
}

func (r *DocumentRepository) SaveFunding(app *document.ApplicationFunding) error {
	return r.db.Save(app).Error
}
