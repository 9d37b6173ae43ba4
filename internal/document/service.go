package document

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/trip-management/internal"
	"github.com/frahmantamala/trip-management/internal/trip"
)

// Repository defines the data access methods for the per-trip document
// records. GetOrCreate calls must be idempotent: at most one order and one
// funding application exist per trip.
type Repository interface {
	GetOrderByTrip(tripID int64) (*Order, error)
	GetOrCreateOrder(defaults *Order) (*Order, error)
	SaveOrder(o *Order) error
	GetFundingByTrip(tripID int64) (*ApplicationFunding, error)
	GetOrCreateFunding(defaults *ApplicationFunding) (*ApplicationFunding, error)
	SaveFunding(app *ApplicationFunding) error
}

// Renderer is the external document-generation collaborator.
type Renderer interface {
	RenderTemplate(ctx context.Context, fields TemplateFields) ([]byte, error)
}

type Service struct {
	repo      Repository
	renderer  Renderer
	inflector Inflector
	allowance internal.AllowanceConfig
	logger    *slog.Logger
}

func NewService(repo Repository, renderer Renderer, inflector Inflector, allowance internal.AllowanceConfig, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		renderer:  renderer,
		inflector: inflector,
		allowance: allowance,
		logger:    logger,
	}
}

// PrepareOrder returns the trip's order, creating it from computed defaults
// when absent. Fields left empty on an existing record are filled in from the
// defaults for display only; a value that was ever entered sticks.
func (s *Service) PrepareOrder(t *trip.Trip) (*Order, error) {
	defaults := OrderDefaults(t, s.inflector)
	o, err := s.repo.GetOrCreateOrder(defaults)
	if err != nil {
		s.logger.Error("failed to get or create order", "error", err, "trip_id", t.ID)
		return nil, err
	}
	mergeOrderDefaults(o, defaults)
	return o, nil
}

// UpdateOrder applies the deputy-governor stage edits.
func (s *Service) UpdateOrder(t *trip.Trip, dto OrderDTO) (*Order, error) {
	o, err := s.PrepareOrder(t)
	if err != nil {
		return nil, err
	}

	o.FullNameGenitive = dto.FullNameGenitive
	o.FullName = dto.FullName
	o.Position = dto.Position
	o.Period = dto.Period
	o.Location = dto.Location
	o.Purpose = dto.Purpose
	o.UpdatedAt = time.Now()

	if err := s.repo.SaveOrder(o); err != nil {
		s.logger.Error("failed to save order", "error", err, "trip_id", t.ID)
		return nil, err
	}
	return o, nil
}

// AttachOrderScan stores the personnel stage's reference to the signed scan.
func (s *Service) AttachOrderScan(t *trip.Trip, scanRef string) error {
	o, err := s.PrepareOrder(t)
	if err != nil {
		return err
	}

	o.ScanRef = scanRef
	o.UpdatedAt = time.Now()

	if err := s.repo.SaveOrder(o); err != nil {
		s.logger.Error("failed to attach order scan", "error", err, "trip_id", t.ID)
		return err
	}
	return nil
}

// PrepareFunding returns the trip's funding application, creating it with
// amounts computed from the configured allowance rates when absent.
func (s *Service) PrepareFunding(t *trip.Trip) (*ApplicationFunding, error) {
	defaults := FundingDefaults(t, s.allowance)
	app, err := s.repo.GetOrCreateFunding(defaults)
	if err != nil {
		s.logger.Error("failed to get or create funding application", "error", err, "trip_id", t.ID)
		return nil, err
	}
	mergeFundingDefaults(app, defaults)
	return app, nil
}

// UpdateFunding applies the purchasing stage's figures. Empty inputs keep the
// existing (or computed) values: the first non-empty value wins.
func (s *Service) UpdateFunding(t *trip.Trip, dto FundingDTO) (*ApplicationFunding, error) {
	app, err := s.PrepareFunding(t)
	if err != nil {
		return nil, err
	}

	if dto.Fare != "" {
		app.Fare = dto.Fare
	}
	if dto.HotelCost != "" {
		app.HotelCost = dto.HotelCost
	}
	if dto.DailyAllowance != "" {
		app.DailyAllowance = dto.DailyAllowance
	}
	app.UpdatedAt = time.Now()

	if err := s.repo.SaveFunding(app); err != nil {
		s.logger.Error("failed to save funding application", "error", err, "trip_id", t.ID)
		return nil, err
	}
	return app, nil
}

// Render produces the document byte stream for download. The underlying
// record must already exist; rendering never creates one.
func (s *Service) Render(ctx context.Context, t *trip.Trip, docType string) ([]byte, error) {
	var fields TemplateFields

	switch docType {
	case TypeOrder:
		o, err := s.repo.GetOrderByTrip(t.ID)
		if err != nil {
			return nil, err
		}
		fields = OrderFields(o)
	case TypeFundingApplication:
		app, err := s.repo.GetFundingByTrip(t.ID)
		if err != nil {
			return nil, err
		}
		fields = FundingFields(app, t, s.allowance)
	default:
		return nil, ErrUnsupportedDocumentType
	}

	stream, err := s.renderer.RenderTemplate(ctx, fields)
	if err != nil {
		s.logger.Error("document render failed", "error", err, "trip_id", t.ID, "type", docType)
		return nil, err
	}
	return stream, nil
}

func mergeOrderDefaults(o, defaults *Order) {
	if o.FullNameGenitive == "" {
		o.FullNameGenitive = defaults.FullNameGenitive
	}
	if o.FullName == "" {
		o.FullName = defaults.FullName
	}
	if o.Position == "" {
		o.Position = defaults.Position
	}
	if o.Period == "" {
		o.Period = defaults.Period
	}
	if o.Location == "" {
		o.Location = defaults.Location
	}
	if o.Purpose == "" {
		o.Purpose = defaults.Purpose
	}
	if o.DeputyGovernor == "" {
		o.DeputyGovernor = defaults.DeputyGovernor
	}
	if o.DeputyGovernorPosition == "" {
		o.DeputyGovernorPosition = defaults.DeputyGovernorPosition
	}
}

func mergeFundingDefaults(app, defaults *ApplicationFunding) {
	if app.Fare == "" {
		app.Fare = defaults.Fare
	}
	if app.HotelCost == "" {
		app.HotelCost = defaults.HotelCost
	}
	if app.DailyAllowance == "" {
		app.DailyAllowance = defaults.DailyAllowance
	}
	if app.DeputyGovernor == "" {
		app.DeputyGovernor = defaults.DeputyGovernor
	}
	if app.DeputyGovernorPosition == "" {
		app.DeputyGovernorPosition = defaults.DeputyGovernorPosition
	}
}
