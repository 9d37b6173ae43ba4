package workflow

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/frahmantamala/trip-management/internal"
	"github.com/frahmantamala/trip-management/internal/department"
	"github.com/frahmantamala/trip-management/internal/document"
	"github.com/frahmantamala/trip-management/internal/trip"
)

// Service errors
var (
	ErrDeputyGovernorRequired = errors.New("deputy governor must be chosen to complete this stage")
)

// TripStore is the trip data the workflow needs.
type TripStore interface {
	GetByID(id int64) (*trip.Trip, error)
	GetByIDs(ids []int64) ([]*trip.Trip, error)
	AttachDeputyGovernor(tripID, deputyGovernorID int64) error
	GetDeputyGovernor(id int64) (*trip.DeputyGovernor, error)
}

// Documents manages the order and funding records the stages edit.
type Documents interface {
	PrepareOrder(t *trip.Trip) (*document.Order, error)
	UpdateOrder(t *trip.Trip, dto document.OrderDTO) (*document.Order, error)
	AttachOrderScan(t *trip.Trip, scanRef string) error
	PrepareFunding(t *trip.Trip) (*document.ApplicationFunding, error)
	UpdateFunding(t *trip.Trip, dto document.FundingDTO) (*document.ApplicationFunding, error)
}

// Notifier fans out a "new item in queue" event. Implementations are
// best-effort and must never fail the workflow.
type Notifier interface {
	QueueAdmitted(ctx context.Context, tripID int64, dep department.Department)
}

// Service coordinates the per-department actions around the state machine:
// it applies the department's record edits first, then runs the engine
// transition, then fans out notifications for newly admitted queues.
type Service struct {
	engine    *Engine
	repo      Repository
	trips     TripStore
	documents Documents
	notifier  Notifier
	logger    *slog.Logger
}

func NewService(engine *Engine, repo Repository, trips TripStore, documents Documents, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		engine:    engine,
		repo:      repo,
		trips:     trips,
		documents: documents,
		notifier:  notifier,
		logger:    logger,
	}
}

// Submit admits a freshly created trip into the head-of-department queue.
func (s *Service) Submit(ctx context.Context, tripID int64) error {
	admitted, err := s.engine.Submit(tripID)
	if err != nil {
		return err
	}
	s.fanOut(ctx, tripID, admitted)
	return nil
}

// QueueView assembles the department's view of a trip: entry status plus the
// prefilled record the department edits.
func (s *Service) QueueView(ctx context.Context, tripID int64, dep department.Department) (*QueueViewDTO, error) {
	t, err := s.trips.GetByID(tripID)
	if err != nil {
		return nil, err
	}

	entry, err := s.repo.Get(tripID, dep)
	if err != nil {
		return nil, err
	}

	view := &QueueViewDTO{
		TripID:          tripID,
		Department:      dep,
		DepartmentLabel: dep.Label(),
		Status:          entry.Status,
		Trip:            t,
	}

	switch dep {
	case department.DeputyGovernor, department.PersonnelDepartment:
		o, err := s.documents.PrepareOrder(t)
		if err != nil {
			return nil, err
		}
		view.Order = o
	case department.PurchasingDepartment:
		app, err := s.documents.PrepareFunding(t)
		if err != nil {
			return nil, err
		}
		view.Funding = app
	}

	return view, nil
}

// Complete performs the department-specific record edits and then completes
// the queue entry, admitting the trip into eligible downstream queues.
func (s *Service) Complete(ctx context.Context, tripID int64, dep department.Department, dto ActionDTO) error {
	t, err := s.trips.GetByID(tripID)
	if err != nil {
		return err
	}

	entry, err := s.repo.Get(tripID, dep)
	if err != nil {
		return err
	}
	if !entry.IsNew() {
		return ErrInvalidTransition
	}

	// Department side effects happen before the transition; the engine only
	// moves the ledger.
	switch dep {
	case department.HeadOfDepartment:
		if dto.DeputyGovernorID == nil {
			return ErrDeputyGovernorRequired
		}
		if _, err := s.trips.GetDeputyGovernor(*dto.DeputyGovernorID); err != nil {
			return err
		}
		if err := s.trips.AttachDeputyGovernor(tripID, *dto.DeputyGovernorID); err != nil {
			return err
		}
	case department.DeputyGovernor:
		if dto.Order == nil {
			return internal.NewValidationError("order fields are required", internal.ErrCodeValidationFailed)
		}
		if err := dto.Order.Validate(); err != nil {
			return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
		}
		if _, err := s.documents.UpdateOrder(t, *dto.Order); err != nil {
			return err
		}
	case department.PersonnelDepartment:
		if dto.ScanRef != "" {
			if err := s.documents.AttachOrderScan(t, dto.ScanRef); err != nil {
				return err
			}
		}
	case department.PurchasingDepartment:
		if dto.Funding == nil {
			return internal.NewValidationError("funding fields are required", internal.ErrCodeValidationFailed)
		}
		if err := dto.Funding.Validate(); err != nil {
			return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
		}
		if _, err := s.documents.UpdateFunding(t, *dto.Funding); err != nil {
			return err
		}
	case department.Bookkeeping:
		// Final stage, nothing to edit.
	}

	admitted, err := s.engine.Complete(tripID, dep)
	if err != nil {
		return err
	}

	s.fanOut(ctx, tripID, admitted)
	return nil
}

// Reject terminates the department's entry. Downstream queues are never
// admitted through a rejected branch.
func (s *Service) Reject(ctx context.Context, tripID int64, dep department.Department) error {
	if _, err := s.trips.GetByID(tripID); err != nil {
		return err
	}
	if _, err := s.repo.Get(tripID, dep); err != nil {
		return err
	}
	return s.engine.Reject(tripID, dep)
}

// SaveFunding updates the purchasing figures without completing the stage.
func (s *Service) SaveFunding(ctx context.Context, tripID int64, dto document.FundingDTO) error {
	t, err := s.trips.GetByID(tripID)
	if err != nil {
		return err
	}

	entry, err := s.repo.Get(tripID, department.PurchasingDepartment)
	if err != nil {
		return err
	}
	if !entry.IsNew() {
		return ErrInvalidTransition
	}

	_, err = s.documents.UpdateFunding(t, dto)
	return err
}

const queueAll = "all"

// ListTrips resolves the management listing for a queue/status filter pair.
// An unknown queue falls back to the all-trips view; an unknown or
// unavailable status falls back to NEW. The REJECTED filter is only offered
// on the all-trips and head-of-department views.
func (s *Service) ListTrips(queueParam, statusParam string) (*TripListDTO, error) {
	queue := queueAll
	var dep department.Department
	if d, err := department.Parse(queueParam); err == nil {
		queue = d.Slug()
		dep = d
	}

	available := []string{StatusNew, StatusCompleted}
	if queue == queueAll || dep == department.HeadOfDepartment {
		available = append(available, StatusRejected)
	}

	status := strings.ToUpper(statusParam)
	if !contains(available, status) {
		status = StatusNew
	}

	var (
		ids []int64
		err error
	)
	if queue == queueAll {
		ids, err = s.repo.ListAllTripIDs()
	} else {
		ids, err = s.repo.ListTripIDs(dep, status)
	}
	if err != nil {
		s.logger.Error("failed to list queue entries", "error", err, "queue", queue)
		return nil, err
	}

	trips, err := s.trips.GetByIDs(ids)
	if err != nil {
		s.logger.Error("failed to load trips", "error", err)
		return nil, err
	}

	summaries := make([]trip.TripSummary, 0, len(trips))
	for _, t := range trips {
		rowStatus := status
		if queue == queueAll {
			rowStatus = ""
		}
		summaries = append(summaries, t.ToSummary(rowStatus))
	}

	return &TripListDTO{
		Queue:             queue,
		Status:            status,
		AvailableStatuses: available,
		Trips:             summaries,
	}, nil
}

// fanOut notifies subscribers of every queue the trip just entered. Failures
// are the notifier's problem: the ledger transition is already committed.
func (s *Service) fanOut(ctx context.Context, tripID int64, admitted []department.Department) {
	for _, dep := range admitted {
		s.notifier.QueueAdmitted(ctx, tripID, dep)
	}
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
