package trip

import (
	"context"
	"log/slog"
)

// Repository defines the data access methods for trip requests and their
// owned records.
type Repository interface {
	Create(t *Trip) error
	CreatePassportData(p *PassportData) error
	GetByID(id int64) (*Trip, error)
	GetByIDs(ids []int64) ([]*Trip, error)
	AttachDeputyGovernor(tripID, deputyGovernorID int64) error
	GetDeputyGovernor(id int64) (*DeputyGovernor, error)
	ListDeputyGovernors() ([]*DeputyGovernor, error)
}

// Workflow admits a freshly created trip into the first approval queue.
type Workflow interface {
	Submit(ctx context.Context, tripID int64) error
}

type Service struct {
	repo     Repository
	workflow Workflow
	logger   *slog.Logger
}

func NewService(repo Repository, workflow Workflow, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		workflow: workflow,
		logger:   logger,
	}
}

// CreateTrip stores a submitted trip request and admits it into the
// head-of-department queue.
func (s *Service) CreateTrip(ctx context.Context, dto CreateTripDTO) (*Trip, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("trip validation failed", "error", err)
		return nil, err
	}

	t := dto.ToTrip()
	if err := s.repo.Create(t); err != nil {
		s.logger.Error("failed to create trip", "error", err)
		return nil, err
	}

	if dto.Passport != nil {
		if err := s.repo.CreatePassportData(dto.Passport.ToPassportData(t.ID)); err != nil {
			s.logger.Error("failed to store passport data", "error", err, "trip_id", t.ID)
			return nil, err
		}
	}

	if err := s.workflow.Submit(ctx, t.ID); err != nil {
		s.logger.Error("failed to admit trip into workflow", "error", err, "trip_id", t.ID)
		return nil, err
	}

	s.logger.Info("trip request submitted",
		"trip_id", t.ID,
		"traveler", t.FullName(),
		"location", t.Location)

	return t, nil
}

// GetTrip retrieves the trip aggregate for the read-only detail view.
func (s *Service) GetTrip(id int64) (*Trip, error) {
	t, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get trip", "error", err, "trip_id", id)
		return nil, ErrTripNotFound
	}
	return t, nil
}

// ListDeputyGovernors feeds the head-of-department approval form.
func (s *Service) ListDeputyGovernors() ([]*DeputyGovernor, error) {
	governors, err := s.repo.ListDeputyGovernors()
	if err != nil {
		s.logger.Error("failed to list deputy governors", "error", err)
		return nil, err
	}
	return governors, nil
}
