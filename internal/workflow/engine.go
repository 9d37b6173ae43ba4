package workflow

import (
	"log/slog"

	"github.com/frahmantamala/trip-management/internal/department"
)

// Repository defines the data access methods for the queue ledger. Transact
// runs the given function against a transactional view of the ledger;
// GetOrCreate must be idempotent under concurrent retries.
type Repository interface {
	Transact(fn func(Repository) error) error
	Get(tripID int64, dep department.Department) (*QueueEntry, error)
	GetOrCreate(tripID int64, dep department.Department) (entry *QueueEntry, created bool, err error)
	CompareAndSetStatus(tripID int64, dep department.Department, from, to string) (bool, error)
	ListByTrip(tripID int64) ([]*QueueEntry, error)
	ListTripIDs(dep department.Department, status string) ([]int64, error)
	ListAllTripIDs() ([]int64, error)
}

// Engine is the approval state machine. It advances a completed queue entry
// into every eligible downstream department, enforcing the rule that a
// department opens only once all departments feeding into it have completed.
type Engine struct {
	repo   Repository
	logger *slog.Logger
}

func NewEngine(repo Repository, logger *slog.Logger) *Engine {
	return &Engine{repo: repo, logger: logger}
}

// Submit admits a trip into the entry department of the DAG. It is the only
// admission with no prerequisites. The returned slice lists the departments
// that actually gained a new entry (empty on a repeated submission).
func (e *Engine) Submit(tripID int64) ([]department.Department, error) {
	entry := department.Entry()
	_, created, err := e.repo.GetOrCreate(tripID, entry)
	if err != nil {
		return nil, err
	}
	if !created {
		e.logger.Warn("trip already admitted", "trip_id", tripID, "department", entry)
		return nil, nil
	}
	e.logger.Info("trip admitted", "trip_id", tripID, "department", entry)
	return []department.Department{entry}, nil
}

// Complete marks the (trip, dep) entry COMPLETED and attempts to admit the
// trip into every downstream department of dep. The transition and all
// admissions run in a single transaction. Every downstream target is
// attempted even when a sibling's join fails. Returns the departments that
// gained a new entry.
func (e *Engine) Complete(tripID int64, dep department.Department) ([]department.Department, error) {
	var admitted []department.Department

	err := e.repo.Transact(func(r Repository) error {
		if err := e.transition(r, tripID, dep, StatusCompleted); err != nil {
			return err
		}

		for _, next := range dep.Downstream() {
			ready, err := e.prerequisitesCompleted(r, tripID, next, dep)
			if err != nil {
				return err
			}
			if !ready {
				e.logger.Debug("join not satisfied, skipping admission",
					"trip_id", tripID, "department", next)
				continue
			}

			_, created, err := r.GetOrCreate(tripID, next)
			if err != nil {
				return err
			}
			if created {
				admitted = append(admitted, next)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("queue entry completed",
		"trip_id", tripID,
		"department", dep,
		"admitted", admitted)
	return admitted, nil
}

// Reject marks the (trip, dep) entry REJECTED. No downstream admission takes
// place: rejection permanently halts that branch of the DAG while already
// admitted sibling branches continue.
func (e *Engine) Reject(tripID int64, dep department.Department) error {
	err := e.repo.Transact(func(r Repository) error {
		return e.transition(r, tripID, dep, StatusRejected)
	})
	if err != nil {
		return err
	}

	e.logger.Info("queue entry rejected", "trip_id", tripID, "department", dep)
	return nil
}

// transition performs the guarded NEW -> to compare-and-set. A lost race or a
// repeated terminal action surfaces as ErrInvalidTransition, never as a
// double transition.
func (e *Engine) transition(r Repository, tripID int64, dep department.Department, to string) error {
	ok, err := r.CompareAndSetStatus(tripID, dep, StatusNew, to)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	if _, err := r.Get(tripID, dep); err != nil {
		return err
	}
	return ErrInvalidTransition
}

// prerequisitesCompleted is the join check for admitting next. Every
// prerequisite of next other than the department completing right now must
// hold a COMPLETED entry. A missing entry blocks admission: absence is not
// completion.
func (e *Engine) prerequisitesCompleted(r Repository, tripID int64, next, current department.Department) (bool, error) {
	for _, prereq := range next.Prerequisites() {
		if prereq == current {
			continue
		}
		entry, err := r.Get(tripID, prereq)
		if err == ErrEntryNotFound {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if !entry.IsCompleted() {
			return false, nil
		}
	}
	return true, nil
}
