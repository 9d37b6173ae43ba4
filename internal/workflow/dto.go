package workflow

import (
	"errors"

	"github.com/frahmantamala/trip-management/internal/department"
	"github.com/frahmantamala/trip-management/internal/document"
	"github.com/frahmantamala/trip-management/internal/trip"
)

// Queue actions accepted by the per-department endpoints.
const (
	ActionComplete = "complete"
	ActionReject   = "reject"
	ActionSave     = "save"
	ActionDownload = "download"
)

// ActionDTO is the payload of a department action. Only the fields belonging
// to the acting department are read.
type ActionDTO struct {
	Action string `json:"action"`

	// Head of department: the deputy governor chosen to approve the trip.
	DeputyGovernorID *int64 `json:"deputy_governor_id,omitempty"`

	// Deputy governor: the travel order fields.
	Order *document.OrderDTO `json:"order,omitempty"`

	// Personnel department: reference to the uploaded signed scan.
	ScanRef string `json:"scan_ref,omitempty"`

	// Purchasing department: the funding figures.
	Funding *document.FundingDTO `json:"funding,omitempty"`
}

func (dto ActionDTO) Validate() error {
	switch dto.Action {
	case ActionComplete, ActionReject, ActionSave, ActionDownload:
		return nil
	default:
		return errors.New("action must be one of complete, reject, save, download")
	}
}

// QueueViewDTO is the GET response of a department action endpoint: the
// entry status plus the prefilled form data the department edits.
type QueueViewDTO struct {
	TripID          int64                        `json:"trip_id"`
	Department      department.Department        `json:"department"`
	DepartmentLabel string                       `json:"department_label"`
	Status          string                       `json:"status"`
	Trip            *trip.Trip                   `json:"trip"`
	Order           *document.Order              `json:"order,omitempty"`
	Funding         *document.ApplicationFunding `json:"funding_application,omitempty"`
}

// TripListDTO is the management listing response.
type TripListDTO struct {
	Queue             string             `json:"queue"`
	Status            string             `json:"status"`
	AvailableStatuses []string           `json:"available_statuses"`
	Trips             []trip.TripSummary `json:"trips"`
}
