package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/frahmantamala/trip-management/internal/department"
	"github.com/frahmantamala/trip-management/internal/document"
	"github.com/frahmantamala/trip-management/internal/transport"
	"github.com/frahmantamala/trip-management/internal/trip"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	QueueView(ctx context.Context, tripID int64, dep department.Department) (*QueueViewDTO, error)
	Complete(ctx context.Context, tripID int64, dep department.Department, dto ActionDTO) error
	Reject(ctx context.Context, tripID int64, dep department.Department) error
	SaveFunding(ctx context.Context, tripID int64, dto document.FundingDTO) error
	ListTrips(queueParam, statusParam string) (*TripListDTO, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// ListTrips serves the management listing filtered by queue and status.
func (h *Handler) ListTrips(w http.ResponseWriter, r *http.Request) {
	queue := r.URL.Query().Get("queue")
	status := r.URL.Query().Get("status")

	list, err := h.Service.ListTrips(queue, status)
	if err != nil {
		h.Logger.Error("ListTrips: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list trips")
		return
	}

	h.WriteJSON(w, http.StatusOK, list)
}

// QueueView serves the department's form data for a trip in its queue.
func (h *Handler) QueueView(w http.ResponseWriter, r *http.Request) {
	tripID, dep, ok := h.queueParams(w, r)
	if !ok {
		return
	}

	view, err := h.Service.QueueView(r.Context(), tripID, dep)
	if err != nil {
		h.writeQueueError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, view)
}

// QueueAction applies a department action to a trip in its queue.
func (h *Handler) QueueAction(w http.ResponseWriter, r *http.Request) {
	tripID, dep, ok := h.queueParams(w, r)
	if !ok {
		return
	}

	var dto ActionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("QueueAction: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch dto.Action {
	case ActionComplete:
		if err := h.Service.Complete(r.Context(), tripID, dep, dto); err != nil {
			h.writeQueueError(w, err)
			return
		}
		h.Logger.Info("QueueAction: stage completed", "trip_id", tripID, "department", dep)
		h.WriteJSON(w, http.StatusOK, map[string]string{"status": StatusCompleted})

	case ActionReject:
		if err := h.Service.Reject(r.Context(), tripID, dep); err != nil {
			h.writeQueueError(w, err)
			return
		}
		h.Logger.Info("QueueAction: stage rejected", "trip_id", tripID, "department", dep)
		h.WriteJSON(w, http.StatusOK, map[string]string{"status": StatusRejected})

	case ActionSave:
		if dep != department.PurchasingDepartment {
			h.WriteError(w, http.StatusBadRequest, "save is only available to the purchasing department")
			return
		}
		if dto.Funding == nil {
			h.WriteError(w, http.StatusBadRequest, "funding fields are required")
			return
		}
		if err := h.Service.SaveFunding(r.Context(), tripID, *dto.Funding); err != nil {
			h.writeQueueError(w, err)
			return
		}
		h.WriteJSON(w, http.StatusOK, map[string]string{"status": StatusNew})

	case ActionDownload:
		docType, err := documentTypeFor(dep)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		http.Redirect(w, r, fmt.Sprintf("/api/v1/trips/%d/document/%s", tripID, docType), http.StatusSeeOther)
	}
}

// documentTypeFor maps a department to the document it works with.
func documentTypeFor(dep department.Department) (string, error) {
	switch dep {
	case department.DeputyGovernor, department.PersonnelDepartment:
		return document.TypeOrder, nil
	case department.PurchasingDepartment:
		return document.TypeFundingApplication, nil
	default:
		return "", errors.New("no document is available for this department")
	}
}

func (h *Handler) queueParams(w http.ResponseWriter, r *http.Request) (int64, department.Department, bool) {
	tripIDStr := chi.URLParam(r, "id")
	tripID, err := strconv.ParseInt(tripIDStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid trip ID")
		return 0, "", false
	}

	dep, err := department.Parse(chi.URLParam(r, "department"))
	if err != nil {
		h.WriteError(w, http.StatusNotFound, "unknown department queue")
		return 0, "", false
	}

	return tripID, dep, true
}

func (h *Handler) writeQueueError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, trip.ErrTripNotFound):
		h.WriteError(w, http.StatusNotFound, "trip not found")
	case errors.Is(err, trip.ErrDeputyGovernorNotFound):
		h.WriteError(w, http.StatusBadRequest, "unknown deputy governor")
	case errors.Is(err, ErrEntryNotFound):
		h.WriteError(w, http.StatusNotFound, "trip is not in this queue")
	case errors.Is(err, ErrInvalidTransition):
		h.WriteError(w, http.StatusConflict, "queue entry is no longer pending")
	case errors.Is(err, ErrDeputyGovernorRequired):
		h.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		h.Logger.Error("queue action failed", "error", err)
		h.HandleServiceError(w, err)
	}
}
