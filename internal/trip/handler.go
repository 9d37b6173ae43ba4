package trip

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/trip-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateTrip(ctx context.Context, dto CreateTripDTO) (*Trip, error)
	GetTrip(id int64) (*Trip, error)
	ListDeputyGovernors() ([]*DeputyGovernor, error)
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

func (h *Handler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var dto CreateTripDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateTrip: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.CreateTrip(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateTrip: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateTrip: trip submitted", "trip_id", t.ID)
	h.WriteJSON(w, http.StatusCreated, t)
}

func (h *Handler) GetTrip(w http.ResponseWriter, r *http.Request) {
	tripIDStr := chi.URLParam(r, "id")
	tripID, err := strconv.ParseInt(tripIDStr, 10, 64)
	if err != nil {
		h.Logger.Error("GetTrip: invalid trip ID", "id", tripIDStr)
		h.WriteError(w, http.StatusBadRequest, "invalid trip ID")
		return
	}

	t, err := h.Service.GetTrip(tripID)
	if err != nil {
		if err == ErrTripNotFound {
			h.WriteError(w, http.StatusNotFound, "trip not found")
			return
		}
		h.Logger.Error("GetTrip: service error", "error", err, "trip_id", tripID)
		h.WriteError(w, http.StatusInternalServerError, "failed to get trip")
		return
	}

	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) ListDeputyGovernors(w http.ResponseWriter, r *http.Request) {
	governors, err := h.Service.ListDeputyGovernors()
	if err != nil {
		h.Logger.Error("ListDeputyGovernors: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list deputy governors")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"deputy_governors": governors,
	})
}
