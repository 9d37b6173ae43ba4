package document

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/frahmantamala/trip-management/internal/transport"
	"github.com/frahmantamala/trip-management/internal/trip"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Render(ctx context.Context, t *trip.Trip, docType string) ([]byte, error)
}

type TripGetter interface {
	GetTrip(id int64) (*trip.Trip, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Trips   TripGetter
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, trips TripGetter) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Trips:       trips,
	}
}

// Download streams the rendered document as a PDF attachment.
// GET /trips/{id}/document/{type}
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	tripIDStr := chi.URLParam(r, "id")
	tripID, err := strconv.ParseInt(tripIDStr, 10, 64)
	if err != nil {
		h.Logger.Error("Download: invalid trip ID", "id", tripIDStr)
		h.WriteError(w, http.StatusBadRequest, "invalid trip ID")
		return
	}

	docType := chi.URLParam(r, "type")

	t, err := h.Trips.GetTrip(tripID)
	if err != nil {
		h.WriteError(w, http.StatusNotFound, "trip not found")
		return
	}

	stream, err := h.Service.Render(r.Context(), t, docType)
	if err != nil {
		switch err {
		case ErrUnsupportedDocumentType:
			h.WriteError(w, http.StatusNotFound, "unsupported document type")
		case ErrOrderNotFound, ErrFundingNotFound:
			h.WriteError(w, http.StatusNotFound, "document record not found")
		default:
			h.Logger.Error("Download: render failed", "error", err, "trip_id", tripID, "type", docType)
			h.WriteError(w, http.StatusBadGateway, "document generation failed")
		}
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_%d.pdf", docType, tripID))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(stream); err != nil {
		h.Logger.Error("Download: failed to write stream", "error", err)
	}
}
