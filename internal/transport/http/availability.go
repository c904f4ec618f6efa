package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sanketwange/ConcertTicketManagementSystem/internal/domain"
)

// AvailabilityLister is the minimal interface needed to answer availability queries.
type AvailabilityLister interface {
	Availability(ctx context.Context, eventID string) ([]domain.Availability, error)
}

// HandleAvailability returns an HTTP handler listing remaining stock per
// ticket type for an event.
func HandleAvailability(svc AvailabilityLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := chi.URLParam(r, "eventID")
		if eventID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidID, "event id is required")
			return
		}

		avail, err := svc.Availability(r.Context(), eventID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]availabilityEntry, 0, len(avail))
		for _, a := range avail {
			resp = append(resp, availabilityEntry{
				TicketTypeID:     a.TicketTypeID,
				Name:             a.Name,
				Price:            a.Price,
				OriginalQuantity: a.OriginalQuantity,
				Remaining:        a.Remaining,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type availabilityEntry struct {
	TicketTypeID     string  `json:"ticket_type_id"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	OriginalQuantity int     `json:"original_quantity"`
	Remaining        int     `json:"remaining"`
}
