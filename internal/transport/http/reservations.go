package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Sanketwange/ConcertTicketManagementSystem/internal/app"
	"github.com/Sanketwange/ConcertTicketManagementSystem/internal/domain"
)

// Reserver is the minimal interface needed to create a hold.
type Reserver interface {
	Reserve(ctx context.Context, in app.ReserveInput) (domain.Reservation, error)
}

// Confirmer is the minimal interface needed to finalize a hold.
type Confirmer interface {
	Confirm(ctx context.Context, user domain.User, reservationCode string) (domain.Receipt, error)
}

// Canceller is the minimal interface needed to release a hold.
type Canceller interface {
	Cancel(ctx context.Context, user domain.User, reservationCode string) error
}

// HandleReserve returns an HTTP handler for creating reservations.
func HandleReserve(svc Reserver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeIdentityRequired, "authenticated identity required")
			return
		}

		var req reserveRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.EventID == "" || req.TicketTypeID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidID, "event_id and ticket_type_id are required")
			return
		}
		if req.Quantity <= 0 {
			writeError(w, http.StatusBadRequest, codeInvalidQuantity, domain.ErrInvalidQuantity.Error())
			return
		}

		res, err := svc.Reserve(r.Context(), app.ReserveInput{
			User:         user,
			EventID:      req.EventID,
			TicketTypeID: req.TicketTypeID,
			Quantity:     req.Quantity,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := reserveResponse{
			ReservationID:   res.ID,
			ReservationCode: res.ReservationCode,
			TicketTypeName:  res.TicketTypeName,
			PricePerTicket:  res.PricePerTicket,
			Quantity:        res.Quantity,
			ExpiresAt:       res.ExpiresAt,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleConfirm returns an HTTP handler for confirming reservations.
func HandleConfirm(svc Confirmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeIdentityRequired, "authenticated identity required")
			return
		}

		code := chi.URLParam(r, "code")
		if code == "" {
			writeError(w, http.StatusBadRequest, codeInvalidID, "reservation code is required")
			return
		}

		receipt, err := svc.Confirm(r.Context(), user, code)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := receiptResponse{
			ReservationID:  receipt.ReservationID,
			TicketTypeName: receipt.TicketTypeName,
			Quantity:       receipt.Quantity,
			TotalPrice:     receipt.TotalPrice,
			PurchasedAt:    receipt.PurchasedAt,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleCancel returns an HTTP handler for cancelling reservations.
func HandleCancel(svc Canceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeIdentityRequired, "authenticated identity required")
			return
		}

		code := chi.URLParam(r, "code")
		if code == "" {
			writeError(w, http.StatusBadRequest, codeInvalidID, "reservation code is required")
			return
		}

		if err := svc.Cancel(r.Context(), user, code); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type reserveRequest struct {
	EventID      string `json:"event_id"`
	TicketTypeID string `json:"ticket_type_id"`
	Quantity     int    `json:"quantity"`
}

type reserveResponse struct {
	ReservationID   string    `json:"reservation_id"`
	ReservationCode string    `json:"reservation_code"`
	TicketTypeName  string    `json:"ticket_type_name"`
	PricePerTicket  float64   `json:"price_per_ticket"`
	Quantity        int       `json:"quantity"`
	ExpiresAt       time.Time `json:"expires_at"`
}

type receiptResponse struct {
	ReservationID  string    `json:"reservation_id"`
	TicketTypeName string    `json:"ticket_type_name"`
	Quantity       int       `json:"quantity"`
	TotalPrice     float64   `json:"total_price"`
	PurchasedAt    time.Time `json:"purchased_at"`
}
