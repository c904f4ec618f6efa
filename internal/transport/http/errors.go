package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Sanketwange/ConcertTicketManagementSystem/internal/domain"
)

const (
	codeMethodNotAllowed    = "method_not_allowed"
	codeNotFound            = "not_found"
	codeInvalidRequestBody  = "invalid_request_body"
	codeInvalidQuantity     = "invalid_quantity"
	codeInvalidID           = "invalid_id"
	codeIdentityRequired    = "identity_required"
	codeInvalidTicketType   = "invalid_ticket_type"
	codeInsufficientStock   = "insufficient_stock"
	codeCatalogUnavailable  = "catalog_unavailable"
	codeReservationNotFound = "reservation_not_found"
	codeReservationExpired  = "reservation_expired"
	codeInvalidState        = "invalid_state"
	codeForbidden           = "forbidden"
	codeInternalError       = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	// Remaining is set on insufficient-stock rejections so callers can retry
	// with an adjusted quantity.
	Remaining *int `json:"remaining,omitempty"`
	// Status is set on invalid-state rejections.
	Status string `json:"status,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeErrorResponse(w, status, errorResponse{Error: msg, Code: code})
}

func writeErrorResponse(w http.ResponseWriter, status int, resp errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(resp)
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps booking-core rejections onto the wire. Every typed
// rejection carries enough structure for the caller to decide on a retry.
func writeDomainError(w http.ResponseWriter, err error) {
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		remaining := stockErr.Remaining
		writeErrorResponse(w, http.StatusConflict, errorResponse{
			Error:     err.Error(),
			Code:      codeInsufficientStock,
			Remaining: &remaining,
		})
		return
	}

	var stateErr *domain.InvalidStateError
	if errors.As(err, &stateErr) {
		writeErrorResponse(w, http.StatusConflict, errorResponse{
			Error:  err.Error(),
			Code:   codeInvalidState,
			Status: string(stateErr.Status),
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, codeInvalidQuantity, err.Error())
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrInvalidTicketType):
		writeError(w, http.StatusNotFound, codeInvalidTicketType, err.Error())
	case errors.Is(err, domain.ErrReservationNotFound):
		writeError(w, http.StatusNotFound, codeReservationNotFound, err.Error())
	case errors.Is(err, domain.ErrReservationExpired):
		writeError(w, http.StatusConflict, codeReservationExpired, err.Error())
	case errors.Is(err, domain.ErrDependencyUnavailable):
		writeError(w, http.StatusServiceUnavailable, codeCatalogUnavailable, domain.ErrDependencyUnavailable.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
