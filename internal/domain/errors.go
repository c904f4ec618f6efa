package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidQuantity       = errors.New("quantity must be positive")
	ErrInvalidTicketType     = errors.New("ticket type not found")
	ErrDependencyUnavailable = errors.New("catalog unavailable")
	ErrReservationNotFound   = errors.New("reservation not found")
	ErrReservationExpired    = errors.New("reservation expired")
	ErrInvalidID             = errors.New("invalid id")
)

// InsufficientStockError carries the exact remaining count so the caller can
// retry with an adjusted quantity.
type InsufficientStockError struct {
	Remaining int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("only %d tickets left for this type", e.Remaining)
}

// InvalidStateError is returned when a transition is attempted on a
// reservation that is no longer in the reserved state.
type InvalidStateError struct {
	Status ReservationStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("reservation is %s; only reserved ones can transition", e.Status)
}
