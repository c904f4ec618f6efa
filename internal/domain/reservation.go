package domain

import "time"

type ReservationStatus string

const (
	StatusReserved  ReservationStatus = "reserved"
	StatusPurchased ReservationStatus = "purchased"
	StatusCancelled ReservationStatus = "cancelled"
	StatusExpired   ReservationStatus = "expired"
)

// Reservation is a ledger entry for a time-bounded claim on ticket inventory.
// Name and price are snapshots taken when the hold was created so later catalog
// edits cannot change what the purchaser was promised. Rows are never deleted;
// terminal statuses (purchased, cancelled, expired) are final.
type Reservation struct {
	ID             string
	UserID         string
	TicketTypeID   string
	TicketTypeName string
	PricePerTicket float64
	Quantity       int
	Status         ReservationStatus
	// ReservationCode is the single-use capability required to confirm or
	// cancel this hold. Unique across all reservations for all time.
	ReservationCode string
	ReservedAt      time.Time
	ExpiresAt       time.Time
	PurchasedAt     *time.Time
}

// Live reports whether the reservation still counts against capacity at the
// given instant.
func (r Reservation) Live(now time.Time) bool {
	switch r.Status {
	case StatusPurchased:
		return true
	case StatusReserved:
		return r.ExpiresAt.After(now)
	default:
		return false
	}
}

// Receipt summarizes a confirmed purchase.
type Receipt struct {
	ReservationID  string
	TicketTypeName string
	Quantity       int
	TotalPrice     float64
	PurchasedAt    time.Time
}
