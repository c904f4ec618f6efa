package domain

// TicketType is a read-only projection of a catalog-owned ticket category.
// TotalQuantity is the source of truth for total capacity; consumed capacity
// lives in the reservation ledger.
type TicketType struct {
	ID            string
	EventID       string
	Name          string
	Price         float64
	TotalQuantity int
}

// Availability is the remaining stock for one ticket type at a single instant.
type Availability struct {
	TicketTypeID     string
	Name             string
	Price            float64
	OriginalQuantity int
	Remaining        int
}
