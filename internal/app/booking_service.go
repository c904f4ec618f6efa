package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Sanketwange/ConcertTicketManagementSystem/internal/clock"
	"github.com/Sanketwange/ConcertTicketManagementSystem/internal/domain"
	"github.com/Sanketwange/ConcertTicketManagementSystem/internal/notify"
)

// ReservationRepository is the ledger contract the booking service runs on.
// WithTx must provide a transaction all other calls join via the context;
// GetByCodeForUpdate must lock the row for the remainder of that transaction.
type ReservationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	LockTicketType(ctx context.Context, ticketTypeID string) error
	SumConsumed(ctx context.Context, ticketTypeID string, now time.Time) (int, error)
	SumConsumedByType(ctx context.Context, ticketTypeIDs []string, now time.Time) (map[string]int, error)
	CreateReservation(ctx context.Context, res domain.Reservation) error
	GetByCodeForUpdate(ctx context.Context, code string) (domain.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error
	MarkPurchased(ctx context.Context, id string, purchasedAt time.Time) error
}

// Catalog is the read-only view of the event catalog collaborator.
type Catalog interface {
	ListTicketTypes(ctx context.Context, eventID string) ([]domain.TicketType, error)
	GetTicketType(ctx context.Context, eventID, ticketTypeID string) (domain.TicketType, error)
}

type BookingService struct {
	repo      ReservationRepository
	catalog   Catalog
	publisher notify.Publisher
	clock     clock.Clock
	log       *slog.Logger
	holdTTL   time.Duration
	queue     string
}

const (
	defaultHoldTTL = 10 * time.Minute
	defaultQueue   = "email"
)

func NewBookingService(repo ReservationRepository, cat Catalog, pub notify.Publisher, clk clock.Clock, log *slog.Logger, opts ...BookingServiceOption) *BookingService {
	svc := &BookingService{
		repo:      repo,
		catalog:   cat,
		publisher: pub,
		clock:     clk,
		log:       log,
		holdTTL:   defaultHoldTTL,
		queue:     defaultQueue,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type BookingServiceOption func(*BookingService)

// WithHoldTTL overrides the default hold window for new reservations.
func WithHoldTTL(d time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		if d > 0 {
			s.holdTTL = d
		}
	}
}

// WithNotificationQueue overrides the queue receipts are published to.
func WithNotificationQueue(queue string) BookingServiceOption {
	return func(s *BookingService) {
		if queue != "" {
			s.queue = queue
		}
	}
}

// Availability lists remaining stock per ticket type for an event. Consumed
// quantity for all types is read in a single statement so the whole answer
// reflects one ledger snapshot.
func (s *BookingService) Availability(ctx context.Context, eventID string) ([]domain.Availability, error) {
	types, err := s.catalog.ListTicketTypes(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		return []domain.Availability{}, nil
	}

	ids := make([]string, 0, len(types))
	for _, tt := range types {
		ids = append(ids, tt.ID)
	}

	consumed, err := s.repo.SumConsumedByType(ctx, ids, s.clock.Now())
	if err != nil {
		return nil, err
	}

	out := make([]domain.Availability, 0, len(types))
	for _, tt := range types {
		out = append(out, domain.Availability{
			TicketTypeID:     tt.ID,
			Name:             tt.Name,
			Price:            tt.Price,
			OriginalQuantity: tt.TotalQuantity,
			Remaining:        clampRemaining(tt.TotalQuantity - consumed[tt.ID]),
		})
	}
	return out, nil
}

type ReserveInput struct {
	User         domain.User
	EventID      string
	TicketTypeID string
	Quantity     int
}

// Reserve grants a time-bounded hold if capacity allows. The availability
// check and the insert run inside one transaction under a per-ticket-type
// lock; a count read before the lock is never trusted.
func (s *BookingService) Reserve(ctx context.Context, in ReserveInput) (domain.Reservation, error) {
	if in.Quantity <= 0 {
		return domain.Reservation{}, domain.ErrInvalidQuantity
	}

	ticketType, err := s.catalog.GetTicketType(ctx, in.EventID, in.TicketTypeID)
	if err != nil {
		return domain.Reservation{}, err
	}

	now := s.clock.Now()
	var result domain.Reservation

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.LockTicketType(txCtx, ticketType.ID); err != nil {
			return err
		}

		consumed, err := s.repo.SumConsumed(txCtx, ticketType.ID, now)
		if err != nil {
			return err
		}

		remaining := clampRemaining(ticketType.TotalQuantity - consumed)
		if in.Quantity > remaining {
			return &domain.InsufficientStockError{Remaining: remaining}
		}

		res := domain.Reservation{
			ID:              newID(),
			UserID:          in.User.ID,
			TicketTypeID:    ticketType.ID,
			TicketTypeName:  ticketType.Name,
			PricePerTicket:  ticketType.Price,
			Quantity:        in.Quantity,
			Status:          domain.StatusReserved,
			ReservationCode: newReservationCode(),
			ReservedAt:      now,
			ExpiresAt:       now.Add(s.holdTTL),
		}

		if err := s.repo.CreateReservation(txCtx, res); err != nil {
			return err
		}

		result = res
		return nil
	})
	if err != nil {
		return domain.Reservation{}, err
	}

	return result, nil
}

// Confirm finalizes a hold into a purchase. A stale hold is flipped to expired
// and rejected here even if the sweeper has not run yet; the expiry transition
// is committed despite the rejection. Ownership mismatches look exactly like
// an unknown code.
func (s *BookingService) Confirm(ctx context.Context, user domain.User, reservationCode string) (domain.Receipt, error) {
	now := s.clock.Now()
	var receipt domain.Receipt
	var expired bool

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		res, err := s.repo.GetByCodeForUpdate(txCtx, reservationCode)
		if err != nil {
			return err
		}
		if res.UserID != user.ID {
			return domain.ErrReservationNotFound
		}
		if res.Status != domain.StatusReserved {
			return &domain.InvalidStateError{Status: res.Status}
		}

		if !res.ExpiresAt.After(now) {
			if err := s.repo.UpdateStatus(txCtx, res.ID, domain.StatusExpired); err != nil {
				return err
			}
			expired = true
			return nil
		}

		if err := s.repo.MarkPurchased(txCtx, res.ID, now); err != nil {
			return err
		}

		receipt = domain.Receipt{
			ReservationID:  res.ID,
			TicketTypeName: res.TicketTypeName,
			Quantity:       res.Quantity,
			TotalPrice:     float64(res.Quantity) * res.PricePerTicket,
			PurchasedAt:    now,
		}
		return nil
	})
	if err != nil {
		return domain.Receipt{}, err
	}
	if expired {
		return domain.Receipt{}, domain.ErrReservationExpired
	}

	s.sendReceipt(ctx, user, receipt)
	return receipt, nil
}

// Cancel releases a hold that is still reserved. Any other status is rejected.
func (s *BookingService) Cancel(ctx context.Context, user domain.User, reservationCode string) error {
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		res, err := s.repo.GetByCodeForUpdate(txCtx, reservationCode)
		if err != nil {
			return err
		}
		if res.UserID != user.ID {
			return domain.ErrReservationNotFound
		}
		if res.Status != domain.StatusReserved {
			return &domain.InvalidStateError{Status: res.Status}
		}
		return s.repo.UpdateStatus(txCtx, res.ID, domain.StatusCancelled)
	})
}

// sendReceipt publishes the confirmation email. The purchase is already
// committed; a failed publish is logged, never surfaced.
func (s *BookingService) sendReceipt(ctx context.Context, user domain.User, receipt domain.Receipt) {
	msg := notify.EmailMessage{
		To:      user.Email,
		Subject: "Ticket Confirmation",
		Body: fmt.Sprintf(
			"Hi %s,\n\nThanks for booking %dx %s.\nReservation ID: %s\nTotal: %.2f",
			user.FullName, receipt.Quantity, receipt.TicketTypeName, receipt.ReservationID, receipt.TotalPrice,
		),
	}
	if err := s.publisher.Publish(ctx, msg, s.queue); err != nil {
		s.log.Error("publish receipt notification",
			"reservation_id", receipt.ReservationID,
			"queue", s.queue,
			"error", err,
		)
	}
}

func clampRemaining(remaining int) int {
	if remaining < 0 {
		return 0
	}
	return remaining
}
