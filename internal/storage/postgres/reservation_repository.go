package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sanketwange/ConcertTicketManagementSystem/internal/domain"
)

// ReservationRepository is the durable ledger of reservation attempts.
type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

func (r *ReservationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// LockTicketType serializes admission control per ticket type for the rest of
// the surrounding transaction. The capacity row lives in the catalog service,
// so there is no local row to FOR UPDATE; a transaction-scoped advisory lock
// keyed by the ticket type id gives the same per-key critical section.
// Different ticket types proceed in parallel.
func (r *ReservationRepository) LockTicketType(ctx context.Context, ticketTypeID string) error {
	const stmt = `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`
	if _, err := r.exec(ctx, stmt, ticketTypeID); err != nil {
		return fmt.Errorf("lock ticket type: %w", err)
	}
	return nil
}

// SumConsumed returns the quantity counting against capacity for one ticket
// type: purchased rows plus reserved rows whose hold window has not elapsed.
// Expired-but-not-yet-swept rows are excluded by comparing expires_at directly.
func (r *ReservationRepository) SumConsumed(ctx context.Context, ticketTypeID string, now time.Time) (int, error) {
	const query = `
SELECT COALESCE(SUM(quantity), 0)
FROM reservations
WHERE ticket_type_id = $1
  AND (status = 'purchased' OR (status = 'reserved' AND expires_at > $2))`

	var total int
	if err := r.queryRow(ctx, query, ticketTypeID, now).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum consumed: %w", err)
	}
	return total, nil
}

// SumConsumedByType is the batch form used by the availability query. A single
// statement keeps the whole computation on one ledger snapshot.
func (r *ReservationRepository) SumConsumedByType(ctx context.Context, ticketTypeIDs []string, now time.Time) (map[string]int, error) {
	const query = `
SELECT ticket_type_id, COALESCE(SUM(quantity), 0)
FROM reservations
WHERE ticket_type_id = ANY($1)
  AND (status = 'purchased' OR (status = 'reserved' AND expires_at > $2))
GROUP BY ticket_type_id`

	rows, err := r.query(ctx, query, ticketTypeIDs, now)
	if err != nil {
		return nil, fmt.Errorf("sum consumed by type: %w", err)
	}
	defer rows.Close()

	consumed := make(map[string]int, len(ticketTypeIDs))
	for rows.Next() {
		var id string
		var total int
		if err := rows.Scan(&id, &total); err != nil {
			return nil, fmt.Errorf("scan consumed row: %w", err)
		}
		consumed[id] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sum consumed by type: %w", err)
	}
	return consumed, nil
}

func (r *ReservationRepository) CreateReservation(ctx context.Context, res domain.Reservation) error {
	const stmt = `
INSERT INTO reservations
	(id, user_id, ticket_type_id, ticket_type_name, price_per_ticket, quantity,
	 status, reservation_code, reserved_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.exec(ctx, stmt,
		res.ID,
		res.UserID,
		res.TicketTypeID,
		res.TicketTypeName,
		res.PricePerTicket,
		res.Quantity,
		res.Status,
		res.ReservationCode,
		res.ReservedAt,
		res.ExpiresAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("reservation code already in use: %w", err)
		}
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

// GetByCodeForUpdate loads a reservation by its code and locks the row for the
// rest of the transaction, so status checks and the transition that follows
// are one atomic step.
func (r *ReservationRepository) GetByCodeForUpdate(ctx context.Context, code string) (domain.Reservation, error) {
	const query = `
SELECT id, user_id, ticket_type_id, ticket_type_name, price_per_ticket, quantity,
       status, reservation_code, reserved_at, expires_at, purchased_at
FROM reservations
WHERE reservation_code = $1
FOR UPDATE`

	var res domain.Reservation
	var status string
	err := r.queryRow(ctx, query, code).Scan(
		&res.ID,
		&res.UserID,
		&res.TicketTypeID,
		&res.TicketTypeName,
		&res.PricePerTicket,
		&res.Quantity,
		&status,
		&res.ReservationCode,
		&res.ReservedAt,
		&res.ExpiresAt,
		&res.PurchasedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Reservation{}, domain.ErrReservationNotFound
		}
		return domain.Reservation{}, fmt.Errorf("get reservation: %w", err)
	}
	res.Status = domain.ReservationStatus(status)
	return res, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	const stmt = `UPDATE reservations SET status = $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, id, status)
	if err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (r *ReservationRepository) MarkPurchased(ctx context.Context, id string, purchasedAt time.Time) error {
	const stmt = `UPDATE reservations SET status = 'purchased', purchased_at = $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, id, purchasedAt)
	if err != nil {
		return fmt.Errorf("mark purchased: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

// ExpireStale flips reserved rows whose hold window elapsed to expired. The
// status guard in the WHERE clause makes the check and the transition one
// atomic statement, so a concurrent confirm cannot be double-transitioned.
func (r *ReservationRepository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	const stmt = `
UPDATE reservations
SET status = 'expired'
WHERE status = 'reserved' AND expires_at <= $1`

	tag, err := r.exec(ctx, stmt, now)
	if err != nil {
		return 0, fmt.Errorf("expire stale reservations: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *ReservationRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ReservationRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *ReservationRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
