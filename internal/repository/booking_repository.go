package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bookit/bookit/internal/model"
)

// BookingRepo persists bookings and owns the invariant linking a
// booking row to its slot's booked count: the two writes happen in
// one transaction or not at all.  No other code path writes
// slots.booked_count or inserts into bookings.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Reserve consumes one unit of capacity on the booking's slot and
// inserts the booking row, atomically.  The capacity check and the
// increment are a single conditional UPDATE, so two racing calls on a
// slot with one remaining seat cannot both pass the check: the loser
// observes zero affected rows.  When that happens the slot is read
// back inside the same transaction to distinguish ErrSlotNotFound
// from ErrSlotFull.  The caller supplies the booking ID and creation
// timestamp; Reserve does not modify the booking.
//
// On any failure the transaction is rolled back and no partial state
// remains visible.
func (r *BookingRepo) Reserve(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reserve tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const upd = `UPDATE slots
                 SET booked_count = booked_count + 1
                 WHERE id = ? AND booked_count < capacity`
	res, err := tx.ExecContext(ctx, upd, b.SlotID)
	if err != nil {
		return fmt.Errorf("increment booked count: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reserve rows affected: %w", err)
	}
	if n == 0 {
		// The condition failed: either the slot does not exist or it
		// is already at capacity.  A plain read suffices here; the row
		// cannot gain capacity concurrently because capacity is
		// immutable and booked_count never decreases.
		const sel = `SELECT booked_count, capacity FROM slots WHERE id = ?`
		var booked, capacity uint32
		err := tx.QueryRowContext(ctx, sel, b.SlotID).Scan(&booked, &capacity)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSlotNotFound
		}
		if err != nil {
			return fmt.Errorf("read slot after failed reserve: %w", err)
		}
		return ErrSlotFull
	}

	const ins = `INSERT INTO bookings (id, slot_id, customer_name, customer_email, final_price, promo_code_used, created_at)
                 VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, ins,
		b.ID, b.SlotID, b.CustomerName, b.CustomerEmail, b.FinalPrice, b.PromoCodeUsed, b.CreatedAt.UTC(),
	); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reserve tx: %w", err)
	}
	committed = true
	return nil
}

// GetBookingByID returns a booking by its uuid.  It returns
// ErrBookingNotFound when no row matches.
func (r *BookingRepo) GetBookingByID(ctx context.Context, id string) (*model.Booking, error) {
	const q = `SELECT id, slot_id, customer_name, customer_email, final_price, promo_code_used, created_at
               FROM bookings
               WHERE id = ?`
	var b model.Booking
	var promo sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.SlotID, &b.CustomerName, &b.CustomerEmail, &b.FinalPrice, &promo, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if promo.Valid {
		p := promo.String
		b.PromoCodeUsed = &p
	}
	return &b, nil
}
