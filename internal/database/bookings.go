package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/models"
)

const bookingColumns = `b.id, b.start_date, b.end_date, b.item_id, b.booker_id, b.status`

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (start_date, end_date, item_id, booker_id, status)
              VALUES (?, ?, ?, ?, ?)`

	result, err := db.ExecContext(ctx, query,
		utc(booking.Start),
		utc(booking.End),
		booking.ItemID,
		booking.BookerID,
		booking.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	var booking models.Booking
	err := db.GetContext(ctx, &booking, `SELECT `+bookingColumns+` FROM bookings b WHERE b.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, status models.BookingStatus) error {
	result, err := db.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	return affectedOne(result, "update booking status")
}

func (db *DB) ListBookingsByBooker(ctx context.Context, bookerID int64) ([]*models.Booking, error) {
	bookings := []*models.Booking{}
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.booker_id = ? ORDER BY b.start_date, b.id`
	if err := db.SelectContext(ctx, &bookings, query, bookerID); err != nil {
		return nil, fmt.Errorf("failed to list bookings by booker: %w", err)
	}
	return bookings, nil
}

func (db *DB) ListBookingsByOwner(ctx context.Context, ownerID int64) ([]*models.Booking, error) {
	bookings := []*models.Booking{}
	query := `SELECT ` + bookingColumns + `
              FROM bookings b
              JOIN items i ON i.id = b.item_id
              WHERE i.owner_id = ?
              ORDER BY b.start_date, b.id`
	if err := db.SelectContext(ctx, &bookings, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list bookings by owner: %w", err)
	}
	return bookings, nil
}

// LastApprovedBooking is the approved booking of the item that ended most
// recently before now.
func (db *DB) LastApprovedBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b
              WHERE b.item_id = ? AND b.status = ? AND b.end_date < ?
              ORDER BY b.end_date DESC, b.id DESC
              LIMIT 1`
	return db.optionalBooking(ctx, "last booking", query, itemID, models.StatusApproved, utc(now))
}

// NextApprovedBooking is the approved booking of the item that starts
// soonest after now.
func (db *DB) NextApprovedBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b
              WHERE b.item_id = ? AND b.status = ? AND b.start_date > ?
              ORDER BY b.start_date ASC, b.id ASC
              LIMIT 1`
	return db.optionalBooking(ctx, "next booking", query, itemID, models.StatusApproved, utc(now))
}

func (db *DB) optionalBooking(ctx context.Context, what, query string, args ...any) (*models.Booking, error) {
	var booking models.Booking
	err := db.GetContext(ctx, &booking, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", what, err)
	}
	return &booking, nil
}

// ExistsCompletedBooking reports whether the booker has a booking of the item
// that ended before now, regardless of status.
func (db *DB) ExistsCompletedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM bookings WHERE item_id = ? AND booker_id = ? AND end_date < ?)`
	if err := db.GetContext(ctx, &exists, query, itemID, bookerID, utc(now)); err != nil {
		return false, fmt.Errorf("failed to check completed booking: %w", err)
	}
	return exists, nil
}
