package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/shubham90-developer/Total-Health-sub004/internal/database"
)

var (
	// ErrTableUnavailable is returned when the table was booked by another
	// transaction between the availability check and the write.
	ErrTableUnavailable = errors.New("table is not available")

	// ErrBookingChanged is returned when the booking left the expected status
	// before the transition could be written.
	ErrBookingChanged = errors.New("booking status changed")

	// ErrDuplicateTable is returned when a hotel already has a table with
	// the same number.
	ErrDuplicateTable = errors.New("table number already exists")
)

// Repository provides access to hotels, tables and table bookings
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new booking repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateHotel inserts a hotel
func (r *Repository) CreateHotel(ctx context.Context, h *Hotel) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO hotels (id, name, vendor_id, created_at) VALUES (?, ?, ?, ?)`,
		h.ID, h.Name, h.VendorID, h.CreatedAt,
	)
	return err
}

// GetHotel returns a hotel by ID, or nil when it does not exist
func (r *Repository) GetHotel(ctx context.Context, id string) (*Hotel, error) {
	var h Hotel
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, vendor_id, created_at FROM hotels WHERE id = ?`, id,
	).Scan(&h.ID, &h.Name, &h.VendorID, &h.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// CreateTable inserts a table for an existing hotel
func (r *Repository) CreateTable(ctx context.Context, t *Table) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dining_tables (id, hotel_id, table_number, seat_count, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.HotelID, t.TableNumber, t.SeatCount, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateTable
	}
	return err
}

const selectTable = `
	SELECT id, hotel_id, table_number, seat_count, status, created_at, updated_at
	FROM dining_tables`

// GetTable returns a table by ID, or nil when it does not exist
func (r *Repository) GetTable(ctx context.Context, id string) (*Table, error) {
	t, err := scanTable(r.db.QueryRowContext(ctx, selectTable+` WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTables returns the tables of a hotel ordered by table number
func (r *Repository) ListTables(ctx context.Context, hotelID string) ([]Table, error) {
	rows, err := r.db.QueryContext(ctx, selectTable+` WHERE hotel_id = ? ORDER BY table_number`, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := []Table{}
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		tables = append(tables, *t)
	}
	return tables, rows.Err()
}

const selectBooking = `
	SELECT id, user_id, hotel_id, table_id, table_number, seat_number, guest_count,
	       booking_date, booking_time, meal_type, booking_price, status, payment_status,
	       created_at, updated_at
	FROM table_bookings`

// GetBooking returns a booking by ID, or nil when it does not exist
func (r *Repository) GetBooking(ctx context.Context, id string) (*TableBooking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, selectBooking+` WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListBookingsByUser returns the bookings of a user, newest first
func (r *Repository) ListBookingsByUser(ctx context.Context, userID string) ([]TableBooking, error) {
	return r.listBookings(ctx, selectBooking+` WHERE user_id = ? ORDER BY created_at DESC`, userID)
}

// ListBookingsByHotel returns the bookings of a hotel, newest first
func (r *Repository) ListBookingsByHotel(ctx context.Context, hotelID string) ([]TableBooking, error) {
	return r.listBookings(ctx, selectBooking+` WHERE hotel_id = ? ORDER BY created_at DESC`, hotelID)
}

// CreateBooking inserts the booking and marks its table booked in one
// transaction. Either both writes commit or neither does.
func (r *Repository) CreateBooking(ctx context.Context, b *TableBooking) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO table_bookings (id, user_id, hotel_id, table_id, table_number, seat_number, guest_count,
			                            booking_date, booking_time, meal_type, booking_price, status, payment_status,
			                            created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.ID, b.UserID, b.HotelID, b.TableID, b.TableNumber, b.SeatNumber, b.GuestCount,
			b.Date, b.Time, b.MealType, b.BookingPrice, b.Status, b.PaymentStatus,
			b.CreatedAt, b.UpdatedAt,
		)
		if isUniqueViolation(err) {
			return ErrTableUnavailable
		}
		if err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE dining_tables SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
			TableBooked, b.CreatedAt, b.TableID, TableAvailable,
		)
		if err != nil {
			return fmt.Errorf("book table: %w", err)
		}
		return requireOneRow(res, ErrTableUnavailable)
	})
}

// UpdateBookingStatus moves b from its current status to target in one
// transaction. When releaseTable is set the table is made available again in
// the same transaction. On success b reflects the stored state.
func (r *Repository) UpdateBookingStatus(ctx context.Context, b *TableBooking, target Status, releaseTable bool, now time.Time) error {
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE table_bookings SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
			target, now, b.ID, b.Status,
		)
		if err != nil {
			return fmt.Errorf("update booking: %w", err)
		}
		if err := requireOneRow(res, ErrBookingChanged); err != nil {
			return err
		}

		if releaseTable {
			if _, err := tx.ExecContext(ctx,
				`UPDATE dining_tables SET status = ?, updated_at = ? WHERE id = ?`,
				TableAvailable, now, b.TableID,
			); err != nil {
				return fmt.Errorf("release table: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	b.Status = target
	b.UpdatedAt = now
	return nil
}

func (r *Repository) listBookings(ctx context.Context, query string, arg string) ([]TableBooking, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []TableBooking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTable(s scanner) (*Table, error) {
	var t Table
	if err := s.Scan(&t.ID, &t.HotelID, &t.TableNumber, &t.SeatCount, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func scanBooking(s scanner) (*TableBooking, error) {
	var b TableBooking
	if err := s.Scan(
		&b.ID, &b.UserID, &b.HotelID, &b.TableID, &b.TableNumber, &b.SeatNumber, &b.GuestCount,
		&b.Date, &b.Time, &b.MealType, &b.BookingPrice, &b.Status, &b.PaymentStatus,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func requireOneRow(res sql.Result, errNone error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errNone
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}


/*
This project is the backend API for the Total Health meal-plan platform. Memberships, meal punching and table bookings for the ordering site and the admin dashboard.
API Copyright (C) 2025 Total Health
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
