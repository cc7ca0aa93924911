package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/shubham90-developer/Total-Health-sub004/internal/apperrors"
	"github.com/shubham90-developer/Total-Health-sub004/internal/auth"
	"github.com/shubham90-developer/Total-Health-sub004/internal/id"
	"github.com/shubham90-developer/Total-Health-sub004/internal/telemetry"
)

var tracer = telemetry.Tracer("totalhealth/booking")

// Store is the persistence the service needs; *Repository implements it
type Store interface {
	CreateHotel(ctx context.Context, h *Hotel) error
	GetHotel(ctx context.Context, id string) (*Hotel, error)
	CreateTable(ctx context.Context, t *Table) error
	GetTable(ctx context.Context, id string) (*Table, error)
	ListTables(ctx context.Context, hotelID string) ([]Table, error)
	GetBooking(ctx context.Context, id string) (*TableBooking, error)
	ListBookingsByUser(ctx context.Context, userID string) ([]TableBooking, error)
	ListBookingsByHotel(ctx context.Context, hotelID string) ([]TableBooking, error)
	CreateBooking(ctx context.Context, b *TableBooking) error
	UpdateBookingStatus(ctx context.Context, b *TableBooking, target Status, releaseTable bool, now time.Time) error
}

// Service runs hotel, table and booking operations
type Service struct {
	store Store
	now   func() time.Time
	newID func(prefix string) string
}

// NewService creates a new booking service
func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: id.NewWithPrefix,
	}
}

// CreateHotel registers a hotel run by a vendor
func (s *Service) CreateHotel(ctx context.Context, req CreateHotelRequest) (*Hotel, error) {
	h := &Hotel{
		ID:        s.newID("htl_"),
		Name:      strings.TrimSpace(req.Name),
		VendorID:  strings.TrimSpace(req.VendorID),
		CreatedAt: s.now(),
	}
	if h.Name == "" || h.VendorID == "" {
		return nil, apperrors.Validation("name and vendorId are required")
	}
	if err := s.store.CreateHotel(ctx, h); err != nil {
		return nil, apperrors.Internal("failed to create hotel", err)
	}
	return h, nil
}

// GetHotel returns a hotel or a not-found error
func (s *Service) GetHotel(ctx context.Context, hotelID string) (*Hotel, error) {
	h, err := s.store.GetHotel(ctx, hotelID)
	if err != nil {
		return nil, apperrors.Internal("failed to load hotel", err)
	}
	if h == nil {
		return nil, apperrors.New(apperrors.CodeHotelNotFound, "Hotel not found.")
	}
	return h, nil
}

// CreateTable adds a table to a hotel. Only the hotel's vendor or an admin
// may add tables.
func (s *Service) CreateTable(ctx context.Context, p *auth.Principal, hotelID string, req CreateTableRequest) (*Table, error) {
	h, err := s.GetHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if !canManage(p, h) {
		return nil, forbidden("Only the hotel's vendor or an admin can add tables.")
	}

	number := strings.TrimSpace(req.TableNumber)
	if number == "" {
		return nil, apperrors.Validation("tableNumber is required")
	}
	if req.SeatCount < 1 {
		return nil, apperrors.Validation("seatCount must be at least 1")
	}

	now := s.now()
	t := &Table{
		ID:          s.newID("tbl_"),
		HotelID:     h.ID,
		TableNumber: number,
		SeatCount:   req.SeatCount,
		Status:      TableAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateTable(ctx, t); err != nil {
		if errors.Is(err, ErrDuplicateTable) {
			return nil, apperrors.Validation(fmt.Sprintf("table %s already exists in this hotel", number))
		}
		return nil, apperrors.Internal("failed to create table", err)
	}
	return t, nil
}

// ListTables returns the tables of a hotel
func (s *Service) ListTables(ctx context.Context, hotelID string) ([]Table, error) {
	if _, err := s.GetHotel(ctx, hotelID); err != nil {
		return nil, err
	}
	tables, err := s.store.ListTables(ctx, hotelID)
	if err != nil {
		return nil, apperrors.Internal("failed to list tables", err)
	}
	return tables, nil
}

// CreateBooking books a table for the caller. The table is checked before
// any write; the booking insert and the table flip then commit together.
func (s *Service) CreateBooking(ctx context.Context, p *auth.Principal, req CreateBookingRequest) (b *TableBooking, err error) {
	ctx, span := tracer.Start(ctx, "booking.Create")
	span.SetAttributes(
		attribute.String("booking.hotel_id", req.HotelID),
		attribute.String("booking.table_id", req.TableID),
	)
	defer func() { telemetry.End(span, err) }()

	if req.GuestCount < 1 {
		return nil, apperrors.Validation("guestCount must be at least 1")
	}

	table, err := s.store.GetTable(ctx, req.TableID)
	if err != nil {
		return nil, apperrors.Internal("failed to load table", err)
	}
	if table == nil {
		return nil, apperrors.New(apperrors.CodeTableNotFound, "Table not found.")
	}
	if table.HotelID != req.HotelID {
		return nil, apperrors.New(apperrors.CodeTableHotelMismatch, "This table does not belong to the selected hotel.")
	}
	if table.Status != TableAvailable {
		return nil, tableUnavailable(table)
	}
	if req.GuestCount > table.SeatCount {
		return nil, apperrors.Validation(fmt.Sprintf("table %s seats %d guests, %d requested", table.TableNumber, table.SeatCount, req.GuestCount))
	}

	now := s.now()
	b = &TableBooking{
		ID:            s.newID("bkg_"),
		UserID:        p.UserID,
		HotelID:       table.HotelID,
		TableID:       table.ID,
		TableNumber:   table.TableNumber,
		SeatNumber:    strings.TrimSpace(req.SeatNumber),
		GuestCount:    req.GuestCount,
		Date:          req.Date,
		Time:          req.Time,
		MealType:      req.MealType,
		BookingPrice:  req.BookingPrice,
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.CreateBooking(ctx, b); err != nil {
		if errors.Is(err, ErrTableUnavailable) {
			return nil, tableUnavailable(table)
		}
		return nil, aborted(err)
	}
	return b, nil
}

// GetBooking returns a booking visible to the caller
func (s *Service) GetBooking(ctx context.Context, p *auth.Principal, bookingID string) (*TableBooking, error) {
	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	ok, err := s.canAccess(ctx, p, b)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, forbidden("You are not allowed to view this booking.")
	}
	return b, nil
}

// ListMyBookings returns the caller's bookings
func (s *Service) ListMyBookings(ctx context.Context, p *auth.Principal) ([]TableBooking, error) {
	bookings, err := s.store.ListBookingsByUser(ctx, p.UserID)
	if err != nil {
		return nil, apperrors.Internal("failed to list bookings", err)
	}
	return bookings, nil
}

// ListHotelBookings returns the bookings of a hotel to its vendor or an admin
func (s *Service) ListHotelBookings(ctx context.Context, p *auth.Principal, hotelID string) ([]TableBooking, error) {
	h, err := s.GetHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if !canManage(p, h) {
		return nil, forbidden("Only the hotel's vendor or an admin can list its bookings.")
	}
	bookings, err := s.store.ListBookingsByHotel(ctx, hotelID)
	if err != nil {
		return nil, apperrors.Internal("failed to list bookings", err)
	}
	return bookings, nil
}

// Cancel cancels an active booking and frees its table. The booking owner,
// the hotel's vendor and admins may cancel.
func (s *Service) Cancel(ctx context.Context, p *auth.Principal, bookingID string) (b *TableBooking, err error) {
	ctx, span := tracer.Start(ctx, "booking.Cancel")
	span.SetAttributes(attribute.String("booking.id", bookingID))
	defer func() { telemetry.End(span, err) }()

	b, err = s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	ok, err := s.canAccess(ctx, p, b)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, forbidden("Only the guest, the hotel's vendor or an admin can cancel this booking.")
	}
	return s.transition(ctx, b, StatusCancelled)
}

// Confirm accepts a pending booking
func (s *Service) Confirm(ctx context.Context, p *auth.Principal, bookingID string) (b *TableBooking, err error) {
	ctx, span := tracer.Start(ctx, "booking.Confirm")
	span.SetAttributes(attribute.String("booking.id", bookingID))
	defer func() { telemetry.End(span, err) }()

	b, err = s.loadManaged(ctx, p, bookingID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, b, StatusConfirmed)
}

// Complete closes a confirmed booking once the guests have dined and frees
// the table.
func (s *Service) Complete(ctx context.Context, p *auth.Principal, bookingID string) (b *TableBooking, err error) {
	ctx, span := tracer.Start(ctx, "booking.Complete")
	span.SetAttributes(attribute.String("booking.id", bookingID))
	defer func() { telemetry.End(span, err) }()

	b, err = s.loadManaged(ctx, p, bookingID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, b, StatusCompleted)
}

// transition applies a state machine step. Leaving an active status always
// releases the table in the same transaction.
func (s *Service) transition(ctx context.Context, b *TableBooking, target Status) (*TableBooking, error) {
	if !CanTransition(b.Status, target) {
		return nil, invalidTransition(b.Status, target)
	}
	release := b.Status.Active() && !target.Active()

	if err := s.store.UpdateBookingStatus(ctx, b, target, release, s.now()); err != nil {
		if errors.Is(err, ErrBookingChanged) {
			return nil, apperrors.New(apperrors.CodeBookingInvalidTransition,
				"This booking was changed by someone else. Reload it and try again.")
		}
		return nil, aborted(err)
	}
	return b, nil
}

func (s *Service) loadBooking(ctx context.Context, bookingID string) (*TableBooking, error) {
	b, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, apperrors.Internal("failed to load booking", err)
	}
	if b == nil {
		return nil, apperrors.New(apperrors.CodeBookingNotFound, "Booking not found.")
	}
	return b, nil
}

func (s *Service) loadManaged(ctx context.Context, p *auth.Principal, bookingID string) (*TableBooking, error) {
	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	h, err := s.GetHotel(ctx, b.HotelID)
	if err != nil {
		return nil, err
	}
	if !canManage(p, h) {
		return nil, forbidden("Only the hotel's vendor or an admin can update this booking.")
	}
	return b, nil
}

// canAccess reports whether p is the booking owner, the vendor of the
// booked hotel, or an admin.
func (s *Service) canAccess(ctx context.Context, p *auth.Principal, b *TableBooking) (bool, error) {
	if p == nil {
		return false, nil
	}
	if p.IsAdmin() || p.UserID == b.UserID {
		return true, nil
	}
	if p.Role != auth.RoleVendor {
		return false, nil
	}
	h, err := s.store.GetHotel(ctx, b.HotelID)
	if err != nil {
		return false, apperrors.Internal("failed to load hotel", err)
	}
	return h != nil && h.VendorID == p.UserID, nil
}

func canManage(p *auth.Principal, h *Hotel) bool {
	if p == nil {
		return false
	}
	return p.IsAdmin() || (p.Role == auth.RoleVendor && p.UserID == h.VendorID)
}

func tableUnavailable(t *Table) error {
	return apperrors.New(apperrors.CodeTableUnavailable,
		fmt.Sprintf("Table %s is already booked. Please choose another table.", t.TableNumber))
}

func invalidTransition(from, to Status) error {
	return apperrors.New(apperrors.CodeBookingInvalidTransition,
		fmt.Sprintf("A %s booking cannot be changed to %s.", strings.ToLower(string(from)), strings.ToLower(string(to))))
}

func forbidden(message string) error {
	return apperrors.New(apperrors.CodeForbidden, message)
}

func aborted(err error) error {
	return apperrors.Wrap(apperrors.CodeBookingTransactionAborted, "The booking could not be saved. Please try again.", err)
}
