package booking

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shubham90-developer/Total-Health-sub004/internal/database"
)

var fixedTime = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenAndMigrate(filepath.Join(t.TempDir(), "totalhealth.db"))
	if err != nil {
		t.Fatalf("open and migrate: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func seedHotel(t *testing.T, repo *Repository, hotelID, vendorID string, tables ...string) {
	t.Helper()
	ctx := context.Background()
	if err := repo.CreateHotel(ctx, &Hotel{ID: hotelID, Name: "Green Bowl", VendorID: vendorID, CreatedAt: fixedTime}); err != nil {
		t.Fatalf("create hotel: %v", err)
	}
	for _, tableID := range tables {
		err := repo.CreateTable(ctx, &Table{
			ID:          tableID,
			HotelID:     hotelID,
			TableNumber: "T-" + tableID,
			SeatCount:   4,
			Status:      TableAvailable,
			CreatedAt:   fixedTime,
			UpdatedAt:   fixedTime,
		})
		if err != nil {
			t.Fatalf("create table: %v", err)
		}
	}
}

func newBooking(id, tableID string) *TableBooking {
	return &TableBooking{
		ID:            id,
		UserID:        "user-1",
		HotelID:       "htl_1",
		TableID:       tableID,
		TableNumber:   "T-" + tableID,
		GuestCount:    2,
		Date:          "2026-03-02",
		Time:          "19:30",
		MealType:      "dinner",
		BookingPrice:  250,
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
		CreatedAt:     fixedTime,
		UpdatedAt:     fixedTime,
	}
}

func countBookings(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM table_bookings`).Scan(&n); err != nil {
		t.Fatalf("count bookings: %v", err)
	}
	return n
}

func TestCreateBookingFlipsTable(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	seedHotel(t, repo, "htl_1", "vendor-1", "t1")

	if err := repo.CreateBooking(ctx, newBooking("b1", "t1")); err != nil {
		t.Fatalf("create booking: %v", err)
	}

	table, err := repo.GetTable(ctx, "t1")
	if err != nil {
		t.Fatalf("get table: %v", err)
	}
	if table.Status != TableBooked {
		t.Fatalf("expected booked, got %s", table.Status)
	}

	got, err := repo.GetBooking(ctx, "b1")
	if err != nil {
		t.Fatalf("get booking: %v", err)
	}
	if got == nil || got.Status != StatusPending || got.BookingPrice != 250 || got.Time != "19:30" {
		t.Fatalf("unexpected booking %+v", got)
	}

	// A second booking loses on the conditional table update.
	err = repo.CreateBooking(ctx, newBooking("b2", "t1"))
	if !errors.Is(err, ErrTableUnavailable) {
		t.Fatalf("expected ErrTableUnavailable, got %v", err)
	}
	if n := countBookings(t, db); n != 1 {
		t.Fatalf("expected 1 booking, got %d", n)
	}
}

func TestCreateBookingRollsBackOnTableFailure(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	seedHotel(t, repo, "htl_1", "vendor-1", "t1")

	if _, err := db.Exec(`
		CREATE TRIGGER fail_table_flip BEFORE UPDATE OF status ON dining_tables
		BEGIN
			SELECT RAISE(ABORT, 'injected failure');
		END`); err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	err := repo.CreateBooking(ctx, newBooking("b1", "t1"))
	if err == nil {
		t.Fatal("expected the injected failure")
	}
	if errors.Is(err, ErrTableUnavailable) {
		t.Fatalf("expected a store fault, got %v", err)
	}

	if n := countBookings(t, db); n != 0 {
		t.Fatalf("expected the booking insert to be rolled back, found %d bookings", n)
	}
	table, err := repo.GetTable(ctx, "t1")
	if err != nil {
		t.Fatalf("get table: %v", err)
	}
	if table.Status != TableAvailable {
		t.Fatalf("expected available, got %s", table.Status)
	}
}

func TestUpdateBookingStatusRollsBackOnTableFailure(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	seedHotel(t, repo, "htl_1", "vendor-1", "t1")

	b := newBooking("b1", "t1")
	if err := repo.CreateBooking(ctx, b); err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if _, err := db.Exec(`
		CREATE TRIGGER fail_table_release BEFORE UPDATE OF status ON dining_tables
		BEGIN
			SELECT RAISE(ABORT, 'injected failure');
		END`); err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	if err := repo.UpdateBookingStatus(ctx, b, StatusCancelled, true, fixedTime); err == nil {
		t.Fatal("expected the injected failure")
	}
	if b.Status != StatusPending {
		t.Fatalf("expected in-memory booking to stay pending, got %s", b.Status)
	}

	stored, err := repo.GetBooking(ctx, "b1")
	if err != nil {
		t.Fatalf("get booking: %v", err)
	}
	if stored.Status != StatusPending {
		t.Fatalf("expected the booking update to be rolled back, got %s", stored.Status)
	}
}

func TestUpdateBookingStatusDetectsStaleStatus(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	seedHotel(t, repo, "htl_1", "vendor-1", "t1")

	b := newBooking("b1", "t1")
	if err := repo.CreateBooking(ctx, b); err != nil {
		t.Fatalf("create booking: %v", err)
	}
	stale := *b

	if err := repo.UpdateBookingStatus(ctx, b, StatusCancelled, true, fixedTime); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	err := repo.UpdateBookingStatus(ctx, &stale, StatusConfirmed, false, fixedTime)
	if !errors.Is(err, ErrBookingChanged) {
		t.Fatalf("expected ErrBookingChanged, got %v", err)
	}
}

func TestCreateTableRejectsDuplicateNumber(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	seedHotel(t, repo, "htl_1", "vendor-1", "t1")

	err := repo.CreateTable(context.Background(), &Table{
		ID:          "t2",
		HotelID:     "htl_1",
		TableNumber: "T-t1",
		SeatCount:   2,
		Status:      TableAvailable,
		CreatedAt:   fixedTime,
		UpdatedAt:   fixedTime,
	})
	if !errors.Is(err, ErrDuplicateTable) {
		t.Fatalf("expected ErrDuplicateTable, got %v", err)
	}
}
