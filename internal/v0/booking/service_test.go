package booking

import (
	"context"
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/shubham90-developer/Total-Health-sub004/internal/apperrors"
	"github.com/shubham90-developer/Total-Health-sub004/internal/auth"
)

var (
	admin    = &auth.Principal{UserID: "admin-1", Role: auth.RoleAdmin}
	vendor   = &auth.Principal{UserID: "vendor-1", Role: auth.RoleVendor}
	outsider = &auth.Principal{UserID: "vendor-2", Role: auth.RoleVendor}
	guest    = &auth.Principal{UserID: "user-1", Role: auth.RoleUser}
	stranger = &auth.Principal{UserID: "user-2", Role: auth.RoleUser}
)

func newTestService(t *testing.T) (*Service, *sql.DB) {
	t.Helper()
	db := openTestDB(t)
	svc := NewService(NewRepository(db))
	svc.now = func() time.Time { return fixedTime }
	return svc, db
}

func setupHotel(t *testing.T, svc *Service, tables int) (*Hotel, []*Table) {
	t.Helper()
	ctx := context.Background()
	h, err := svc.CreateHotel(ctx, CreateHotelRequest{Name: "Green Bowl", VendorID: vendor.UserID})
	if err != nil {
		t.Fatalf("create hotel: %v", err)
	}
	var created []*Table
	for i := 0; i < tables; i++ {
		table, err := svc.CreateTable(ctx, vendor, h.ID, CreateTableRequest{TableNumber: string(rune('A' + i)), SeatCount: 4})
		if err != nil {
			t.Fatalf("create table: %v", err)
		}
		created = append(created, table)
	}
	return h, created
}

func bookingRequest(h *Hotel, table *Table) CreateBookingRequest {
	return CreateBookingRequest{
		HotelID:      h.ID,
		TableID:      table.ID,
		GuestCount:   2,
		Date:         "2026-03-02",
		Time:         "19:30",
		MealType:     "dinner",
		BookingPrice: 250,
	}
}

func assertCode(t *testing.T, err error, code apperrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if !apperrors.HasCode(err, code) {
		t.Fatalf("expected %s error, got %v", code, err)
	}
}

// assertConsistent checks that every table is booked exactly when an active
// booking references it.
func assertConsistent(t *testing.T, db *sql.DB) {
	t.Helper()
	rows, err := db.Query(`
		SELECT t.id, t.status,
		       (SELECT COUNT(*) FROM table_bookings b
		        WHERE b.table_id = t.id AND b.status IN ('Pending', 'Confirmed'))
		FROM dining_tables t`)
	if err != nil {
		t.Fatalf("query tables: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id     string
			status TableStatus
			active int
		)
		if err := rows.Scan(&id, &status, &active); err != nil {
			t.Fatalf("scan: %v", err)
		}
		if active > 1 {
			t.Fatalf("table %s has %d active bookings", id, active)
		}
		if (status == TableBooked) != (active == 1) {
			t.Fatalf("table %s is %s with %d active bookings", id, status, active)
		}
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}
}

func TestCreateBookingPreconditions(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	h, tables := setupHotel(t, svc, 1)
	other, otherTables := setupHotel(t, svc, 1)

	missing := bookingRequest(h, tables[0])
	missing.TableID = "tbl_missing"
	_, err := svc.CreateBooking(ctx, guest, missing)
	assertCode(t, err, apperrors.CodeTableNotFound)

	_, err = svc.CreateBooking(ctx, guest, bookingRequest(other, tables[0]))
	assertCode(t, err, apperrors.CodeTableHotelMismatch)

	crowd := bookingRequest(h, tables[0])
	crowd.GuestCount = 9
	_, err = svc.CreateBooking(ctx, guest, crowd)
	assertCode(t, err, apperrors.CodeValidation)

	b, err := svc.CreateBooking(ctx, guest, bookingRequest(h, tables[0]))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if b.Status != StatusPending || b.PaymentStatus != PaymentPending || b.UserID != guest.UserID || b.TableNumber != "A" {
		t.Fatalf("unexpected booking %+v", b)
	}

	_, err = svc.CreateBooking(ctx, stranger, bookingRequest(h, tables[0]))
	assertCode(t, err, apperrors.CodeTableUnavailable)
	if apperrors.StatusOf(err) != 400 {
		t.Fatalf("expected 400, got %d", apperrors.StatusOf(err))
	}

	if _, err := svc.CreateBooking(ctx, stranger, bookingRequest(other, otherTables[0])); err != nil {
		t.Fatalf("book other hotel: %v", err)
	}
	assertConsistent(t, db)
}

func TestCreateBookingTransactionFailure(t *testing.T) {
	svc, db := newTestService(t)
	h, tables := setupHotel(t, svc, 1)

	if _, err := db.Exec(`
		CREATE TRIGGER fail_table_flip BEFORE UPDATE OF status ON dining_tables
		BEGIN
			SELECT RAISE(ABORT, 'injected failure');
		END`); err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	_, err := svc.CreateBooking(context.Background(), guest, bookingRequest(h, tables[0]))
	assertCode(t, err, apperrors.CodeBookingTransactionAborted)
	if apperrors.StatusOf(err) != 500 {
		t.Fatalf("expected 500, got %d", apperrors.StatusOf(err))
	}

	bookings, err := svc.ListMyBookings(context.Background(), guest)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(bookings) != 0 {
		t.Fatalf("expected no visible booking, got %d", len(bookings))
	}
	assertConsistent(t, db)
}

func TestCancelAuthorization(t *testing.T) {
	tests := []struct {
		name      string
		principal *auth.Principal
		code      apperrors.Code
	}{
		{"owner", guest, ""},
		{"hotel vendor", vendor, ""},
		{"admin", admin, ""},
		{"other user", stranger, apperrors.CodeForbidden},
		{"other vendor", outsider, apperrors.CodeForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, db := newTestService(t)
			ctx := context.Background()
			h, tables := setupHotel(t, svc, 1)

			b, err := svc.CreateBooking(ctx, guest, bookingRequest(h, tables[0]))
			if err != nil {
				t.Fatalf("create booking: %v", err)
			}

			cancelled, err := svc.Cancel(ctx, tt.principal, b.ID)
			if tt.code != "" {
				assertCode(t, err, tt.code)
				assertConsistent(t, db)
				return
			}
			if err != nil {
				t.Fatalf("cancel: %v", err)
			}
			if cancelled.Status != StatusCancelled {
				t.Fatalf("expected cancelled, got %s", cancelled.Status)
			}
			assertConsistent(t, db)

			// The table can be booked again.
			if _, err := svc.CreateBooking(ctx, stranger, bookingRequest(h, tables[0])); err != nil {
				t.Fatalf("rebook: %v", err)
			}
		})
	}
}

func TestCancelMissingBooking(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Cancel(context.Background(), admin, "bkg_missing")
	assertCode(t, err, apperrors.CodeBookingNotFound)
}

func TestBookingStateMachine(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	h, tables := setupHotel(t, svc, 1)

	b, err := svc.CreateBooking(ctx, guest, bookingRequest(h, tables[0]))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	_, err = svc.Complete(ctx, vendor, b.ID)
	assertCode(t, err, apperrors.CodeBookingInvalidTransition)

	_, err = svc.Confirm(ctx, guest, b.ID)
	assertCode(t, err, apperrors.CodeForbidden)

	confirmed, err := svc.Confirm(ctx, vendor, b.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != StatusConfirmed {
		t.Fatalf("expected confirmed, got %s", confirmed.Status)
	}
	assertConsistent(t, db)

	completed, err := svc.Complete(ctx, vendor, b.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", completed.Status)
	}
	assertConsistent(t, db)

	for _, step := range []func(context.Context, *auth.Principal, string) (*TableBooking, error){
		svc.Cancel, svc.Confirm, svc.Complete,
	} {
		_, err := step(ctx, admin, b.ID)
		assertCode(t, err, apperrors.CodeBookingInvalidTransition)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Fatalf("%s -> %s: expected %v, got %v", tt.from, tt.to, tt.want, got)
		}
	}
}

func TestBookingTableConsistency(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	h, tables := setupHotel(t, svc, 3)
	rng := rand.New(rand.NewSource(42))

	active := map[string]string{}
	for i := 0; i < 200; i++ {
		table := tables[rng.Intn(len(tables))]

		if bookingID, ok := active[table.ID]; ok && rng.Intn(2) == 0 {
			if _, err := svc.Cancel(ctx, guest, bookingID); err != nil {
				t.Fatalf("step %d: cancel: %v", i, err)
			}
			delete(active, table.ID)
		} else {
			b, err := svc.CreateBooking(ctx, guest, bookingRequest(h, table))
			switch {
			case ok:
				assertCode(t, err, apperrors.CodeTableUnavailable)
			case err != nil:
				t.Fatalf("step %d: create: %v", i, err)
			default:
				active[table.ID] = b.ID
			}
		}
		assertConsistent(t, db)
	}
}

func TestHotelAndTableAccess(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	h, _ := setupHotel(t, svc, 1)

	_, err := svc.CreateTable(ctx, outsider, h.ID, CreateTableRequest{TableNumber: "Z", SeatCount: 2})
	assertCode(t, err, apperrors.CodeForbidden)

	_, err = svc.CreateTable(ctx, vendor, h.ID, CreateTableRequest{TableNumber: "A", SeatCount: 2})
	assertCode(t, err, apperrors.CodeValidation)

	_, err = svc.CreateTable(ctx, admin, "htl_missing", CreateTableRequest{TableNumber: "A", SeatCount: 2})
	assertCode(t, err, apperrors.CodeHotelNotFound)

	_, err = svc.ListHotelBookings(ctx, outsider, h.ID)
	assertCode(t, err, apperrors.CodeForbidden)

	bookings, err := svc.ListHotelBookings(ctx, vendor, h.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(bookings) != 0 {
		t.Fatalf("expected no bookings, got %d", len(bookings))
	}

	tables, err := svc.ListTables(ctx, h.ID)
	if err != nil {
		t.Fatalf("list tables: %v", err)
	}
	if len(tables) != 1 || tables[0].Status != TableAvailable {
		t.Fatalf("unexpected tables %+v", tables)
	}
}

func TestGetBookingVisibility(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	h, tables := setupHotel(t, svc, 1)

	b, err := svc.CreateBooking(ctx, guest, bookingRequest(h, tables[0]))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	for _, p := range []*auth.Principal{guest, vendor, admin} {
		if _, err := svc.GetBooking(ctx, p, b.ID); err != nil {
			t.Fatalf("%s: expected access, got %v", p.UserID, err)
		}
	}
	for _, p := range []*auth.Principal{stranger, outsider} {
		_, err := svc.GetBooking(ctx, p, b.ID)
		assertCode(t, err, apperrors.CodeForbidden)
	}
}
