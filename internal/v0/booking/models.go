package booking

import "time"

// Status is the lifecycle state of a table booking
type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCancelled Status = "Cancelled"
	StatusCompleted Status = "Completed"
)

// Active reports whether a booking in status s holds its table
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// PaymentStatus is the payment state of a table booking
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentRefunded PaymentStatus = "Refunded"
)

// TableStatus is the availability flag of a dining table
type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableBooked    TableStatus = "booked"
)

// Hotel is a restaurant run by one vendor
type Hotel struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	VendorID  string    `json:"vendorId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Table is a QR code table of a hotel
type Table struct {
	ID          string      `json:"id"`
	HotelID     string      `json:"hotelId"`
	TableNumber string      `json:"tableNumber"`
	SeatCount   int         `json:"seatCount"`
	Status      TableStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// TableBooking reserves one table for a guest party
type TableBooking struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	HotelID       string        `json:"hotelId"`
	TableID       string        `json:"tableId"`
	TableNumber   string        `json:"tableNumber"`
	SeatNumber    string        `json:"seatNumber"`
	GuestCount    int           `json:"guestCount"`
	Date          string        `json:"date"`
	Time          string        `json:"time"`
	MealType      string        `json:"mealType"`
	BookingPrice  float64       `json:"bookingPrice"`
	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// CreateHotelRequest represents the request body for creating a hotel
type CreateHotelRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	VendorID string `json:"vendorId" binding:"required"`
}

// CreateTableRequest represents the request body for adding a table to a hotel
type CreateTableRequest struct {
	TableNumber string `json:"tableNumber" binding:"required,max=20"`
	SeatCount   int    `json:"seatCount" binding:"required,min=1,max=50"`
}

// CreateBookingRequest represents the request body for booking a table.
// The table number is taken from the table itself.
type CreateBookingRequest struct {
	HotelID      string  `json:"hotelId" binding:"required"`
	TableID      string  `json:"tableId" binding:"required"`
	SeatNumber   string  `json:"seatNumber"`
	GuestCount   int     `json:"guestCount" binding:"required,min=1"`
	Date         string  `json:"date" binding:"required,datetime=2006-01-02"`
	Time         string  `json:"time" binding:"required,datetime=15:04"`
	MealType     string  `json:"mealType" binding:"required,oneof=breakfast lunch snacks dinner"`
	BookingPrice float64 `json:"bookingPrice" binding:"gte=0"`
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
