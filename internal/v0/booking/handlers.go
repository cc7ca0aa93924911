package booking

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shubham90-developer/Total-Health-sub004/internal/auth"
	"github.com/shubham90-developer/Total-Health-sub004/internal/common"
)

// Handler handles hotel, table and booking endpoints
type Handler struct {
	service *Service
}

// NewHandler creates a new booking handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateHotel registers a hotel
// POST /hotels
func (h *Handler) CreateHotel(c *gin.Context) {
	var req CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.BindError(c, err)
		return
	}

	hotel, err := h.service.CreateHotel(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.Respond(c, http.StatusCreated, gin.H{"hotel": hotel})
}

// GetHotel returns a hotel
// GET /hotels/:id
func (h *Handler) GetHotel(c *gin.Context) {
	hotel, err := h.service.GetHotel(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.Respond(c, http.StatusOK, gin.H{"hotel": hotel})
}

// CreateTable adds a QR code table to a hotel
// POST /hotels/:id/tables
func (h *Handler) CreateTable(c *gin.Context) {
	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.BindError(c, err)
		return
	}

	table, err := h.service.CreateTable(c.Request.Context(), auth.GetUserFromContext(c), c.Param("id"), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.Respond(c, http.StatusCreated, gin.H{"table": table})
}

// ListTables returns the tables of a hotel
// GET /hotels/:id/tables
func (h *Handler) ListTables(c *gin.Context) {
	tables, err := h.service.ListTables(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.Respond(c, http.StatusOK, gin.H{"tables": tables})
}

// ListHotelBookings returns the bookings of a hotel
// GET /hotels/:id/bookings
func (h *Handler) ListHotelBookings(c *gin.Context) {
	bookings, err := h.service.ListHotelBookings(c.Request.Context(), auth.GetUserFromContext(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.Respond(c, http.StatusOK, gin.H{"bookings": bookings})
}

// CreateBooking books a table for the caller
// POST /table-bookings
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.BindError(c, err)
		return
	}

	booking, err := h.service.CreateBooking(c.Request.Context(), auth.GetUserFromContext(c), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.Respond(c, http.StatusCreated, gin.H{"booking": booking})
}

// ListMyBookings returns the caller's bookings
// GET /table-bookings
func (h *Handler) ListMyBookings(c *gin.Context) {
	bookings, err := h.service.ListMyBookings(c.Request.Context(), auth.GetUserFromContext(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.Respond(c, http.StatusOK, gin.H{"bookings": bookings})
}

// GetBooking returns one booking
// GET /table-bookings/:id
func (h *Handler) GetBooking(c *gin.Context) {
	booking, err := h.service.GetBooking(c.Request.Context(), auth.GetUserFromContext(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.Respond(c, http.StatusOK, gin.H{"booking": booking})
}

// CancelBooking cancels a booking and frees its table
// PATCH /table-bookings/:id/cancel
func (h *Handler) CancelBooking(c *gin.Context) {
	h.update(c, h.service.Cancel)
}

// ConfirmBooking confirms a pending booking
// PATCH /table-bookings/:id/confirm
func (h *Handler) ConfirmBooking(c *gin.Context) {
	h.update(c, h.service.Confirm)
}

// CompleteBooking completes a confirmed booking
// PATCH /table-bookings/:id/complete
func (h *Handler) CompleteBooking(c *gin.Context) {
	h.update(c, h.service.Complete)
}

type bookingUpdate func(ctx context.Context, p *auth.Principal, bookingID string) (*TableBooking, error)

func (h *Handler) update(c *gin.Context, apply bookingUpdate) {
	booking, err := apply(c.Request.Context(), auth.GetUserFromContext(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.Respond(c, http.StatusOK, gin.H{"booking": booking})
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
