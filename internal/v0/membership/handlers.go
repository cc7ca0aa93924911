package membership

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shubham90-developer/Total-Health-sub004/internal/apperrors"
	"github.com/shubham90-developer/Total-Health-sub004/internal/auth"
	"github.com/shubham90-developer/Total-Health-sub004/internal/common"
)

// Handler handles membership endpoints
type Handler struct {
	service *Service
}

// NewHandler creates a new membership handler
func NewHandler(service *Service) *Handler {
	registerValidators()
	return &Handler{service: service}
}

// CreateMembership opens a membership ledger
// POST /memberships
func (h *Handler) CreateMembership(c *gin.Context) {
	var req CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.BindError(c, err)
		return
	}

	m, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.Respond(c, http.StatusCreated, gin.H{"membership": m})
}

// ListMemberships returns the memberships of a user. Without a userId query
// the caller's own memberships are returned.
// GET /memberships
func (h *Handler) ListMemberships(c *gin.Context) {
	principal := auth.GetUserFromContext(c)
	userID := strings.TrimSpace(c.Query("userId"))
	if userID == "" {
		userID = principal.UserID
	}
	if !principal.CanActFor(userID) {
		_ = c.Error(forbidden())
		return
	}

	memberships, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.Respond(c, http.StatusOK, gin.H{"memberships": memberships})
}

// GetMembership returns one membership
// GET /memberships/:id
func (h *Handler) GetMembership(c *gin.Context) {
	m, ok := h.loadVisible(c)
	if !ok {
		return
	}
	common.Respond(c, http.StatusOK, gin.H{"membership": m})
}

// GetHistory returns the audit history, oldest first unless order=desc
// GET /memberships/:id/history
func (h *Handler) GetHistory(c *gin.Context) {
	order := c.DefaultQuery("order", "asc")
	if order != "asc" && order != "desc" {
		_ = c.Error(apperrors.Validation("order must be one of [asc desc]"))
		return
	}

	m, ok := h.loadVisible(c)
	if !ok {
		return
	}
	common.Respond(c, http.StatusOK, gin.H{"history": m.SortedHistory(order == "desc")})
}

// PunchMeals marks meals of one day as consumed
// POST /memberships/:id/punch
func (h *Handler) PunchMeals(c *gin.Context) {
	var req PunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.BindError(c, err)
		return
	}

	m, err := h.service.Punch(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.Respond(c, http.StatusOK, gin.H{"membership": m})
}

// UpdateStatus changes the status of a membership
// PATCH /memberships/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.BindError(c, err)
		return
	}

	m, err := h.service.ChangeStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.Respond(c, http.StatusOK, gin.H{"membership": m})
}

// loadVisible loads the membership named in the path and checks the caller
// may see it. Owners and staff may; others get a 404 so ids are not leaked.
func (h *Handler) loadVisible(c *gin.Context) (*Membership, bool) {
	m, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return nil, false
	}
	if !auth.GetUserFromContext(c).CanActFor(m.UserID) {
		_ = c.Error(notFound())
		return nil, false
	}
	return m, true
}

func forbidden() error {
	return apperrors.New(apperrors.CodeForbidden, "You are not allowed to view these memberships.")
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
