package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shubham90-developer/Total-Health-sub004/internal/common"
)

// Handler handles auth endpoints
type Handler struct{}

// NewHandler creates a new auth handler
func NewHandler() *Handler {
	return &Handler{}
}

// Me returns the caller resolved from the bearer token
// GET /auth/me
func (h *Handler) Me(c *gin.Context) {
	principal := GetUserFromContext(c)
	if principal == nil {
		abort(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	common.Respond(c, http.StatusOK, gin.H{
		"user": gin.H{
			"id":      principal.UserID,
			"role":    principal.Role,
			"isStaff": principal.IsStaff(),
		},
	})
}
