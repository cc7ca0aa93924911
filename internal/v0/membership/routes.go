package membership

import (
	"github.com/gin-gonic/gin"

	"github.com/shubham90-developer/Total-Health-sub004/internal/auth"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, authMiddleware *auth.Middleware) {
	memberships := rg.Group("/memberships")
	memberships.Use(authMiddleware.RequireToken())
	{
		memberships.GET("", h.ListMemberships)
		memberships.GET("/:id", h.GetMembership)
		memberships.GET("/:id/history", h.GetHistory)

		staff := memberships.Group("")
		staff.Use(authMiddleware.RequireRole(auth.RoleVendor))
		{
			staff.POST("/:id/punch", h.PunchMeals)
			staff.PATCH("/:id/status", h.UpdateStatus)
		}

		admin := memberships.Group("")
		admin.Use(authMiddleware.RequireRole(auth.RoleAdmin))
		{
			admin.POST("", h.CreateMembership)
		}
	}
}
