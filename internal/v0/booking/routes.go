package booking

import (
	"github.com/gin-gonic/gin"

	"github.com/shubham90-developer/Total-Health-sub004/internal/auth"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, authMiddleware *auth.Middleware) {
	hotels := rg.Group("/hotels")
	hotels.Use(authMiddleware.RequireToken())
	{
		hotels.GET("/:id", h.GetHotel)
		hotels.GET("/:id/tables", h.ListTables)

		staff := hotels.Group("")
		staff.Use(authMiddleware.RequireRole(auth.RoleVendor))
		{
			staff.POST("/:id/tables", h.CreateTable)
			staff.GET("/:id/bookings", h.ListHotelBookings)
		}

		admin := hotels.Group("")
		admin.Use(authMiddleware.RequireRole(auth.RoleAdmin))
		{
			admin.POST("", h.CreateHotel)
		}
	}

	bookings := rg.Group("/table-bookings")
	bookings.Use(authMiddleware.RequireToken())
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListMyBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id/cancel", h.CancelBooking)

		staff := bookings.Group("")
		staff.Use(authMiddleware.RequireRole(auth.RoleVendor))
		{
			staff.PATCH("/:id/confirm", h.ConfirmBooking)
			staff.PATCH("/:id/complete", h.CompleteBooking)
		}
	}
}
