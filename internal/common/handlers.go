package common

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type StatusResponse struct {
	InternalServerLatency string `json:"internal_server_latency,omitempty"`
	Uptime                string `json:"uptime"`
}

// Uptime Logic
var startTime time.Time

func uptime() time.Duration {
	return time.Since(startTime)
}

func init() {
	startTime = time.Now()
}

// Ping Logic
func ping(ctx context.Context, pinger Pinger) (time.Duration, error) {
	start := time.Now()
	err := pinger.PingContext(ctx)
	return time.Since(start), err
}

// Status reports uptime and the round trip to the document store. A failed
// ping still answers 200 with the latency left empty; /health is the probe.
func Status(pinger Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := StatusResponse{Uptime: uptime().Truncate(time.Second).String()}
		if latency, err := ping(c.Request.Context(), pinger); err == nil {
			data.InternalServerLatency = latency.String()
		}
		Respond(c, http.StatusOK, data)
	}
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health reports whether the document store answers.
func Health(pinger Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := pinger.PingContext(c.Request.Context()); err != nil {
			RespondError(c, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		Respond(c, http.StatusOK, gin.H{"status": "ok"})
	}
}

// RegisterRoutes registers the global, unauthenticated routes
func RegisterRoutes(rg *gin.RouterGroup, pinger Pinger) {
	rg.GET("/status", Status(pinger))
	rg.GET("/health", Health(pinger))
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
