package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/shubham90-developer/Total-Health-sub004/internal/auth"
	"github.com/shubham90-developer/Total-Health-sub004/internal/common"
	"github.com/shubham90-developer/Total-Health-sub004/internal/database"
	"github.com/shubham90-developer/Total-Health-sub004/internal/env"
	"github.com/shubham90-developer/Total-Health-sub004/internal/receipt"
	"github.com/shubham90-developer/Total-Health-sub004/internal/telemetry"
	"github.com/shubham90-developer/Total-Health-sub004/internal/v0/booking"
	"github.com/shubham90-developer/Total-Health-sub004/internal/v0/membership"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	cfg, err := env.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, "total-health-api", cfg.OTelEndpoint)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("Warning: failed to flush traces: %v", err)
		}
	}()

	// Document store
	db, err := database.OpenAndMigrate(cfg.DatabasePath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Receipt printing service
	var receipts receipt.Sender = receipt.NopSender{}
	if cfg.ReceiptsEnabled() {
		sender, err := receipt.NewHTTPSender(ctx, receipt.Config{
			URL:          cfg.ReceiptURL,
			ClientID:     cfg.ReceiptClientID,
			ClientSecret: cfg.ReceiptClientSecret,
			TokenURL:     cfg.ReceiptTokenURL,
			Timeout:      cfg.ReceiptTimeout,
		})
		if err != nil {
			log.Fatal(err)
		}
		receipts = sender
	} else {
		log.Println("No receipt service configured, punch receipts are not printed")
	}

	// Auth components
	tokenStore := auth.NewTokenStore(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTDuration)
	authMiddleware := auth.NewMiddleware(tokenStore)

	// Membership components
	membershipService := membership.NewService(membership.NewRepository(db), receipts)
	membershipHandler := membership.NewHandler(membershipService)

	// Booking components
	bookingService := booking.NewService(booking.NewRepository(db))
	bookingHandler := booking.NewHandler(bookingService)

	gin.SetMode(cfg.GinMode)
	router := gin.Default()
	router.Use(common.RequestIDMiddleware(), common.ErrorHandler())

	// Global routes
	global := router.Group("/api")
	common.RegisterRoutes(global, db)

	// Auth routes
	auth.RegisterRoutes(global, auth.NewHandler(), authMiddleware)

	// v0 API routes
	v0Group := router.Group("/api/v0")
	{
		membership.RegisterRoutes(v0Group, membershipHandler, authMiddleware)
		booking.RegisterRoutes(v0Group, bookingHandler, authMiddleware)
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Warning: graceful shutdown failed: %v", err)
		}
	}()

	log.Printf("Listening on %s", cfg.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
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
