package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"hoteldesk/internal/config"
	"hoteldesk/internal/database"
	"hoteldesk/internal/middleware"
	"hoteldesk/internal/modules/auth"
	"hoteldesk/internal/modules/booking"
	"hoteldesk/internal/modules/guest"
	"hoteldesk/internal/modules/room"
	jwtsvc "hoteldesk/internal/pkg/jwt"
	"hoteldesk/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, 24*time.Hour)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	roomService := room.NewService(roomRepo)
	roomHandler := room.NewHandler(roomService)

	guestService := guest.NewService(guestRepo)
	guestHandler := guest.NewHandler(guestService)

	bookingService := booking.NewService(bookingRepo, roomRepo, guestRepo)
	bookingHandler := booking.NewHandler(bookingService)

	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1.Group("/auth"))

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			roomHandler.RegisterRoutes(protected)
			guestHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
