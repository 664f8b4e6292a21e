package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"hoteldesk/internal/database"
	"hoteldesk/internal/domain"
	"hoteldesk/internal/modules/booking"
	"hoteldesk/internal/pkg/datetime"
	"hoteldesk/internal/repository"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "hoteldesk.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM billings")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM guests")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// ================== STAFF ==================
	log.Println("Creating staff accounts...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := &domain.User{
		Email:        "admin@hoteldesk.local",
		PasswordHash: string(adminHash),
		Name:         "Front Desk Admin",
		Role:         domain.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatal("admin creation failed:", err)
	}
	log.Println("Admin created: admin@hoteldesk.local / admin123")

	staffHash, _ := bcrypt.GenerateFromPassword([]byte("staff123"), bcrypt.DefaultCost)
	staff := &domain.User{
		Email:        "reception@hoteldesk.local",
		PasswordHash: string(staffHash),
		Name:         "Reception",
		Role:         domain.RoleStaff,
	}
	if err := userRepo.Create(ctx, staff); err != nil {
		log.Fatal("staff creation failed:", err)
	}

	// ================== ROOMS ==================
	log.Println("Creating rooms...")

	rooms := []*domain.Room{
		{RoomNumber: "101", Type: domain.RoomStandard, Capacity: 2, PricePerNight: 100, Status: domain.RoomAvailable,
			Amenities: []string{"wifi", "tv"}, Description: "Standard double on the first floor"},
		{RoomNumber: "102", Type: domain.RoomStandard, Capacity: 2, PricePerNight: 100, Status: domain.RoomAvailable,
			Amenities: []string{"wifi", "tv"}},
		{RoomNumber: "103", Type: domain.RoomStandard, Capacity: 3, PricePerNight: 120, Status: domain.RoomMaintenance,
			Description: "Awaiting bathroom repair"},
		{RoomNumber: "201", Type: domain.RoomDeluxe, Capacity: 2, PricePerNight: 180, Status: domain.RoomAvailable,
			Amenities: []string{"wifi", "tv", "minibar"}},
		{RoomNumber: "202", Type: domain.RoomDeluxe, Capacity: 4, PricePerNight: 220, Status: domain.RoomOccupied,
			Amenities: []string{"wifi", "tv", "minibar", "balcony"}},
		{RoomNumber: "301", Type: domain.RoomSuite, Capacity: 4, PricePerNight: 400, Status: domain.RoomAvailable,
			Amenities: []string{"wifi", "tv", "minibar", "jacuzzi"}, Description: "Top-floor suite with city view"},
	}
	for _, r := range rooms {
		if err := roomRepo.Create(ctx, r); err != nil {
			log.Fatal("room creation failed:", err)
		}
	}

	// ================== GUESTS ==================
	log.Println("Creating guests...")

	dob := time.Date(1988, 7, 14, 0, 0, 0, 0, time.UTC)
	guests := []*domain.Guest{
		{FirstName: "Ada", LastName: "Byron", Email: "ada@example.com", PhoneNumber: "+1 202 555 0101",
			IdentificationType: domain.IDPassport, IdentificationNumber: "P1234567", DateOfBirth: &dob},
		{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", PhoneNumber: "+1 202 555 0102",
			IdentificationType: domain.IDNationalID, IdentificationNumber: "NID-443210"},
		{FirstName: "Alan", LastName: "Turing", Email: "alan@example.com", PhoneNumber: "+1 202 555 0103",
			IdentificationType: domain.IDDriversLicense, IdentificationNumber: "DL-90871"},
	}
	for _, g := range guests {
		if err := guestRepo.Create(ctx, g); err != nil {
			log.Fatal("guest creation failed:", err)
		}
	}

	// ================== BOOKINGS ==================
	// Created through the service so every booking gets a priced
	// billing record and invoice number.
	log.Println("Creating bookings...")

	bookingService := booking.NewService(bookingRepo, roomRepo, guestRepo)

	stays := []struct {
		room   *domain.Room
		guest  *domain.Guest
		start  time.Time
		nights int
		status string
	}{
		{rooms[0], guests[0], time.Now().AddDate(0, 0, 2), 3, "confirmed"},
		{rooms[3], guests[1], time.Now().AddDate(0, 0, -1), 4, "checked_in"},
		{rooms[1], guests[2], time.Now().AddDate(0, 0, 7), 2, "confirmed"},
	}
	for i, s := range stays {
		req := booking.BookingRequest{
			RoomID:         s.room.ID,
			GuestID:        s.guest.ID,
			CheckIn:        datetime.Format(s.start),
			CheckOut:       datetime.Format(s.start.AddDate(0, 0, s.nights)),
			NumberOfGuests: 2,
			Status:         s.status,
			Notes:          fmt.Sprintf("Seed booking %d", i+1),
		}
		b, err := bookingService.Create(ctx, req)
		if err != nil {
			log.Fatal("booking creation failed:", err)
		}
		log.Printf("Booking %d: room %s, %s, total %.2f (%s)",
			b.ID, s.room.RoomNumber, b.Status, b.TotalPrice, b.Billing.InvoiceNumber)
	}

	log.Println("Seed completed.")
	log.Println("Sign in with: admin@hoteldesk.local / admin123")
}
