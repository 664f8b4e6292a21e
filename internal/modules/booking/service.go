package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hoteldesk/internal/billing"
	"hoteldesk/internal/domain"
	"hoteldesk/internal/pkg/datetime"
)

type Service struct {
	bookings BookingRepository
	rooms    RoomRepository
	guests   GuestRepository
}

func NewService(bookings BookingRepository, rooms RoomRepository, guests GuestRepository) *Service {
	return &Service{
		bookings: bookings,
		rooms:    rooms,
		guests:   guests,
	}
}

func (s *Service) List(ctx context.Context, status string) ([]domain.Booking, error) {
	if status != "" && !domain.BookingStatus(status).Valid() {
		return nil, ErrValidation
	}
	return s.bookings.GetAll(ctx, status)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// Create validates the draft, prices the stay from the room's nightly
// rate and stores the booking together with its authoritative billing
// record. The client's billing amounts are ignored; only the payment
// method/status hint is honored.
func (s *Service) Create(ctx context.Context, req BookingRequest) (*domain.Booking, error) {
	checkIn, checkOut, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	status := domain.BookingConfirmed
	if req.Status != "" {
		status = domain.BookingStatus(req.Status)
		if !status.Valid() {
			return nil, ErrValidation
		}
	}

	room, err := s.getRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if room.Status != domain.RoomAvailable {
		return nil, ErrRoomNotAvailable
	}

	guest, err := s.getGuest(ctx, req.GuestID)
	if err != nil {
		return nil, err
	}

	breakdown := billing.Quote(room.PricePerNight, checkIn, checkOut)

	b := &domain.Booking{
		RoomID:         room.ID,
		GuestID:        guest.ID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		NumberOfGuests: req.NumberOfGuests,
		Status:         status,
		TotalPrice:     breakdown.TotalAmount,
		Notes:          req.Notes,
		Billing:        buildBilling(breakdown, req.Billing, newInvoiceNumber()),
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	b.Room = room
	b.Guest = guest
	return b, nil
}

// Update rewrites an editable booking. Terminal bookings are rejected
// here, not just hidden in the UI. The room already bound to the
// booking stays acceptable even when occupied; any other room must be
// available. Billing is repriced and the invoice number kept.
func (s *Service) Update(ctx context.Context, id int64, req BookingRequest) (*domain.Booking, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status.Terminal() {
		return nil, ErrBookingFinalized
	}

	checkIn, checkOut, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	status := existing.Status
	if req.Status != "" && domain.BookingStatus(req.Status) != existing.Status {
		status = domain.BookingStatus(req.Status)
		if !status.Valid() {
			return nil, ErrValidation
		}
		if !domain.CanTransition(existing.Status, status) {
			return nil, ErrInvalidStatusTransition
		}
	}

	room, err := s.getRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if room.Status != domain.RoomAvailable && room.ID != existing.RoomID {
		return nil, ErrRoomNotAvailable
	}

	guest, err := s.getGuest(ctx, req.GuestID)
	if err != nil {
		return nil, err
	}

	breakdown := billing.Quote(room.PricePerNight, checkIn, checkOut)

	invoice := newInvoiceNumber()
	if existing.Billing != nil {
		invoice = existing.Billing.InvoiceNumber
	}

	existing.RoomID = room.ID
	existing.GuestID = guest.ID
	existing.CheckIn = checkIn
	existing.CheckOut = checkOut
	existing.NumberOfGuests = req.NumberOfGuests
	existing.Status = status
	existing.TotalPrice = breakdown.TotalAmount
	existing.Notes = req.Notes
	existing.Billing = buildBilling(breakdown, req.Billing, invoice)
	existing.Billing.BookingID = existing.ID

	if err := s.bookings.Update(ctx, existing); err != nil {
		return nil, err
	}

	existing.Room = room
	existing.Guest = guest
	return existing, nil
}

// ChangeStatus moves a booking along the workflow (check-out, cancel,
// check-in). Transitions out of a terminal status never pass the
// table, so repeating a check-out fails instead of silently
// succeeding.
func (s *Service) ChangeStatus(ctx context.Context, id int64, newStatus string) (*domain.Booking, error) {
	target := domain.BookingStatus(newStatus)
	if !target.Valid() {
		return nil, ErrValidation
	}

	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(b.Status, target) {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.bookings.UpdateStatus(ctx, id, string(target)); err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete removes an editable booking. Terminal bookings are kept for
// the records and cannot be deleted.
func (s *Service) Delete(ctx context.Context, id int64) error {
	b, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if b.Status.Terminal() {
		return ErrBookingFinalized
	}
	return s.bookings.Delete(ctx, id)
}

func (s *Service) getRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *Service) getGuest(ctx context.Context, id int64) (*domain.Guest, error) {
	guest, err := s.guests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return guest, nil
}

func parseStay(checkInRaw, checkOutRaw string) (time.Time, time.Time, error) {
	checkIn, err := datetime.Parse(checkInRaw)
	if err != nil {
		return time.Time{}, time.Time{}, ErrValidation
	}
	checkOut, err := datetime.Parse(checkOutRaw)
	if err != nil {
		return time.Time{}, time.Time{}, ErrValidation
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, ErrValidation
	}
	return checkIn, checkOut, nil
}

func buildBilling(breakdown billing.Breakdown, hint *BillingHint, invoice string) *domain.Billing {
	method := "cash"
	payment := domain.PaymentPaid
	if hint != nil {
		if hint.PaymentMethod != "" {
			method = hint.PaymentMethod
		}
		if hint.PaymentStatus != "" {
			payment = domain.PaymentStatus(hint.PaymentStatus)
		}
	}

	return &domain.Billing{
		InvoiceNumber: invoice,
		RoomCharges:   breakdown.RoomCharges,
		TaxAmount:     breakdown.TaxAmount,
		TotalAmount:   breakdown.TotalAmount,
		PaymentMethod: method,
		PaymentStatus: payment,
	}
}

func newInvoiceNumber() string {
	return fmt.Sprintf("INV-%s", strings.ToUpper(uuid.NewString()[:8]))
}
