package domain

import "time"

type BookingStatus string

const (
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCheckedIn  BookingStatus = "checked_in"
	BookingCheckedOut BookingStatus = "checked_out"
	BookingCancelled  BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingConfirmed, BookingCheckedIn, BookingCheckedOut, BookingCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Billing is the authoritative invoice record attached to a booking.
// Invoice number and amounts are generated server-side; any billing
// object sent by a client is a hint only.
type Billing struct {
	ID            int64         `json:"-"`
	BookingID     int64         `json:"-"`
	InvoiceNumber string        `json:"invoice_number"`
	RoomCharges   float64       `json:"room_charges"`
	TaxAmount     float64       `json:"tax_amount"`
	TotalAmount   float64       `json:"total_amount"`
	PaymentMethod string        `json:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time     `json:"-"`
}

type Booking struct {
	ID             int64         `json:"id"`
	RoomID         int64         `json:"room_id" validate:"required"`
	GuestID        int64         `json:"guest_id" validate:"required"`
	CheckIn        time.Time     `json:"check_in" validate:"required"`
	CheckOut       time.Time     `json:"check_out" validate:"required"`
	NumberOfGuests int           `json:"number_of_guests" validate:"required,gte=1"`
	Status         BookingStatus `json:"status"`
	TotalPrice     float64       `json:"total_price"`
	Notes          string        `json:"notes,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	// Snapshots returned with every booking so list rows and receipts
	// render without extra lookups.
	Room    *Room    `json:"room,omitempty"`
	Guest   *Guest   `json:"guest,omitempty"`
	Billing *Billing `json:"billing,omitempty"`
}
