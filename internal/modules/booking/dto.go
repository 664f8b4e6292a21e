package booking

// BillingHint is the client-computed billing block sent with booking
// writes. Amounts are advisory; the server recomputes them from the
// room rate and stay dates. Payment method/status are taken as given.
type BillingHint struct {
	RoomCharges   float64 `json:"room_charges"`
	TaxAmount     float64 `json:"tax_amount"`
	TotalAmount   float64 `json:"total_amount"`
	PaymentMethod string  `json:"payment_method"`
	PaymentStatus string  `json:"payment_status"`
}

// BookingRequest is the write payload for create and update. Dates
// arrive as "2006-01-02 15:04:05" (ISO variants accepted).
type BookingRequest struct {
	RoomID         int64        `json:"room_id" validate:"required"`
	GuestID        int64        `json:"guest_id" validate:"required"`
	CheckIn        string       `json:"check_in" validate:"required"`
	CheckOut       string       `json:"check_out" validate:"required"`
	NumberOfGuests int          `json:"number_of_guests" validate:"required,gte=1"`
	Status         string       `json:"status"`
	Notes          string       `json:"notes"`
	Billing        *BillingHint `json:"billing"`
}

// StatusRequest changes the booking status field alone.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}
