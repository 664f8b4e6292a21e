// Package billing derives the priced stay for a booking: room charges
// from the nightly rate and the stay length, a flat tax on top, and
// the resulting total. The same computation runs client-side for the
// amount summary shown in the wizard and server-side for the record
// that is actually stored; the server result always wins.
package billing

import (
	"math"
	"time"
)

// TaxRate is applied to room charges on every booking.
const TaxRate = 0.10

type Breakdown struct {
	RoomCharges float64 `json:"room_charges"`
	TaxAmount   float64 `json:"tax_amount"`
	TotalAmount float64 `json:"total_amount"`
}

// Nights is the whole-day difference between check-out and check-in.
// Partial days do not round up: a stay shorter than 24 hours counts as
// zero nights and produces zero room charges. That matches what the
// billing records in production were generated with, so it is kept
// deliberately rather than bumped to a one-night minimum.
func Nights(checkIn, checkOut time.Time) int {
	if !checkOut.After(checkIn) {
		return 0
	}
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// Quote computes the charge breakdown for a stay. Callers are
// responsible for ensuring checkOut is after checkIn; an inverted
// range simply quotes zero nights.
func Quote(pricePerNight float64, checkIn, checkOut time.Time) Breakdown {
	charges := round2(pricePerNight * float64(Nights(checkIn, checkOut)))
	tax := round2(charges * TaxRate)
	return Breakdown{
		RoomCharges: charges,
		TaxAmount:   tax,
		TotalAmount: round2(charges + tax),
	}
}

// FromTotal synthesizes a breakdown from a stored total price, for
// receipts opened on bookings that carry no billing record. Display
// fallback only, never a source of truth.
func FromTotal(totalPrice float64) Breakdown {
	return Breakdown{
		RoomCharges: round2(totalPrice),
		TaxAmount:   round2(totalPrice * TaxRate),
		TotalAmount: round2(totalPrice * (1 + TaxRate)),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
