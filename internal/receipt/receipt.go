// Package receipt renders a printable invoice for a booking. Amounts
// come from the booking's billing record when one exists; bookings
// created before billing records were introduced fall back to a
// breakdown synthesized from the stored total price.
package receipt

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"hoteldesk/internal/billing"
	"hoteldesk/internal/domain"
)

// View is the flattened, display-ready receipt.
type View struct {
	InvoiceNumber string
	IssuedAt      time.Time

	GuestName  string
	GuestEmail string

	RoomNumber string
	RoomType   string

	CheckIn  time.Time
	CheckOut time.Time
	Nights   int
	Guests   int
	Status   domain.BookingStatus

	RoomCharges   string
	TaxAmount     string
	TotalAmount   string
	PaymentMethod string
	PaymentStatus domain.PaymentStatus
}

// Build assembles the receipt view for a booking. A missing billing
// record synthesizes amounts from the stored total and derives a
// placeholder invoice number from the booking id.
func Build(b *domain.Booking) View {
	v := View{
		IssuedAt: b.CreatedAt,
		CheckIn:  b.CheckIn,
		CheckOut: b.CheckOut,
		Nights:   billing.Nights(b.CheckIn, b.CheckOut),
		Guests:   b.NumberOfGuests,
		Status:   b.Status,
	}

	if b.Guest != nil {
		v.GuestName = b.Guest.FirstName + " " + b.Guest.LastName
		v.GuestEmail = b.Guest.Email
	}
	if b.Room != nil {
		v.RoomNumber = b.Room.RoomNumber
		v.RoomType = string(b.Room.Type)
	}

	if b.Billing != nil {
		v.InvoiceNumber = b.Billing.InvoiceNumber
		v.RoomCharges = money(b.Billing.RoomCharges)
		v.TaxAmount = money(b.Billing.TaxAmount)
		v.TotalAmount = money(b.Billing.TotalAmount)
		v.PaymentMethod = b.Billing.PaymentMethod
		v.PaymentStatus = b.Billing.PaymentStatus
		if !b.Billing.CreatedAt.IsZero() {
			v.IssuedAt = b.Billing.CreatedAt
		}
		return v
	}

	bd := billing.FromTotal(b.TotalPrice)
	v.InvoiceNumber = fmt.Sprintf("INV-%d", b.ID)
	v.RoomCharges = money(bd.RoomCharges)
	v.TaxAmount = money(bd.TaxAmount)
	v.TotalAmount = money(bd.TotalAmount)
	v.PaymentStatus = domain.PaymentUnpaid
	return v
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

var tmpl = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("Jan 2, 2006")
	},
}).Parse(`==============================================
              HOTEL DESK RECEIPT
==============================================
Invoice:   {{.InvoiceNumber}}
Issued:    {{date .IssuedAt}}

Guest:     {{if .GuestName}}{{.GuestName}}{{else}}-{{end}}
{{- if .GuestEmail}}
Email:     {{.GuestEmail}}
{{- end}}
Room:      {{if .RoomNumber}}{{.RoomNumber}} ({{.RoomType}}){{else}}-{{end}}

Check-in:  {{date .CheckIn}}
Check-out: {{date .CheckOut}}
Nights:    {{.Nights}}
Guests:    {{.Guests}}
Status:    {{.Status}}

----------------------------------------------
Room charges:        {{.RoomCharges}}
Tax (10%):           {{.TaxAmount}}
----------------------------------------------
TOTAL:               {{.TotalAmount}}
{{- if .PaymentMethod}}
Payment method:      {{.PaymentMethod}}
{{- end}}
Payment status:      {{.PaymentStatus}}
==============================================
`))

// Render writes the formatted receipt for a booking.
func Render(w io.Writer, b *domain.Booking) error {
	return tmpl.Execute(w, Build(b))
}

// Receipt couples a booking with the two things the receipt screen can
// do: print it somewhere and signal that the viewer dismissed it. Each
// capability is optional and independent of the other.
type Receipt struct {
	booking *domain.Booking
	printer io.Writer
	onClose func()
}

type Option func(*Receipt)

// WithPrinter sets the destination Print writes to.
func WithPrinter(w io.Writer) Option {
	return func(r *Receipt) { r.printer = w }
}

// WithOnClose registers a callback invoked once when the receipt is
// dismissed.
func WithOnClose(fn func()) Option {
	return func(r *Receipt) { r.onClose = fn }
}

func Open(b *domain.Booking, opts ...Option) *Receipt {
	r := &Receipt{booking: b}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Receipt) View() View { return Build(r.booking) }

// Print renders the receipt to the configured printer. Without one it
// is a no-op; printing never depends on a close handler being set.
func (r *Receipt) Print() error {
	if r.printer == nil {
		return nil
	}
	return Render(r.printer, r.booking)
}

// Close fires the dismissal callback, once.
func (r *Receipt) Close() {
	if r.onClose != nil {
		r.onClose()
		r.onClose = nil
	}
}
