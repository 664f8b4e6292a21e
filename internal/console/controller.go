// Package console drives the front-desk terminal: the booking list,
// the reservation wizard, status changes, and receipts, all over the
// HTTP client. Mutations never patch the local list in place; every
// successful write refetches the whole list so the console always
// shows what the server stored.
package console

import (
	"context"

	"go.uber.org/zap"

	"hoteldesk/internal/client"
	"hoteldesk/internal/domain"
)

// ConfirmFunc asks the operator to approve a destructive action.
// Deletion proceeds only when it returns true.
type ConfirmFunc func(b domain.Booking) bool

type Controller struct {
	api *client.Client
	log *zap.Logger

	statusFilter string
	bookings     []domain.Booking
}

func NewController(api *client.Client, log *zap.Logger) *Controller {
	return &Controller{api: api, log: log}
}

func (ctl *Controller) Bookings() []domain.Booking { return ctl.bookings }
func (ctl *Controller) StatusFilter() string       { return ctl.statusFilter }

// SetStatusFilter changes the list filter and reloads.
func (ctl *Controller) SetStatusFilter(ctx context.Context, status string) error {
	ctl.statusFilter = status
	return ctl.Load(ctx)
}

// Load replaces the list with the server's. On failure the previous
// list stays on screen.
func (ctl *Controller) Load(ctx context.Context) error {
	bookings, err := ctl.api.Bookings(ctx, ctl.statusFilter)
	if err != nil {
		ctl.log.Error("failed to load bookings", zap.Error(err))
		return err
	}
	ctl.bookings = bookings
	return nil
}

// Find returns the listed booking with the given id, if present.
func (ctl *Controller) Find(id int64) (domain.Booking, bool) {
	for _, b := range ctl.bookings {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Booking{}, false
}

func (ctl *Controller) Create(ctx context.Context, w client.BookingWrite) (*client.BookingResult, error) {
	res, err := ctl.api.CreateBooking(ctx, w)
	if err != nil {
		ctl.log.Error("failed to create booking", zap.Error(err))
		return nil, err
	}
	ctl.refresh(ctx)
	return res, nil
}

func (ctl *Controller) Update(ctx context.Context, id int64, w client.BookingWrite) (*client.BookingResult, error) {
	res, err := ctl.api.UpdateBooking(ctx, id, w)
	if err != nil {
		ctl.log.Error("failed to update booking", zap.Int64("booking_id", id), zap.Error(err))
		return nil, err
	}
	ctl.refresh(ctx)
	return res, nil
}

// CheckOut and Cancel are the two workflow shortcuts the list offers.

func (ctl *Controller) CheckOut(ctx context.Context, id int64) (*client.BookingResult, error) {
	return ctl.changeStatus(ctx, id, domain.BookingCheckedOut)
}

func (ctl *Controller) Cancel(ctx context.Context, id int64) (*client.BookingResult, error) {
	return ctl.changeStatus(ctx, id, domain.BookingCancelled)
}

func (ctl *Controller) changeStatus(ctx context.Context, id int64, status domain.BookingStatus) (*client.BookingResult, error) {
	res, err := ctl.api.ChangeBookingStatus(ctx, id, status)
	if err != nil {
		ctl.log.Error("failed to change booking status",
			zap.Int64("booking_id", id),
			zap.String("status", string(status)),
			zap.Error(err))
		return nil, err
	}
	ctl.refresh(ctx)
	return res, nil
}

// Delete asks for confirmation first. Declining is not an error; the
// call reports whether the booking was actually deleted.
func (ctl *Controller) Delete(ctx context.Context, id int64, confirm ConfirmFunc) (bool, error) {
	b, ok := ctl.Find(id)
	if !ok {
		loaded, err := ctl.api.Booking(ctx, id)
		if err != nil {
			ctl.log.Error("failed to look up booking", zap.Int64("booking_id", id), zap.Error(err))
			return false, err
		}
		b = *loaded.Booking
	}

	if confirm != nil && !confirm(b) {
		return false, nil
	}

	if err := ctl.api.DeleteBooking(ctx, id); err != nil {
		ctl.log.Error("failed to delete booking", zap.Int64("booking_id", id), zap.Error(err))
		return false, err
	}
	ctl.refresh(ctx)
	return true, nil
}

// Receipt fetches the booking fresh so the receipt always reflects the
// stored record, not a possibly stale list row.
func (ctl *Controller) Receipt(ctx context.Context, id int64) (*client.BookingResult, error) {
	res, err := ctl.api.Booking(ctx, id)
	if err != nil {
		ctl.log.Error("failed to load booking for receipt", zap.Int64("booking_id", id), zap.Error(err))
		return nil, err
	}
	return res, nil
}

func (ctl *Controller) refresh(ctx context.Context) {
	if err := ctl.Load(ctx); err != nil {
		ctl.log.Warn("list refresh after mutation failed; showing stale data", zap.Error(err))
	}
}
