package booking

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("booking not found")
	ErrRoomNotAvailable        = errors.New("room not available")
	ErrRoomNotFound            = errors.New("room not found")
	ErrGuestNotFound           = errors.New("guest not found")
	ErrBookingFinalized        = errors.New("booking is checked out or cancelled")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
