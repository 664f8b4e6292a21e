package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailableActions(t *testing.T) {
	full := []Action{ActionCheckOut, ActionCancel, ActionViewReceipt, ActionEdit, ActionDelete}

	assert.Equal(t, full, AvailableActions(BookingConfirmed))
	assert.Equal(t, full, AvailableActions(BookingCheckedIn))
	assert.Equal(t, []Action{ActionViewReceipt}, AvailableActions(BookingCheckedOut))
	assert.Equal(t, []Action{ActionViewReceipt}, AvailableActions(BookingCancelled))
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(BookingConfirmed, BookingCheckedIn))
	assert.True(t, CanTransition(BookingConfirmed, BookingCheckedOut))
	assert.True(t, CanTransition(BookingConfirmed, BookingCancelled))
	assert.True(t, CanTransition(BookingCheckedIn, BookingCheckedOut))
	assert.True(t, CanTransition(BookingCheckedIn, BookingCancelled))

	// no way back
	assert.False(t, CanTransition(BookingCheckedIn, BookingConfirmed))
	assert.False(t, CanTransition(BookingCancelled, BookingConfirmed))

	// terminal statuses permit nothing, including a repeat of themselves
	for _, from := range []BookingStatus{BookingCheckedOut, BookingCancelled} {
		for _, to := range []BookingStatus{BookingConfirmed, BookingCheckedIn, BookingCheckedOut, BookingCancelled} {
			assert.False(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminal(t *testing.T) {
	assert.False(t, BookingConfirmed.Terminal())
	assert.False(t, BookingCheckedIn.Terminal())
	assert.True(t, BookingCheckedOut.Terminal())
	assert.True(t, BookingCancelled.Terminal())
}
