package domain

// Action is something the front desk may do with a booking in its
// current status.
type Action string

const (
	ActionCheckOut    Action = "check_out"
	ActionCancel      Action = "cancel"
	ActionViewReceipt Action = "view_receipt"
	ActionEdit        Action = "edit"
	ActionDelete      Action = "delete"
)

var transitions = map[BookingStatus][]BookingStatus{
	BookingConfirmed:  {BookingCheckedIn, BookingCheckedOut, BookingCancelled},
	BookingCheckedIn:  {BookingCheckedOut, BookingCancelled},
	BookingCheckedOut: {},
	BookingCancelled:  {},
}

// Terminal reports whether no further status or content mutation is
// permitted for a booking in this status.
func (s BookingStatus) Terminal() bool {
	return s == BookingCheckedOut || s == BookingCancelled
}

// CanTransition reports whether a booking may move from one status to
// another. A repeat transition into the same terminal status is not a
// valid move; callers must treat it as an error, not a no-op.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AvailableActions returns the actions permitted for a booking in the
// given status. Viewing the receipt is always permitted; everything
// else requires a non-terminal status.
func AvailableActions(s BookingStatus) []Action {
	if s.Terminal() {
		return []Action{ActionViewReceipt}
	}
	return []Action{ActionCheckOut, ActionCancel, ActionViewReceipt, ActionEdit, ActionDelete}
}
