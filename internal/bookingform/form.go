// Package bookingform models the two-step reservation wizard: pick a
// room, then enter the stay details. Advancement is gated by
// validation, and the form only leaves the details step when a
// server-confirmed booking arrives. The package is pure state; the
// console drives it and the tests exercise it headlessly.
package bookingform

import (
	"time"

	"hoteldesk/internal/billing"
	"hoteldesk/internal/domain"
	"hoteldesk/internal/modules/room"
)

type Step int

const (
	StepSelectRoom Step = iota
	StepDetails
	// StepReceipt is terminal: the wizard is done and displays the
	// authoritative server response.
	StepReceipt
)

// Draft is the in-progress, unpersisted booking being edited.
type Draft struct {
	RoomID         int64
	GuestID        int64
	CheckIn        time.Time
	CheckOut       time.Time
	NumberOfGuests int
	Status         domain.BookingStatus
	Notes          string
}

type Form struct {
	step    Step
	draft   Draft
	editing bool

	rooms     []domain.Room
	guests    []domain.Guest
	roomQuery string

	selectedRoom *domain.Room
	errors       map[string]string

	// set on completion; source of truth for the receipt
	confirmed *domain.Booking
}

// New opens the wizard for a fresh booking: selection step, check-in
// now, check-out tomorrow, one guest, status confirmed.
func New(rooms []domain.Room, guests []domain.Guest, now time.Time) *Form {
	return &Form{
		step:   StepSelectRoom,
		rooms:  rooms,
		guests: guests,
		draft: Draft{
			CheckIn:        now,
			CheckOut:       now.Add(24 * time.Hour),
			NumberOfGuests: 1,
			Status:         domain.BookingConfirmed,
		},
		errors: map[string]string{},
	}
}

// NewEdit opens the wizard on an existing booking: details step, room
// pre-selected past the selection gate.
func NewEdit(rooms []domain.Room, guests []domain.Guest, b *domain.Booking) *Form {
	f := &Form{
		step:    StepDetails,
		editing: true,
		rooms:   rooms,
		guests:  guests,
		draft: Draft{
			RoomID:         b.RoomID,
			GuestID:        b.GuestID,
			CheckIn:        b.CheckIn,
			CheckOut:       b.CheckOut,
			NumberOfGuests: b.NumberOfGuests,
			Status:         b.Status,
			Notes:          b.Notes,
		},
		errors: map[string]string{},
	}

	for i := range rooms {
		if rooms[i].ID == b.RoomID {
			f.selectedRoom = &rooms[i]
			break
		}
	}
	return f
}

func (f *Form) Step() Step                { return f.step }
func (f *Form) Editing() bool             { return f.editing }
func (f *Form) Draft() Draft              { return f.draft }
func (f *Form) Errors() map[string]string { return f.errors }
func (f *Form) SelectedRoom() *domain.Room {
	return f.selectedRoom
}

func (f *Form) SetRoomQuery(q string) { f.roomQuery = q }

// VisibleRooms is what the selection step offers: available rooms
// matching the query, plus the room already bound to this draft.
func (f *Form) VisibleRooms() []domain.Room {
	return room.FilterSelectable(f.rooms, f.roomQuery, f.draft.RoomID)
}

func (f *Form) SelectRoom(id int64) bool {
	for i := range f.rooms {
		if f.rooms[i].ID == id {
			f.selectedRoom = &f.rooms[i]
			f.draft.RoomID = id
			delete(f.errors, "room")
			return true
		}
	}
	return false
}

// Next advances from room selection to details. Without a selected
// room it records the error and stays put.
func (f *Form) Next() bool {
	if f.step != StepSelectRoom {
		return false
	}
	if f.selectedRoom == nil {
		f.errors["room"] = "Please select a room"
		return false
	}
	f.step = StepDetails
	return true
}

// Back returns to room selection. Always permitted; nothing is lost.
func (f *Form) Back() {
	if f.step == StepDetails {
		f.step = StepSelectRoom
	}
}

func (f *Form) SetGuest(id int64) {
	f.draft.GuestID = id
	delete(f.errors, "guest_id")
}

func (f *Form) SetCheckIn(t time.Time)  { f.draft.CheckIn = t }
func (f *Form) SetCheckOut(t time.Time) { f.draft.CheckOut = t }
func (f *Form) SetNumberOfGuests(n int) { f.draft.NumberOfGuests = n }
func (f *Form) SetNotes(notes string)   { f.draft.Notes = notes }

// SetStatus is only offered when editing, mirroring the status field
// in the details step.
func (f *Form) SetStatus(s domain.BookingStatus) {
	if f.editing {
		f.draft.Status = s
	}
}

// Quote prices the current draft for the amount summary. Advisory
// only; the server reprices on submit.
func (f *Form) Quote() *billing.Breakdown {
	if f.selectedRoom == nil || f.draft.CheckIn.IsZero() || f.draft.CheckOut.IsZero() {
		return nil
	}
	b := billing.Quote(f.selectedRoom.PricePerNight, f.draft.CheckIn, f.draft.CheckOut)
	return &b
}

// Validate runs full submission validation and fills the field-keyed
// error map. Submission must not proceed unless it returns true.
func (f *Form) Validate() bool {
	errs := map[string]string{}

	if f.draft.GuestID == 0 {
		errs["guest_id"] = "Guest is required"
	}
	if f.draft.CheckIn.IsZero() {
		errs["check_in"] = "Check-in date is required"
	}
	if f.draft.CheckOut.IsZero() {
		errs["check_out"] = "Check-out date is required"
	}
	if !f.draft.CheckIn.IsZero() && !f.draft.CheckOut.IsZero() &&
		!f.draft.CheckOut.After(f.draft.CheckIn) {
		errs["check_out"] = "Check-out must be after check-in"
	}
	if f.draft.NumberOfGuests < 1 {
		errs["number_of_guests"] = "At least 1 guest is required"
	}

	f.errors = errs
	return len(errs) == 0
}

// Complete moves the wizard into its terminal receipt state. The
// argument is the server's response; locally computed billing is not
// consulted again after this point.
func (f *Form) Complete(confirmed *domain.Booking) {
	f.confirmed = confirmed
	f.step = StepReceipt
}

// Confirmed returns the authoritative booking once the wizard is in
// the receipt state, nil before that.
func (f *Form) Confirmed() *domain.Booking {
	return f.confirmed
}
