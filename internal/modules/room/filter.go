package room

import (
	"strings"

	"hoteldesk/internal/domain"
)

// FilterSelectable narrows a room collection to what the booking
// wizard may offer: rooms whose number or type contains the query
// (case-insensitive) and that are either available or already assigned
// to the booking being edited. Passing selectedID keeps an occupied
// room selectable so editing a booking cannot strand its own room.
// Input order is preserved.
func FilterSelectable(rooms []domain.Room, query string, selectedID int64) []domain.Room {
	q := strings.ToLower(query)

	out := make([]domain.Room, 0, len(rooms))
	for _, r := range rooms {
		matches := strings.Contains(strings.ToLower(r.RoomNumber), q) ||
			strings.Contains(strings.ToLower(string(r.Type)), q)
		selectable := r.Status == domain.RoomAvailable || r.ID == selectedID
		if matches && selectable {
			out = append(out, r)
		}
	}
	return out
}
