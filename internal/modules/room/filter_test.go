package room

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hoteldesk/internal/domain"
)

func sampleRooms() []domain.Room {
	return []domain.Room{
		{ID: 1, RoomNumber: "101", Type: domain.RoomStandard, Status: domain.RoomAvailable},
		{ID: 2, RoomNumber: "102", Type: domain.RoomDeluxe, Status: domain.RoomOccupied},
		{ID: 3, RoomNumber: "103", Type: domain.RoomSuite, Status: domain.RoomAvailable},
		{ID: 4, RoomNumber: "201", Type: domain.RoomStandard, Status: domain.RoomMaintenance},
	}
}

func roomNumbers(rooms []domain.Room) []string {
	out := make([]string, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.RoomNumber)
	}
	return out
}

func TestFilterSelectable_AvailableOnlyByDefault(t *testing.T) {
	got := FilterSelectable(sampleRooms(), "", 0)
	assert.Equal(t, []string{"101", "103"}, roomNumbers(got))
}

func TestFilterSelectable_IncludesSelectedOccupiedRoom(t *testing.T) {
	got := FilterSelectable(sampleRooms(), "", 2)
	assert.Equal(t, []string{"101", "102", "103"}, roomNumbers(got))
}

func TestFilterSelectable_MatchesNumberOrTypeCaseInsensitive(t *testing.T) {
	byNumber := FilterSelectable(sampleRooms(), "103", 0)
	assert.Equal(t, []string{"103"}, roomNumbers(byNumber))

	byType := FilterSelectable(sampleRooms(), "SUITE", 0)
	assert.Equal(t, []string{"103"}, roomNumbers(byType))

	// Occupied deluxe matches the query but stays excluded without a selection.
	assert.Empty(t, FilterSelectable(sampleRooms(), "deluxe", 0))
}

func TestFilterSelectable_OrderPreservingAndIdempotent(t *testing.T) {
	first := FilterSelectable(sampleRooms(), "10", 2)
	second := FilterSelectable(first, "10", 2)

	assert.Equal(t, []string{"101", "102", "103"}, roomNumbers(first))
	assert.Equal(t, first, second)
}

func TestFilterSelectable_NoMatches(t *testing.T) {
	assert.Empty(t, FilterSelectable(sampleRooms(), "penthouse", 0))
	assert.Empty(t, FilterSelectable(nil, "", 0))
}
