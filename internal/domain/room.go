package domain

import "time"

type RoomType string

const (
	RoomStandard RoomType = "standard"
	RoomDeluxe   RoomType = "deluxe"
	RoomSuite    RoomType = "suite"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomStandard, RoomDeluxe, RoomSuite:
		return true
	}
	return false
}

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance:
		return true
	}
	return false
}

type Room struct {
	ID            int64      `json:"id"`
	RoomNumber    string     `json:"room_number" validate:"required"`
	Type          RoomType   `json:"type" validate:"required"`
	Capacity      int        `json:"capacity" validate:"required,gte=1"`
	PricePerNight float64    `json:"price_per_night" validate:"gte=0"`
	Status        RoomStatus `json:"status"`
	Amenities     []string   `json:"amenities,omitempty"`
	Description   string     `json:"description,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
