package room

type CreateRoomRequest struct {
	RoomNumber    string   `json:"room_number" validate:"required"`
	Type          string   `json:"type" validate:"required"`
	Capacity      int      `json:"capacity" validate:"required,gte=1"`
	PricePerNight float64  `json:"price_per_night" validate:"gte=0"`
	Status        string   `json:"status"`
	Amenities     []string `json:"amenities"`
	Description   string   `json:"description"`
}

type UpdateRoomRequest struct {
	RoomNumber    string   `json:"room_number" validate:"required"`
	Type          string   `json:"type" validate:"required"`
	Capacity      int      `json:"capacity" validate:"required,gte=1"`
	PricePerNight float64  `json:"price_per_night" validate:"gte=0"`
	Status        string   `json:"status" validate:"required"`
	Amenities     []string `json:"amenities"`
	Description   string   `json:"description"`
}
