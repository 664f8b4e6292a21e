package booking

import (
	"context"

	"hoteldesk/internal/domain"
)

type BookingRepository interface {
	GetAll(ctx context.Context, status string) ([]domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Create(ctx context.Context, b *domain.Booking) error
	Update(ctx context.Context, b *domain.Booking) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

type GuestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Guest, error)
}
