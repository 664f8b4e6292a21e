package guest

import (
	"context"

	"hoteldesk/internal/domain"
)

type Repository interface {
	GetAll(ctx context.Context) ([]domain.Guest, error)
	GetByID(ctx context.Context, id int64) (*domain.Guest, error)
	Create(ctx context.Context, guest *domain.Guest) error
	Update(ctx context.Context, guest *domain.Guest) error
	Delete(ctx context.Context, id int64) error
}
