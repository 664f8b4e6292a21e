package auth

import (
	"context"

	"hoteldesk/internal/domain"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	CountByRole(ctx context.Context, role domain.UserRole) (int64, error)
}
