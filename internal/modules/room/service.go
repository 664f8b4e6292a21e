package room

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"hoteldesk/internal/domain"
)

type Service struct {
	rooms Repository
}

func NewService(rooms Repository) *Service {
	return &Service{rooms: rooms}
}

func (s *Service) List(ctx context.Context) ([]domain.Room, error) {
	return s.rooms.GetAll(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Room, error) {
	r, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *Service) Create(ctx context.Context, req CreateRoomRequest) (*domain.Room, error) {
	status := domain.RoomStatus(req.Status)
	if req.Status == "" {
		status = domain.RoomAvailable
	}
	if !domain.RoomType(req.Type).Valid() || !status.Valid() {
		return nil, ErrValidation
	}

	r := &domain.Room{
		RoomNumber:    req.RoomNumber,
		Type:          domain.RoomType(req.Type),
		Capacity:      req.Capacity,
		PricePerNight: req.PricePerNight,
		Status:        status,
		Amenities:     req.Amenities,
		Description:   req.Description,
	}

	if err := s.rooms.Create(ctx, r); err != nil {
		return nil, mapDuplicate(err)
	}
	return r, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRoomRequest) (*domain.Room, error) {
	if !domain.RoomType(req.Type).Valid() || !domain.RoomStatus(req.Status).Valid() {
		return nil, ErrValidation
	}

	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	r.RoomNumber = req.RoomNumber
	r.Type = domain.RoomType(req.Type)
	r.Capacity = req.Capacity
	r.PricePerNight = req.PricePerNight
	r.Status = domain.RoomStatus(req.Status)
	r.Amenities = req.Amenities
	r.Description = req.Description

	if err := s.rooms.Update(ctx, r); err != nil {
		return nil, mapDuplicate(err)
	}
	return r, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.rooms.Delete(ctx, id)
}

func mapDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateNumber
	}
	return err
}
