package guest

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"hoteldesk/internal/domain"
)

type Service struct {
	guests Repository
}

func NewService(guests Repository) *Service {
	return &Service{guests: guests}
}

func (s *Service) List(ctx context.Context) ([]domain.Guest, error) {
	return s.guests.GetAll(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Guest, error) {
	g, err := s.guests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (s *Service) Create(ctx context.Context, req GuestRequest) (*domain.Guest, error) {
	g := &domain.Guest{}
	if err := applyRequest(g, req); err != nil {
		return nil, err
	}

	if err := s.guests.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) Update(ctx context.Context, id int64, req GuestRequest) (*domain.Guest, error) {
	g, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := applyRequest(g, req); err != nil {
		return nil, err
	}

	if err := s.guests.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.guests.Delete(ctx, id)
}

func applyRequest(g *domain.Guest, req GuestRequest) error {
	if req.IdentificationType != "" && !domain.IdentificationType(req.IdentificationType).Valid() {
		return ErrValidation
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil || parsed.After(time.Now()) {
			return ErrValidation
		}
		dob = &parsed
	}

	g.FirstName = req.FirstName
	g.LastName = req.LastName
	g.Email = req.Email
	g.PhoneNumber = req.PhoneNumber
	g.Address = req.Address
	g.City = req.City
	g.Country = req.Country
	g.IdentificationType = domain.IdentificationType(req.IdentificationType)
	g.IdentificationNumber = req.IdentificationNumber
	g.DateOfBirth = dob
	g.SpecialRequests = req.SpecialRequests
	return nil
}
