package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hoteldesk/internal/domain"
)

type GuestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

type guestModel struct {
	ID                   int64      `gorm:"column:id;primaryKey"`
	FirstName            string     `gorm:"column:first_name"`
	LastName             string     `gorm:"column:last_name"`
	Email                string     `gorm:"column:email"`
	PhoneNumber          string     `gorm:"column:phone_number"`
	Address              *string    `gorm:"column:address"`
	City                 *string    `gorm:"column:city"`
	Country              *string    `gorm:"column:country"`
	IdentificationType   *string    `gorm:"column:identification_type"`
	IdentificationNumber *string    `gorm:"column:identification_number"`
	DateOfBirth          *time.Time `gorm:"column:date_of_birth"`
	SpecialRequests      *string    `gorm:"column:special_requests;type:text"`
	CreatedAt            time.Time  `gorm:"column:created_at"`
	UpdatedAt            time.Time  `gorm:"column:updated_at"`
}

func (guestModel) TableName() string { return "guests" }

func strValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toDomainGuest(m guestModel) *domain.Guest {
	return &domain.Guest{
		ID:                   m.ID,
		FirstName:            m.FirstName,
		LastName:             m.LastName,
		Email:                m.Email,
		PhoneNumber:          m.PhoneNumber,
		Address:              strValue(m.Address),
		City:                 strValue(m.City),
		Country:              strValue(m.Country),
		IdentificationType:   domain.IdentificationType(strValue(m.IdentificationType)),
		IdentificationNumber: strValue(m.IdentificationNumber),
		DateOfBirth:          m.DateOfBirth,
		SpecialRequests:      strValue(m.SpecialRequests),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func toGuestModel(g *domain.Guest) guestModel {
	return guestModel{
		ID:                   g.ID,
		FirstName:            g.FirstName,
		LastName:             g.LastName,
		Email:                g.Email,
		PhoneNumber:          g.PhoneNumber,
		Address:              strPtr(g.Address),
		City:                 strPtr(g.City),
		Country:              strPtr(g.Country),
		IdentificationType:   strPtr(string(g.IdentificationType)),
		IdentificationNumber: strPtr(g.IdentificationNumber),
		DateOfBirth:          g.DateOfBirth,
		SpecialRequests:      strPtr(g.SpecialRequests),
		CreatedAt:            g.CreatedAt,
		UpdatedAt:            g.UpdatedAt,
	}
}

func (r *GuestRepository) GetAll(ctx context.Context) ([]domain.Guest, error) {
	var models []guestModel
	tx := r.db.WithContext(ctx).Order("last_name, first_name").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Guest, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainGuest(m))
	}
	return out, nil
}

func (r *GuestRepository) GetByID(ctx context.Context, id int64) (*domain.Guest, error) {
	var m guestModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainGuest(m), nil
}

func (r *GuestRepository) Create(ctx context.Context, guest *domain.Guest) error {
	m := toGuestModel(guest)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*guest = *toDomainGuest(m)
	return nil
}

func (r *GuestRepository) Update(ctx context.Context, guest *domain.Guest) error {
	m := toGuestModel(guest)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*guest = *toDomainGuest(m)
	return nil
}

func (r *GuestRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&guestModel{}, id).Error
}
