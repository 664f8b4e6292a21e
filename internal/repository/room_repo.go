package repository

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"hoteldesk/internal/domain"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	RoomNumber    string    `gorm:"column:room_number;uniqueIndex"`
	Type          string    `gorm:"column:type"`
	Capacity      int       `gorm:"column:capacity"`
	PricePerNight float64   `gorm:"column:price_per_night"`
	Status        string    `gorm:"column:status"`
	Amenities     string    `gorm:"column:amenities;type:text"`
	Description   *string   `gorm:"column:description;type:text"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	var amenities []string
	if m.Amenities != "" {
		_ = json.Unmarshal([]byte(m.Amenities), &amenities)
	}

	var description string
	if m.Description != nil {
		description = *m.Description
	}

	return &domain.Room{
		ID:            m.ID,
		RoomNumber:    m.RoomNumber,
		Type:          domain.RoomType(m.Type),
		Capacity:      m.Capacity,
		PricePerNight: m.PricePerNight,
		Status:        domain.RoomStatus(m.Status),
		Amenities:     amenities,
		Description:   description,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toRoomModel(r *domain.Room) roomModel {
	var amenities string
	if len(r.Amenities) > 0 {
		raw, _ := json.Marshal(r.Amenities)
		amenities = string(raw)
	}

	var description *string
	if r.Description != "" {
		v := r.Description
		description = &v
	}

	return roomModel{
		ID:            r.ID,
		RoomNumber:    r.RoomNumber,
		Type:          string(r.Type),
		Capacity:      r.Capacity,
		PricePerNight: r.PricePerNight,
		Status:        string(r.Status),
		Amenities:     amenities,
		Description:   description,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (r *RoomRepository) GetAll(ctx context.Context) ([]domain.Room, error) {
	var models []roomModel
	tx := r.db.WithContext(ctx).Order("room_number").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Room, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&roomModel{}, id).Error
}
