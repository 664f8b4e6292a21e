package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"hoteldesk/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	RoomID         int64     `gorm:"column:room_id;index"`
	GuestID        int64     `gorm:"column:guest_id;index"`
	CheckIn        time.Time `gorm:"column:check_in"`
	CheckOut       time.Time `gorm:"column:check_out"`
	NumberOfGuests int       `gorm:"column:number_of_guests"`
	Status         string    `gorm:"column:status;index"`
	TotalPrice     float64   `gorm:"column:total_price"`
	Notes          *string   `gorm:"column:notes;type:text"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`

	Room    *roomModel    `gorm:"foreignKey:RoomID;references:ID"`
	Guest   *guestModel   `gorm:"foreignKey:GuestID;references:ID"`
	Billing *billingModel `gorm:"foreignKey:BookingID;references:ID"`
}

func (bookingModel) TableName() string { return "bookings" }

type billingModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	BookingID     int64     `gorm:"column:booking_id;uniqueIndex"`
	InvoiceNumber string    `gorm:"column:invoice_number;uniqueIndex"`
	RoomCharges   float64   `gorm:"column:room_charges"`
	TaxAmount     float64   `gorm:"column:tax_amount"`
	TotalAmount   float64   `gorm:"column:total_amount"`
	PaymentMethod string    `gorm:"column:payment_method"`
	PaymentStatus string    `gorm:"column:payment_status"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (billingModel) TableName() string { return "billings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}

	b := &domain.Booking{
		ID:             m.ID,
		RoomID:         m.RoomID,
		GuestID:        m.GuestID,
		CheckIn:        m.CheckIn,
		CheckOut:       m.CheckOut,
		NumberOfGuests: m.NumberOfGuests,
		Status:         domain.BookingStatus(m.Status),
		TotalPrice:     m.TotalPrice,
		Notes:          notes,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}

	if m.Room != nil {
		b.Room = toDomainRoom(*m.Room)
	}
	if m.Guest != nil {
		b.Guest = toDomainGuest(*m.Guest)
	}
	if m.Billing != nil {
		b.Billing = &domain.Billing{
			ID:            m.Billing.ID,
			BookingID:     m.Billing.BookingID,
			InvoiceNumber: m.Billing.InvoiceNumber,
			RoomCharges:   m.Billing.RoomCharges,
			TaxAmount:     m.Billing.TaxAmount,
			TotalAmount:   m.Billing.TotalAmount,
			PaymentMethod: m.Billing.PaymentMethod,
			PaymentStatus: domain.PaymentStatus(m.Billing.PaymentStatus),
			CreatedAt:     m.Billing.CreatedAt,
		}
	}

	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	var notes *string
	if b.Notes != "" {
		v := b.Notes
		notes = &v
	}

	return bookingModel{
		ID:             b.ID,
		RoomID:         b.RoomID,
		GuestID:        b.GuestID,
		CheckIn:        b.CheckIn,
		CheckOut:       b.CheckOut,
		NumberOfGuests: b.NumberOfGuests,
		Status:         string(b.Status),
		TotalPrice:     b.TotalPrice,
		Notes:          notes,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func toBillingModel(bl *domain.Billing) billingModel {
	return billingModel{
		ID:            bl.ID,
		BookingID:     bl.BookingID,
		InvoiceNumber: bl.InvoiceNumber,
		RoomCharges:   bl.RoomCharges,
		TaxAmount:     bl.TaxAmount,
		TotalAmount:   bl.TotalAmount,
		PaymentMethod: bl.PaymentMethod,
		PaymentStatus: string(bl.PaymentStatus),
		CreatedAt:     bl.CreatedAt,
	}
}

func (r *BookingRepository) withSnapshots(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Room").
		Preload("Guest").
		Preload("Billing")
}

func (r *BookingRepository) GetAll(ctx context.Context, status string) ([]domain.Booking, error) {
	q := r.withSnapshots(ctx).Order("id DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var models []bookingModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.withSnapshots(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainBooking(m), nil
}

// Create inserts the booking and its billing record in one
// transaction and refreshes the domain object from the stored rows.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		if b.Billing != nil {
			bl := toBillingModel(b.Billing)
			bl.BookingID = m.ID
			if err := tx.Create(&bl).Error; err != nil {
				return err
			}
			b.Billing.ID = bl.ID
			b.Billing.BookingID = bl.BookingID
		}
		return nil
	})
	if err != nil {
		return err
	}

	b.ID = m.ID
	b.CreatedAt = m.CreatedAt
	b.UpdatedAt = m.UpdatedAt
	return nil
}

// Update rewrites the booking row and its billing record.
func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		if b.Billing == nil {
			return nil
		}

		var existing billingModel
		err := tx.Where("booking_id = ?", b.ID).First(&existing).Error
		switch {
		case err == nil:
			b.Billing.ID = existing.ID
			b.Billing.BookingID = b.ID
			bl := toBillingModel(b.Billing)
			bl.CreatedAt = existing.CreatedAt
			return tx.Save(&bl).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			bl := toBillingModel(b.Billing)
			bl.BookingID = b.ID
			if err := tx.Create(&bl).Error; err != nil {
				return err
			}
			b.Billing.ID = bl.ID
			b.Billing.BookingID = bl.BookingID
			return nil
		default:
			return err
		}
	})
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", id).Delete(&billingModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&bookingModel{}, id).Error
	})
}
