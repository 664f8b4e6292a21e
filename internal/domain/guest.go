package domain

import "time"

type IdentificationType string

const (
	IDPassport       IdentificationType = "passport"
	IDNationalID     IdentificationType = "national_id"
	IDDriversLicense IdentificationType = "drivers_license"
	IDOther          IdentificationType = "other"
)

func (t IdentificationType) Valid() bool {
	switch t {
	case IDPassport, IDNationalID, IDDriversLicense, IDOther:
		return true
	}
	return false
}

type Guest struct {
	ID                   int64              `json:"id"`
	FirstName            string             `json:"first_name" validate:"required"`
	LastName             string             `json:"last_name" validate:"required"`
	Email                string             `json:"email" validate:"required,email"`
	PhoneNumber          string             `json:"phone_number" validate:"required"`
	Address              string             `json:"address,omitempty"`
	City                 string             `json:"city,omitempty"`
	Country              string             `json:"country,omitempty"`
	IdentificationType   IdentificationType `json:"identification_type,omitempty"`
	IdentificationNumber string             `json:"identification_number,omitempty"`
	DateOfBirth          *time.Time         `json:"date_of_birth,omitempty"`
	SpecialRequests      string             `json:"special_requests,omitempty"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}
