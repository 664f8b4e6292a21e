package guest

// GuestRequest is the create/update payload. date_of_birth arrives as
// "2006-01-02" and must not be in the future.
type GuestRequest struct {
	FirstName            string `json:"first_name" validate:"required"`
	LastName             string `json:"last_name" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	PhoneNumber          string `json:"phone_number" validate:"required"`
	Address              string `json:"address"`
	City                 string `json:"city"`
	Country              string `json:"country"`
	IdentificationType   string `json:"identification_type"`
	IdentificationNumber string `json:"identification_number"`
	DateOfBirth          string `json:"date_of_birth"`
	SpecialRequests      string `json:"special_requests"`
}
