package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

const MinPasswordLength = 6

type PasswordChangeRequest struct {
	Password    string `json:"password"`
	NewPassword string `json:"new_password"`
}

func (r PasswordChangeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.RuneLength(MinPasswordLength, 0), validation.Length(0, 72)),
	)
}

var PasswordChangeSchema = mustSchema(`{
	"type": "object",
	"properties": {
		"password":     {"type": "string"},
		"new_password": {"type": "string"}
	},
	"required": ["password", "new_password"]
}`)

type PhoneNumberRequest struct {
	PhoneNumber string `json:"phone_number"`
}

func (r PhoneNumberRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PhoneNumber, validation.Required, validation.RuneLength(10, 10)),
	)
}

var PhoneNumberSchema = mustSchema(`{
	"type": "object",
	"properties": {
		"phone_number": {"type": "string"}
	},
	"required": ["phone_number"]
}`)

// Profile is the response of GET /user/.
type Profile struct {
	ID          uint    `json:"id"`
	Email       string  `json:"email"`
	Username    string  `json:"username"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Role        string  `json:"role"`
	IsActive    bool    `json:"is_active"`
	PhoneNumber *string `json:"phone_number"`
	PhoneE164   string  `json:"phone_e164,omitempty"`
}
