package dto

import (
	"todo-guard/backend/app/models"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// LoginForm carries the form-encoded username and password of POST /auth/token.
type LoginForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (f LoginForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Username, validation.Required),
		validation.Field(&f.Password, validation.Required),
	)
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterRequest is the body of POST /auth/. Unknown fields are rejected by
// RegisterSchema before it is decoded.
type RegisterRequest struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phone_number"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.RuneLength(3, 191), is.Email),
		validation.Field(&r.Username, validation.Required, validation.RuneLength(1, 191)),
		validation.Field(&r.FirstName, validation.Required, validation.RuneLength(1, 191)),
		validation.Field(&r.LastName, validation.Required, validation.RuneLength(1, 191)),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 72)),
		validation.Field(&r.Role, validation.Required, validation.In(models.RoleUser, models.RoleAdmin)),
		validation.Field(&r.PhoneNumber, validation.RuneLength(0, 32)),
	)
}

var RegisterSchema = mustSchema(`{
	"type": "object",
	"properties": {
		"email":        {"type": "string"},
		"username":     {"type": "string"},
		"first_name":   {"type": "string"},
		"last_name":    {"type": "string"},
		"password":     {"type": "string"},
		"role":         {"type": "string"},
		"phone_number": {"type": "string"}
	},
	"required": ["email", "username", "first_name", "last_name", "password", "role"],
	"additionalProperties": false
}`)
