package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Username       string    `gorm:"uniqueIndex;size:191;not null" json:"username"`
	FirstName      string    `gorm:"size:191" json:"first_name"`
	LastName       string    `gorm:"size:191" json:"last_name"`
	HashedPassword string    `gorm:"size:255;not null" json:"-"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	Role           string    `gorm:"size:32;not null;default:user" json:"role"`
	PhoneNumber    *string   `gorm:"size:32" json:"phone_number"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}
