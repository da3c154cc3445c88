package model

import "time"

// User types accepted by the marketplace.
const (
	UserTypeFarmer   = "farmer"
	UserTypeConsumer = "consumer"
)

// User is a registered marketplace identity. Users are never hard-deleted.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	UserType     string    `json:"userType" gorm:"size:50;not null;default:'consumer'"`
	Phone        string    `json:"phone" gorm:"size:50"`
	Address      string    `json:"address" gorm:"size:512"`
	ProfileImage string    `json:"profileImage" gorm:"size:512"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AuthUser is the minimal request-scoped projection attached to the echo
// context once a bearer token has been resolved.
type AuthUser struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	UserType string `json:"userType"`
}

// Project returns the request-scoped projection of a user.
func (u *User) Project() *AuthUser {
	return &AuthUser{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		UserType: u.UserType,
	}
}
