package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultProfilePicture is shown for users who never uploaded a picture.
const DefaultProfilePicture = "https://via.placeholder.com/150"

type User struct {
	ID             uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	FirebaseUID    *string   `gorm:"size:128;uniqueIndex" json:"-"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone          string    `gorm:"size:20" json:"phone"`
	ProfilePicture string    `gorm:"size:512" json:"profile_picture"`
	Verified       bool      `gorm:"default:false" json:"verified"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
