package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WishlistItem links a user to a product through the product's main image URL.
type WishlistItem struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	UsersID   uuid.UUID `gorm:"column:users_id;type:char(36);not null;uniqueIndex:idx_wishlist_user_image" json:"users_id"`
	ImageURL  string    `gorm:"size:512;not null;uniqueIndex:idx_wishlist_user_image" json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

func (WishlistItem) TableName() string {
	return "wishlist"
}

func (w *WishlistItem) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
